package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// swagger:model User
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"uid"`
	Name      string    `gorm:"size:100;not null" json:"displayName"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100" json:"-"` // 外部身份登录的账号为空
	PhotoURL  string    `gorm:"size:255" json:"photoURL"`
	Role      UserRole  `gorm:"type:enum('user','admin','super_admin');default:'user'" json:"role"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// UserDocument 远程文档存储中的单用户扁平文档，对应 user_documents 表的 JSON 列。
// 字段与原始集合一一对应；MergeSet 只覆盖请求中出现的顶层字段。
type UserDocument struct {
	UID            string       `json:"uid"`
	Email          string       `json:"email"`
	DisplayName    string       `json:"displayName"`
	PhotoURL       string       `json:"photoURL"`
	Role           UserRole     `json:"role"`
	CreatedAt      int64        `json:"createdAt"`
	Tasks          []Task       `json:"tasks,omitempty"`
	WeeklyGoals    []WeeklyGoal `json:"weeklyGoals,omitempty"`
	MoodLogs       []MoodLog    `json:"moodLogs,omitempty"`
	Streak         int          `json:"streak,omitempty"`
	LastStreakDate string       `json:"lastStreakDate,omitempty"`
	Theme          string       `json:"theme,omitempty"`
}
