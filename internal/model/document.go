package model

import (
	"encoding/json"
	"time"
)

// UserDocumentRecord user_documents 表的一行：每个用户一份完整文档。
type UserDocumentRecord struct {
	UID       string          `gorm:"primaryKey;type:varchar(36)" json:"uid"`
	Doc       json.RawMessage `gorm:"type:json" json:"doc"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (UserDocumentRecord) TableName() string {
	return "user_documents"
}
