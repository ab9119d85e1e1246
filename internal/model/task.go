package model

type TaskStatus string

const (
	TaskPending      TaskStatus = "pending"
	TaskCompleted    TaskStatus = "completed"
	TaskNotCompleted TaskStatus = "not-completed"
)

// Task 是看板上的一个任务。集合以 JSON 形式存放在本地 KV 存储和远程用户文档中，
// 不落关系表。时间戳统一使用毫秒。
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Progress    int        `json:"progress"` // 0-100
	CreatedAt   int64      `json:"createdAt"`
	LastUpdated int64      `json:"lastUpdated,omitempty"`
}

func (t Task) EntityID() string { return t.ID }

func (t *Task) SetEntityID(id string) { t.ID = id }

// VersionStamp 返回用于合并冲突判定的权威时间戳。
func (t Task) VersionStamp() int64 {
	if t.LastUpdated > 0 {
		return t.LastUpdated
	}
	return t.CreatedAt
}
