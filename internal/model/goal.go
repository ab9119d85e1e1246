package model

// WeeklyGoal 周目标，按 createdAt 所在的自然周（周一开始）归档，
// 创建后所属周不再变化。
type WeeklyGoal struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IsDone    bool   `json:"isDone"`
	CreatedAt int64  `json:"createdAt"`
}

func (g WeeklyGoal) EntityID() string { return g.ID }

func (g *WeeklyGoal) SetEntityID(id string) { g.ID = id }

func (g WeeklyGoal) VersionStamp() int64 { return g.CreatedAt }
