package model

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodTired   Mood = "tired"
)

type MoodContext string

const (
	MoodOnCompletion MoodContext = "completion"
	MoodOnFailure    MoodContext = "failure"
)

// MoodLog 心情记录，只追加，系统不修改也不删除。
type MoodLog struct {
	ID        string      `json:"id"`
	Mood      Mood        `json:"mood"`
	Timestamp int64       `json:"timestamp"`
	Context   MoodContext `json:"context"`
}

func (m MoodLog) EntityID() string { return m.ID }

func (m *MoodLog) SetEntityID(id string) { m.ID = id }

func (m MoodLog) VersionStamp() int64 { return m.Timestamp }
