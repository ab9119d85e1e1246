package engine

import (
	"time"

	"zenplan_backend/internal/model"
)

// MoodCooldown 同一用户两次心情提示之间的最短间隔。
const MoodCooldown = 5 * time.Minute

// HasRecentMood 冷却窗口内是否已有心情记录。
func HasRecentMood(logs []model.MoodLog, now time.Time, window time.Duration) bool {
	cutoff := now.Add(-window).UnixMilli()
	for _, l := range logs {
		if l.Timestamp > cutoff {
			return true
		}
	}
	return false
}

// NewMoodLog 生成一条新的心情记录。
func NewMoodLog(mood model.Mood, context model.MoodContext, now time.Time) model.MoodLog {
	return model.MoodLog{
		ID:        NewID(),
		Mood:      mood,
		Timestamp: now.UnixMilli(),
		Context:   context,
	}
}
