package engine

import (
	"time"

	"zenplan_backend/internal/model"
)

// StreakState 连续完成天数的持久化状态。LastCelebratedDay 与 LastStreakDate
// 分开记录：前者保证庆祝与加一每天最多触发一次，后者用于判断连续性。
type StreakState struct {
	Streak            int    `json:"streak"`
	LastStreakDate    string `json:"lastStreakDate"`
	LastCelebratedDay string `json:"lastCelebratedDay"`
}

// StreakEvents 一次评估产生的副作用信号。
type StreakEvents struct {
	DayCompleted   bool `json:"dayCompleted"`   // 今日任务全部完成（当天首次）
	StreakExtended bool `json:"streakExtended"` // 连续天数发生了 +1 或重新起算
}

// NormalizeStreak 断链检测：最近一次打卡既不是今天也不是昨天就归零。
func NormalizeStreak(state StreakState, now time.Time) StreakState {
	if state.LastStreakDate == "" {
		return state
	}
	today := DateKey(now)
	yesterday := DateKey(now.AddDate(0, 0, -1))
	if state.LastStreakDate != today && state.LastStreakDate != yesterday {
		state.Streak = 0
	}
	return state
}

// EvaluateStreak 在任务集合变化后评估连击。当天创建的任务全部 completed 且
// 当天尚未庆祝过时触发事件；昨天打过卡则 +1，否则从 1 重新起算。没有当天
// 任务的日子不参与（空日不成链）。同一天内重复调用是幂等的。
func EvaluateStreak(state StreakState, tasks []model.Task, now time.Time) (StreakState, StreakEvents) {
	state = NormalizeStreak(state, now)

	var events StreakEvents
	today := DateKey(now)

	todayTasks := TasksCreatedOn(tasks, now)
	if len(todayTasks) == 0 {
		return state, events
	}
	for _, t := range todayTasks {
		if t.Status != model.TaskCompleted {
			return state, events
		}
	}

	if state.LastCelebratedDay == today {
		return state, events
	}
	events.DayCompleted = true
	state.LastCelebratedDay = today

	if state.LastStreakDate != today {
		yesterday := DateKey(now.AddDate(0, 0, -1))
		if state.LastStreakDate == yesterday {
			state.Streak++
		} else {
			state.Streak = 1
		}
		state.LastStreakDate = today
		events.StreakExtended = true
	}
	return state, events
}
