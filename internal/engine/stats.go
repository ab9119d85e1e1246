package engine

import (
	"math"
	"time"

	"zenplan_backend/internal/model"
)

// Stats 看板的聚合指标。完成度按进度加权：40% 的任务贡献 0.4 而不是 0 或 1。
type Stats struct {
	Total            int     `json:"total"`
	WeightedDone     float64 `json:"done"`
	CompletedPercent int     `json:"completedPercent"`
	RemainingPercent int     `json:"remainingPercent"`
	MissedCount      int     `json:"missed"`
}

// ComputeStats 对当前任务集合做一次 O(n) 聚合，无状态，可随每次变更重算。
func ComputeStats(tasks []model.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		s.WeightedDone += float64(t.Progress) / 100
		if t.Status == model.TaskNotCompleted {
			s.MissedCount++
		}
	}
	if s.Total > 0 {
		s.CompletedPercent = int(math.Round(s.WeightedDone / float64(s.Total) * 100))
		s.RemainingPercent = 100 - s.CompletedPercent
	}
	return s
}

// DateKey 日期等值比较用的键，本地时区。
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay 两个毫秒时间戳是否落在同一个本地日历日。
func SameDay(tsMillis int64, day time.Time) bool {
	return DateKey(time.UnixMilli(tsMillis).In(day.Location())) == DateKey(day)
}

// TasksCreatedOn 返回在指定日历日创建的任务。
func TasksCreatedOn(tasks []model.Task, day time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if SameDay(t.CreatedAt, day) {
			out = append(out, t)
		}
	}
	return out
}

// WeekStart 返回 t 所在周的周一 00:00:00（本地时区）。
func WeekStart(t time.Time) time.Time {
	days := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		days = 6
	}
	monday := t.AddDate(0, 0, -days)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// GoalsForWeek 返回归属于 weekStart 起始周的目标。归属由 createdAt 决定，
// 创建后不随编辑或勾选变化。
func GoalsForWeek(goals []model.WeeklyGoal, weekStart time.Time) []model.WeeklyGoal {
	end := weekStart.AddDate(0, 0, 7)
	var out []model.WeeklyGoal
	for _, g := range goals {
		created := time.UnixMilli(g.CreatedAt).In(weekStart.Location())
		if !created.Before(weekStart) && created.Before(end) {
			out = append(out, g)
		}
	}
	return out
}
