package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenplan_backend/internal/model"
)

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.CompletedPercent)
	assert.Equal(t, 0, s.RemainingPercent)
}

func TestComputeStatsWeighted(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Progress: 40, Status: model.TaskPending},
		{ID: "b", Progress: 100, Status: model.TaskCompleted},
		{ID: "c", Progress: 0, Status: model.TaskNotCompleted},
	}

	s := ComputeStats(tasks)
	assert.Equal(t, 3, s.Total)
	assert.InDelta(t, 1.4, s.WeightedDone, 1e-9)
	assert.Equal(t, 47, s.CompletedPercent) // round(1.4/3*100)
	assert.Equal(t, 53, s.RemainingPercent)
	assert.Equal(t, 1, s.MissedCount)
}

func TestPercentsAlwaysSumTo100(t *testing.T) {
	// 加权完成度按各任务进度取整
	for _, progresses := range [][]int{{1}, {33, 33, 33}, {99, 1}, {50, 50, 50, 50, 51}} {
		var tasks []model.Task
		for i, p := range progresses {
			tasks = append(tasks, model.Task{ID: string(rune('a' + i)), Progress: p})
		}
		s := ComputeStats(tasks)
		assert.Equal(t, 100, s.CompletedPercent+s.RemainingPercent)
	}
}

func TestTasksCreatedOn(t *testing.T) {
	day := time.Date(2025, 6, 11, 15, 0, 0, 0, time.Local)
	tasks := []model.Task{
		{ID: "today-early", CreatedAt: time.Date(2025, 6, 11, 0, 0, 0, 0, time.Local).UnixMilli()},
		{ID: "today-late", CreatedAt: time.Date(2025, 6, 11, 23, 59, 59, 0, time.Local).UnixMilli()},
		{ID: "yesterday", CreatedAt: time.Date(2025, 6, 10, 23, 59, 59, 0, time.Local).UnixMilli()},
		{ID: "tomorrow", CreatedAt: time.Date(2025, 6, 12, 0, 0, 0, 0, time.Local).UnixMilli()},
	}

	got := TasksCreatedOn(tasks, day)
	require.Len(t, got, 2)
	assert.Equal(t, "today-early", got[0].ID)
	assert.Equal(t, "today-late", got[1].ID)
}

func TestWeekStart(t *testing.T) {
	// 2025-06-11 is a Wednesday; the containing week starts Monday 2025-06-09
	wed := time.Date(2025, 6, 11, 18, 30, 0, 0, time.Local)
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local)
	assert.Equal(t, monday, WeekStart(wed))

	// Sunday belongs to the week that started six days earlier
	sun := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
	assert.Equal(t, monday, WeekStart(sun))

	// Monday is its own week start
	assert.Equal(t, monday, WeekStart(monday.Add(5*time.Minute)))
}

func TestGoalsForWeekBucketIsImmutable(t *testing.T) {
	// 周三创建的目标切换后仍属于其周一到周日那一周
	wed := time.Date(2025, 6, 11, 12, 0, 0, 0, time.Local)
	goals, g := AddGoal(nil, "mid-week goal", wed)

	week := WeekStart(wed)
	require.Len(t, GoalsForWeek(goals, week), 1)

	goals = ToggleGoal(goals, g.ID)
	require.Len(t, GoalsForWeek(goals, week), 1)
	assert.True(t, GoalsForWeek(goals, week)[0].IsDone)

	next := week.AddDate(0, 0, 7)
	assert.Empty(t, GoalsForWeek(goals, next))
}
