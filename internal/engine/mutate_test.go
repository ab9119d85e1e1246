package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenplan_backend/internal/model"
)

var testNow = time.Date(2025, 6, 11, 10, 30, 0, 0, time.Local) // a Wednesday

func TestAddTaskPrepends(t *testing.T) {
	tasks, first := AddTask(nil, "write report", "quarterly numbers", testNow)
	tasks, second := AddTask(tasks, "review PR", "", testNow.Add(time.Minute))

	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)

	assert.Equal(t, model.TaskPending, first.Status)
	assert.Equal(t, 0, first.Progress)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, testNow.UnixMilli(), first.CreatedAt)
}

func TestAddTaskDoesNotMutateInput(t *testing.T) {
	tasks, _ := AddTask(nil, "a", "", testNow)
	snapshot := tasks[0]

	_, _ = AddTask(tasks, "b", "", testNow)
	res := SetTaskProgress(tasks, tasks[0].ID, 80, testNow)

	assert.Equal(t, snapshot, tasks[0], "input slice must stay untouched")
	assert.Equal(t, 80, res.Tasks[0].Progress)
	assert.Equal(t, 0, tasks[0].Progress)
}

func TestEditTask(t *testing.T) {
	tasks, task := AddTask(nil, "draft", "v1", testNow)

	later := testNow.Add(time.Hour)
	edited := EditTask(tasks, task.ID, "final", "v2", later)
	require.Len(t, edited, 1)
	assert.Equal(t, "final", edited[0].Title)
	assert.Equal(t, "v2", edited[0].Description)
	assert.Equal(t, later.UnixMilli(), edited[0].LastUpdated)

	// unknown id is a no-op
	same := EditTask(tasks, "nope", "x", "", later)
	assert.Equal(t, tasks, same)
}

func TestSetStatusCompletedForcesProgress100(t *testing.T) {
	tasks, task := AddTask(nil, "a", "", testNow)

	res := SetTaskStatus(tasks, task.ID, model.TaskCompleted, testNow)
	require.True(t, res.Changed)
	assert.True(t, res.Completed)
	assert.Equal(t, model.TaskCompleted, res.Tasks[0].Status)
	assert.Equal(t, 100, res.Tasks[0].Progress)
}

func TestSetStatusSameValueIsNoOp(t *testing.T) {
	tasks, task := AddTask(nil, "a", "", testNow)
	tasks = SetTaskStatus(tasks, task.ID, model.TaskCompleted, testNow).Tasks

	res := SetTaskStatus(tasks, task.ID, model.TaskCompleted, testNow.Add(time.Hour))
	assert.False(t, res.Changed)
	assert.False(t, res.Completed)
	assert.Equal(t, testNow.UnixMilli(), res.Tasks[0].LastUpdated, "timestamp untouched on no-op")
}

func TestSetProgressSameValueIsNoOp(t *testing.T) {
	tasks, task := AddTask(nil, "a", "", testNow)
	tasks = SetTaskProgress(tasks, task.ID, 60, testNow).Tasks

	res := SetTaskProgress(tasks, task.ID, 60, testNow.Add(time.Hour))
	assert.False(t, res.Changed)
	assert.Equal(t, testNow.UnixMilli(), res.Tasks[0].LastUpdated)
}

func TestSetStatusPendingResetsFullProgressToHalf(t *testing.T) {
	tasks, task := AddTask(nil, "a", "", testNow)
	tasks = SetTaskStatus(tasks, task.ID, model.TaskCompleted, testNow).Tasks

	res := SetTaskStatus(tasks, task.ID, model.TaskPending, testNow)
	assert.Equal(t, model.TaskPending, res.Tasks[0].Status)
	assert.Equal(t, 50, res.Tasks[0].Progress, "reopened tasks count as half done")
}

func TestSetStatusPendingKeepsPartialProgress(t *testing.T) {
	tasks, task := AddTask(nil, "a", "", testNow)
	tasks = SetTaskProgress(tasks, task.ID, 30, testNow).Tasks

	res := SetTaskStatus(tasks, task.ID, model.TaskPending, testNow)
	assert.Equal(t, 30, res.Tasks[0].Progress)
}

func TestSetStatusNotCompletedLeavesProgress(t *testing.T) {
	tasks, task := AddTask(nil, "a", "", testNow)
	tasks = SetTaskProgress(tasks, task.ID, 70, testNow).Tasks

	res := SetTaskStatus(tasks, task.ID, model.TaskNotCompleted, testNow)
	assert.Equal(t, model.TaskNotCompleted, res.Tasks[0].Status)
	assert.Equal(t, 70, res.Tasks[0].Progress)
	assert.False(t, res.Completed)
}

func TestSetProgress100CompletesTask(t *testing.T) {
	tasks, task := AddTask(nil, "a", "", testNow)

	res := SetTaskProgress(tasks, task.ID, 100, testNow)
	assert.True(t, res.Completed)
	assert.Equal(t, model.TaskCompleted, res.Tasks[0].Status)
}

func TestSetProgressBelow100ReopensCompletedTask(t *testing.T) {
	tasks, task := AddTask(nil, "write report", "", testNow)

	// pending 进度拉满转 completed，再降到 40 回到 pending
	res := SetTaskProgress(tasks, task.ID, 100, testNow)
	require.Equal(t, model.TaskCompleted, res.Tasks[0].Status)
	require.Equal(t, 100, res.Tasks[0].Progress)

	res = SetTaskProgress(res.Tasks, task.ID, 40, testNow)
	assert.Equal(t, model.TaskPending, res.Tasks[0].Status)
	assert.Equal(t, 40, res.Tasks[0].Progress)
	assert.False(t, res.Completed)
}

func TestSetProgressDoesNotTouchNotCompleted(t *testing.T) {
	tasks, task := AddTask(nil, "a", "", testNow)
	tasks = SetTaskStatus(tasks, task.ID, model.TaskNotCompleted, testNow).Tasks

	res := SetTaskProgress(tasks, task.ID, 60, testNow)
	assert.Equal(t, model.TaskNotCompleted, res.Tasks[0].Status, "only completed falls back to pending")
	assert.Equal(t, 60, res.Tasks[0].Progress)
}

func TestSetProgressClamps(t *testing.T) {
	tasks, task := AddTask(nil, "a", "", testNow)

	res := SetTaskProgress(tasks, task.ID, 250, testNow)
	assert.Equal(t, 100, res.Tasks[0].Progress)
	assert.Equal(t, model.TaskCompleted, res.Tasks[0].Status)

	res = SetTaskProgress(res.Tasks, task.ID, -5, testNow)
	assert.Equal(t, 0, res.Tasks[0].Progress)
}

func TestDeleteTaskIdempotent(t *testing.T) {
	tasks, task := AddTask(nil, "a", "", testNow)

	out := DeleteTask(tasks, task.ID)
	assert.Empty(t, out)
	assert.Empty(t, DeleteTask(out, task.ID))
}

func TestGoalLifecycle(t *testing.T) {
	goals, g1 := AddGoal(nil, "ship v2", testNow)
	goals, g2 := AddGoal(goals, "run 3 times", testNow)

	require.Len(t, goals, 2)
	assert.Equal(t, g1.ID, goals[0].ID, "goals append, unlike tasks")
	assert.False(t, goals[0].IsDone)

	goals = ToggleGoal(goals, g2.ID)
	assert.True(t, goals[1].IsDone)
	goals = ToggleGoal(goals, g2.ID)
	assert.False(t, goals[1].IsDone)

	goals = DeleteGoal(goals, g1.ID)
	require.Len(t, goals, 1)
	assert.Equal(t, g2.ID, goals[0].ID)
}
