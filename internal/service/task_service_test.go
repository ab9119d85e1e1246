package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenplan_backend/internal/model"
)

func newTaskFixture(t *testing.T) (*TaskService, *MoodService, *fakeDocumentStore) {
	t.Helper()
	kv := newTestStore(t)
	docs := &fakeDocumentStore{}
	moods := NewMoodService(kv, docs, nil)
	streaks := NewStreakService(kv, docs)
	return NewTaskService(kv, docs, streaks, moods), moods, docs
}

func TestAddTaskPrepends(t *testing.T) {
	svc, _, _ := newTaskFixture(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, "u1", "先加的", "")
	require.NoError(t, err)
	second, err := svc.Add(ctx, "u1", "后加的", "")
	require.NoError(t, err)

	tasks := svc.List("u1")
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)
	assert.Equal(t, model.TaskPending, tasks[0].Status)
	assert.Equal(t, 0, tasks[0].Progress)
}

func TestAddTaskRejectsEmptyTitle(t *testing.T) {
	svc, _, _ := newTaskFixture(t)

	_, err := svc.Add(context.Background(), "u1", "", "描述")
	assert.Error(t, err)
	assert.Empty(t, svc.List("u1"))
}

func TestCompleteAllTodayExtendsStreak(t *testing.T) {
	svc, _, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Add(ctx, "u1", "今日唯一任务", "")
	require.NoError(t, err)

	tasks, events := svc.SetStatus(ctx, "u1", task.ID, model.TaskCompleted)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.TaskCompleted, tasks[0].Status)
	assert.Equal(t, 100, tasks[0].Progress)
	assert.True(t, events.ShowOverlay)
	assert.True(t, events.DayCompleted)
	assert.True(t, events.StreakExtended)
	assert.Equal(t, 1, events.Streak)
}

func TestCompleteIsIdempotentPerDay(t *testing.T) {
	svc, _, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Add(ctx, "u1", "反复切换", "")
	require.NoError(t, err)

	_, events := svc.SetStatus(ctx, "u1", task.ID, model.TaskCompleted)
	require.True(t, events.DayCompleted)

	// 同状态重复设置不算变更，无事件
	_, events = svc.SetStatus(ctx, "u1", task.ID, model.TaskCompleted)
	assert.Equal(t, TaskEvents{}, events)

	// 撤销再完成，同一天不再庆祝也不再加连击
	_, _ = svc.SetStatus(ctx, "u1", task.ID, model.TaskPending)
	_, events = svc.SetStatus(ctx, "u1", task.ID, model.TaskCompleted)
	assert.True(t, events.ShowOverlay)
	assert.False(t, events.DayCompleted)
	assert.False(t, events.StreakExtended)
	assert.Equal(t, 1, events.Streak)
}

func TestSetProgressFullCompletes(t *testing.T) {
	svc, _, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Add(ctx, "u1", "推进到满", "")
	require.NoError(t, err)

	tasks, events := svc.SetProgress(ctx, "u1", task.ID, 100)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.TaskCompleted, tasks[0].Status)
	assert.True(t, events.ShowOverlay)
}

func TestPromptMoodSuppressedDuringCooldown(t *testing.T) {
	svc, moods, _ := newTaskFixture(t)
	ctx := context.Background()

	_, ok := moods.Record(ctx, "u1", model.MoodHappy, model.MoodOnCompletion)
	require.True(t, ok)

	task, err := svc.Add(ctx, "u1", "冷却期内完成", "")
	require.NoError(t, err)

	_, events := svc.SetStatus(ctx, "u1", task.ID, model.TaskCompleted)
	assert.True(t, events.ShowOverlay)
	assert.False(t, events.PromptMood)
}

func TestDeleteTaskIdempotent(t *testing.T) {
	svc, _, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Add(ctx, "u1", "要删的", "")
	require.NoError(t, err)

	tasks := svc.Delete(ctx, "u1", task.ID)
	assert.Empty(t, tasks)

	tasks = svc.Delete(ctx, "u1", task.ID)
	assert.Empty(t, tasks)
}

func TestMoodRecordCooldown(t *testing.T) {
	kv := newTestStore(t)
	docs := &fakeDocumentStore{}
	moods := NewMoodService(kv, docs, nil)
	ctx := context.Background()

	log, ok := moods.Record(ctx, "u1", model.MoodTired, model.MoodOnFailure)
	require.True(t, ok)
	assert.NotEmpty(t, log.ID)

	_, ok = moods.Record(ctx, "u1", model.MoodHappy, model.MoodOnCompletion)
	assert.False(t, ok)
	assert.Len(t, moods.List("u1"), 1)
}
