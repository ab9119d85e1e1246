package service

import (
	"context"
	"time"

	"zenplan_backend/internal/engine"
	"zenplan_backend/internal/model"
	"zenplan_backend/internal/util"
	"zenplan_backend/pkg/kvstore"
)

// TaskEvents 一次任务变更随响应返回的副作用信号，浮层与提示由前端呈现。
type TaskEvents struct {
	ShowOverlay    bool `json:"showOverlay"`    // 任务到达完成态，展示评分浮层
	PromptMood     bool `json:"promptMood"`     // 冷却窗口外，提示记录心情
	DayCompleted   bool `json:"dayCompleted"`   // 今日任务全部完成（当天首次）
	StreakExtended bool `json:"streakExtended"` // 连击 +1 或重新起算
	Streak         int  `json:"streak"`
}

// TaskService 任务集合的编排层：纯函数变更 → 本地同步落盘 → 远程异步镜像 →
// 连击评估。标题校验在 controller 完成，这里假定输入已合法。
type TaskService struct {
	KV      *kvstore.Store
	Docs    DocumentStore
	Streaks *StreakService
	Moods   *MoodService
}

func NewTaskService(kv *kvstore.Store, docs DocumentStore, streaks *StreakService, moods *MoodService) *TaskService {
	return &TaskService{KV: kv, Docs: docs, Streaks: streaks, Moods: moods}
}

func (s *TaskService) List(uid string) []model.Task {
	return kvstore.LoadCollection[model.Task](s.KV, kvstore.UserKey(uid, kvstore.KeyTasks))
}

func (s *TaskService) persist(uid string, tasks []model.Task) {
	// 本地写永远先于远程写，本地存储始终不旧于已发出的远程写
	kvstore.SaveCollection(s.KV, kvstore.UserKey(uid, kvstore.KeyTasks), tasks)
	asyncMergeSet(s.Docs, uid, map[string]interface{}{"tasks": tasks})
}

// Add 创建新任务并插入集合头部。
func (s *TaskService) Add(ctx context.Context, uid, title, description string) (model.Task, error) {
	if title == "" {
		return model.Task{}, util.ErrEmptyTitle
	}
	tasks, task := engine.AddTask(s.List(uid), title, description, time.Now())
	s.persist(uid, tasks)
	// 新增 pending 任务可能打断「今日全部完成」，重新评估但不会产生事件
	s.Streaks.Evaluate(ctx, uid, tasks, time.Now())
	return task, nil
}

// Edit 更新标题与描述。
func (s *TaskService) Edit(ctx context.Context, uid, id, title, description string) ([]model.Task, error) {
	if title == "" {
		return nil, util.ErrEmptyTitle
	}
	tasks := engine.EditTask(s.List(uid), id, title, description, time.Now())
	s.persist(uid, tasks)
	return tasks, nil
}

// SetStatus 切换任务状态并收集完成副作用。
func (s *TaskService) SetStatus(ctx context.Context, uid, id string, status model.TaskStatus) ([]model.Task, TaskEvents) {
	now := time.Now()
	res := engine.SetTaskStatus(s.List(uid), id, status, now)
	if !res.Changed {
		return res.Tasks, TaskEvents{}
	}
	s.persist(uid, res.Tasks)
	return res.Tasks, s.afterMutation(ctx, uid, res, now)
}

// SetProgress 调整进度并收集完成副作用。
func (s *TaskService) SetProgress(ctx context.Context, uid, id string, progress int) ([]model.Task, TaskEvents) {
	now := time.Now()
	res := engine.SetTaskProgress(s.List(uid), id, progress, now)
	if !res.Changed {
		return res.Tasks, TaskEvents{}
	}
	s.persist(uid, res.Tasks)
	return res.Tasks, s.afterMutation(ctx, uid, res, now)
}

// Delete 删除任务，幂等。
func (s *TaskService) Delete(ctx context.Context, uid, id string) []model.Task {
	tasks := engine.DeleteTask(s.List(uid), id)
	s.persist(uid, tasks)
	s.Streaks.Evaluate(ctx, uid, tasks, time.Now())
	return tasks
}

// afterMutation 完成触发的两个副作用（评分浮层、心情提示）加连击评估。
func (s *TaskService) afterMutation(ctx context.Context, uid string, res engine.MutationResult, now time.Time) TaskEvents {
	var events TaskEvents
	if res.Completed {
		events.ShowOverlay = true
		events.PromptMood = !s.Moods.OnCooldown(ctx, uid, now)
	}
	st, streakEvents := s.Streaks.Evaluate(ctx, uid, res.Tasks, now)
	events.DayCompleted = streakEvents.DayCompleted
	events.StreakExtended = streakEvents.StreakExtended
	events.Streak = st.Streak
	return events
}
