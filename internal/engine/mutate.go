package engine

import (
	"time"

	"zenplan_backend/internal/model"
)

// 任务与周目标的所有变更都是纯函数：输入集合不被修改，返回新集合。
// 标题校验由调用方负责（空标题在 controller 层拦截）。

// MutationResult 描述一次状态/进度变更的结果。Changed 表示集合确实发生了变化，
// 重复设置同一状态或进度是空操作。Completed 表示本次变更使任务到达完成态，
// 由调用方触发庆祝浮层与心情记录提示两个副作用。
type MutationResult struct {
	Tasks     []model.Task
	Changed   bool
	Completed bool
}

// AddTask 在集合头部插入新任务（最近创建的排最前）。
func AddTask(tasks []model.Task, title, description string, now time.Time) ([]model.Task, model.Task) {
	task := model.Task{
		ID:          NewID(),
		Title:       title,
		Description: description,
		Status:      model.TaskPending,
		Progress:    0,
		CreatedAt:   now.UnixMilli(),
		LastUpdated: now.UnixMilli(),
	}
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, task)
	out = append(out, tasks...)
	return out, task
}

// EditTask 按 id 更新标题与描述，id 不存在时原样返回。
func EditTask(tasks []model.Task, id, title, description string, now time.Time) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			t.Title = title
			t.Description = description
			t.LastUpdated = now.UnixMilli()
		}
		out[i] = t
	}
	return out
}

// SetTaskStatus 状态机的状态分支：
//   - completed 强制 progress=100
//   - pending 且此前 progress==100 时重置为 50（重开的任务按半完成处理）
//   - not-completed 不动 progress（表示放弃，不代表零进度）
func SetTaskStatus(tasks []model.Task, id string, status model.TaskStatus, now time.Time) MutationResult {
	res := MutationResult{Tasks: make([]model.Task, len(tasks))}
	for i, t := range tasks {
		if t.ID == id {
			prev := t
			switch status {
			case model.TaskCompleted:
				t.Progress = 100
			case model.TaskPending:
				if t.Progress == 100 {
					t.Progress = 50
				}
			}
			t.Status = status
			// 同状态重复设置是空操作，不更新时间戳也不触发副作用
			if t.Status != prev.Status || t.Progress != prev.Progress {
				t.LastUpdated = now.UnixMilli()
				res.Changed = true
				res.Completed = status == model.TaskCompleted
			}
		}
		res.Tasks[i] = t
	}
	return res
}

// SetTaskProgress 状态机的进度分支：100 强制 completed；已完成的任务被调回
// 100 以下时退回 pending。越界值收敛到 [0,100]。
func SetTaskProgress(tasks []model.Task, id string, progress int, now time.Time) MutationResult {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	res := MutationResult{Tasks: make([]model.Task, len(tasks))}
	for i, t := range tasks {
		if t.ID == id {
			prev := t
			if progress == 100 {
				t.Status = model.TaskCompleted
			} else if t.Status == model.TaskCompleted {
				t.Status = model.TaskPending
			}
			t.Progress = progress
			if t.Status != prev.Status || t.Progress != prev.Progress {
				t.LastUpdated = now.UnixMilli()
				res.Changed = true
				res.Completed = progress == 100 && prev.Status != model.TaskCompleted
			}
		}
		res.Tasks[i] = t
	}
	return res
}

// DeleteTask 按 id 删除，id 不存在时为幂等空操作。
func DeleteTask(tasks []model.Task, id string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// AddGoal 追加一个本周目标。
func AddGoal(goals []model.WeeklyGoal, title string, now time.Time) ([]model.WeeklyGoal, model.WeeklyGoal) {
	goal := model.WeeklyGoal{
		ID:        NewID(),
		Title:     title,
		IsDone:    false,
		CreatedAt: now.UnixMilli(),
	}
	out := make([]model.WeeklyGoal, 0, len(goals)+1)
	out = append(out, goals...)
	out = append(out, goal)
	return out, goal
}

// ToggleGoal 翻转完成标记。
func ToggleGoal(goals []model.WeeklyGoal, id string) []model.WeeklyGoal {
	out := make([]model.WeeklyGoal, len(goals))
	for i, g := range goals {
		if g.ID == id {
			g.IsDone = !g.IsDone
		}
		out[i] = g
	}
	return out
}

// DeleteGoal 按 id 删除，幂等。
func DeleteGoal(goals []model.WeeklyGoal, id string) []model.WeeklyGoal {
	out := make([]model.WeeklyGoal, 0, len(goals))
	for _, g := range goals {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}
