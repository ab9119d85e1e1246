package service

import (
	"context"
	"time"

	"zenplan_backend/internal/engine"
	"zenplan_backend/internal/model"
	"zenplan_backend/internal/util"
	"zenplan_backend/pkg/kvstore"
)

// GoalService 周目标集合的编排层，落盘与镜像策略与任务一致。
type GoalService struct {
	KV   *kvstore.Store
	Docs DocumentStore
}

func NewGoalService(kv *kvstore.Store, docs DocumentStore) *GoalService {
	return &GoalService{KV: kv, Docs: docs}
}

func (s *GoalService) List(uid string) []model.WeeklyGoal {
	return kvstore.LoadCollection[model.WeeklyGoal](s.KV, kvstore.UserKey(uid, kvstore.KeyGoals))
}

// WeekView 当前周的目标视图。
type WeekView struct {
	WeekStart time.Time          `json:"weekStart"`
	Goals     []model.WeeklyGoal `json:"goals"`
	DoneCount int                `json:"doneCount"`
}

// Week 返回 at 所在周（周一起始）的目标。
func (s *GoalService) Week(uid string, at time.Time) WeekView {
	start := engine.WeekStart(at)
	goals := engine.GoalsForWeek(s.List(uid), start)
	view := WeekView{WeekStart: start, Goals: goals}
	for _, g := range goals {
		if g.IsDone {
			view.DoneCount++
		}
	}
	return view
}

func (s *GoalService) persist(uid string, goals []model.WeeklyGoal) {
	kvstore.SaveCollection(s.KV, kvstore.UserKey(uid, kvstore.KeyGoals), goals)
	asyncMergeSet(s.Docs, uid, map[string]interface{}{"weeklyGoals": goals})
}

func (s *GoalService) Add(ctx context.Context, uid, title string) (model.WeeklyGoal, error) {
	if title == "" {
		return model.WeeklyGoal{}, util.ErrEmptyTitle
	}
	goals, goal := engine.AddGoal(s.List(uid), title, time.Now())
	s.persist(uid, goals)
	return goal, nil
}

func (s *GoalService) Toggle(ctx context.Context, uid, id string) []model.WeeklyGoal {
	goals := engine.ToggleGoal(s.List(uid), id)
	s.persist(uid, goals)
	return goals
}

func (s *GoalService) Delete(ctx context.Context, uid, id string) []model.WeeklyGoal {
	goals := engine.DeleteGoal(s.List(uid), id)
	s.persist(uid, goals)
	return goals
}
