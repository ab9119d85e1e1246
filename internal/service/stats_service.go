package service

import (
	"time"

	"zenplan_backend/internal/engine"
	"zenplan_backend/internal/model"
	"zenplan_backend/pkg/kvstore"
)

// StatsService 派生指标：每次读取都从当前集合现算，无缓存。
type StatsService struct {
	KV *kvstore.Store
}

func NewStatsService(kv *kvstore.Store) *StatsService {
	return &StatsService{KV: kv}
}

func (s *StatsService) tasks(uid string) []model.Task {
	return kvstore.LoadCollection[model.Task](s.KV, kvstore.UserKey(uid, kvstore.KeyTasks))
}

// Overview 全集合的加权完成度。
func (s *StatsService) Overview(uid string) engine.Stats {
	return engine.ComputeStats(s.tasks(uid))
}

// BoardView 看板三列。
type BoardView struct {
	Pending   []model.Task `json:"pending"`
	Completed []model.Task `json:"completed"`
	Missed    []model.Task `json:"missed"`
}

func (s *StatsService) Board(uid string) BoardView {
	view := BoardView{
		Pending:   []model.Task{},
		Completed: []model.Task{},
		Missed:    []model.Task{},
	}
	for _, t := range s.tasks(uid) {
		switch t.Status {
		case model.TaskCompleted:
			view.Completed = append(view.Completed, t)
		case model.TaskNotCompleted:
			view.Missed = append(view.Missed, t)
		default:
			view.Pending = append(view.Pending, t)
		}
	}
	return view
}

// DailyView 指定日历日创建的任务及其聚合。
type DailyView struct {
	Date  string       `json:"date"`
	Tasks []model.Task `json:"tasks"`
	Stats engine.Stats `json:"stats"`
}

func (s *StatsService) Daily(uid string, day time.Time) DailyView {
	tasks := engine.TasksCreatedOn(s.tasks(uid), day)
	return DailyView{
		Date:  engine.DateKey(day),
		Tasks: tasks,
		Stats: engine.ComputeStats(tasks),
	}
}
