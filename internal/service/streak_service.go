package service

import (
	"context"
	"strconv"
	"time"

	"zenplan_backend/internal/engine"
	"zenplan_backend/internal/model"
	"zenplan_backend/pkg/kvstore"
	"zenplan_backend/pkg/monitoring"
)

// StreakService 持久化连击状态并在任务集合变化后做评估。
// streak/last_streak_date/last_celebrated 三个键与原集合同级存放在本地存储，
// streak 与 lastStreakDate 同时镜像到远程文档。
type StreakService struct {
	KV   *kvstore.Store
	Docs DocumentStore
}

func NewStreakService(kv *kvstore.Store, docs DocumentStore) *StreakService {
	return &StreakService{KV: kv, Docs: docs}
}

func loadStreakState(kv *kvstore.Store, uid string) engine.StreakState {
	var st engine.StreakState
	if v, ok := kv.GetItem(kvstore.UserKey(uid, kvstore.KeyStreak)); ok {
		if n, err := strconv.Atoi(v); err == nil {
			st.Streak = n
		}
	}
	st.LastStreakDate, _ = kv.GetItem(kvstore.UserKey(uid, kvstore.KeyLastStreakDate))
	st.LastCelebratedDay, _ = kv.GetItem(kvstore.UserKey(uid, kvstore.KeyLastCelebrated))
	return st
}

func (s *StreakService) saveState(uid string, st engine.StreakState) {
	s.KV.SetItem(kvstore.UserKey(uid, kvstore.KeyStreak), strconv.Itoa(st.Streak))
	s.KV.SetItem(kvstore.UserKey(uid, kvstore.KeyLastStreakDate), st.LastStreakDate)
	s.KV.SetItem(kvstore.UserKey(uid, kvstore.KeyLastCelebrated), st.LastCelebratedDay)
}

// State 返回经过断链检测的当前连击状态，检测导致的归零会落盘。
func (s *StreakService) State(uid string, now time.Time) engine.StreakState {
	st := loadStreakState(s.KV, uid)
	normalized := engine.NormalizeStreak(st, now)
	if normalized != st {
		s.saveState(uid, normalized)
	}
	return normalized
}

// Evaluate 在任务集合变化后评估连击，必要时落盘并镜像到远端。
func (s *StreakService) Evaluate(ctx context.Context, uid string, tasks []model.Task, now time.Time) (engine.StreakState, engine.StreakEvents) {
	st := loadStreakState(s.KV, uid)
	next, events := engine.EvaluateStreak(st, tasks, now)
	if next != st {
		s.saveState(uid, next)
	}
	if events.DayCompleted {
		monitoring.StreakCelebrations.Inc()
	}
	if events.StreakExtended {
		asyncMergeSet(s.Docs, uid, map[string]interface{}{
			"streak":         next.Streak,
			"lastStreakDate": next.LastStreakDate,
		})
	}
	return next, events
}
