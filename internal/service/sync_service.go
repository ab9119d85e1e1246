package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"zenplan_backend/internal/engine"
	"zenplan_backend/internal/model"
	"zenplan_backend/internal/util"
	"zenplan_backend/pkg/kvstore"
	"zenplan_backend/pkg/logger"
	"zenplan_backend/pkg/monitoring"
)

// DocumentStore 远程文档存储的抽象，repository.UserDocumentRepository 是生产实现。
type DocumentStore interface {
	Fetch(ctx context.Context, uid string) (*model.UserDocument, error)
	MergeSet(ctx context.Context, uid string, partial map[string]json.RawMessage) error
	MergeSetFields(ctx context.Context, uid string, fields map[string]interface{}) error
}

type SyncPhase string

const (
	PhaseAnonymous SyncPhase = "anonymous"
	PhaseLoading   SyncPhase = "loading"
	PhaseReady     SyncPhase = "ready"
)

// Identity 身份提供方交给我们的当前身份，nil 表示匿名。
type Identity struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"displayName"`
	PhotoURL string `json:"photoURL"`
}

// StateSnapshot 一次状态跃迁后的完整应用状态，按订阅发布，不走全局可变量。
type StateSnapshot struct {
	Phase    SyncPhase          `json:"phase"`
	Identity *Identity          `json:"identity,omitempty"`
	Tasks    []model.Task       `json:"tasks"`
	Goals    []model.WeeklyGoal `json:"weeklyGoals"`
	Moods    []model.MoodLog    `json:"moodLogs"`
	Streak   engine.StreakState `json:"streak"`
	Theme    string             `json:"theme"`
	Stats    engine.Stats       `json:"stats"`
}

// SyncService 会话开始时的本地/远程状态归并管线：
// fetchRemote → merge → (必要时) writeBack → publish。
// 每个身份变化恰好走一遍；远程任何一步失败都不阻断，本地状态就是权威。
type SyncService struct {
	KV   *kvstore.Store
	Docs DocumentStore

	mu          sync.Mutex
	subscribers []func(StateSnapshot)
}

func NewSyncService(kv *kvstore.Store, docs DocumentStore) *SyncService {
	return &SyncService{KV: kv, Docs: docs}
}

// Subscribe 注册快照订阅者，每次发布都会收到完整快照。
func (s *SyncService) Subscribe(fn func(StateSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *SyncService) publish(snap StateSnapshot) {
	for _, fn := range s.subscribers {
		fn(snap)
	}
}

// OnIdentityChange 处理一次身份变化并返回发布出去的最终快照。
func (s *SyncService) OnIdentityChange(ctx context.Context, identity *Identity) StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if identity == nil {
		snap := StateSnapshot{
			Phase: PhaseAnonymous,
			Tasks: []model.Task{},
			Goals: []model.WeeklyGoal{},
			Moods: []model.MoodLog{},
		}
		s.publish(snap)
		return snap
	}

	s.publish(StateSnapshot{Phase: PhaseLoading, Identity: identity})

	local := s.loadLocal(identity.UID)

	doc, err := s.Docs.Fetch(ctx, identity.UID)
	switch {
	case errors.Is(err, util.ErrDocumentNotFound):
		// 首次登录：跳过归并，整份本地状态上云
		s.initializeRemote(ctx, identity.UID, local)
	case err != nil:
		logger.Log.Warn("remote fetch failed, keeping local state",
			zap.String("uid", identity.UID), zap.Error(err))
		monitoring.RemoteFailures.WithLabelValues("fetch").Inc()
	default:
		local = s.reconcile(ctx, identity.UID, local, doc)
	}

	snap := local
	snap.Phase = PhaseReady
	snap.Identity = identity
	snap.Stats = engine.ComputeStats(snap.Tasks)
	s.publish(snap)
	return snap
}

// loadLocal 从本地键值存储装配该用户的当前状态。
func (s *SyncService) loadLocal(uid string) StateSnapshot {
	snap := StateSnapshot{
		Tasks: kvstore.LoadCollection[model.Task](s.KV, kvstore.UserKey(uid, kvstore.KeyTasks)),
		Goals: kvstore.LoadCollection[model.WeeklyGoal](s.KV, kvstore.UserKey(uid, kvstore.KeyGoals)),
		Moods: kvstore.LoadCollection[model.MoodLog](s.KV, kvstore.UserKey(uid, kvstore.KeyMoods)),
	}
	snap.Streak = loadStreakState(s.KV, uid)
	snap.Theme, _ = s.KV.GetItem(kvstore.UserKey(uid, kvstore.KeyTheme))
	return snap
}

// reconcile 归并本地与远程集合，必要时回写远端，返回归并后的状态。
func (s *SyncService) reconcile(ctx context.Context, uid string, local StateSnapshot, doc *model.UserDocument) StateSnapshot {
	mergedTasks, taskReport := engine.MergeByID[model.Task](doc.Tasks, local.Tasks)
	mergedGoals, goalReport := engine.MergeByID[model.WeeklyGoal](doc.WeeklyGoals, local.Goals)
	// 心情记录只追加，归并即按 id 取并集
	mergedMoods, moodReport := engine.MergeByID[model.MoodLog](doc.MoodLogs, local.Moods)

	local.Tasks = mergedTasks
	local.Goals = mergedGoals
	local.Moods = mergedMoods
	if local.Theme == "" {
		local.Theme = doc.Theme
	}

	kvstore.SaveCollection(s.KV, kvstore.UserKey(uid, kvstore.KeyTasks), mergedTasks)
	kvstore.SaveCollection(s.KV, kvstore.UserKey(uid, kvstore.KeyGoals), mergedGoals)
	kvstore.SaveCollection(s.KV, kvstore.UserKey(uid, kvstore.KeyMoods), mergedMoods)

	// 归并让集合超出远程规模时才需要回写
	writeBack := map[string]interface{}{}
	if taskReport.WriteBackNeeded() {
		writeBack["tasks"] = mergedTasks
	}
	if goalReport.WriteBackNeeded() {
		writeBack["weeklyGoals"] = mergedGoals
	}
	if moodReport.WriteBackNeeded() {
		writeBack["moodLogs"] = mergedMoods
	}
	if len(writeBack) > 0 {
		if err := s.Docs.MergeSetFields(ctx, uid, writeBack); err != nil {
			logger.Log.Warn("merge write-back failed",
				zap.String("uid", uid), zap.Error(err))
			monitoring.RemoteFailures.WithLabelValues("write_back").Inc()
		}
	}
	return local
}

// initializeRemote 首次登录时用本地状态初始化云端文档。
func (s *SyncService) initializeRemote(ctx context.Context, uid string, local StateSnapshot) {
	fields := map[string]interface{}{
		"tasks":          local.Tasks,
		"weeklyGoals":    local.Goals,
		"moodLogs":       local.Moods,
		"streak":         local.Streak.Streak,
		"lastStreakDate": local.Streak.LastStreakDate,
	}
	if local.Theme != "" {
		fields["theme"] = local.Theme
	}
	if err := s.Docs.MergeSetFields(ctx, uid, fields); err != nil {
		logger.Log.Warn("initial upload failed",
			zap.String("uid", uid), zap.Error(err))
		monitoring.RemoteFailures.WithLabelValues("initial_upload").Inc()
	}
}

// asyncMergeSet 变更路径上的远程镜像写：即发即弃，失败只记日志和计数。
func asyncMergeSet(docs DocumentStore, uid string, fields map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := docs.MergeSetFields(ctx, uid, fields); err != nil {
			logger.Log.Warn("remote mirror write failed",
				zap.String("uid", uid), zap.Error(err))
			monitoring.RemoteFailures.WithLabelValues("mirror_write").Inc()
		}
	}()
}
