package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"zenplan_backend/internal/engine"
	"zenplan_backend/internal/model"
	"zenplan_backend/pkg/kvstore"
	"zenplan_backend/pkg/logger"
)

// MoodService 心情记录：只追加的集合加一个 5 分钟冷却。
// 冷却位用 Redis TTL 键表达；Redis 不可用时退回到扫描本地记录的时间戳，
// 提示规则不因此失效。
type MoodService struct {
	KV    *kvstore.Store
	Docs  DocumentStore
	Redis *redis.Client
}

func NewMoodService(kv *kvstore.Store, docs DocumentStore, rdb *redis.Client) *MoodService {
	return &MoodService{KV: kv, Docs: docs, Redis: rdb}
}

func (s *MoodService) List(uid string) []model.MoodLog {
	return kvstore.LoadCollection[model.MoodLog](s.KV, kvstore.UserKey(uid, kvstore.KeyMoods))
}

func cooldownKey(uid string) string {
	return "zenplan:mood_cooldown:" + uid
}

// OnCooldown 冷却窗口内是否已经记录过心情。
func (s *MoodService) OnCooldown(ctx context.Context, uid string, now time.Time) bool {
	if s.Redis != nil {
		n, err := s.Redis.Exists(ctx, cooldownKey(uid)).Result()
		if err == nil {
			return n > 0
		}
		logger.Log.Debug("redis cooldown check failed, falling back to local scan",
			zap.String("uid", uid), zap.Error(err))
	}
	return engine.HasRecentMood(s.List(uid), now, engine.MoodCooldown)
}

// Record 追加一条心情记录。冷却中返回 (零值, false)，不产生记录。
func (s *MoodService) Record(ctx context.Context, uid string, mood model.Mood, moodCtx model.MoodContext) (model.MoodLog, bool) {
	now := time.Now()
	if s.OnCooldown(ctx, uid, now) {
		return model.MoodLog{}, false
	}

	log := engine.NewMoodLog(mood, moodCtx, now)
	logs := append(s.List(uid), log)
	kvstore.SaveCollection(s.KV, kvstore.UserKey(uid, kvstore.KeyMoods), logs)
	asyncMergeSet(s.Docs, uid, map[string]interface{}{"moodLogs": logs})

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, cooldownKey(uid), "1", engine.MoodCooldown).Err(); err != nil {
			logger.Log.Debug("redis cooldown set failed", zap.String("uid", uid), zap.Error(err))
		}
	}
	return log, true
}
