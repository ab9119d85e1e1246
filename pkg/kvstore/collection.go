package kvstore

import (
	"encoding/json"

	"go.uber.org/zap"

	"zenplan_backend/pkg/logger"
)

// LoadCollection 读取并反序列化一份实体集合。键不存在或内容损坏都返回空集合，
// 不向调用方抛错。
func LoadCollection[T any](s *Store, key string) []T {
	raw, ok := s.GetItem(key)
	if !ok {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Log.Warn("discarding malformed local collection",
			zap.String("key", key), zap.Error(err))
		return []T{}
	}
	return items
}

// SaveCollection 序列化并同步写入集合。写失败只记日志，本地写入对调用方
// 永远不失败。
func SaveCollection[T any](s *Store, key string, items []T) {
	data, err := json.Marshal(items)
	if err != nil {
		logger.Log.Error("marshaling local collection", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.SetItem(key, string(data)); err != nil {
		logger.Log.Error("writing local collection", zap.String("key", key), zap.Error(err))
	}
}
