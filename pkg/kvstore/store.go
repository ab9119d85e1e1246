// Package kvstore 提供一个目录承载的同步键值存储，扮演客户端本地存储的角色：
// 写入同步落盘、跨进程重启持久，读取坏数据时软失败。
package kvstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// 本地存储使用的固定键名。按用户维度取值时用 UserKey 加前缀。
const (
	KeyTasks          = "tasks"
	KeyGoals          = "goals"
	KeyMoods          = "moods"
	KeyStreak         = "streak"
	KeyLastStreakDate = "last_streak_date"
	KeyLastCelebrated = "last_celebrated"
	KeyTheme          = "theme"
)

// Store 键值存储，一个键对应数据目录下的一个文件。
type Store struct {
	root string
}

// New 创建根目录为 root 的存储，目录不存在则建立。
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{root: root}, nil
}

// UserKey 把固定键名挂到用户命名空间下。
func UserKey(uid, key string) string {
	return uid + "/" + key
}

// GetItem 读取键值。键不存在时返回 ("", false)。
func (s *Store) GetItem(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// SetItem 同步写入键值，覆盖旧内容。先写临时文件再改名，避免半写状态。
func (s *Store) SetItem(key, value string) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("committing %s: %w", key, err)
	}
	return nil
}

// RemoveItem 删除键，键不存在时为幂等空操作。
func (s *Store) RemoveItem(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) path(key string) string {
	cleaned := strings.ReplaceAll(key, "..", "")
	return filepath.Join(s.root, filepath.FromSlash(cleaned))
}
