package engine

import "github.com/google/uuid"

// NewID 生成集合内实体的唯一 id。
func NewID() string {
	return uuid.New().String()
}
