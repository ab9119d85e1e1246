package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zenplan_backend/internal/model"
	"zenplan_backend/internal/util"
)

// UserDocumentRepository 远程文档存储适配器：每个用户一份扁平 JSON 文档。
// MergeSet 是字段级 upsert，partial 中没有的顶层字段保持原样。
// 任何驱动层失败都包装成 util.ErrRemoteUnavailable，调用方按非致命处理。
type UserDocumentRepository struct {
	DB *gorm.DB
}

func NewUserDocumentRepository(db *gorm.DB) *UserDocumentRepository {
	return &UserDocumentRepository{DB: db}
}

// Fetch 读取用户文档。文档不存在返回 util.ErrDocumentNotFound。
func (r *UserDocumentRepository) Fetch(ctx context.Context, uid string) (*model.UserDocument, error) {
	var rec model.UserDocumentRecord
	err := r.DB.WithContext(ctx).Where("uid = ?", uid).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching document for %s: %v", util.ErrRemoteUnavailable, uid, err)
	}

	var doc model.UserDocument
	if err := json.Unmarshal(rec.Doc, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding document for %s: %v", util.ErrRemoteUnavailable, uid, err)
	}
	return &doc, nil
}

// MergeSet 合并写入：只覆盖 partial 中出现的顶层字段，行不存在时创建。
func (r *UserDocumentRepository) MergeSet(ctx context.Context, uid string, partial map[string]json.RawMessage) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec model.UserDocumentRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("uid = ?", uid).First(&rec).Error

		fields := map[string]json.RawMessage{}
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec = model.UserDocumentRecord{UID: uid}
		case err != nil:
			return err
		default:
			if len(rec.Doc) > 0 {
				if err := json.Unmarshal(rec.Doc, &fields); err != nil {
					return fmt.Errorf("decoding stored document: %v", err)
				}
			}
		}

		for k, v := range partial {
			fields[k] = v
		}

		doc, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		rec.Doc = doc
		return tx.Save(&rec).Error
	})
	if err != nil {
		return fmt.Errorf("%w: merge-writing document for %s: %v", util.ErrRemoteUnavailable, uid, err)
	}
	return nil
}

// MergeSetFields MergeSet 的便捷形式，逐字段序列化。
func (r *UserDocumentRepository) MergeSetFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	partial := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding field %s: %w", k, err)
		}
		partial[k] = raw
	}
	return r.MergeSet(ctx, uid, partial)
}
