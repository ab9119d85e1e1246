package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"zenplan_backend/internal/model"
	"zenplan_backend/internal/repository"
	"zenplan_backend/internal/util"
	"zenplan_backend/pkg/kvstore"

	"github.com/google/uuid"
)

// UserService 处理资料、主题与管理端的用户操作。
type UserService struct {
	UserRepo *repository.UserRepository
	Docs     DocumentStore
	KV       *kvstore.Store
	Storage  StorageProvider
}

func NewUserService(userRepo *repository.UserRepository, docs DocumentStore, kv *kvstore.Store, storage StorageProvider) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Docs:     docs,
		KV:       kv,
		Storage:  storage,
	}
}

func (s *UserService) GetProfile(uid string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 只允许改展示名，镜像写入远程文档。
func (s *UserService) UpdateProfile(uid, displayName string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	user.Name = displayName
	user.UpdatedAt = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	asyncMergeSet(s.Docs, uid, map[string]interface{}{"displayName": displayName})
	return user, nil
}

// Theme 读本地偏好，缺省为 light。
func (s *UserService) Theme(uid string) string {
	theme, ok := s.KV.GetItem(kvstore.UserKey(uid, kvstore.KeyTheme))
	if !ok || (theme != "light" && theme != "dark") {
		return "light"
	}
	return theme
}

// SetTheme 显式写入主题，只接受 light/dark。
func (s *UserService) SetTheme(uid, theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("未知主题: %s", theme)
	}
	if err := s.KV.SetItem(kvstore.UserKey(uid, kvstore.KeyTheme), theme); err != nil {
		return err
	}
	asyncMergeSet(s.Docs, uid, map[string]interface{}{"theme": theme})
	return nil
}

// UploadAvatar 上传头像并更新用户记录与远程文档。
func (s *UserService) UploadAvatar(ctx context.Context, uid string, file *multipart.FileHeader) (string, error) {
	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return "", util.ErrUserNotFound
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := fmt.Sprintf("avatars/%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	user.PhotoURL = url
	user.UpdatedAt = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}

	asyncMergeSet(s.Docs, uid, map[string]interface{}{"photoURL": url})
	return url, nil
}

// List 管理端分页列表。
func (s *UserService) List(page, limit int, search string) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit, search)
}

// ChangeRole 只有超级管理员能授予或回收 admin，super_admin 不可被改动。
func (s *UserService) ChangeRole(operator *model.User, targetID string, role model.UserRole) error {
	if operator.Role != model.RoleSuperAdmin {
		return util.ErrPermissionDenied
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return util.ErrPermissionDenied
	}

	target, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		return util.ErrUserNotFound
	}
	if target.Role == model.RoleSuperAdmin {
		return util.ErrPermissionDenied
	}

	if err := s.UserRepo.UpdateRole(targetID, role); err != nil {
		return err
	}
	asyncMergeSet(s.Docs, targetID, map[string]interface{}{"role": string(role)})
	return nil
}

// SetDisabled 禁用或恢复账号，管理员不能动管理员。
func (s *UserService) SetDisabled(operator *model.User, targetID string, disabled bool) error {
	if operator.ID == targetID {
		return util.ErrPermissionDenied
	}

	target, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		return util.ErrUserNotFound
	}
	if target.Role != model.RoleUser && operator.Role != model.RoleSuperAdmin {
		return util.ErrPermissionDenied
	}
	if target.Role == model.RoleSuperAdmin {
		return util.ErrPermissionDenied
	}

	return s.UserRepo.SetDisabled(targetID, disabled)
}
