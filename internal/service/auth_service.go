package service

import (
	"context"
	"errors"
	"time"

	"zenplan_backend/internal/config"
	"zenplan_backend/internal/model"
	"zenplan_backend/internal/repository"
	"zenplan_backend/internal/util"
	"zenplan_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Docs     DocumentStore
	Sync     *SyncService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, docs DocumentStore, sync *SyncService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Docs:     docs,
		Sync:     sync,
		Cfg:      cfg,
	}
}

// Register 创建账号并初始化用户文档。bootstrap_admin_email 命中时直接授予超级管理员。
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := model.RoleUser
	if s.Cfg.App.BootstrapAdminEmail != "" && email == s.Cfg.App.BootstrapAdminEmail {
		role = model.RoleSuperAdmin
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	// 注册即写入文档骨架，首次同步时远端已有记录。
	if err := s.Docs.MergeSetFields(ctx, user.ID, map[string]interface{}{
		"uid":         user.ID,
		"email":       user.Email,
		"displayName": user.Name,
		"role":        string(user.Role),
		"createdAt":   time.Now().UnixMilli(),
	}); err != nil {
		logger.Log.Warn("初始化用户文档失败", zap.String("uid", user.ID), zap.Error(err))
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if user.Disabled {
		return "", nil, util.ErrPermissionDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("更新最近登录时间失败", zap.String("uid", user.ID), zap.Error(err))
	}

	// 登录视为身份切换，触发本地与远端的合并流水线。
	s.Sync.OnIdentityChange(ctx, &Identity{
		UID:      user.ID,
		Email:    user.Email,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
	})

	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
