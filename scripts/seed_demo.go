// 手动写入演示账号的脚本
//
// 创建一个 demo@zenplan.dev 账号并预置几条任务和周目标，
// 用于本地联调前端。重复执行时已存在的账号保持不变。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"context"
	"log"
	"time"

	"zenplan_backend/internal/config"
	"zenplan_backend/internal/engine"
	"zenplan_backend/internal/model"
	"zenplan_backend/internal/repository"
	"zenplan_backend/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	docRepo := repository.NewUserDocumentRepository(db)

	if existing, err := userRepo.FindByEmail("demo@zenplan.dev"); err == nil {
		log.Printf("演示账号已存在: %s", existing.ID)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}

	user := &model.User{
		Name:     "Demo",
		Email:    "demo@zenplan.dev",
		Password: string(hashed),
		Role:     model.RoleUser,
	}
	if err := userRepo.Create(user); err != nil {
		log.Fatalf("创建演示账号失败: %v", err)
	}

	now := time.Now()
	tasks := []model.Task{
		{ID: engine.NewID(), Title: "晨间拉伸 10 分钟", Status: model.TaskCompleted, Progress: 100, CreatedAt: now.UnixMilli()},
		{ID: engine.NewID(), Title: "读完一章书", Status: model.TaskPending, Progress: 40, CreatedAt: now.UnixMilli()},
		{ID: engine.NewID(), Title: "整理收件箱", Status: model.TaskPending, Progress: 0, CreatedAt: now.UnixMilli()},
	}
	goals := []model.WeeklyGoal{
		{ID: engine.NewID(), Title: "跑步三次", IsDone: false, CreatedAt: now.UnixMilli()},
		{ID: engine.NewID(), Title: "早睡五天", IsDone: true, CreatedAt: now.UnixMilli()},
	}

	ctx := context.Background()
	err = docRepo.MergeSetFields(ctx, user.ID, map[string]interface{}{
		"uid":         user.ID,
		"email":       user.Email,
		"displayName": user.Name,
		"role":        string(user.Role),
		"createdAt":   now.UnixMilli(),
		"tasks":       tasks,
		"weeklyGoals": goals,
	})
	if err != nil {
		log.Fatalf("写入演示数据失败: %v", err)
	}

	log.Printf("演示账号创建完成: %s (demo@zenplan.dev / demo1234)", user.ID)
}
