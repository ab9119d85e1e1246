package controller

import (
	"zenplan_backend/internal/service"
	"zenplan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SyncController struct {
	SyncService *service.SyncService
	AuthService *service.AuthService
}

func NewSyncController(syncService *service.SyncService, authService *service.AuthService) *SyncController {
	return &SyncController{SyncService: syncService, AuthService: authService}
}

// Sync godoc
// @Summary 触发状态归并
// @Description 拉取云端文档与本地状态按 id 归并，冲突保留较新版本，归并出新条目时回写云端。云端不可用时返回本地状态。
// @Tags 同步
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StateSnapshot} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/sync [post]
func (c *SyncController) Sync(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	snap := c.SyncService.OnIdentityChange(ctx.Request.Context(), &service.Identity{
		UID:      user.ID,
		Email:    user.Email,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
	})
	util.Success(ctx, snap)
}
