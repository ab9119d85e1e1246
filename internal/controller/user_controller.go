package controller

import (
	"errors"
	"strconv"

	"zenplan_backend/internal/model"
	"zenplan_backend/internal/service"
	"zenplan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// swagger:model ProfileRequest
type ProfileRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
}

// swagger:model ThemeRequest
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// swagger:model RoleRequest
type RoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// swagger:model DisableRequest
type DisableRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary 更新展示名
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ProfileRequest true "资料"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.UpdateProfile(claims.UserID, req.DisplayName)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// GetTheme godoc
// @Summary 获取主题偏好
// @Description 未设置时返回 light
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/profile/theme [get]
func (c *UserController) GetTheme(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	util.Success(ctx, gin.H{"theme": c.UserService.Theme(claims.UserID)})
}

// SetTheme godoc
// @Summary 设置主题偏好
// @Description 只接受 light 或 dark 的显式取值
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ThemeRequest true "主题"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/profile/theme [put]
func (c *UserController) SetTheme(ctx *gin.Context) {
	var req ThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.UserService.SetTheme(claims.UserID, req.Theme); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"theme": req.Theme})
}

// UploadAvatar godoc
// @Summary 上传头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param avatar formData file true "头像文件"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "缺少头像文件")
		return
	}

	claims := util.GetUserFromContext(ctx)
	url, err := c.UserService.UploadAvatar(ctx.Request.Context(), claims.UserID, file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"photoURL": url})
}

// ListUsers godoc
// @Summary 用户列表（管理端）
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Param search query string false "按名称或邮箱搜索"
// @Success 200 {object} util.PageResponse{data=[]model.User} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := c.UserService.List(page, limit, ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// ChangeRole godoc
// @Summary 调整用户角色（仅超级管理员）
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "用户ID"
// @Param body body RoleRequest true "目标角色"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id}/role [put]
func (c *UserController) ChangeRole(ctx *gin.Context) {
	var req RoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	operator, err := c.currentUser(ctx)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	err = c.UserService.ChangeRole(operator, ctx.Param("id"), model.UserRole(req.Role))
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx)
	case err != nil:
		util.LogInternalError(ctx, err)
	default:
		util.Success(ctx, nil)
	}
}

// SetDisabled godoc
// @Summary 禁用或恢复账号
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "用户ID"
// @Param body body DisableRequest true "禁用标志"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id}/disable [put]
func (c *UserController) SetDisabled(ctx *gin.Context) {
	var req DisableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	operator, err := c.currentUser(ctx)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	err = c.UserService.SetDisabled(operator, ctx.Param("id"), *req.Disabled)
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx)
	case err != nil:
		util.LogInternalError(ctx, err)
	default:
		util.Success(ctx, nil)
	}
}

func (c *UserController) currentUser(ctx *gin.Context) (*model.User, error) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return nil, util.ErrUserNotFound
	}
	return c.UserService.GetProfile(claims.UserID)
}
