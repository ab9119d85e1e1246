package controller

import (
	"strconv"

	"zenplan_backend/internal/service"
	"zenplan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MotivationController struct {
	MotivationService *service.MotivationService
}

func NewMotivationController(motivationService *service.MotivationService) *MotivationController {
	return &MotivationController{MotivationService: motivationService}
}

// @Summary 获取当前显示的激励短句
// @Description 每12小时从启用列表中轮换一条
// @Tags 激励短句
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/motivation [get]
func (c *MotivationController) GetCurrentMotivation(ctx *gin.Context) {
	motivation, err := c.MotivationService.GetCurrentMotivation()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	util.Success(ctx, gin.H{"content": motivation})
}

// @Summary 获取所有激励短句
// @Description 获取系统中所有的激励短句（管理员权限）
// @Tags 激励短句
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/motivations [get]
func (c *MotivationController) GetAllMotivations(ctx *gin.Context) {
	motivations, err := c.MotivationService.GetAllMotivations()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	util.Success(ctx, motivations)
}

// @Summary 创建新的激励短句
// @Description 创建新的激励短句（管理员权限）
// @Tags 激励短句
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param content body string true "激励短句内容"
// @Success 200 {object} util.Response
// @Router /api/admin/motivations [post]
func (c *MotivationController) CreateMotivation(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required,min=4,max=200"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.MotivationService.CreateMotivation(req.Content); err != nil {
		util.InternalServerError(ctx)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 更新激励短句
// @Description 更新内容或启停状态（管理员权限）
// @Tags 激励短句
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "短句ID"
// @Success 200 {object} util.Response
// @Router /api/admin/motivations/{id} [put]
func (c *MotivationController) UpdateMotivation(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的短句ID")
		return
	}

	var req struct {
		Content   string `json:"content" binding:"required,min=4,max=200"`
		IsEnabled *bool  `json:"isEnabled" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.MotivationService.UpdateMotivation(uint(id), req.Content, *req.IsEnabled); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, nil)
}

// @Summary 删除激励短句
// @Description 当前使用中且无其他启用短句时不允许删除（管理员权限）
// @Tags 激励短句
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "短句ID"
// @Success 200 {object} util.Response
// @Router /api/admin/motivations/{id} [delete]
func (c *MotivationController) DeleteMotivation(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的短句ID")
		return
	}

	if err := c.MotivationService.DeleteMotivation(uint(id)); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, nil)
}
