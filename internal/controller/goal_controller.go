package controller

import (
	"time"

	"zenplan_backend/internal/service"
	"zenplan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// swagger:model GoalRequest
type GoalRequest struct {
	Title string `json:"title" binding:"required"`
}

// GetGoals godoc
// @Summary 获取本周目标
// @Description 按创建时间落入当前周（周一起始）的目标，week=all 返回全部
// @Tags 周目标
// @Produce json
// @Security ApiKeyAuth
// @Param week query string false "all 返回全部目标"
// @Success 200 {object} util.Response{data=service.WeekView} "成功"
// @Router /api/goals [get]
func (c *GoalController) GetGoals(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if ctx.Query("week") == "all" {
		util.Success(ctx, c.GoalService.List(claims.UserID))
		return
	}
	util.Success(ctx, c.GoalService.Week(claims.UserID, time.Now()))
}

// CreateGoal godoc
// @Summary 创建周目标
// @Description 新目标追加到列表尾部，初始未完成
// @Tags 周目标
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body GoalRequest true "目标信息"
// @Success 201 {object} util.Response{data=model.WeeklyGoal} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	var req GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	goal, err := c.GoalService.Add(ctx.Request.Context(), claims.UserID, req.Title)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, goal)
}

// ToggleGoal godoc
// @Summary 切换目标完成态
// @Tags 周目标
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response{data=[]model.WeeklyGoal} "成功"
// @Router /api/goals/{id}/toggle [patch]
func (c *GoalController) ToggleGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	goals := c.GoalService.Toggle(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	util.Success(ctx, goals)
}

// DeleteGoal godoc
// @Summary 删除周目标
// @Tags 周目标
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response{data=[]model.WeeklyGoal} "成功"
// @Router /api/goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	goals := c.GoalService.Delete(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	util.Success(ctx, goals)
}
