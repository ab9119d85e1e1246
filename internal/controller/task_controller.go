package controller

import (
	"zenplan_backend/internal/model"
	"zenplan_backend/internal/service"
	"zenplan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// swagger:model TaskRequest
type TaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// swagger:model TaskStatusRequest
type TaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed not-completed"`
}

// swagger:model TaskProgressRequest
type TaskProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// GetTasks godoc
// @Summary 获取任务列表
// @Description 返回当前用户的全部任务，新任务在前
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Task} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/tasks [get]
func (c *TaskController) GetTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	util.Success(ctx, c.TaskService.List(claims.UserID))
}

// CreateTask godoc
// @Summary 创建任务
// @Description 新任务以 pending 状态、0 进度插入列表头部
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TaskRequest true "任务信息"
// @Success 201 {object} util.Response{data=model.Task} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	var req TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	task, err := c.TaskService.Add(ctx.Request.Context(), claims.UserID, req.Title, req.Description)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, task)
}

// UpdateTask godoc
// @Summary 编辑任务
// @Description 更新任务标题与描述
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "任务ID"
// @Param body body TaskRequest true "任务信息"
// @Success 200 {object} util.Response{data=[]model.Task} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	var req TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	tasks, err := c.TaskService.Edit(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Title, req.Description)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, tasks)
}

// SetTaskStatus godoc
// @Summary 切换任务状态
// @Description 状态与进度联动：completed 进度置满，从满进度退回 pending 时进度降为 50
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "任务ID"
// @Param body body TaskStatusRequest true "目标状态"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/tasks/{id}/status [patch]
func (c *TaskController) SetTaskStatus(ctx *gin.Context) {
	var req TaskStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	tasks, events := c.TaskService.SetStatus(ctx.Request.Context(), claims.UserID, ctx.Param("id"), model.TaskStatus(req.Status))
	util.Success(ctx, gin.H{"tasks": tasks, "events": events})
}

// SetTaskProgress godoc
// @Summary 调整任务进度
// @Description 进度夹取到 0-100，到 100 自动转为 completed
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "任务ID"
// @Param body body TaskProgressRequest true "目标进度"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/tasks/{id}/progress [patch]
func (c *TaskController) SetTaskProgress(ctx *gin.Context) {
	var req TaskProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	tasks, events := c.TaskService.SetProgress(ctx.Request.Context(), claims.UserID, ctx.Param("id"), *req.Progress)
	util.Success(ctx, gin.H{"tasks": tasks, "events": events})
}

// DeleteTask godoc
// @Summary 删除任务
// @Description 删除指定任务，重复删除同一 id 不报错
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "任务ID"
// @Success 200 {object} util.Response{data=[]model.Task} "成功"
// @Router /api/tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	tasks := c.TaskService.Delete(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	util.Success(ctx, tasks)
}
