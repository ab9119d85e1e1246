package controller

import (
	"zenplan_backend/internal/model"
	"zenplan_backend/internal/service"
	"zenplan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MoodController struct {
	MoodService *service.MoodService
}

func NewMoodController(moodService *service.MoodService) *MoodController {
	return &MoodController{MoodService: moodService}
}

// swagger:model MoodRequest
type MoodRequest struct {
	Mood    string `json:"mood" binding:"required,oneof=happy neutral tired"`
	Context string `json:"context" binding:"required,oneof=completion failure"`
}

// GetMoods godoc
// @Summary 获取心情记录
// @Description 只追加的心情流水，按记录时间排列
// @Tags 心情
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.MoodLog} "成功"
// @Router /api/moods [get]
func (c *MoodController) GetMoods(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	util.Success(ctx, c.MoodService.List(claims.UserID))
}

// RecordMood godoc
// @Summary 记录心情
// @Description 冷却窗口（5分钟）内的重复记录被拒绝并返回 429
// @Tags 心情
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body MoodRequest true "心情与场景"
// @Success 201 {object} util.Response{data=model.MoodLog} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 429 {object} util.Response "冷却中"
// @Router /api/moods [post]
func (c *MoodController) RecordMood(ctx *gin.Context) {
	var req MoodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	log, ok := c.MoodService.Record(ctx.Request.Context(), claims.UserID, model.Mood(req.Mood), model.MoodContext(req.Context))
	if !ok {
		util.Error(ctx, 429, "心情记录冷却中，请稍后再试")
		return
	}

	util.Created(ctx, log)
}
