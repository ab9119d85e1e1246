package controller

import (
	"time"

	"zenplan_backend/internal/service"
	"zenplan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService  *service.StatsService
	StreakService *service.StreakService
}

func NewStatsController(statsService *service.StatsService, streakService *service.StreakService) *StatsController {
	return &StatsController{StatsService: statsService, StreakService: streakService}
}

// GetStats godoc
// @Summary 获取完成度统计
// @Description 完成度按进度加权：每个任务贡献 progress/100
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=engine.Stats} "成功"
// @Router /api/stats [get]
func (c *StatsController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	util.Success(ctx, c.StatsService.Overview(claims.UserID))
}

// GetBoard godoc
// @Summary 获取任务看板
// @Description 按状态分成待办、已完成、未完成三列
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.BoardView} "成功"
// @Router /api/stats/board [get]
func (c *StatsController) GetBoard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	util.Success(ctx, c.StatsService.Board(claims.UserID))
}

// GetDailyStats godoc
// @Summary 获取单日统计
// @Description 默认今天，date 参数接受 YYYY-MM-DD
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param date query string false "日期（YYYY-MM-DD）"
// @Success 200 {object} util.Response{data=service.DailyView} "成功"
// @Failure 400 {object} util.Response "日期格式错误"
// @Router /api/stats/daily [get]
func (c *StatsController) GetDailyStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	day := time.Now()
	if v := ctx.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			util.BadRequest(ctx, "日期格式应为 YYYY-MM-DD")
			return
		}
		day = parsed
	}

	util.Success(ctx, c.StatsService.Daily(claims.UserID, day))
}

// GetStreak godoc
// @Summary 获取连击状态
// @Description 最近打卡日既不是今天也不是昨天时连击归零
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=engine.StreakState} "成功"
// @Router /api/stats/streak [get]
func (c *StatsController) GetStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	util.Success(ctx, c.StreakService.State(claims.UserID, time.Now()))
}
