package controller

import (
	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary 获取习惯分析汇总
// @Description 本周趋势、星期分布、最佳日、周环比、月度日历完成度、一致性得分与完成率排行
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份 YYYY-MM，默认本月"
// @Success 200 {object} util.Response{data=analytics.Summary}
// @Failure 400 {object} util.Response
// @Router /api/analytics [get]
func (c *AnalyticsController) GetSummary(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	summary, err := c.AnalyticsService.GetSummary(ctx.Request.Context(), userID, ctx.Query("month"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
