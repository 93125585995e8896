package controller

import (
	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HabitController struct {
	HabitService *service.HabitService
}

func NewHabitController(habitService *service.HabitService) *HabitController {
	return &HabitController{HabitService: habitService}
}

// @Summary 创建习惯
// @Description 创建新的习惯，frequency 默认 daily，startDate 默认今天
// @Tags 习惯
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param habit body service.CreateHabitRequest true "习惯信息"
// @Success 201 {object} util.Response{data=model.Habit}
// @Failure 400 {object} util.Response
// @Router /api/habits [post]
func (c *HabitController) CreateHabit(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.CreateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	habit, err := c.HabitService.CreateHabit(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, habit)
}

// @Summary 获取习惯列表
// @Tags 习惯
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Habit}
// @Router /api/habits [get]
func (c *HabitController) ListHabits(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	habits, err := c.HabitService.ListHabits(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, habits)
}

// @Summary 获取习惯详情
// @Tags 习惯
// @Produce json
// @Security BearerAuth
// @Param id path string true "习惯ID"
// @Success 200 {object} util.Response{data=model.Habit}
// @Failure 404 {object} util.Response
// @Router /api/habits/{id} [get]
func (c *HabitController) GetHabit(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	habit, err := c.HabitService.GetHabit(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, habit)
}

// @Summary 更新习惯
// @Description 只更新请求中出现的字段，连续天数等派生字段不可直接修改
// @Tags 习惯
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "习惯ID"
// @Param habit body service.UpdateHabitRequest true "更新内容"
// @Success 200 {object} util.Response{data=model.Habit}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/habits/{id} [patch]
func (c *HabitController) UpdateHabit(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.UpdateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	habit, err := c.HabitService.UpdateHabit(ctx.Request.Context(), userID, ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, habit)
}

// @Summary 删除习惯
// @Description 删除习惯及其全部打卡记录
// @Tags 习惯
// @Produce json
// @Security BearerAuth
// @Param id path string true "习惯ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/habits/{id} [delete]
func (c *HabitController) DeleteHabit(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.HabitService.DeleteHabit(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": ctx.Param("id")})
}

// @Summary 获取习惯打卡记录
// @Description 返回习惯本身与全部打卡记录，最新的在前
// @Tags 习惯
// @Produce json
// @Security BearerAuth
// @Param id path string true "习惯ID"
// @Success 200 {object} util.Response{data=service.HabitWithLogs}
// @Failure 404 {object} util.Response
// @Router /api/habits/{id}/logs [get]
func (c *HabitController) GetHabitLogs(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	result, err := c.HabitService.GetHabitLogs(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 习惯打卡
// @Description 记录某天 done 或 missed，同一天重复提交会覆盖之前的状态；date 默认今天
// @Tags 习惯
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "习惯ID"
// @Param log body service.LogHabitRequest true "打卡信息"
// @Success 200 {object} util.Response{data=service.LogHabitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/habits/{id}/log [post]
func (c *HabitController) LogHabit(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.LogHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.HabitService.LogHabit(ctx.Request.Context(), userID, ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 获取习惯统计
// @Tags 习惯
// @Produce json
// @Security BearerAuth
// @Param id path string true "习惯ID"
// @Success 200 {object} util.Response{data=service.HabitStatsResult}
// @Failure 404 {object} util.Response
// @Router /api/habits/{id}/stats [get]
func (c *HabitController) GetHabitStats(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	result, err := c.HabitService.GetHabitStats(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
