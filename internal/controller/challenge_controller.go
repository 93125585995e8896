package controller

import (
	"strconv"

	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
}

func NewChallengeController(challengeService *service.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

// @Summary 开始21天挑战
// @Description 至少 6 个习惯，每个习惯带每日可打卡时间窗（HH:MM 或 hh:MM AM/PM）；之前进行中的挑战会结束
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param challenge body service.ChallengeHabitsRequest true "挑战习惯"
// @Success 201 {object} util.Response{data=model.Challenge}
// @Failure 400 {object} util.Response
// @Router /api/challenge/start [post]
func (c *ChallengeController) Start(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.ChallengeHabitsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.Start(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, challenge)
}

// @Summary 获取当前挑战
// @Description 返回进行中的挑战及 21 天 × 习惯的状态表，没有挑战时 active 为 false
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.CurrentChallenge}
// @Router /api/challenge/current [get]
func (c *ChallengeController) Current(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	current, err := c.ChallengeService.Current(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, current)
}

// @Summary 更新挑战习惯
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "挑战ID"
// @Param challenge body service.ChallengeHabitsRequest true "挑战习惯"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/challenge/update/{id} [put]
func (c *ChallengeController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.ChallengeHabitsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.Update(ctx.Request.Context(), userID, ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, challenge)
}

// @Summary 挑战习惯打卡
// @Description 只能在今天该习惯的时间窗内打卡
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param id path string true "挑战ID"
// @Param index path int true "习惯序号"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/challenge/done/{id}/{index} [post]
func (c *ChallengeController) MarkDone(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "invalid habit index")
		return
	}

	if err := c.ChallengeService.MarkDone(ctx.Request.Context(), userID, ctx.Param("id"), index); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"index": index, "status": "done"})
}

// @Summary 获取挑战热力图
// @Description 21 天完成热力图与整体统计，没有进行中的挑战时热力图为空
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ChallengeHeatmap}
// @Router /api/challenge/heatmap [get]
func (c *ChallengeController) Heatmap(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	heatmap, err := c.ChallengeService.Heatmap(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, heatmap)
}
