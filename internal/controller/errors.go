package controller

import (
	"errors"
	"net/http"

	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 参数类错误统一返回 400
var badRequestErrors = []error{
	service.ErrTitleRequired,
	service.ErrInvalidFrequency,
	service.ErrInvalidStatus,
	service.ErrInvalidDate,
	service.ErrDateOutOfRange,
	service.ErrTooFewHabits,
	service.ErrInvalidHabitIndex,
	service.ErrInvalidTime,
	service.ErrTooEarly,
	service.ErrWindowExpired,
	service.ErrChallengeNotRunning,
}

// respondError 把业务错误映射为 HTTP 状态码，未知错误记录日志后返回 500
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHabitNotFound), errors.Is(err, service.ErrChallengeNotFound):
		util.NotFound(ctx, err.Error())
		return
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			util.BadRequest(ctx, err.Error())
			return
		}
	}
	util.LogInternalError(ctx, err)
}

func currentUser(ctx *gin.Context) (uint, bool) {
	userID, ok := util.CurrentUserID(ctx)
	if !ok {
		util.Error(ctx, http.StatusUnauthorized, "Unauthorized")
	}
	return userID, ok
}
