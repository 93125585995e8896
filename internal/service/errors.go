package service

import (
	"errors"

	"habit_tracker_backend/internal/analytics"
)

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidFrequency = errors.New("frequency must be daily or weekly")
	ErrInvalidStatus    = errors.New("status must be done or missed")
	ErrDateOutOfRange   = errors.New("date is outside the allowed range")
	ErrInvalidDate      = analytics.ErrInvalidDate

	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrTooFewHabits        = errors.New("please enter at least 6 habits")
	ErrInvalidHabitIndex   = errors.New("invalid habit index")
	ErrInvalidTime         = analytics.ErrInvalidClock
	ErrTooEarly            = analytics.ErrTooEarly
	ErrWindowExpired       = analytics.ErrWindowExpired
	ErrChallengeNotRunning = errors.New("challenge is not running today")
)
