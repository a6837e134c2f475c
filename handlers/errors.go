// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/advent-giving/advent"
	"github.com/danielhkuo/advent-giving/allocation"
	"github.com/danielhkuo/advent-giving/auth"
	"github.com/danielhkuo/advent-giving/middleware"
	"github.com/danielhkuo/advent-giving/setup"
)

var (
	errCalendarNotFound = errors.New("calendar not found")
	errDayNotFound      = errors.New("day not found")
	errCalendarLocked   = errors.New("distribution cannot change after a day is revealed")
	errStaleDay         = errors.New("day changed during the update, try again")
)

var badRequestErrors = []error{
	setup.ErrNameRequired,
	setup.ErrInvalidDates,
	setup.ErrInvalidDisplayMode,
	setup.ErrNoCharities,
	setup.ErrCharityName,
	setup.ErrInvalidScope,
	setup.ErrMultipleGrandPrizes,
	setup.ErrGrandPrizeAmount,
	setup.ErrInvalidBudget,
	setup.ErrBudgetTooLow,
	setup.ErrTierDayCount,
	advent.ErrInvalidRange,
	allocation.ErrInvalidParams,
	allocation.ErrAmountMismatch,
}

var conflictErrors = []error{
	allocation.ErrDayPaid,
	allocation.ErrDayHidden,
	allocation.ErrDayRevealed,
	allocation.ErrRerollLimit,
	allocation.ErrGrandPrizeLocked,
	errCalendarLocked,
	errStaleDay,
}

var unprocessableErrors = []error{
	allocation.ErrInfeasibleRange,
	allocation.ErrNoEligibleCharity,
	allocation.ErrNoUnrevealedTarget,
	allocation.ErrConvergenceExhausted,
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errCalendarNotFound), errors.Is(err, errDayNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidOwnerKey):
		return http.StatusUnauthorized
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, unprocessableErrors):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError writes the mapped status. Unknown errors are logged and
// reported as a generic failure.
func respondError(w http.ResponseWriter, err error, failure string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(failure, "error", err)
		middleware.ErrorResponse(w, status, failure)
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}
