package shares

import "github.com/cdy-agency/api-sky-solutions/internal/pkg/apperr"

var (
	ErrBusinessNotFound     = apperr.NotFoundf("Business not found")
	ErrShareRequestNotFound = apperr.NotFoundf("Share request not found")
	ErrBusinessNotOpen      = apperr.Statef("Business is not open for investment")
	ErrRequestDecided       = apperr.Statef("Share request has already been decided")
	ErrDuplicatePending     = apperr.Conflictf("A pending share request for this business already exists")
	ErrInsufficientShares   = apperr.Conflictf("Requested shares exceed the remaining shares")
)
