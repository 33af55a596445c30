package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/ledger"
	"github.com/alexispparra/roots-sub000/internal/response"
)

// respondLedgerError maps service errors onto the API's error statuses:
// unknown or invisible resources are 404, permission denials 403,
// conflicting writes 409 and everything else a 400.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, project.ErrParticipantNotFound),
		errors.Is(err, project.ErrCategoryNotFound),
		errors.Is(err, project.ErrTransactionNotFound),
		errors.Is(err, project.ErrEventNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, ledger.ErrForbidden):
		response.ForbiddenError(c, err.Error())
	case errors.Is(err, project.ErrParticipantExists),
		errors.Is(err, project.ErrLastAdmin):
		response.ConflictError(c, err.Error())
	default:
		response.BadRequestError(c, err.Error())
	}
}
