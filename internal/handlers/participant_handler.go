package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexispparra/roots-sub000/internal/auth"
	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/ledger"
	"github.com/alexispparra/roots-sub000/internal/response"
	"github.com/alexispparra/roots-sub000/internal/validation"
)

type ParticipantHandler struct {
	ledger *ledger.Service
}

func NewParticipantHandler(ledgerService *ledger.Service) *ParticipantHandler {
	return &ParticipantHandler{ledger: ledgerService}
}

type AddParticipantRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
	Role  string `json:"role" binding:"required"`
}

// AddParticipant handles POST /api/projects/:project_id/participants
func (h *ParticipantHandler) AddParticipant(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var req AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	role, ok := project.RoleFromString(req.Role)
	if !ok {
		response.BadRequestError(c, "invalid role: "+req.Role)
		return
	}

	if err := h.ledger.AddParticipant(projectID, auth.EmailFromContext(c), req.Email, req.Name, role); err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusCreated, "Participant added", nil)
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeParticipantRole handles PUT /api/projects/:project_id/participants/:email/role
func (h *ParticipantHandler) ChangeParticipantRole(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	role, ok := project.RoleFromString(req.Role)
	if !ok {
		response.BadRequestError(c, "invalid role: "+req.Role)
		return
	}

	if err := h.ledger.ChangeParticipantRole(projectID, auth.EmailFromContext(c), c.Param("email"), role); err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Role updated", nil)
}

// RemoveParticipant handles DELETE /api/projects/:project_id/participants/:email
func (h *ParticipantHandler) RemoveParticipant(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if err := h.ledger.RemoveParticipant(projectID, auth.EmailFromContext(c), c.Param("email")); err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Participant removed", nil)
}
