package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alexispparra/roots-sub000/internal/auth"
	"github.com/alexispparra/roots-sub000/internal/ledger"
	"github.com/alexispparra/roots-sub000/internal/response"
	"github.com/alexispparra/roots-sub000/internal/validation"
)

type CalendarHandler struct {
	ledger *ledger.Service
}

func NewCalendarHandler(ledgerService *ledger.Service) *CalendarHandler {
	return &CalendarHandler{ledger: ledgerService}
}

type AddEventRequest struct {
	Title string    `json:"title" binding:"required"`
	Date  time.Time `json:"date" binding:"required"`
}

// AddEvent handles POST /api/projects/:project_id/events
func (h *CalendarHandler) AddEvent(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var req AddEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	event, err := h.ledger.AddEvent(projectID, auth.EmailFromContext(c), req.Title, req.Date)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusCreated, "Event added", event)
}

// ToggleEvent handles POST /api/projects/:project_id/events/:event_id/toggle
func (h *CalendarHandler) ToggleEvent(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.BadRequestError(c, "event_id must be a valid UUID")
		return
	}

	if err := h.ledger.ToggleEvent(projectID, auth.EmailFromContext(c), eventID); err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Event toggled", nil)
}

// DeleteEvent handles DELETE /api/projects/:project_id/events/:event_id
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.BadRequestError(c, "event_id must be a valid UUID")
		return
	}

	if err := h.ledger.DeleteEvent(projectID, auth.EmailFromContext(c), eventID); err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Event deleted", nil)
}
