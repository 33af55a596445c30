package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/alexispparra/roots-sub000/internal/ai"
	"github.com/alexispparra/roots-sub000/internal/auth"
	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/ledger"
	"github.com/alexispparra/roots-sub000/internal/response"
	"github.com/alexispparra/roots-sub000/internal/validation"
)

type CategoryHandler struct {
	ledger *ledger.Service
	// ai is nil when no API key is configured
	ai *ai.Client
}

func NewCategoryHandler(ledgerService *ledger.Service, aiClient *ai.Client) *CategoryHandler {
	return &CategoryHandler{ledger: ledgerService, ai: aiClient}
}

type CategoryRequest struct {
	Name         string          `json:"name" binding:"required"`
	Budget       decimal.Decimal `json:"budget"`
	Icon         string          `json:"icon"`
	Progress     *int            `json:"progress"`
	StartDate    *time.Time      `json:"start_date"`
	EndDate      *time.Time      `json:"end_date"`
	Dependencies []string        `json:"dependencies"`
}

// AddCategory handles POST /api/projects/:project_id/categories
func (h *CategoryHandler) AddCategory(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}
	if err := (validation.ProjectValidation{}).ValidateCategoryName(req.Name); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	category, err := h.ledger.AddCategory(projectID, auth.EmailFromContext(c), ledger.AddCategoryInput{
		Name:         req.Name,
		Budget:       req.Budget,
		Icon:         req.Icon,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Dependencies: req.Dependencies,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusCreated, "Category added", category)
}

// UpdateCategory handles PUT /api/projects/:project_id/categories/:name
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	oldName := c.Param("name")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}
	if err := (validation.ProjectValidation{}).ValidateCategoryName(req.Name); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	// Omitted progress and dependencies keep their stored values.
	updated := project.Category{
		Name:         req.Name,
		Budget:       req.Budget,
		Icon:         req.Icon,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Dependencies: req.Dependencies,
	}

	if err := h.ledger.UpdateCategory(projectID, auth.EmailFromContext(c), oldName, updated, req.Progress); err != nil {
		respondLedgerError(c, err)
		return
	}
	if req.Progress != nil {
		updated.Progress = *req.Progress
	}
	response.SuccessResponse(c, http.StatusOK, "Category updated", updated)
}

// DeleteCategory handles DELETE /api/projects/:project_id/categories/:name
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if err := h.ledger.DeleteCategory(projectID, auth.EmailFromContext(c), c.Param("name")); err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Category deleted", nil)
}

// PrioritizeCategories handles POST /api/projects/:project_id/categories/prioritize
func (h *CategoryHandler) PrioritizeCategories(c *gin.Context) {
	if h.ai == nil {
		response.ServiceUnavailableError(c, "task prioritization is not configured")
		return
	}

	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	p, err := h.ledger.GetProject(projectID, auth.EmailFromContext(c))
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	tasks, err := h.ai.PrioritizeCategories(c.Request.Context(), p)
	if err != nil {
		response.InternalServerError(c, "failed to prioritize categories: "+err.Error())
		return
	}
	response.SuccessResponse(c, http.StatusOK, "", tasks)
}
