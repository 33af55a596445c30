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

type ProjectHandler struct {
	ledger *ledger.Service
}

func NewProjectHandler(ledgerService *ledger.Service) *ProjectHandler {
	return &ProjectHandler{ledger: ledgerService}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.ledger.ListProjects(auth.EmailFromContext(c))
	if err != nil {
		response.InternalServerError(c, "failed to list projects")
		return
	}
	response.SuccessResponse(c, http.StatusOK, "", projects)
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}
	if err := (validation.ProjectValidation{}).ValidateProjectName(req.Name); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	p, err := h.ledger.CreateProject(auth.EmailFromContext(c), auth.NameFromContext(c), req.Name, req.Description, req.Address)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusCreated, "Project created", p)
}

// GetProject handles GET /api/projects/:project_id
func (h *ProjectHandler) GetProject(c *gin.Context) {
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
	response.SuccessResponse(c, http.StatusOK, "", p)
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Status      *string `json:"status"`
}

// UpdateProject handles PATCH /api/projects/:project_id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	input := ledger.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
	}
	if req.Status != nil {
		status, ok := project.StatusFromString(*req.Status)
		if !ok {
			response.BadRequestError(c, "invalid status: "+*req.Status)
			return
		}
		input.Status = &status
	}

	p, err := h.ledger.UpdateProject(projectID, auth.EmailFromContext(c), input)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Project updated", p)
}

// DeleteProject handles DELETE /api/projects/:project_id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if err := h.ledger.DeleteProject(projectID, auth.EmailFromContext(c)); err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Project deleted", nil)
}

// GetSummary handles GET /api/projects/:project_id/summary
func (h *ProjectHandler) GetSummary(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	summary, err := h.ledger.Summary(projectID, auth.EmailFromContext(c))
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "", summary)
}

// GetRole handles GET /api/projects/:project_id/role
func (h *ProjectHandler) GetRole(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	role, err := h.ledger.UserRole(projectID, auth.EmailFromContext(c))
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "", gin.H{"role": role})
}
