package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexispparra/roots-sub000/internal/auth"
	"github.com/alexispparra/roots-sub000/internal/importer"
	"github.com/alexispparra/roots-sub000/internal/response"
	"github.com/alexispparra/roots-sub000/internal/validation"
)

type ImportHandler struct {
	importer *importer.Importer
}

func NewImportHandler(imp *importer.Importer) *ImportHandler {
	return &ImportHandler{importer: imp}
}

type ImportRequest struct {
	SheetID string `json:"sheet_id" binding:"required"`
}

// ImportSpreadsheet handles POST /api/projects/:project_id/import.
// This replaces the project's categories and transactions with the sheet's
// contents; it is not a merge.
func (h *ImportHandler) ImportSpreadsheet(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	nCategories, nTransactions, err := h.importer.Run(c.Request.Context(), projectID, auth.EmailFromContext(c), req.SheetID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Spreadsheet imported", gin.H{
		"categories":   nCategories,
		"transactions": nTransactions,
	})
}
