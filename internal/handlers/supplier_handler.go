package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexispparra/roots-sub000/internal/domain/supplier"
	"github.com/alexispparra/roots-sub000/internal/response"
	"github.com/alexispparra/roots-sub000/internal/storage/postgres"
	"github.com/alexispparra/roots-sub000/internal/validation"
)

// SupplierHandler manages the shared supplier directory. Suppliers are not
// scoped to a project; any authenticated user can read and edit them.
type SupplierHandler struct {
	suppliers postgres.SupplierRepository
}

func NewSupplierHandler(suppliers postgres.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

type SupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	Rubro       string `json:"rubro" binding:"required"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	CUIT        string `json:"cuit"`
}

// ListSuppliers handles GET /api/suppliers
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.suppliers.GetAll()
	if err != nil {
		response.InternalServerError(c, "failed to list suppliers")
		return
	}
	response.SuccessResponse(c, http.StatusOK, "", suppliers)
}

// GetSupplier handles GET /api/suppliers/:supplier_id
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	supplierID := c.Param("supplier_id")
	if err := validation.ValidateUUID(supplierID, "supplier_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	s, err := h.suppliers.GetByID(supplierID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "supplier not found")
			return
		}
		response.InternalServerError(c, "failed to get supplier")
		return
	}
	response.SuccessResponse(c, http.StatusOK, "", s)
}

// CreateSupplier handles POST /api/suppliers
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	s := supplier.New(req.Name, req.Rubro)
	s.Description = req.Description
	s.Phone = req.Phone
	s.Email = req.Email
	s.Address = req.Address
	s.CUIT = req.CUIT

	if err := s.Validate(); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if err := h.suppliers.Create(s); err != nil {
		response.InternalServerError(c, "failed to create supplier")
		return
	}
	response.SuccessResponse(c, http.StatusCreated, "Supplier created", s)
}

// UpdateSupplier handles PUT /api/suppliers/:supplier_id
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	supplierID := c.Param("supplier_id")
	if err := validation.ValidateUUID(supplierID, "supplier_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	s, err := h.suppliers.GetByID(supplierID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "supplier not found")
			return
		}
		response.InternalServerError(c, "failed to get supplier")
		return
	}

	s.Name = req.Name
	s.Rubro = req.Rubro
	s.Description = req.Description
	s.Phone = req.Phone
	s.Email = req.Email
	s.Address = req.Address
	s.CUIT = req.CUIT

	if err := s.Validate(); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if err := h.suppliers.Update(s); err != nil {
		response.InternalServerError(c, "failed to update supplier")
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Supplier updated", s)
}

// DeleteSupplier handles DELETE /api/suppliers/:supplier_id
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	supplierID := c.Param("supplier_id")
	if err := validation.ValidateUUID(supplierID, "supplier_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if err := h.suppliers.Delete(supplierID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "supplier not found")
			return
		}
		response.InternalServerError(c, "failed to delete supplier")
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Supplier deleted", nil)
}
