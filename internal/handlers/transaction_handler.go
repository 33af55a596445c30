package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexispparra/roots-sub000/internal/attachments"
	"github.com/alexispparra/roots-sub000/internal/auth"
	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/ledger"
	"github.com/alexispparra/roots-sub000/internal/response"
	"github.com/alexispparra/roots-sub000/internal/validation"
)

type TransactionHandler struct {
	ledger *ledger.Service
	// receipts is nil when object storage is not configured
	receipts *attachments.Store
}

func NewTransactionHandler(ledgerService *ledger.Service, receipts *attachments.Store) *TransactionHandler {
	return &TransactionHandler{ledger: ledgerService, receipts: receipts}
}

type AddTransactionRequest struct {
	Type          string          `json:"type" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Category      string          `json:"category"`
	User          string          `json:"user"`
	PaymentMethod string          `json:"payment_method"`
	AmountARS     decimal.Decimal `json:"amount_ars"`
	AmountUSD     decimal.Decimal `json:"amount_usd"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	// Receipt is an optional base64 data URI stored before the write
	Receipt string `json:"receipt"`
}

// AddTransaction handles POST /api/projects/:project_id/transactions
func (h *TransactionHandler) AddTransaction(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var req AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	attachmentURL := ""
	if req.Receipt != "" {
		if h.receipts == nil {
			response.ServiceUnavailableError(c, "receipt storage is not configured")
			return
		}
		url, err := h.receipts.UploadReceipt(c.Request.Context(), projectID, req.Receipt)
		if err != nil {
			response.BadRequestError(c, "failed to store receipt: "+err.Error())
			return
		}
		attachmentURL = url
	}

	tx, err := h.ledger.AddTransaction(projectID, auth.EmailFromContext(c), ledger.AddTransactionInput{
		Type:          project.TransactionType(req.Type),
		Date:          req.Date,
		Description:   req.Description,
		Category:      req.Category,
		User:          req.User,
		PaymentMethod: req.PaymentMethod,
		AmountARS:     req.AmountARS,
		AmountUSD:     req.AmountUSD,
		ExchangeRate:  req.ExchangeRate,
		AttachmentURL: attachmentURL,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusCreated, "Transaction added", tx)
}

// UpdateTransactionRequest patches a transaction. The type is fixed at
// creation; changing income to expense would re-route the category sentinel.
type UpdateTransactionRequest struct {
	Date          *time.Time       `json:"date"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	User          *string          `json:"user"`
	PaymentMethod *string          `json:"payment_method"`
	AmountARS     *decimal.Decimal `json:"amount_ars"`
	AmountUSD     *decimal.Decimal `json:"amount_usd"`
	ExchangeRate  *decimal.Decimal `json:"exchange_rate"`
}

// UpdateTransaction handles PATCH /api/projects/:project_id/transactions/:transaction_id
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	transactionID, err := uuid.Parse(c.Param("transaction_id"))
	if err != nil {
		response.BadRequestError(c, "transaction_id must be a valid UUID")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	patch := ledger.TransactionPatch{
		Date:          req.Date,
		Description:   req.Description,
		Category:      req.Category,
		User:          req.User,
		PaymentMethod: req.PaymentMethod,
		AmountARS:     req.AmountARS,
		AmountUSD:     req.AmountUSD,
		ExchangeRate:  req.ExchangeRate,
	}

	tx, err := h.ledger.UpdateTransaction(projectID, auth.EmailFromContext(c), transactionID, patch)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Transaction updated", tx)
}

// DeleteTransaction handles DELETE /api/projects/:project_id/transactions/:transaction_id
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	transactionID, err := uuid.Parse(c.Param("transaction_id"))
	if err != nil {
		response.BadRequestError(c, "transaction_id must be a valid UUID")
		return
	}

	if err := h.ledger.DeleteTransaction(projectID, auth.EmailFromContext(c), transactionID); err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Transaction deleted", nil)
}

type UploadReceiptRequest struct {
	Receipt string `json:"receipt" binding:"required"`
}

// UploadReceipt handles POST /api/projects/:project_id/transactions/:transaction_id/receipt
func (h *TransactionHandler) UploadReceipt(c *gin.Context) {
	if h.receipts == nil {
		response.ServiceUnavailableError(c, "receipt storage is not configured")
		return
	}

	projectID := c.Param("project_id")
	if err := validation.ValidateUUID(projectID, "project_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	transactionID, err := uuid.Parse(c.Param("transaction_id"))
	if err != nil {
		response.BadRequestError(c, "transaction_id must be a valid UUID")
		return
	}

	var req UploadReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	url, err := h.receipts.UploadReceipt(c.Request.Context(), projectID, req.Receipt)
	if err != nil {
		response.BadRequestError(c, "failed to store receipt: "+err.Error())
		return
	}

	if err := h.ledger.SetTransactionAttachment(projectID, auth.EmailFromContext(c), transactionID, url); err != nil {
		respondLedgerError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Receipt stored", gin.H{"attachment_url": url})
}
