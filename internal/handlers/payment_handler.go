package handler

import (
	"errors"
	"net/http"

	"freelance-marketplace-backend/internal/middleware"
	"freelance-marketplace-backend/internal/services/escrow"
	"freelance-marketplace-backend/internal/services/paymentstatus"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	escrow *escrow.Service
	status *paymentstatus.Service
}

func NewPaymentHandler(escrowSvc *escrow.Service, statusSvc *paymentstatus.Service) *PaymentHandler {
	return &PaymentHandler{escrow: escrowSvc, status: statusSvc}
}

func escrowErrorStatus(err error) int {
	switch {
	case errors.Is(err, escrow.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, escrow.ErrNotProjectClient):
		return http.StatusForbidden
	case errors.Is(err, escrow.ErrNoAcceptedProposal),
		errors.Is(err, escrow.ErrProjectNotCompleted),
		errors.Is(err, escrow.ErrNoEscrowFunds),
		errors.Is(err, escrow.ErrAlreadyReleased),
		errors.Is(err, escrow.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, status int, err error) {
	msg := err.Error()
	if status == http.StatusInternalServerError && !gin.IsDebugging() {
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func (h *PaymentHandler) Deposit(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid project ID"})
		return
	}
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	var payload struct {
		Amount        decimal.Decimal `json:"amount"`
		PaymentMethod string          `json:"payment_method"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	if payload.PaymentMethod == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "payment_method is required"})
		return
	}

	tx, err := h.escrow.Deposit(projectID, uid, payload.Amount, payload.PaymentMethod)
	if err != nil {
		writeError(c, escrowErrorStatus(err), err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": tx})
}

func (h *PaymentHandler) Release(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid project ID"})
		return
	}
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	result, err := h.escrow.Release(projectID, uid)
	if err != nil {
		writeError(c, escrowErrorStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func (h *PaymentHandler) GetProjectPaymentStatus(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid project ID"})
		return
	}

	status, err := h.status.GetProjectPaymentStatus(projectID)
	if err != nil {
		if errors.Is(err, paymentstatus.ErrProjectNotFound) {
			writeError(c, http.StatusNotFound, err)
			return
		}
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": status})
}

func (h *PaymentHandler) GetPendingPayments(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	pending, err := h.status.GetClientPendingPayments(uid)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pending})
}

func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	txs, err := h.escrow.ListUserTransactions(uid)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": txs})
}
