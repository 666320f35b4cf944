package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "lendit-backend/internal/domain/payment"
	"lendit-backend/internal/domain/transaction"
	"lendit-backend/internal/usecase/payment"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type processPaymentReq struct {
	AgreementID string  `json:"agreement_id"  validate:"required,hex32"`
	Type        string  `json:"type"          validate:"required"`
	Amount      float64 `json:"amount"        validate:"required,gt=0,dec2"`
	Method      string  `json:"method"        validate:"required,paymethod"`
	RecipientID string  `json:"recipient_id"  validate:"omitempty,hex32"`
	Reference   string  `json:"reference"`

	Metadata domain.Metadata `json:"metadata"`
}

// ProcessPayment returns 200 with success=false for business rejects; only
// infrastructure faults surface as 5xx so clients know to retry.
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req processPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	result, err := h.uc.ProcessPayment(c.Request().Context(), payment.Intent{
		AgreementID: req.AgreementID,
		Type:        transaction.Type(req.Type),
		Amount:      req.Amount,
		Method:      domain.Method(req.Method),
		PayerID:     actor.ID,
		RecipientID: req.RecipientID,
		Reference:   req.Reference,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "payment could not be recorded, retry"})
	}
	return c.JSON(http.StatusOK, result)
}

// Methods lists the settlement capabilities for the client's method picker.
func (h *PaymentHandler) Methods(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Capabilities())
}

func (h *PaymentHandler) ListTransactions(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	list, err := h.uc.ListTransactions(c.Request().Context(), actor.ID, c.Param("agreement_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

type finalizeReq struct {
	Status string `json:"status" validate:"required"`
}

// Finalize is the reconciliation callback for delayed methods (bank, crypto).
func (h *PaymentHandler) Finalize(c echo.Context) error {
	var req finalizeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	status := transaction.Status(req.Status)
	if status != transaction.StatusCompleted && status != transaction.StatusFailed {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "status must be completed or failed"})
	}
	if err := h.uc.FinalizeTransaction(c.Request().Context(), c.Param("transaction_id"), status); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
