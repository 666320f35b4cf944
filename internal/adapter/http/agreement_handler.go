package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "lendit-backend/internal/domain/agreement"
	"lendit-backend/internal/domain/payment"
	"lendit-backend/internal/usecase/agreement"
)

type AgreementHandler struct{ uc *agreement.Usecase }

func NewAgreementHandler(uc *agreement.Usecase) *AgreementHandler {
	return &AgreementHandler{uc: uc}
}

type createRequestReq struct {
	Amount         float64 `json:"amount"           validate:"required,gt=0,dec2"`
	InterestRate   float64 `json:"interest_rate"    validate:"gte=0,dec2"`
	DurationMonths int     `json:"duration_months"  validate:"required,gte=1"`
	Purpose        string  `json:"purpose"          validate:"required,purpose"`
	PaymentMethod  string  `json:"payment_method"   validate:"required,paymethod"`

	Description      string  `json:"description"`
	Collateral       string  `json:"collateral"`
	MonthlyIncome    float64 `json:"monthly_income"    validate:"gte=0"`
	EmploymentStatus string  `json:"employment_status"`
	CreditScore      int     `json:"credit_score"      validate:"gte=0,lte=900"`
}

func (h *AgreementHandler) CreateRequest(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req createRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.CreateRequest(c.Request().Context(), actor, agreement.CreateRequestInput{
		Amount:           req.Amount,
		InterestRate:     req.InterestRate,
		DurationMonths:   req.DurationMonths,
		Purpose:          domain.Purpose(req.Purpose),
		PaymentMethod:    payment.Method(req.PaymentMethod),
		Description:      req.Description,
		Collateral:       req.Collateral,
		MonthlyIncome:    req.MonthlyIncome,
		EmploymentStatus: req.EmploymentStatus,
		CreditScore:      req.CreditScore,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type createOfferReq struct {
	BorrowerID     string  `json:"borrower_id"      validate:"omitempty,hex32"`
	BorrowerName   string  `json:"borrower_name"`
	BorrowerEmail  string  `json:"borrower_email"   validate:"required,email"`
	Amount         float64 `json:"amount"           validate:"required,gt=0,dec2"`
	InterestRate   float64 `json:"interest_rate"    validate:"gte=0,dec2"`
	DurationMonths int     `json:"duration_months"  validate:"required,gte=1"`
	Purpose        string  `json:"purpose"          validate:"required,purpose"`
	PaymentMethod  string  `json:"payment_method"   validate:"required,paymethod"`
	SmartContract  bool    `json:"smart_contract"`
	WalletAddress  string  `json:"wallet_address"`
	Description    string  `json:"description"`
}

func (h *AgreementHandler) CreateOffer(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.CreateOffer(c.Request().Context(), actor, agreement.CreateOfferInput{
		Borrower: agreement.BorrowerRef{
			ID:    req.BorrowerID,
			Name:  req.BorrowerName,
			Email: req.BorrowerEmail,
		},
		Amount:         req.Amount,
		InterestRate:   req.InterestRate,
		DurationMonths: req.DurationMonths,
		Purpose:        domain.Purpose(req.Purpose),
		PaymentMethod:  payment.Method(req.PaymentMethod),
		SmartContract:  req.SmartContract,
		WalletAddress:  req.WalletAddress,
		Description:    req.Description,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// BrowseRequests is the lender marketplace feed; the caller's own requests
// are excluded, ?purpose= narrows to one category.
func (h *AgreementHandler) BrowseRequests(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	list, err := h.uc.BrowseOpenRequests(c.Request().Context(), actor.ID, domain.Purpose(c.QueryParam("purpose")))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AgreementHandler) MyRequests(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	list, err := h.uc.ListOwnOpenRequests(c.Request().Context(), actor.ID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AgreementHandler) MyAgreements(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	list, err := h.uc.ListOwnAgreements(c.Request().Context(), actor.ID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AgreementHandler) GetAgreement(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	dto, err := h.uc.Get(c.Request().Context(), actor, c.Param("agreement_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) Claim(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	dto, err := h.uc.Claim(c.Request().Context(), actor, c.Param("agreement_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) Accept(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	dto, err := h.uc.Accept(c.Request().Context(), actor, c.Param("agreement_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectReq struct {
	Reason string `json:"reason"`
}

func (h *AgreementHandler) Reject(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req rejectReq
	_ = c.Bind(&req) // reason is optional, body may be empty

	dto, err := h.uc.Reject(c.Request().Context(), actor, c.Param("agreement_id"), req.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) Cancel(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	if err := h.uc.Cancel(c.Request().Context(), actor, c.Param("agreement_id")); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AgreementHandler) Complete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	dto, err := h.uc.Complete(c.Request().Context(), actor, c.Param("agreement_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
