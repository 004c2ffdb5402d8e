package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanforge/deal-service/internal/application/dto"
	"github.com/loanforge/deal-service/internal/application/usecase"
	"github.com/loanforge/deal-service/internal/domain/model"
	"github.com/loanforge/deal-service/internal/domain/valueobject"
	"github.com/loanforge/deal-service/internal/metrics"
)

// DealHandler exposes the deal pipeline over HTTP.
type DealHandler struct {
	requestOffers   *usecase.RequestOffersUseCase
	applyOffer      *usecase.ApplyOfferUseCase
	calculateCredit *usecase.CalculateCreditUseCase
	getApplication  *usecase.GetApplicationUseCase
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

// NewDealHandler creates the deal HTTP handler.
func NewDealHandler(
	requestOffers *usecase.RequestOffersUseCase,
	applyOffer *usecase.ApplyOfferUseCase,
	calculateCredit *usecase.CalculateCreditUseCase,
	getApplication *usecase.GetApplicationUseCase,
	m *metrics.Metrics,
	logger *slog.Logger,
) *DealHandler {
	return &DealHandler{
		requestOffers:   requestOffers,
		applyOffer:      applyOffer,
		calculateCredit: calculateCredit,
		getApplication:  getApplication,
		metrics:         m,
		logger:          logger,
	}
}

// RegisterRoutes attaches the deal routes to the given mux.
func (h *DealHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /deal/application", h.handleRequestOffers)
	mux.HandleFunc("PUT /deal/offer", h.handleApplyOffer)
	mux.HandleFunc("PUT /deal/calculate/{applicationID}", h.handleCalculateCredit)
	mux.HandleFunc("GET /deal/admin/application/{applicationID}", h.handleGetApplication)
}

// dateOnly accepts dates in the 2006-01-02 wire format.
type dateOnly time.Time

func (d *dateOnly) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	*d = dateOnly(t)
	return nil
}

type loanApplicationRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Term           int             `json:"term"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	MiddleName     string          `json:"middle_name"`
	Email          string          `json:"email"`
	BirthDate      dateOnly        `json:"birthdate"`
	PassportSeries int             `json:"passport_series"`
	PassportNumber int             `json:"passport_number"`
}

type finishRegistrationRequest struct {
	Gender              valueobject.Gender        `json:"gender"`
	MaritalStatus       valueobject.MaritalStatus `json:"marital_status"`
	DependentAmount     int                       `json:"dependent_amount"`
	PassportIssueDate   dateOnly                  `json:"passport_issue_date"`
	PassportIssueBranch string                    `json:"passport_issue_branch"`
	Employment          valueobject.Employment    `json:"employment"`
	Account             string                    `json:"account"`
}

func (h *DealHandler) handleRequestOffers(w http.ResponseWriter, r *http.Request) {
	var req loanApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.Operations.WithLabelValues("request_offers", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	offers, err := h.requestOffers.Execute(r.Context(), dto.LoanApplicationRequest{
		Amount:         req.Amount,
		Term:           req.Term,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		Email:          req.Email,
		BirthDate:      time.Time(req.BirthDate),
		PassportSeries: req.PassportSeries,
		PassportNumber: req.PassportNumber,
	})
	if err != nil {
		h.writeUseCaseError(w, "request_offers", err)
		return
	}

	h.metrics.Operations.WithLabelValues("request_offers", "ok").Inc()
	writeJSON(w, http.StatusOK, offers)
}

func (h *DealHandler) handleApplyOffer(w http.ResponseWriter, r *http.Request) {
	var offer model.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		h.metrics.Operations.WithLabelValues("apply_offer", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.applyOffer.Execute(r.Context(), offer); err != nil {
		h.writeUseCaseError(w, "apply_offer", err)
		return
	}

	h.metrics.Operations.WithLabelValues("apply_offer", "ok").Inc()
	w.WriteHeader(http.StatusOK)
}

func (h *DealHandler) handleCalculateCredit(w http.ResponseWriter, r *http.Request) {
	applicationID, err := strconv.ParseInt(r.PathValue("applicationID"), 10, 64)
	if err != nil {
		h.metrics.Operations.WithLabelValues("calculate_credit", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid application id: %w", err))
		return
	}

	var req finishRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.Operations.WithLabelValues("calculate_credit", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	err = h.calculateCredit.Execute(r.Context(), dto.FinishRegistrationRequest{
		Gender:              req.Gender,
		MaritalStatus:       req.MaritalStatus,
		DependentAmount:     req.DependentAmount,
		PassportIssueDate:   time.Time(req.PassportIssueDate),
		PassportIssueBranch: req.PassportIssueBranch,
		Employment:          req.Employment,
		Account:             req.Account,
	}, applicationID)
	if err != nil {
		h.writeUseCaseError(w, "calculate_credit", err)
		return
	}

	h.metrics.Operations.WithLabelValues("calculate_credit", "ok").Inc()
	w.WriteHeader(http.StatusOK)
}

func (h *DealHandler) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, err := strconv.ParseInt(r.PathValue("applicationID"), 10, 64)
	if err != nil {
		h.metrics.Operations.WithLabelValues("get_application", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid application id: %w", err))
		return
	}

	app, err := h.getApplication.Execute(r.Context(), applicationID)
	if err != nil {
		h.writeUseCaseError(w, "get_application", err)
		return
	}

	h.metrics.Operations.WithLabelValues("get_application", "ok").Inc()
	writeJSON(w, http.StatusOK, applicationResponse(app))
}

// writeUseCaseError maps domain errors to HTTP statuses.
func (h *DealHandler) writeUseCaseError(w http.ResponseWriter, operation string, err error) {
	var status int
	var outcome string
	switch {
	case errors.Is(err, valueobject.ErrApplicationNotFound):
		status, outcome = http.StatusNotFound, "not_found"
	case valueobject.IsMissingField(err):
		status, outcome = http.StatusUnprocessableEntity, "incomplete"
	case errors.Is(err, valueobject.ErrUnknownEnumValue):
		status, outcome = http.StatusBadRequest, "bad_request"
	case errors.Is(err, valueobject.ErrVersionConflict):
		status, outcome = http.StatusConflict, "conflict"
	default:
		status, outcome = http.StatusInternalServerError, "error"
	}

	h.metrics.Operations.WithLabelValues(operation, outcome).Inc()
	if status == http.StatusInternalServerError {
		h.logger.Error("deal operation failed", "operation", operation, "error", err)
	}
	writeError(w, status, err)
}

type wireApplication struct {
	ID            int64                        `json:"id"`
	Status        string                       `json:"status"`
	CreationDate  time.Time                    `json:"creation_date"`
	Client        model.Client                 `json:"client"`
	AppliedOffer  *model.Offer                 `json:"applied_offer,omitempty"`
	Credit        *model.Credit                `json:"credit,omitempty"`
	StatusHistory []model.StatusHistoryElement `json:"status_history"`
}

func applicationResponse(app dto.ApplicationResponse) wireApplication {
	return wireApplication{
		ID:            app.ID,
		Status:        app.Status,
		CreationDate:  app.CreationDate,
		Client:        app.Client,
		AppliedOffer:  app.AppliedOffer,
		Credit:        app.Credit,
		StatusHistory: app.StatusHistory,
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
