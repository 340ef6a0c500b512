package handler

import (
	"net/http"

	"github.com/oggyb/zensend-gateway/internal/request"
	"github.com/oggyb/zensend-gateway/internal/response"
	"github.com/oggyb/zensend-gateway/internal/service"
	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

// AccountHandler exposes ZenSend account operations.
type AccountHandler struct {
	svc service.AccountService
}

func NewAccountHandler(svc service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Balance godoc
// @Summary     Account balance
// @Tags        account
// @Produce     json
// @Success     200 {object} response.BalanceResponse
// @Failure     502 {object} response.ErrorResponse
// @Router      /account/balance [get]
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.svc.Balance(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, response.BalancePayload{BalanceInPence: balance})
}

// Prices godoc
// @Summary     Prices per country
// @Description Per-part SMS price in pence, keyed by ISO country code.
// @Tags        account
// @Produce     json
// @Success     200 {object} response.PricesResponse
// @Failure     502 {object} response.ErrorResponse
// @Router      /account/prices [get]
func (h *AccountHandler) Prices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.svc.Prices(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, response.PricesPayload{PricesInPence: prices})
}

// LookupOperator godoc
// @Summary     Operator lookup
// @Description Returns the network currently serving a number. Lookups are billed.
// @Tags        account
// @Produce     json
// @Param       number path string true "Phone number in international format"
// @Success     200 {object} response.OperatorResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     502 {object} response.ErrorResponse
// @Router      /operators/{number} [get]
func (h *AccountHandler) LookupOperator(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")

	res, err := h.svc.LookupOperator(r.Context(), number)
	if err != nil {
		respondError(w, r, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, response.OperatorPayload{
		Number:            number,
		MCC:               res.MCC,
		MNC:               res.MNC,
		Operator:          res.Operator,
		CostInPence:       res.CostInPence,
		NewBalanceInPence: res.NewBalanceInPence,
	})
}

// CreateSubAccount godoc
// @Summary     Create sub-account
// @Tags        account
// @Accept      json
// @Produce     json
// @Param       request body request.CreateSubAccountRequest true "Sub-account"
// @Success     201 {object} response.SubAccountResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     502 {object} response.ErrorResponse
// @Router      /sub-accounts [post]
func (h *AccountHandler) CreateSubAccount(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSubAccountRequest
	if err := request.Decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	res, err := h.svc.CreateSubAccount(r.Context(), req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.RespondJSON(w, http.StatusCreated, response.SubAccountPayload{Name: res.Name, APIKey: res.APIKey})
}

// CreateKeyword godoc
// @Summary     Create keyword
// @Description Reserves a keyword on a shortcode; inbound messages are posted to moUrl.
// @Tags        account
// @Accept      json
// @Produce     json
// @Param       request body request.CreateKeywordRequest true "Keyword"
// @Success     201 {object} response.KeywordResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     502 {object} response.ErrorResponse
// @Router      /keywords [post]
func (h *AccountHandler) CreateKeyword(w http.ResponseWriter, r *http.Request) {
	var req request.CreateKeywordRequest
	if err := request.Decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	res, err := h.svc.CreateKeyword(r.Context(), zensend.Keyword{
		Shortcode: req.Shortcode,
		Keyword:   req.Keyword,
		IsSticky:  req.IsSticky,
		MOURL:     req.MOURL,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.RespondJSON(w, http.StatusCreated, response.KeywordPayload{
		CostInPence:       res.CostInPence,
		NewBalanceInPence: res.NewBalanceInPence,
	})
}
