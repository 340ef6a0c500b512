package handler

import (
	"net/http"

	"github.com/oggyb/zensend-gateway/internal/request"
	"github.com/oggyb/zensend-gateway/internal/response"
	"github.com/oggyb/zensend-gateway/internal/service"
	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

type VerificationHandler struct {
	svc service.VerificationService
}

func NewVerificationHandler(svc service.VerificationService) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

// Start godoc
// @Summary     Start number verification
// @Description Sends a verification code to the number and returns the session to poll.
// @Tags        verifications
// @Accept      json
// @Produce     json
// @Param       request body request.StartVerificationRequest true "Verification"
// @Success     201 {object} response.VerificationResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     502 {object} response.ErrorResponse
// @Router      /verifications [post]
func (h *VerificationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartVerificationRequest
	if err := request.Decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	v, err := h.svc.Start(r.Context(), req.Number, zensend.VerificationOptions{
		Message:    req.Message,
		Originator: req.Originator,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.RespondJSON(w, http.StatusCreated, response.FromVerification(v))
}

// Status godoc
// @Summary     Verification status
// @Description Returns the verified number once the user has completed the verification.
// @Tags        verifications
// @Produce     json
// @Param       session path string true "Verification session"
// @Success     200 {object} response.VerificationResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     502 {object} response.ErrorResponse
// @Router      /verifications/{session} [get]
func (h *VerificationHandler) Status(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Status(r.Context(), r.PathValue("session"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, response.FromVerification(v))
}
