package handler

import (
	"net/http"
	"strconv"

	domain "github.com/oggyb/zensend-gateway/internal/domain/message"
	"github.com/oggyb/zensend-gateway/internal/request"
	"github.com/oggyb/zensend-gateway/internal/response"
	"github.com/oggyb/zensend-gateway/internal/scheduler"
	"github.com/oggyb/zensend-gateway/internal/service"
)

// MessageHandler wires HTTP endpoints to the message service
// and the background scheduler.
type MessageHandler struct {
	msgSvc service.MessageService
	schSvc scheduler.SchedulerService
}

// NewMessageHandler constructs a new MessageHandler with its dependencies.
func NewMessageHandler(msgSvc service.MessageService, schSvc scheduler.SchedulerService) *MessageHandler {
	return &MessageHandler{
		msgSvc: msgSvc,
		schSvc: schSvc,
	}
}

// QueueMessage godoc
// @Summary     Queue an SMS
// @Description Validates and stores an SMS. The scheduler sends pending messages through ZenSend.
// @Tags        messages
// @Accept      json
// @Produce     json
// @Param       request body request.SendMessageRequest true "Message"
// @Success     202 {object} response.MessageResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     500 {object} response.ErrorResponse
// @Router      /messages [post]
func (h *MessageHandler) QueueMessage(w http.ResponseWriter, r *http.Request) {
	var req request.SendMessageRequest
	if err := request.Decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	msg, err := h.msgSvc.Queue(r.Context(), domain.Draft{
		Originator:          req.Originator,
		Body:                req.Body,
		Numbers:             req.Numbers,
		OriginatorType:      req.OriginatorType,
		TimeToLiveInMinutes: req.TimeToLiveInMinutes,
		Encoding:            req.Encoding,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	response.RespondJSON(w, http.StatusAccepted, response.FromDomainMessage(msg))
}

// StartStopScheduler godoc
// @Summary     Control scheduler
// @Description Starts or stops the background scheduler based on the given action.
// @Tags        scheduler
// @Accept      json
// @Produce     json
// @Param       request body request.SchedulerRequest true "Scheduler action (start|stop)"
// @Success     200 {object} response.SchedulerControlResponse
// @Failure     400 {object} response.ErrorResponse
// @Router      /scheduler [post]
func (h *MessageHandler) StartStopScheduler(w http.ResponseWriter, r *http.Request) {
	var req request.SchedulerRequest
	if err := request.Decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	control, msg := h.schSvc.Start, "scheduler started"
	if req.Action == "stop" {
		control, msg = h.schSvc.Stop, "scheduler stopped"
	}

	if err := control(); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.SchedulerControlPayload{Message: msg})
}

// GetSentMessages godoc
// @Summary     List sent messages
// @Description Returns a paginated list of successfully sent messages.
// @Tags        messages
// @Produce     json
// @Param       page  query int false "Page number"         default(1)
// @Param       limit query int false "Page size (max 100)" default(20)
// @Success     200 {object} response.SentMessagesResponse
// @Failure     500 {object} response.ErrorResponse
// @Router      /messages/sent [get]
func (h *MessageHandler) GetSentMessages(w http.ResponseWriter, r *http.Request) {
	pageStr := r.URL.Query().Get("page")
	limitStr := r.URL.Query().Get("limit")

	page := 1
	limit := 20

	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}

	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	items, total, err := h.msgSvc.GetSent(r.Context(), page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	payload := response.SentMessagesPayload{
		Items: response.FromDomainMessages(items),
		Total: total,
		Page:  page,
		Limit: limit,
	}

	response.RespondJSON(w, http.StatusOK, payload)
}
