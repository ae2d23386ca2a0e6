package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/tasklog"
	"github.com/workpulse-hq/workforce-backend-go/internal/handler/http/response"
)

type TaskLogHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Stop(w http.ResponseWriter, r *http.Request)
	ListToday(w http.ResponseWriter, r *http.Request)
}

type taskLogHandlerImpl struct {
	taskLogService tasklog.LogService
}

func NewTaskLogHandler(taskLogService tasklog.LogService) TaskLogHandler {
	return &taskLogHandlerImpl{taskLogService: taskLogService}
}

// Start implements TaskLogHandler.
func (h *taskLogHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	var req tasklog.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode task log request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.taskLogService.Start(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task timer started", result)
}

// Stop implements TaskLogHandler.
func (h *taskLogHandlerImpl) Stop(w http.ResponseWriter, r *http.Request) {
	result, err := h.taskLogService.Stop(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task timer stopped", result)
}

// ListToday implements TaskLogHandler.
func (h *taskLogHandlerImpl) ListToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.taskLogService.ListToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
