package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/user"
	"github.com/workpulse-hq/workforce-backend-go/internal/handler/http/response"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/jwt"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/sse"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetActive(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)
	EventsDashboard(w http.ResponseWriter, r *http.Request)
	Override(w http.ResponseWriter, r *http.Request)
	Matrix(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	userRepository    user.UserRepository
	jwtService        jwt.Service
	hub               *sse.Hub
}

func NewAttendanceHandler(
	attendanceService attendance.Service,
	userRepository user.UserRepository,
	jwtService jwt.Service,
	hub *sse.Hub,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		userRepository:    userRepository,
		jwtService:        jwtService,
		hub:               hub,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ClockIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ClockOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// GetActive implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetHistory(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Events streams the authenticated user's attendance changes over SSE.
// EventSource cannot set headers, so auth rides in the token query parameter.
func (h *attendanceHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.streamUserID(w, r)
	if !ok {
		return
	}

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	h.stream(w, r, userID, events)
}

// EventsDashboard streams every user's attendance changes to an admin.
func (h *attendanceHandlerImpl) EventsDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.streamUserID(w, r)
	if !ok {
		return
	}

	// SSE tokens carry no role claim; check against the directory.
	u, err := h.userRepository.GetByID(r.Context(), userID)
	if err != nil || !u.IsAdmin() {
		http.Error(w, "Admin privilege required", http.StatusForbidden)
		return
	}

	events, cleanup := h.hub.SubscribeDashboard()
	defer cleanup()

	h.stream(w, r, userID, events)
}

func (h *attendanceHandlerImpl) streamUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return "", false
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

func (h *attendanceHandlerImpl) stream(w http.ResponseWriter, r *http.Request, userID string, events chan sse.Event) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// Override implements AttendanceHandler.
func (h *attendanceHandlerImpl) Override(w http.ResponseWriter, r *http.Request) {
	var req attendance.OverrideStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode override request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.OverrideStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record overridden", result)
}

// Matrix implements AttendanceHandler.
func (h *attendanceHandlerImpl) Matrix(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.MonthlyMatrix(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// yearMonthParams reads the month/year query parameters, defaulting to the
// current month.
func yearMonthParams(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 2000 || parsed > 2200 {
			response.BadRequest(w, "Invalid year parameter", nil)
			return 0, 0, false
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(w, "Invalid month parameter", nil)
			return 0, 0, false
		}
		month = time.Month(parsed)
	}

	return year, month, true
}
