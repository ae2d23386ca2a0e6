package attendance

import (
	"time"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/sse"
)

// HubNotifier publishes attendance change events to the SSE hub. Publishing
// is non-blocking and never returns an error, so it is safe to call right
// after a committed mutation.
type HubNotifier struct {
	hub *sse.Hub
}

func NewHubNotifier(hub *sse.Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

// AttendanceChanged implements attendance.Notifier.
func (n *HubNotifier) AttendanceChanged(userID string) {
	n.hub.Publish(userID, sse.Event{
		UserID: userID,
		Event:  attendance.EventAttendanceChanged,
		Data: map[string]interface{}{
			"user_id":    userID,
			"changed_at": time.Now().UTC(),
		},
	})
}
