package handler

import (
	"net/http"

	"github.com/homegame/api/internal/middleware"
	"github.com/homegame/api/internal/model"
	"github.com/homegame/api/internal/service"
)

// NotificationHandler handles the notification inbox endpoints
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.notifications.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, map[string]interface{}{"notifications": list})
}

// Delete handles POST /api/delete_notification
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteNotificationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.notifications.Delete(r.Context(), middleware.GetUserID(r.Context()), req.NotificationID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// ClearAll handles POST /api/clear_notifications
func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.ClearAll(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}
