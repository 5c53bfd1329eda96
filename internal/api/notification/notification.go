package notification

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "marketplace_backend/internal/api/dto/notification"
	"marketplace_backend/internal/api/middleware"
	"marketplace_backend/internal/converter"
	"marketplace_backend/internal/service"
	notifserv "marketplace_backend/internal/service/notification"
	"marketplace_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.NotificationService
}

type Handler struct {
	serv service.NotificationService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// List - the caller's notifications plus the unread counter the
// client polls for
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, unread, err := h.serv.List(r.Context(), middleware.UserID(r.Context()), unreadOnly)
	if err != nil {
		log.Println("List notifications error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.ListResponse{
		Notifications: converter.ToNotificationResponses(notifications),
		UnreadCount:   unread,
	})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.serv.MarkRead(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.writeError(w, err, "mark read failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.serv.MarkAllRead(r.Context(), middleware.UserID(r.Context())); err != nil {
		log.Println("Mark all read error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "mark all read failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.serv.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.writeError(w, err, "delete failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, notifserv.ErrNotFound) {
		resp.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Printf("%s: %v", fallback, err)
	resp.WriteError(w, http.StatusInternalServerError, fallback)
}
