package receiver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/platform"
	"github.com/cristianoliveira/alonix-notify/internal/service"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 64 << 10

type notificationRequest struct {
	Title string         `json:"title" validate:"required,max=200"`
	Body  string         `json:"body" validate:"max=2000"`
	Data  map[string]any `json:"data"`
}

type listResponse struct {
	Notifications []domain.Record `json:"notifications"`
	Unread        int             `json:"unread"`
}

type badgeResponse struct {
	Count int `json:"count"`
}

type openResponse struct {
	ID     string                  `json:"id"`
	Target domain.NavigationTarget `json:"target"`
}

func (s *Server) receive(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	receipt := s.svc.Receive(r.Context(), domain.Incoming{Title: req.Title, Body: req.Body, Data: req.Data})
	writeData(w, http.StatusAccepted, receipt)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	records := s.svc.List(r.Context())
	unread := 0
	for _, rec := range records {
		if !rec.Read {
			unread++
		}
	}
	writeData(w, http.StatusOK, listResponse{Notifications: records, Unread: unread})
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.svc.ClearAll(r.Context()), "")
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	id := notificationID(r)
	s.respond(w, s.svc.MarkRead(r.Context(), id), id)
}

func (s *Server) markUnread(w http.ResponseWriter, r *http.Request) {
	id := notificationID(r)
	s.respond(w, s.svc.MarkUnread(r.Context(), id), id)
}

func (s *Server) open(w http.ResponseWriter, r *http.Request) {
	id := notificationID(r)
	target, res := s.svc.Open(r.Context(), id)
	if !res.Success {
		s.respond(w, res, id)
		return
	}
	writeData(w, http.StatusOK, openResponse{ID: id, Target: target})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := notificationID(r)
	s.respond(w, s.svc.Delete(r.Context(), id), id)
}

func (s *Server) badge(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, badgeResponse{Count: s.svc.Badge(r.Context())})
}

func (s *Server) getPreferences(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.svc.Preferences(r.Context()))
}

func (s *Server) putPreferences(w http.ResponseWriter, r *http.Request) {
	prefs := domain.DefaultPreferences()
	if err := decodeJSONBody(r, &prefs); err != nil {
		writeError(w, err)
		return
	}
	res := s.svc.SetPreferences(r.Context(), prefs)
	if !res.Success {
		s.respond(w, res, "")
		return
	}
	writeData(w, http.StatusOK, s.svc.Preferences(r.Context()))
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respond maps a service result to a status code.
func (s *Server) respond(w http.ResponseWriter, res service.Result, id string) {
	if res.Success {
		writeData(w, http.StatusOK, res)
		return
	}
	err := res.Err()
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, notFound(id))
	case errors.Is(err, platform.ErrUnknownNotification):
		writeError(w, &requestError{status: http.StatusNotFound, code: "not_found", message: "scheduled notification " + id + " not found"})
	case errors.Is(err, domain.ErrInvalidPreferences):
		writeError(w, &requestError{status: http.StatusUnprocessableEntity, code: "validation", message: res.Error})
	default:
		s.log.Warn("request failed", "error", res.Error)
		writeError(w, internalError(res.Error))
	}
}

func notificationID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}
