package receiver

import (
	"net/http"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/platform"
)

// ScheduleRequest is the body of POST /v1/schedule.
type ScheduleRequest struct {
	Category string         `json:"category" validate:"required,category"`
	Title    string         `json:"title" validate:"required,max=200"`
	Body     string         `json:"body" validate:"max=2000"`
	Data     map[string]any `json:"data,omitempty"`
	Seconds  int            `json:"seconds" validate:"min=0"`
}

func (s *Server) schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res := s.svc.Schedule(r.Context(), domain.Category(req.Category), req.Title, req.Body, req.Data, platform.Trigger{Seconds: req.Seconds})
	if !res.Success {
		s.respond(w, res, "")
		return
	}
	writeData(w, http.StatusCreated, res)
}

func (s *Server) cancelScheduled(w http.ResponseWriter, r *http.Request) {
	id := notificationID(r)
	s.respond(w, s.svc.Cancel(r.Context(), id), id)
}

func (s *Server) cancelAllScheduled(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.svc.CancelAll(r.Context()), "")
}
