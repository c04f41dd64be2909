package api

import (
	"errors"
	"log/slog"
	"net/http"

	"textdigest/internal/domain"
	"textdigest/internal/errortypes"
)

type Handler struct {
	svc               domain.DigestService
	defaultPercentage int
	log               *slog.Logger
}

func NewHandler(svc domain.DigestService, defaultPercentage int, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{svc: svc, defaultPercentage: defaultPercentage, log: log}
}

func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	percentage := h.defaultPercentage
	if req.Percentage != nil {
		percentage = *req.Percentage
	}
	res, err := h.svc.Summarize(r.Context(), req.Text, percentage)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, res)
}

func (h *Handler) HandleHumanize(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.svc.Humanize(r.Context(), req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, res)
}

func (h *Handler) HandleOutline(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	outline, err := h.svc.Outline(r.Context(), req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if outline == nil {
		outline = []domain.OutlineEntry{}
	}
	JSONResponse(w, http.StatusOK, OutlineResponse{Outline: outline})
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail logs unexpected errors in full and caller mistakes at debug level.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) || errortypes.IsInvalidArgument(err) {
		h.log.DebugContext(r.Context(), "rejected request", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		errortypes.LogError(h.log, err)
	}
	HandleError(w, err)
}
