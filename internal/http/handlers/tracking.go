package handlers

import (
	"net/http"
	"time"

	"parkcareers/internal/app"
	"parkcareers/internal/common"
	"parkcareers/internal/domain/tracking"
	"parkcareers/internal/http/metrics"
	"parkcareers/internal/http/middleware"
	"parkcareers/internal/http/response"
)

type TrackingHandler struct {
	trackings *app.TrackingService
	limiter   middleware.Limiter
	collector *metrics.Collector
}

func NewTrackingHandler(trackings *app.TrackingService, limiter middleware.Limiter, collector *metrics.Collector) *TrackingHandler {
	return &TrackingHandler{trackings: trackings, limiter: limiter, collector: collector}
}

type trackingResponse struct {
	*tracking.Record
	Display tracking.Display `json:"display"`
}

func (h *TrackingHandler) Quick(w http.ResponseWriter, r *http.Request) {
	if !h.allow(r) {
		response.Error(w, common.NewError(common.CodeRateLimited, "tracking rate limit exceeded", nil))
		return
	}
	record, err := h.trackings.Quick(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		response.Error(w, err)
		return
	}
	h.serve(w, record)
}

func (h *TrackingHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	if !h.allow(r) {
		response.Error(w, common.NewError(common.CodeRateLimited, "tracking rate limit exceeded", nil))
		return
	}
	var query tracking.Query
	if err := decodeJSON(r, &query); err != nil {
		response.Error(w, err)
		return
	}
	record, err := h.trackings.Detailed(r.Context(), query)
	if err != nil {
		response.Error(w, err)
		return
	}
	h.serve(w, record)
}

func (h *TrackingHandler) serve(w http.ResponseWriter, record *tracking.Record) {
	if h.collector != nil {
		h.collector.IncLookups()
	}
	response.JSON(w, http.StatusOK, trackingResponse{Record: record, Display: record.Status.Display()})
}

func (h *TrackingHandler) allow(r *http.Request) bool {
	if h.limiter == nil {
		return true
	}
	return h.limiter.Allow("track:"+middleware.ClientIP(r), 20, time.Minute)
}
