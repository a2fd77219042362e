package handler

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/tracking"
)

// IngestLocation accepts one GPS sample (or a client geolocation failure) and
// enqueues it for the tracker worker. Samples are processed asynchronously;
// acceptance here only means the message reached the queue.
func (h *Handler) IngestLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TechID       int64    `json:"techID" validate:"required"`
		ContractorID string   `json:"contractorID" validate:"required"`
		JobID        int64    `json:"jobID" validate:"required"`
		Latitude     *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
		Longitude    *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
		Accuracy     *float64 `json:"accuracy"`
		Heading      *float64 `json:"heading"`
		Speed        *float64 `json:"speed"`
		Timestamp    int64    `json:"timestamp"`
		ErrorCode    string   `json:"errorCode" validate:"omitempty,oneof=permission_denied position_unavailable timeout"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	msg := &domain.LocationMessage{
		TechID: req.TechID,
		JobID:  req.JobID,
	}

	if req.ErrorCode != "" {
		msg.ErrorCode = domain.GeolocationErrorCode(req.ErrorCode)
	} else {
		if req.Latitude == nil || req.Longitude == nil || req.Timestamp == 0 {
			h.errorResponse(w, r, "latitude, longitude and timestamp are required for a location sample")
			return
		}
		msg.Sample = &domain.LocationSample{
			TechID:       req.TechID,
			ContractorID: req.ContractorID,
			JobID:        req.JobID,
			Latitude:     *req.Latitude,
			Longitude:    *req.Longitude,
			Accuracy:     req.Accuracy,
			Heading:      req.Heading,
			Speed:        req.Speed,
			Timestamp:    req.Timestamp,
		}
	}

	if err := tracking.PublishSample(r.Context(), h.config, h.locationChannel, msg); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "location accepted", nil)
}

// GetLatestLocation serves the cached latest sample for a crew member.
func (h *Handler) GetLatestLocation(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(CrewMemberCtx).(*domain.CrewMember)

	sample, err := h.sampleCache.GetLatest(r.Context(), member.ID)
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, "no recent location for this crew member")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "latest location fetched", sample)
}
