package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/utils"
)

func (h *Handler) CreateAvailabilityBlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContractorID   string    `json:"contractorID" validate:"required"`
		TechID         int64     `json:"techID" validate:"required"`
		Type           string    `json:"type" validate:"required,oneof=personal medical family training partial-day recurring sick emergency calendar-synced"`
		Title          string    `json:"title"`
		StartDate      time.Time `json:"startDate" validate:"required"`
		EndDate        time.Time `json:"endDate" validate:"required"`
		StartTime      *string   `json:"startTime"`
		EndTime        *string   `json:"endTime"`
		IsRecurring    bool      `json:"isRecurring"`
		RecurrenceRule string    `json:"recurrenceRule"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.EndDate.Before(req.StartDate) {
		h.errorResponse(w, r, "end date cannot be before start date")
		return
	}

	// a block is timed with both bounds or all-day with neither
	if (req.StartTime == nil) != (req.EndTime == nil) {
		h.errorResponse(w, r, "startTime and endTime must be provided together")
		return
	}
	if req.StartTime != nil {
		start, err := utils.ParseClock(*req.StartTime)
		if err != nil {
			h.errorResponse(w, r, err.Error())
			return
		}
		end, err := utils.ParseClock(*req.EndTime)
		if err != nil {
			h.errorResponse(w, r, err.Error())
			return
		}
		if end <= start {
			h.errorResponse(w, r, "end time must be after start time")
			return
		}
	}

	block := &domain.AvailabilityBlock{
		ContractorID:   req.ContractorID,
		TechID:         req.TechID,
		Type:           domain.BlockType(req.Type),
		Title:          req.Title,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		IsRecurring:    req.IsRecurring,
		RecurrenceRule: req.RecurrenceRule,
		Status:         domain.BlockActive,
	}

	if err := h.repository.CreateAvailabilityBlock(block); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "availability_blocks_tech_id_fkey":
				h.errorResponse(w, r, "technician does not exist")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "availability block created", block)
}

func (h *Handler) ListAvailabilityBlocks(w http.ResponseWriter, r *http.Request) {
	contractorID := r.URL.Query().Get("contractorID")
	if contractorID == "" {
		h.errorResponse(w, r, "contractorID query parameter is required")
		return
	}

	blocks, err := h.repository.ListActiveAvailabilityBlocks(contractorID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability blocks fetched", blocks)
}

func (h *Handler) CancelAvailabilityBlock(w http.ResponseWriter, r *http.Request) {
	block := r.Context().Value(AvailabilityBlockCtx).(*domain.AvailabilityBlock)

	if block.Status == domain.BlockCancelled {
		h.errorResponse(w, r, "availability block is already cancelled")
		return
	}

	if err := h.repository.CancelAvailabilityBlock(block); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "availability block was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "availability block cancelled", block)
}
