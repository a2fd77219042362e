package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

func (h *Handler) CreateCrewMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContractorID        string                     `json:"contractorID" validate:"required"`
		FullName            string                     `json:"fullName" validate:"required"`
		WorkingHoursProfile domain.WorkingHoursProfile `json:"workingHoursProfile"`
		Skills              []string                   `json:"skills"`
		MaxJobsPerDay       int                        `json:"maxJobsPerDay" validate:"min=0"`
		SeniorityLevel      string                     `json:"seniorityLevel" validate:"required,oneof=apprentice junior journeyman senior master"`
		TimeOff             []domain.DateRange         `json:"timeOff"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	member := &domain.CrewMember{
		ContractorID:        req.ContractorID,
		FullName:            req.FullName,
		WorkingHoursProfile: req.WorkingHoursProfile,
		Skills:              req.Skills,
		MaxJobsPerDay:       req.MaxJobsPerDay,
		SeniorityLevel:      domain.SeniorityLevel(req.SeniorityLevel),
		TimeOff:             req.TimeOff,
	}

	if err := h.repository.CreateCrewMember(member); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "crew member created", member)
}

func (h *Handler) ListCrewMembers(w http.ResponseWriter, r *http.Request) {
	contractorID := r.URL.Query().Get("contractorID")
	if contractorID == "" {
		h.errorResponse(w, r, "contractorID query parameter is required")
		return
	}

	members, err := h.repository.ListCrewMembers(contractorID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "crew members fetched", members)
}

func (h *Handler) GetCrewMember(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(CrewMemberCtx).(*domain.CrewMember)

	h.successResponse(w, r, "crew member fetched", member)
}

func (h *Handler) UpdateCrewMember(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(CrewMemberCtx).(*domain.CrewMember)

	var req struct {
		FullName            *string                     `json:"fullName"`
		WorkingHoursProfile *domain.WorkingHoursProfile `json:"workingHoursProfile"`
		Skills              *[]string                   `json:"skills"`
		MaxJobsPerDay       *int                        `json:"maxJobsPerDay"`
		SeniorityLevel      *string                     `json:"seniorityLevel" validate:"omitempty,oneof=apprentice junior journeyman senior master"`
		TimeOff             *[]domain.DateRange         `json:"timeOff"`
		IsActive            *bool                       `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FullName != nil {
		member.FullName = *req.FullName
	}
	if req.WorkingHoursProfile != nil {
		member.WorkingHoursProfile = *req.WorkingHoursProfile
	}
	if req.Skills != nil {
		member.Skills = *req.Skills
	}
	if req.MaxJobsPerDay != nil {
		member.MaxJobsPerDay = *req.MaxJobsPerDay
	}
	if req.SeniorityLevel != nil {
		member.SeniorityLevel = domain.SeniorityLevel(*req.SeniorityLevel)
	}
	if req.TimeOff != nil {
		member.TimeOff = *req.TimeOff
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateCrewMember(member); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "crew member was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "crew member updated", member)
}

func (h *Handler) DeleteCrewMember(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(CrewMemberCtx).(*domain.CrewMember)

	if err := h.repository.DeleteCrewMember(member.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "crew member deleted", nil)
}
