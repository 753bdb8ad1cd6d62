package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"carelink-backend/internal/models"
	"carelink-backend/internal/repository"
)

type DoctorHandler struct {
	repo *repository.DoctorRepo
}

func NewDoctorHandler(repo *repository.DoctorRepo) *DoctorHandler {
	return &DoctorHandler{repo: repo}
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDoctor(w, r)
	if !ok {
		return
	}

	doctor := &models.Doctor{
		OrganizationID: req.OrganizationID,
		FullName:       req.FullName,
		Specialty:      req.Specialty,
		Bio:            req.Bio,
		Phone:          req.Phone,
		Email:          req.Email,
	}
	if err := h.repo.Create(r.Context(), doctor); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create doctor", r))
		return
	}

	writeJSON(w, http.StatusCreated, doctor)
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	var organizationID *uuid.UUID
	if raw := r.URL.Query().Get("organization_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid organization ID", r))
			return
		}
		organizationID = &id
	}

	doctors, err := h.repo.List(r.Context(), organizationID, r.URL.Query().Get("specialty"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list doctors", r))
		return
	}
	if doctors == nil {
		doctors = []*models.Doctor{}
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid doctor ID", r))
		return
	}

	doctor, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Doctor not found", r))
		return
	}

	writeJSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid doctor ID", r))
		return
	}

	doctor, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Doctor not found", r))
		return
	}

	req, ok := decodeDoctor(w, r)
	if !ok {
		return
	}

	doctor.OrganizationID = req.OrganizationID
	doctor.FullName = req.FullName
	doctor.Specialty = req.Specialty
	doctor.Bio = req.Bio
	doctor.Phone = req.Phone
	doctor.Email = req.Email

	if err := h.repo.Update(r.Context(), doctor); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update doctor", r))
		return
	}

	writeJSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid doctor ID", r))
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete doctor", r))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeDoctor(w http.ResponseWriter, r *http.Request) (*models.UpsertDoctorRequest, bool) {
	var req models.UpsertDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return nil, false
	}
	if strings.TrimSpace(req.FullName) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Full name is required", r))
		return nil, false
	}
	if strings.TrimSpace(req.Specialty) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Specialty is required", r))
		return nil, false
	}
	return &req, true
}
