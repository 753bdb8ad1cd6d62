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

var organizationKinds = map[string]bool{
	"clinic":   true,
	"hospital": true,
	"pharmacy": true,
}

type OrganizationHandler struct {
	repo *repository.OrganizationRepo
}

func NewOrganizationHandler(repo *repository.OrganizationRepo) *OrganizationHandler {
	return &OrganizationHandler{repo: repo}
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOrganization(w, r)
	if !ok {
		return
	}

	org := &models.Organization{
		Name:        req.Name,
		Kind:        req.Kind,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Description: req.Description,
	}
	if err := h.repo.Create(r.Context(), org); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create organization", r))
		return
	}

	writeJSON(w, http.StatusCreated, org)
}

func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "" && !organizationKinds[kind] {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Kind must be clinic, hospital, or pharmacy", r))
		return
	}

	orgs, err := h.repo.List(r.Context(), kind)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list organizations", r))
		return
	}
	if orgs == nil {
		orgs = []*models.Organization{}
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid organization ID", r))
		return
	}

	org, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Organization not found", r))
		return
	}

	writeJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid organization ID", r))
		return
	}

	org, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Organization not found", r))
		return
	}

	req, ok := decodeOrganization(w, r)
	if !ok {
		return
	}

	org.Name = req.Name
	org.Kind = req.Kind
	org.Address = req.Address
	org.Phone = req.Phone
	org.Email = req.Email
	org.Description = req.Description

	if err := h.repo.Update(r.Context(), org); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update organization", r))
		return
	}

	writeJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid organization ID", r))
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete organization", r))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeOrganization(w http.ResponseWriter, r *http.Request) (*models.UpsertOrganizationRequest, bool) {
	var req models.UpsertOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return nil, false
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Name is required", r))
		return nil, false
	}
	if !organizationKinds[req.Kind] {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Kind must be clinic, hospital, or pharmacy", r))
		return nil, false
	}
	return &req, true
}
