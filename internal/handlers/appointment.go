package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"carelink-backend/internal/middleware"
	"carelink-backend/internal/models"
	"carelink-backend/internal/repository"
)

type AppointmentHandler struct {
	appointmentRepo *repository.AppointmentRepo
	doctorRepo      *repository.DoctorRepo
}

func NewAppointmentHandler(appointmentRepo *repository.AppointmentRepo, doctorRepo *repository.DoctorRepo) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
	}
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req models.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.DoctorID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Doctor ID is required", r))
		return
	}
	if req.ScheduledAt.Before(time.Now()) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Scheduled time must be in the future", r))
		return
	}
	if _, err := h.doctorRepo.GetByID(r.Context(), req.DoctorID); err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Doctor not found", r))
		return
	}

	appointment := &models.Appointment{
		UserID:      middleware.GetUserID(r.Context()),
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
		Reason:      req.Reason,
		Status:      models.AppointmentPending,
	}
	if err := h.appointmentRepo.Create(r.Context(), appointment); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to book appointment", r))
		return
	}

	writeJSON(w, http.StatusCreated, appointment)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentRepo.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list appointments", r))
		return
	}
	if appointments == nil {
		appointments = []*models.Appointment{}
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.ownedAppointment(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, appointment)
}

// Cancel marks a pending or confirmed appointment cancelled. Completed and
// already-cancelled appointments cannot transition.
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.ownedAppointment(w, r)
	if !ok {
		return
	}

	if appointment.Status != models.AppointmentPending && appointment.Status != models.AppointmentConfirmed {
		writeJSON(w, http.StatusConflict, errorResp("CONFLICT", "Appointment can no longer be cancelled", r))
		return
	}

	if err := h.appointmentRepo.UpdateStatus(r.Context(), appointment.ID, models.AppointmentCancelled); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to cancel appointment", r))
		return
	}
	appointment.Status = models.AppointmentCancelled

	writeJSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) ownedAppointment(w http.ResponseWriter, r *http.Request) (*models.Appointment, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid appointment ID", r))
		return nil, false
	}

	appointment, err := h.appointmentRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Appointment not found", r))
		return nil, false
	}

	if appointment.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return nil, false
	}

	return appointment, true
}
