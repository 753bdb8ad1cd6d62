package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"carelink-backend/internal/models"
)

type AppointmentRepo struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepo(pool *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{pool: pool}
}

func (r *AppointmentRepo) Create(ctx context.Context, a *models.Appointment) error {
	a.ID = uuid.New()
	if a.Status == "" {
		a.Status = models.AppointmentPending
	}

	query := `INSERT INTO appointments (id, user_id, doctor_id, scheduled_at, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		a.ID, a.UserID, a.DoctorID, a.ScheduledAt, a.Reason, a.Status,
	).Scan(&a.CreatedAt)
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	a := &models.Appointment{}
	query := `SELECT id, user_id, doctor_id, scheduled_at, reason, status, created_at
		FROM appointments WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.DoctorID, &a.ScheduledAt, &a.Reason, &a.Status, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Appointment, error) {
	query := `SELECT id, user_id, doctor_id, scheduled_at, reason, status, created_at
		FROM appointments WHERE user_id = $1 ORDER BY scheduled_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		a := &models.Appointment{}
		err := rows.Scan(&a.ID, &a.UserID, &a.DoctorID, &a.ScheduledAt, &a.Reason, &a.Status, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, "UPDATE appointments SET status = $1 WHERE id = $2", status, id)
	return err
}
