package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"carelink-backend/internal/models"
)

type DoctorRepo struct {
	pool *pgxpool.Pool
}

func NewDoctorRepo(pool *pgxpool.Pool) *DoctorRepo {
	return &DoctorRepo{pool: pool}
}

func (r *DoctorRepo) Create(ctx context.Context, d *models.Doctor) error {
	d.ID = uuid.New()

	query := `INSERT INTO doctors (id, organization_id, full_name, specialty, bio, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		d.ID, d.OrganizationID, d.FullName, d.Specialty, d.Bio, d.Phone, d.Email,
	).Scan(&d.CreatedAt)
}

func (r *DoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	d := &models.Doctor{}
	query := `SELECT id, organization_id, full_name, specialty, bio, phone, email, created_at
		FROM doctors WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.OrganizationID, &d.FullName, &d.Specialty, &d.Bio, &d.Phone, &d.Email, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// List returns doctors, optionally filtered by organization and specialty.
func (r *DoctorRepo) List(ctx context.Context, organizationID *uuid.UUID, specialty string) ([]*models.Doctor, error) {
	query := `SELECT id, organization_id, full_name, specialty, bio, phone, email, created_at
		FROM doctors`
	args := []interface{}{}
	where := ""

	if organizationID != nil {
		args = append(args, *organizationID)
		where = fmt.Sprintf(" WHERE organization_id = $%d", len(args))
	}
	if specialty != "" {
		args = append(args, specialty)
		if where == "" {
			where = fmt.Sprintf(" WHERE specialty = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND specialty = $%d", len(args))
		}
	}
	query += where + " ORDER BY full_name ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []*models.Doctor
	for rows.Next() {
		d := &models.Doctor{}
		err := rows.Scan(&d.ID, &d.OrganizationID, &d.FullName, &d.Specialty, &d.Bio, &d.Phone, &d.Email, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, nil
}

func (r *DoctorRepo) Update(ctx context.Context, d *models.Doctor) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE doctors SET organization_id = $1, full_name = $2, specialty = $3, bio = $4, phone = $5, email = $6
		 WHERE id = $7`,
		d.OrganizationID, d.FullName, d.Specialty, d.Bio, d.Phone, d.Email, d.ID,
	)
	return err
}

func (r *DoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM doctors WHERE id = $1", id)
	return err
}
