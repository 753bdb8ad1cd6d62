package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"carelink-backend/internal/models"
)

type OrganizationRepo struct {
	pool *pgxpool.Pool
}

func NewOrganizationRepo(pool *pgxpool.Pool) *OrganizationRepo {
	return &OrganizationRepo{pool: pool}
}

func (r *OrganizationRepo) Create(ctx context.Context, o *models.Organization) error {
	o.ID = uuid.New()

	query := `INSERT INTO organizations (id, name, kind, address, phone, email, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		o.ID, o.Name, o.Kind, o.Address, o.Phone, o.Email, o.Description,
	).Scan(&o.CreatedAt)
}

func (r *OrganizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	o := &models.Organization{}
	query := `SELECT id, name, kind, address, phone, email, description, created_at
		FROM organizations WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.Kind, &o.Address, &o.Phone, &o.Email, &o.Description, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// List returns organizations, optionally filtered by kind.
func (r *OrganizationRepo) List(ctx context.Context, kind string) ([]*models.Organization, error) {
	query := `SELECT id, name, kind, address, phone, email, description, created_at
		FROM organizations`
	args := []interface{}{}
	if kind != "" {
		query += " WHERE kind = $1"
		args = append(args, kind)
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		o := &models.Organization{}
		err := rows.Scan(&o.ID, &o.Name, &o.Kind, &o.Address, &o.Phone, &o.Email, &o.Description, &o.CreatedAt)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, nil
}

func (r *OrganizationRepo) Update(ctx context.Context, o *models.Organization) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE organizations SET name = $1, kind = $2, address = $3, phone = $4, email = $5, description = $6
		 WHERE id = $7`,
		o.Name, o.Kind, o.Address, o.Phone, o.Email, o.Description, o.ID,
	)
	return err
}

func (r *OrganizationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM organizations WHERE id = $1", id)
	return err
}
