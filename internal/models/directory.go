package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a clinic, hospital, or pharmacy listed in the care
// directory.
type Organization struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"` // "clinic" | "hospital" | "pharmacy"
	Address     *string   `json:"address"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Doctor struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID *uuid.UUID `json:"organization_id"`
	FullName       string     `json:"full_name"`
	Specialty      string     `json:"specialty"`
	Bio            *string    `json:"bio"`
	Phone          *string    `json:"phone"`
	Email          *string    `json:"email"`
	CreatedAt      time.Time  `json:"created_at"`
}

type UpsertOrganizationRequest struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Description *string `json:"description"`
}

type UpsertDoctorRequest struct {
	OrganizationID *uuid.UUID `json:"organization_id"`
	FullName       string     `json:"full_name"`
	Specialty      string     `json:"specialty"`
	Bio            *string    `json:"bio"`
	Phone          *string    `json:"phone"`
	Email          *string    `json:"email"`
}
