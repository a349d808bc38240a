package db

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a company profile row. OwnerID links to the employer
// account that created it; jobs may only be posted under a company by its
// owner.
type Company struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	LogoURL      string     `json:"logoUrl"`
	Website      *string    `json:"website,omitempty"`
	Description  *string    `json:"description,omitempty"`
	EmployeeSize *string    `json:"employeeSize,omitempty"`
	OwnerID      *uuid.UUID `json:"ownerId,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
