package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, name, logo_url, website, description, employee_size, owner_id, created_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.LogoURL, &c.Website, &c.Description,
		&c.EmployeeSize, &c.OwnerID, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan company: %w", err)
	}
	return &c, nil
}

// CreateCompany inserts a new company owned by ownerID and returns its ID
func (db *DB) CreateCompany(ctx context.Context, c *Company, ownerID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO companies (name, logo_url, website, description, employee_size, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		c.Name, c.LogoURL, c.Website, c.Description, c.EmployeeSize, ownerID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create company: %w", err)
	}
	return id, nil
}

// GetCompany retrieves a company by ID; nil result means not found
func (db *DB) GetCompany(ctx context.Context, companyID uuid.UUID) (*Company, error) {
	return scanCompany(db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, companyID))
}

// ListCompanies retrieves all companies, oldest first
func (db *DB) ListCompanies(ctx context.Context) ([]Company, error) {
	return db.queryCompanies(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY created_at`)
}

// ListCompaniesByOwner retrieves the companies owned by a user
func (db *DB) ListCompaniesByOwner(ctx context.Context, ownerID uuid.UUID) ([]Company, error) {
	return db.queryCompanies(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE owner_id = $1 ORDER BY created_at`, ownerID)
}

func (db *DB) queryCompanies(ctx context.Context, query string, args ...any) ([]Company, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.LogoURL, &c.Website, &c.Description,
			&c.EmployeeSize, &c.OwnerID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, nil
}
