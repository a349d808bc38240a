package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claritycareer/claritycareer/internal/role"
)

// ErrEntryNotFound reports a work-experience or education mutation that
// matched no entry owned by the acting user.
var ErrEntryNotFound = errors.New("profile entry not found")

const userColumns = `id, email, display_name, photo_url, role, phone, portfolio_url,
	resume_url, skills, saved_jobs, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PhotoURL, &u.Role, &u.Phone,
		&u.PortfolioURL, &u.ResumeURL, &u.Skills, &u.SavedJobs, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user profile and returns its ID
func (db *DB) CreateUser(ctx context.Context, email, displayName, passwordHash string, r role.Role) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (email, display_name, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		email, displayName, passwordHash, r,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	return scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
}

// GetUserByEmail retrieves a user by email
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// CheckEmailExists reports whether an email is already registered
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UpdatePassword replaces a user's password hash
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateProfile shallow-merges the non-nil fields of upd into the user row.
func (db *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) error {
	query := `UPDATE users SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	set := func(col string, val any) {
		query += fmt.Sprintf(", %s = $%d", col, argNum)
		args = append(args, val)
		argNum++
	}

	if upd.DisplayName != nil {
		set("display_name", *upd.DisplayName)
	}
	if upd.PhotoURL != nil {
		set("photo_url", *upd.PhotoURL)
	}
	if upd.Phone != nil {
		set("phone", *upd.Phone)
	}
	if upd.PortfolioURL != nil {
		set("portfolio_url", *upd.PortfolioURL)
	}
	if upd.ResumeURL != nil {
		set("resume_url", *upd.ResumeURL)
	}
	if upd.Skills != nil {
		set("skills", upd.Skills)
	}

	query += fmt.Sprintf(" WHERE id = $%d", argNum)
	args = append(args, userID)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// ToggleSavedJob adds jobID to the user's saved jobs if absent and removes
// it if present, in a single statement so concurrent toggles cannot clobber
// each other. It returns true when the job is saved after the toggle.
func (db *DB) ToggleSavedJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var saved bool
	err := db.pool.QueryRow(ctx,
		`UPDATE users
		 SET saved_jobs = CASE
		         WHEN $2 = ANY(saved_jobs) THEN array_remove(saved_jobs, $2)
		         ELSE array_append(saved_jobs, $2)
		     END,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING $2 = ANY(saved_jobs)`,
		userID, jobID,
	).Scan(&saved)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, fmt.Errorf("user not found: %s", userID)
		}
		return false, fmt.Errorf("failed to toggle saved job: %w", err)
	}
	return saved, nil
}

// DeleteUser removes a user and their embedded history (via cascade)
func (db *DB) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Work Experience Methods
// -----------------------------------------------------------------------------

// UpsertWorkExperience inserts an entry or, when its ID already exists,
// replaces that entry in place. Keyed upserts keep concurrent edits to
// different entries from overwriting each other. The conflict update is
// scoped to the owner, so an ID belonging to another user's entry updates
// nothing and reports not found.
func (db *DB) UpsertWorkExperience(ctx context.Context, exp *WorkExperience) (uuid.UUID, error) {
	if exp.ID == uuid.Nil {
		exp.ID = uuid.New()
	}
	result, err := db.pool.Exec(ctx,
		`INSERT INTO work_experiences (id, user_id, title, company, location, start_date, end_date, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $3, company = $4, location = $5,
		     start_date = $6, end_date = $7, description = $8
		 WHERE work_experiences.user_id = $2`,
		exp.ID, exp.UserID, exp.Title, exp.Company, exp.Location,
		exp.StartDate, exp.EndDate, exp.Description,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert work experience: %w", err)
	}
	if result.RowsAffected() == 0 {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrEntryNotFound, exp.ID)
	}
	return exp.ID, nil
}

// ListWorkExperiences returns a user's work history, newest first
func (db *DB) ListWorkExperiences(ctx context.Context, userID uuid.UUID) ([]WorkExperience, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, company, location, start_date, end_date, description
		 FROM work_experiences WHERE user_id = $1 ORDER BY start_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list work experiences: %w", err)
	}
	defer rows.Close()

	var exps []WorkExperience
	for rows.Next() {
		var e WorkExperience
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Company, &e.Location,
			&e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan work experience: %w", err)
		}
		exps = append(exps, e)
	}
	return exps, nil
}

// DeleteWorkExperience removes one entry, scoped to its owner
func (db *DB) DeleteWorkExperience(ctx context.Context, userID, expID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM work_experiences WHERE id = $1 AND user_id = $2`, expID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete work experience: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, expID)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Education Methods
// -----------------------------------------------------------------------------

// UpsertEducation inserts an entry or replaces the entry with the same ID.
// The conflict update is scoped to the owner, matching UpsertWorkExperience.
func (db *DB) UpsertEducation(ctx context.Context, edu *Education) (uuid.UUID, error) {
	if edu.ID == uuid.Nil {
		edu.ID = uuid.New()
	}
	result, err := db.pool.Exec(ctx,
		`INSERT INTO educations (id, user_id, school, degree, field_of_study, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		     school = $3, degree = $4, field_of_study = $5, start_date = $6, end_date = $7
		 WHERE educations.user_id = $2`,
		edu.ID, edu.UserID, edu.School, edu.Degree, edu.FieldOfStudy, edu.StartDate, edu.EndDate,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert education: %w", err)
	}
	if result.RowsAffected() == 0 {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrEntryNotFound, edu.ID)
	}
	return edu.ID, nil
}

// ListEducations returns a user's education history, newest first
func (db *DB) ListEducations(ctx context.Context, userID uuid.UUID) ([]Education, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, school, degree, field_of_study, start_date, end_date
		 FROM educations WHERE user_id = $1 ORDER BY start_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list educations: %w", err)
	}
	defer rows.Close()

	var edus []Education
	for rows.Next() {
		var e Education
		if err := rows.Scan(&e.ID, &e.UserID, &e.School, &e.Degree, &e.FieldOfStudy,
			&e.StartDate, &e.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan education: %w", err)
		}
		edus = append(edus, e)
	}
	return edus, nil
}

// DeleteEducation removes one entry, scoped to its owner
func (db *DB) DeleteEducation(ctx context.Context, userID, eduID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM educations WHERE id = $1 AND user_id = $2`, eduID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete education: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, eduID)
	}
	return nil
}
