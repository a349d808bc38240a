package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/config"
	"github.com/claritycareer/claritycareer/internal/db"
	"github.com/claritycareer/claritycareer/internal/role"
	"github.com/claritycareer/claritycareer/internal/types"
)

// UserStore is the subset of database methods the user service needs.
type UserStore interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, email, displayName, passwordHash string, r role.Role) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	ListWorkExperiences(ctx context.Context, userID uuid.UUID) ([]db.WorkExperience, error)
	ListEducations(ctx context.Context, userID uuid.UUID) ([]db.Education, error)
}

// UserService provides business logic for account operations
type UserService struct {
	db             UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(db UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// toUserProfile converts db.User to the API profile shape, excluding the
// password hash. Work and education history are attached by the caller.
func toUserProfile(dbUser *db.User) *types.UserProfile {
	if dbUser == nil {
		return nil
	}
	profile := &types.UserProfile{
		ID:             dbUser.ID,
		Email:          dbUser.Email,
		DisplayName:    dbUser.DisplayName,
		PhotoURL:       dbUser.PhotoURL,
		Role:           dbUser.Role,
		Phone:          dbUser.Phone,
		PortfolioURL:   dbUser.PortfolioURL,
		ResumeURL:      dbUser.ResumeURL,
		Skills:         dbUser.Skills,
		SavedJobs:      dbUser.SavedJobs,
		WorkExperience: []types.WorkExperienceEntry{},
		Education:      []types.EducationEntry{},
		CreatedAt:      dbUser.CreatedAt,
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.SavedJobs == nil {
		profile.SavedJobs = []uuid.UUID{}
	}
	return profile
}

// Register creates a new account with the requested role
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.UserProfile, error) {
	accountRole, err := role.Parse(req.Role)
	if err != nil {
		return nil, &ErrValidation{Field: "role", Message: err.Error()}
	}

	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateUser(ctx, req.Email, req.DisplayName, passwordHash, accountRole)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	return toUserProfile(dbUser), nil
}

// Login authenticates a user and returns their profile
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.UserProfile, error) {
	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: Always return generic error if user not found or password wrong
	if dbUser == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return toUserProfile(dbUser), nil
}

// Profile assembles the full account view with embedded work and education
// history.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}

	profile := toUserProfile(dbUser)

	exps, err := s.db.ListWorkExperiences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work experiences: %w", err)
	}
	for _, e := range exps {
		profile.WorkExperience = append(profile.WorkExperience, types.WorkExperienceEntry{
			ID:          e.ID,
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}

	edus, err := s.db.ListEducations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list educations: %w", err)
	}
	for _, e := range edus {
		profile.Education = append(profile.Education, types.EducationEntry{
			ID:           e.ID,
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
		})
	}

	return profile, nil
}

// UpdatePassword updates a user's password
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, dbUser.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.db.UpdatePassword(ctx, userID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// DeleteAccount removes a user after confirming their password
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(password, dbUser.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	if err := s.db.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
