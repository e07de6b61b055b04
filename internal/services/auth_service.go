// Package services provides business logic implementations.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prequaliq/prequaliq_backend/internal/auth"
	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
)

// Custom errors for auth service
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrWeakPassword       = errors.New("password does not meet the policy")
)

// AuthService handles registration, login and token refresh
// #INTEGRATION_POINT: Used by auth handler
type AuthService interface {
	// RegisterSupplier creates a supplier account with a pending profile
	RegisterSupplier(ctx context.Context, req RegisterSupplierRequest) (*models.User, *models.Supplier, error)

	// RegisterProcuringEntity creates a procuring entity account and profile
	RegisterProcuringEntity(ctx context.Context, req RegisterEntityRequest) (*models.User, *models.ProcuringEntity, error)

	// Login authenticates a user and returns a token pair
	Login(ctx context.Context, email, password string) (*auth.TokenPair, *models.User, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)

	// GetProfile returns the user together with its role profile
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*Profile, error)
}

// RegisterSupplierRequest carries the data for supplier self-registration
type RegisterSupplierRequest struct {
	Email              string
	Password           string
	ContactName        string
	CompanyName        string
	RegistrationNumber string
	Address            string
	NUTSCodeID         *primitive.ObjectID
	CPVCodeIDs         []primitive.ObjectID
}

// RegisterEntityRequest carries the data for procuring entity registration
type RegisterEntityRequest struct {
	Email        string
	Password     string
	ContactName  string
	EntityName   string
	Description  string
	Address      string
	ContactEmail string
}

// Profile bundles a user with its role-specific profile
type Profile struct {
	User            *models.User            `json:"user"`
	Supplier        *models.Supplier        `json:"supplier,omitempty"`
	ProcuringEntity *models.ProcuringEntity `json:"procuring_entity,omitempty"`
}

// authService implements AuthService
type authService struct {
	userRepo     repository.UserRepository
	supplierRepo repository.SupplierRepository
	entityRepo   repository.ProcuringEntityRepository
	jwtService   auth.JWTService
	passwords    auth.PasswordService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	supplierRepo repository.SupplierRepository,
	entityRepo repository.ProcuringEntityRepository,
	jwtService auth.JWTService,
	passwords auth.PasswordService,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		supplierRepo: supplierRepo,
		entityRepo:   entityRepo,
		jwtService:   jwtService,
		passwords:    passwords,
	}
}

// RegisterSupplier creates a supplier account with a pending profile
// #BUSINESS_RULE: New suppliers start PENDING and cannot save responses until approved
func (s *authService) RegisterSupplier(ctx context.Context, req RegisterSupplierRequest) (*models.User, *models.Supplier, error) {
	user, err := s.createUser(ctx, req.Email, req.Password, req.ContactName, models.UserRoleSupplier)
	if err != nil {
		return nil, nil, err
	}

	supplier := &models.Supplier{
		UserID:             user.ID,
		CompanyName:        strings.TrimSpace(req.CompanyName),
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		Address:            strings.TrimSpace(req.Address),
		NUTSCodeID:         req.NUTSCodeID,
		CPVCodeIDs:         req.CPVCodeIDs,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, nil, fmt.Errorf("failed to create supplier profile: %w", err)
	}

	return user, supplier, nil
}

// RegisterProcuringEntity creates a procuring entity account and profile
func (s *authService) RegisterProcuringEntity(ctx context.Context, req RegisterEntityRequest) (*models.User, *models.ProcuringEntity, error) {
	user, err := s.createUser(ctx, req.Email, req.Password, req.ContactName, models.UserRoleProcuringEntity)
	if err != nil {
		return nil, nil, err
	}

	contactEmail := strings.TrimSpace(req.ContactEmail)
	if contactEmail == "" {
		contactEmail = user.Email
	}

	entity := &models.ProcuringEntity{
		UserID:       user.ID,
		Name:         strings.TrimSpace(req.EntityName),
		Description:  strings.TrimSpace(req.Description),
		Address:      strings.TrimSpace(req.Address),
		ContactEmail: contactEmail,
	}
	if err := s.entityRepo.Create(ctx, entity); err != nil {
		return nil, nil, fmt.Errorf("failed to create procuring entity profile: %w", err)
	}

	return user, entity, nil
}

func (s *authService) createUser(ctx context.Context, email, password, name string, role models.UserRole) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, models.ErrInvalidInput
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrEmailAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns a token pair
// #SECURITY_CONCERN: The same error is returned for unknown email and wrong
// password so accounts cannot be enumerated
func (s *authService) Login(ctx context.Context, email, password string) (*auth.TokenPair, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.passwords.Compare(user.PasswordHash, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.CanLogin() {
		return nil, nil, ErrAccountInactive
	}

	profileID, err := s.profileID(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(user.ID.Hex(), profileID, string(user.Role))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is informational
		return pair, user, nil
	}

	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, auth.ErrInvalidClaims
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.CanLogin() {
		return nil, ErrAccountInactive
	}

	profileID, err := s.profileID(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(user.ID.Hex(), profileID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return pair, nil
}

// GetProfile returns the user together with its role profile
func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: user}
	switch user.Role {
	case models.UserRoleSupplier:
		supplier, err := s.supplierRepo.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, models.ErrSupplierNotFound) {
			return nil, err
		}
		profile.Supplier = supplier
	case models.UserRoleProcuringEntity:
		entity, err := s.entityRepo.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, models.ErrEntityNotFound) {
			return nil, err
		}
		profile.ProcuringEntity = entity
	}
	return profile, nil
}

// profileID resolves the role-specific profile ID embedded in JWT claims
func (s *authService) profileID(ctx context.Context, user *models.User) (string, error) {
	switch user.Role {
	case models.UserRoleSupplier:
		supplier, err := s.supplierRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, models.ErrSupplierNotFound) {
				return "", nil
			}
			return "", fmt.Errorf("failed to look up supplier profile: %w", err)
		}
		return supplier.ID.Hex(), nil
	case models.UserRoleProcuringEntity:
		entity, err := s.entityRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, models.ErrEntityNotFound) {
				return "", nil
			}
			return "", fmt.Errorf("failed to look up entity profile: %w", err)
		}
		return entity.ID.Hex(), nil
	}
	return "", nil
}
