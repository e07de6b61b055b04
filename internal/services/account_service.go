package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
)

// Custom errors for account service
var (
	ErrSupplierAlreadyDecided = errors.New("supplier approval has already been decided")
	ErrCannotDeactivateAdmin  = errors.New("admin accounts cannot be deactivated")
)

// AccountService handles admin-side account management
// #INTEGRATION_POINT: Used by account handler; all operations require admin role
type AccountService interface {
	// ListSuppliers lists supplier profiles, optionally filtered by approval status
	ListSuppliers(ctx context.Context, status *models.SupplierStatus, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Supplier], error)

	// GetSupplier returns a single supplier profile
	GetSupplier(ctx context.Context, id primitive.ObjectID) (*models.Supplier, error)

	// ApproveSupplier marks a pending supplier as approved
	ApproveSupplier(ctx context.Context, supplierID, adminID primitive.ObjectID) (*models.Supplier, error)

	// RejectSupplier marks a pending supplier as rejected
	RejectSupplier(ctx context.Context, supplierID, adminID primitive.ObjectID) (*models.Supplier, error)

	// ListUsers lists user accounts, optionally filtered by role
	ListUsers(ctx context.Context, role *models.UserRole, opts repository.PaginationOptions) (*repository.PaginatedResult[models.User], error)

	// SetUserActive activates or deactivates an account
	SetUserActive(ctx context.Context, userID primitive.ObjectID, active bool) (*models.User, error)

	// PendingSupplierCount counts suppliers awaiting review
	PendingSupplierCount(ctx context.Context) (int64, error)
}

// accountService implements AccountService
type accountService struct {
	userRepo     repository.UserRepository
	supplierRepo repository.SupplierRepository
}

// NewAccountService creates a new account service
func NewAccountService(
	userRepo repository.UserRepository,
	supplierRepo repository.SupplierRepository,
) AccountService {
	return &accountService{
		userRepo:     userRepo,
		supplierRepo: supplierRepo,
	}
}

// ListSuppliers lists supplier profiles, optionally filtered by approval status
func (s *accountService) ListSuppliers(ctx context.Context, status *models.SupplierStatus, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Supplier], error) {
	return s.supplierRepo.ListByStatus(ctx, status, opts)
}

// GetSupplier returns a single supplier profile
func (s *accountService) GetSupplier(ctx context.Context, id primitive.ObjectID) (*models.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, id)
}

// ApproveSupplier marks a pending supplier as approved
// #BUSINESS_RULE: Only pending suppliers can be decided; approval is not re-runnable
func (s *accountService) ApproveSupplier(ctx context.Context, supplierID, adminID primitive.ObjectID) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsPending() {
		return nil, ErrSupplierAlreadyDecided
	}

	supplier.Approve(adminID)
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to approve supplier: %w", err)
	}
	return supplier, nil
}

// RejectSupplier marks a pending supplier as rejected
func (s *accountService) RejectSupplier(ctx context.Context, supplierID, adminID primitive.ObjectID) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsPending() {
		return nil, ErrSupplierAlreadyDecided
	}

	supplier.Reject(adminID)
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to reject supplier: %w", err)
	}
	return supplier, nil
}

// ListUsers lists user accounts, optionally filtered by role
func (s *accountService) ListUsers(ctx context.Context, role *models.UserRole, opts repository.PaginationOptions) (*repository.PaginatedResult[models.User], error) {
	return s.userRepo.List(ctx, role, opts)
}

// SetUserActive activates or deactivates an account
// #BUSINESS_RULE: Admin accounts stay active; deactivation is for portal users only
func (s *accountService) SetUserActive(ctx context.Context, userID primitive.ObjectID, active bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() && !active {
		return nil, ErrCannotDeactivateAdmin
	}

	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// PendingSupplierCount counts suppliers awaiting review
func (s *accountService) PendingSupplierCount(ctx context.Context) (int64, error) {
	return s.supplierRepo.CountByStatus(ctx, models.SupplierStatusPending)
}
