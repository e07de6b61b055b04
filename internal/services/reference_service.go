package services

import (
	"context"

	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
)

// ReferenceService exposes the CPV and NUTS reference catalogs
// #INTEGRATION_POINT: Read-only lookups used by registration and questionnaire forms
type ReferenceService interface {
	// ListCPV lists CPV codes, optionally scoped to children of a parent code
	ListCPV(ctx context.Context, parentCode *string) ([]models.CPVCode, error)

	// GetCPVByCode finds a CPV code by its code string
	GetCPVByCode(ctx context.Context, code string) (*models.CPVCode, error)

	// ListNUTS lists NUTS codes, optionally filtered by level
	ListNUTS(ctx context.Context, level *int) ([]models.NUTSCode, error)
}

// referenceService implements ReferenceService
type referenceService struct {
	referenceRepo repository.ReferenceRepository
}

// NewReferenceService creates a new reference data service
func NewReferenceService(referenceRepo repository.ReferenceRepository) ReferenceService {
	return &referenceService{referenceRepo: referenceRepo}
}

func (s *referenceService) ListCPV(ctx context.Context, parentCode *string) ([]models.CPVCode, error) {
	return s.referenceRepo.ListCPV(ctx, parentCode)
}

func (s *referenceService) GetCPVByCode(ctx context.Context, code string) (*models.CPVCode, error) {
	return s.referenceRepo.GetCPVByCode(ctx, code)
}

func (s *referenceService) ListNUTS(ctx context.Context, level *int) ([]models.NUTSCode, error) {
	return s.referenceRepo.ListNUTS(ctx, level)
}
