package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/app/repositories"
	"github.com/kin-platform/kin-backend/internal/pkg/filestorage"
	"github.com/kin-platform/kin-backend/internal/pkg/logger"
)

// AdvisorService implements advisor profile management
type AdvisorService struct {
	advisorRepo repositories.IAdvisorRepository
	storage     *filestorage.LocalStorage
}

// NewAdvisorService creates a new AdvisorService
func NewAdvisorService(advisorRepo repositories.IAdvisorRepository, storage *filestorage.LocalStorage) *AdvisorService {
	return &AdvisorService{
		advisorRepo: advisorRepo,
		storage:     storage,
	}
}

// CreateAdvisor creates an advisor profile, storing the photo when present
func (s *AdvisorService) CreateAdvisor(ctx context.Context, req *dto.CreateAdvisorRequest, photo *multipart.FileHeader) (*models.Advisor, error) {
	advisor := &models.Advisor{
		Name:   req.Name,
		Role:   req.Role,
		Email:  req.Email,
		Mobile: req.Mobile,
	}

	if photo != nil {
		saved, err := s.storage.SaveFile(photo, "advisors")
		if err != nil {
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		advisor.Photo = &saved
	}

	id, err := s.advisorRepo.Create(ctx, advisor)
	if err != nil {
		if advisor.Photo != nil {
			_ = s.storage.DeleteFile(*advisor.Photo)
		}
		return nil, err
	}
	advisor.ID = id

	logger.Info().Int64("advisorID", id).Str("name", advisor.Name).Msg("Advisor created")
	return advisor, nil
}

// BulkCreateAdvisors creates several advisors atomically, without photos
func (s *AdvisorService) BulkCreateAdvisors(ctx context.Context, req *dto.BulkCreateAdvisorsRequest) ([]*models.Advisor, error) {
	advisors := make([]*models.Advisor, 0, len(req.Advisors))
	for _, item := range req.Advisors {
		advisors = append(advisors, &models.Advisor{
			Name:   item.Name,
			Role:   item.Role,
			Email:  item.Email,
			Mobile: item.Mobile,
		})
	}

	if err := s.advisorRepo.BulkCreate(ctx, advisors); err != nil {
		return nil, err
	}

	logger.Info().Int("count", len(advisors)).Msg("Advisors bulk created")
	return advisors, nil
}

// ListAdvisors returns a page of advisors with the total
func (s *AdvisorService) ListAdvisors(ctx context.Context, offset uint64, limit int) ([]*models.Advisor, int64, error) {
	return s.advisorRepo.List(ctx, offset, limit)
}

// GetAdvisor returns one advisor by id
func (s *AdvisorService) GetAdvisor(ctx context.Context, id int64) (*models.Advisor, error) {
	return s.advisorRepo.GetByID(ctx, id)
}

// UpdateAdvisor updates advisor fields, optionally replacing the photo
func (s *AdvisorService) UpdateAdvisor(ctx context.Context, id int64, req *dto.UpdateAdvisorRequest, photo *multipart.FileHeader) (*models.Advisor, error) {
	advisor, err := s.advisorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		advisor.Name = *req.Name
	}
	if req.Role != nil {
		advisor.Role = *req.Role
	}
	if req.Email != nil {
		advisor.Email = *req.Email
	}
	if req.Mobile != nil {
		advisor.Mobile = req.Mobile
	}

	oldPhoto := advisor.Photo
	if photo != nil {
		saved, err := s.storage.SaveFile(photo, "advisors")
		if err != nil {
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		advisor.Photo = &saved
	}

	if err := s.advisorRepo.Update(ctx, advisor); err != nil {
		if photo != nil && advisor.Photo != nil {
			_ = s.storage.DeleteFile(*advisor.Photo)
		}
		return nil, err
	}

	if photo != nil && oldPhoto != nil {
		_ = s.storage.DeleteFile(*oldPhoto)
	}
	return advisor, nil
}

// DeleteAdvisor removes an advisor and cleans up the stored photo
func (s *AdvisorService) DeleteAdvisor(ctx context.Context, id int64) error {
	advisor, err := s.advisorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.advisorRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	if advisor.Photo != nil {
		_ = s.storage.DeleteFile(*advisor.Photo)
	}

	logger.Info().Int64("advisorID", id).Msg("Advisor deleted")
	return nil
}

// BulkDeleteAdvisors removes advisors by id and returns how many went away
func (s *AdvisorService) BulkDeleteAdvisors(ctx context.Context, req *dto.BulkDeleteAdvisorsRequest) (int64, error) {
	deleted, err := s.advisorRepo.BulkDelete(ctx, req.IDs)
	if err != nil {
		return 0, err
	}

	logger.Info().Int64("deleted", deleted).Msg("Advisors bulk deleted")
	return deleted, nil
}
