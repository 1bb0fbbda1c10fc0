package services

import (
	"context"
	"sort"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/app/repositories"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
	"github.com/kin-platform/kin-backend/internal/pkg/logger"
)

// CommitteeService implements executive committee management and the member
// roster.
type CommitteeService struct {
	committeeRepo  repositories.ICommitteeRepository
	membershipRepo repositories.IMembershipRepository
	userRepo       repositories.IUserRepository
}

// NewCommitteeService creates a new CommitteeService
func NewCommitteeService(
	committeeRepo repositories.ICommitteeRepository,
	membershipRepo repositories.IMembershipRepository,
	userRepo repositories.IUserRepository,
) *CommitteeService {
	return &CommitteeService{
		committeeRepo:  committeeRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
	}
}

// CreateCommittee creates a new committee
func (s *CommitteeService) CreateCommittee(ctx context.Context, req *dto.CreateCommitteeRequest) (*models.Committee, error) {
	if req.EndYear < req.StartYear {
		return nil, apperrors.NewValidationError("endYear must not be before startYear")
	}

	committee := &models.Committee{
		Name:        req.Name,
		Description: req.Description,
		StartYear:   req.StartYear,
		EndYear:     req.EndYear,
		IsActive:    true,
	}
	if req.IsActive != nil {
		committee.IsActive = *req.IsActive
	}

	id, err := s.committeeRepo.Create(ctx, committee)
	if err != nil {
		return nil, err
	}
	committee.ID = id

	logger.Info().Int64("committeeID", id).Str("name", committee.Name).Msg("Committee created")
	return committee, nil
}

// ListCommittees returns a page of committees with the total. Every
// committee carries its ordered roster, same as the single-committee read.
func (s *CommitteeService) ListCommittees(ctx context.Context, offset uint64, limit int) ([]*models.Committee, int64, error) {
	committees, total, err := s.committeeRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	for _, committee := range committees {
		members, err := s.membershipRepo.ListByCommitteeID(ctx, committee.ID)
		if err != nil {
			return nil, 0, err
		}
		committee.Members = sortRoster(members)
	}
	return committees, total, nil
}

// GetCommittee returns a committee with its full ordered roster
func (s *CommitteeService) GetCommittee(ctx context.Context, id int64) (*models.Committee, error) {
	committee, err := s.committeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrCommitteeNotFound
	}

	members, err := s.membershipRepo.ListByCommitteeID(ctx, id)
	if err != nil {
		return nil, err
	}
	committee.Members = sortRoster(members)
	return committee, nil
}

// UpdateCommittee updates committee fields; nil fields are untouched
func (s *CommitteeService) UpdateCommittee(ctx context.Context, id int64, req *dto.UpdateCommitteeRequest) (*models.Committee, error) {
	committee, err := s.committeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrCommitteeNotFound
	}

	if req.Name != nil {
		committee.Name = *req.Name
	}
	if req.Description != nil {
		committee.Description = req.Description
	}
	if req.StartYear != nil {
		committee.StartYear = *req.StartYear
	}
	if req.EndYear != nil {
		committee.EndYear = *req.EndYear
	}
	if req.IsActive != nil {
		committee.IsActive = *req.IsActive
	}

	if committee.EndYear < committee.StartYear {
		return nil, apperrors.NewValidationError("endYear must not be before startYear")
	}

	if err := s.committeeRepo.Update(ctx, committee); err != nil {
		return nil, err
	}
	return committee, nil
}

// DeleteCommittee removes a committee. Its member assignments go with it;
// the underlying user accounts are untouched.
func (s *CommitteeService) DeleteCommittee(ctx context.Context, id int64) error {
	if err := s.committeeRepo.DeleteByID(ctx, id); err != nil {
		return apperrors.ErrCommitteeNotFound
	}

	logger.Info().Int64("committeeID", id).Msg("Committee deleted")
	return nil
}

// AddMember assigns a user to a committee. A user already on the roster is
// rejected.
func (s *CommitteeService) AddMember(ctx context.Context, req *dto.AddMemberRequest) (*models.MembershipAssignment, error) {
	if req.Index == nil {
		return nil, apperrors.NewValidationError("index is required")
	}

	exists, err := s.committeeRepo.ExistsByID(ctx, req.CommitteeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCommitteeNotFound
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	assignment := &models.MembershipAssignment{
		CommitteeID: req.CommitteeID,
		UserID:      req.UserID,
		Position:    req.Position,
		Index:       *req.Index,
	}

	id, err := s.membershipRepo.Add(ctx, assignment)
	if err != nil {
		return nil, err
	}
	assignment.ID = id

	logger.Info().Int64("committeeID", req.CommitteeID).Int64("userID", req.UserID).Str("position", req.Position).Msg("Member added to committee")
	return assignment, nil
}

// UpdateMember changes an assignment's position or index
func (s *CommitteeService) UpdateMember(ctx context.Context, id int64, req *dto.UpdateMemberRequest) (*models.MembershipAssignment, error) {
	if req.Position == nil && req.Index == nil {
		return nil, apperrors.NewValidationError("nothing to update")
	}

	if err := s.membershipRepo.Update(ctx, id, req.Position, req.Index); err != nil {
		return nil, err
	}
	return s.membershipRepo.GetByID(ctx, id)
}

// RemoveMember takes a member off a committee roster. The user account
// survives.
func (s *CommitteeService) RemoveMember(ctx context.Context, id int64) error {
	if err := s.membershipRepo.Remove(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("assignmentID", id).Msg("Member removed from committee")
	return nil
}

// sortRoster orders assignments by index ascending. The sort is stable with
// assignment id as the final tie-break, so members sharing an index keep
// their insertion order no matter how the rows came back.
func sortRoster(members []models.MembershipAssignment) []models.MembershipAssignment {
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Index != members[j].Index {
			return members[i].Index < members[j].Index
		}
		return members[i].ID < members[j].ID
	})
	return members
}
