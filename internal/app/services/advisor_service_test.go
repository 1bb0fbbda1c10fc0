package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
)

func TestAdvisorCRUD(t *testing.T) {
	advisorRepo := newFakeAdvisorRepo()
	svc := NewAdvisorService(advisorRepo, nil)
	ctx := context.Background()

	created, err := svc.CreateAdvisor(ctx, &dto.CreateAdvisorRequest{
		Name:  "Dr. Binod Koirala",
		Role:  "Faculty Advisor",
		Email: "binod.koirala@kin.org",
	}, nil)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	newRole := "Senior Advisor"
	updated, err := svc.UpdateAdvisor(ctx, created.ID, &dto.UpdateAdvisorRequest{Role: &newRole}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Senior Advisor", updated.Role)
	assert.Equal(t, "Dr. Binod Koirala", updated.Name)

	require.NoError(t, svc.DeleteAdvisor(ctx, created.ID))
	_, err = svc.GetAdvisor(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateAdvisorDuplicateEmail(t *testing.T) {
	advisorRepo := newFakeAdvisorRepo()
	svc := NewAdvisorService(advisorRepo, nil)
	ctx := context.Background()

	first, err := svc.CreateAdvisor(ctx, &dto.CreateAdvisorRequest{
		Name:  "Dr. Binod Koirala",
		Role:  "Faculty Advisor",
		Email: "adv@kin.org",
	}, nil)
	require.NoError(t, err)

	// Email is a natural key; a second advisor cannot reuse it
	_, err = svc.CreateAdvisor(ctx, &dto.CreateAdvisorRequest{
		Name:  "Dr. Someone Else",
		Role:  "Co-Advisor",
		Email: "adv@kin.org",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Updating onto an existing email conflicts the same way
	other, err := svc.CreateAdvisor(ctx, &dto.CreateAdvisorRequest{
		Name:  "Dr. Third",
		Role:  "Advisor",
		Email: "third@kin.org",
	}, nil)
	require.NoError(t, err)

	taken := first.Email
	_, err = svc.UpdateAdvisor(ctx, other.ID, &dto.UpdateAdvisorRequest{Email: &taken}, nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// A duplicate fails the bulk batch too
	_, err = svc.BulkCreateAdvisors(ctx, &dto.BulkCreateAdvisorsRequest{
		Advisors: []dto.CreateAdvisorRequest{
			{Name: "Fresh", Role: "Advisor", Email: "fresh@kin.org"},
			{Name: "Dup", Role: "Advisor", Email: "adv@kin.org"},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAdvisorBulkOperations(t *testing.T) {
	advisorRepo := newFakeAdvisorRepo()
	svc := NewAdvisorService(advisorRepo, nil)
	ctx := context.Background()

	created, err := svc.BulkCreateAdvisors(ctx, &dto.BulkCreateAdvisorsRequest{
		Advisors: []dto.CreateAdvisorRequest{
			{Name: "One", Role: "Advisor", Email: "one@kin.org"},
			{Name: "Two", Role: "Advisor", Email: "two@kin.org"},
			{Name: "Three", Role: "Advisor", Email: "three@kin.org"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	advisors, total, err := svc.ListAdvisors(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, advisors, 3)

	// Unknown ids are skipped, not errors
	deleted, err := svc.BulkDeleteAdvisors(ctx, &dto.BulkDeleteAdvisorsRequest{
		IDs: []int64{created[0].ID, created[1].ID, 999},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, total, err = svc.ListAdvisors(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
