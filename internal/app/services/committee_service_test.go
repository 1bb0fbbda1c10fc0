package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
)

func newCommitteeTestDeps() (*CommitteeService, *fakeCommitteeRepo, *fakeMembershipRepo, *fakeUserRepo) {
	committeeRepo := newFakeCommitteeRepo()
	membershipRepo := newFakeMembershipRepo()
	userRepo := newFakeUserRepo()
	svc := NewCommitteeService(committeeRepo, membershipRepo, userRepo)
	return svc, committeeRepo, membershipRepo, userRepo
}

func seedCommitteeAndUsers(t *testing.T, svc *CommitteeService, userRepo *fakeUserRepo, memberCount int) (int64, []int64) {
	t.Helper()

	committee, err := svc.CreateCommittee(context.Background(), &dto.CreateCommitteeRequest{
		Name:      "Executive Committee 2081",
		StartYear: 2024,
		EndYear:   2026,
	})
	require.NoError(t, err)

	userIDs := make([]int64, 0, memberCount)
	for i := 0; i < memberCount; i++ {
		u := userRepo.add(&models.User{
			Name:       "Member",
			Email:      string(rune('a'+i)) + "@kin.org",
			Role:       models.RoleUser,
			IsVerified: true,
		})
		userIDs = append(userIDs, u.ID)
	}
	return committee.ID, userIDs
}

func TestCreateCommitteeValidatesYears(t *testing.T) {
	svc, _, _, _ := newCommitteeTestDeps()

	_, err := svc.CreateCommittee(context.Background(), &dto.CreateCommitteeRequest{
		Name:      "Backwards",
		StartYear: 2026,
		EndYear:   2024,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAddMemberRequiresIndex(t *testing.T) {
	svc, _, _, userRepo := newCommitteeTestDeps()
	ctx := context.Background()

	committeeID, userIDs := seedCommitteeAndUsers(t, svc, userRepo, 2)

	_, err := svc.AddMember(ctx, &dto.AddMemberRequest{
		CommitteeID: committeeID, UserID: userIDs[0], Position: "President",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Index 0 is a valid position
	zero := 0
	a, err := svc.AddMember(ctx, &dto.AddMemberRequest{
		CommitteeID: committeeID, UserID: userIDs[1], Position: "President", Index: &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, a.Index)
}

func TestAddMemberRejectsDuplicate(t *testing.T) {
	svc, _, _, userRepo := newCommitteeTestDeps()
	ctx := context.Background()

	committeeID, userIDs := seedCommitteeAndUsers(t, svc, userRepo, 1)

	zero, one := 0, 1
	_, err := svc.AddMember(ctx, &dto.AddMemberRequest{
		CommitteeID: committeeID, UserID: userIDs[0], Position: "President", Index: &zero,
	})
	require.NoError(t, err)

	_, err = svc.AddMember(ctx, &dto.AddMemberRequest{
		CommitteeID: committeeID, UserID: userIDs[0], Position: "Secretary", Index: &one,
	})
	assert.ErrorIs(t, err, apperrors.ErrMemberAlreadyAdded)
}

func TestAddMemberMissingCommitteeOrUser(t *testing.T) {
	svc, _, _, userRepo := newCommitteeTestDeps()
	ctx := context.Background()

	committeeID, userIDs := seedCommitteeAndUsers(t, svc, userRepo, 1)

	zero := 0
	_, err := svc.AddMember(ctx, &dto.AddMemberRequest{
		CommitteeID: 999, UserID: userIDs[0], Position: "President", Index: &zero,
	})
	assert.ErrorIs(t, err, apperrors.ErrCommitteeNotFound)

	_, err = svc.AddMember(ctx, &dto.AddMemberRequest{
		CommitteeID: committeeID, UserID: 999, Position: "President", Index: &zero,
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGetCommitteeRosterOrdering(t *testing.T) {
	svc, _, _, userRepo := newCommitteeTestDeps()
	ctx := context.Background()

	committeeID, userIDs := seedCommitteeAndUsers(t, svc, userRepo, 4)

	// Mixed explicit indexes, including a shared one to exercise the
	// id tie-break
	for i, spec := range []struct {
		index    int
		position string
	}{
		{2, "Treasurer"},
		{0, "President"},
		{2, "Member"},
		{1, "Secretary"},
	} {
		idx := spec.index
		_, err := svc.AddMember(ctx, &dto.AddMemberRequest{
			CommitteeID: committeeID, UserID: userIDs[i], Position: spec.position, Index: &idx,
		})
		require.NoError(t, err)
	}

	committee, err := svc.GetCommittee(ctx, committeeID)
	require.NoError(t, err)
	require.Len(t, committee.Members, 4)

	positions := make([]string, 0, 4)
	for _, m := range committee.Members {
		positions = append(positions, m.Position)
	}
	assert.Equal(t, []string{"President", "Secretary", "Treasurer", "Member"}, positions)

	// Equal indexes keep insertion order via the id tie-break
	assert.Less(t, committee.Members[2].ID, committee.Members[3].ID)
}

func TestListCommitteesIncludesOrderedRosters(t *testing.T) {
	svc, _, _, userRepo := newCommitteeTestDeps()
	ctx := context.Background()

	committeeID, userIDs := seedCommitteeAndUsers(t, svc, userRepo, 2)

	// Inserted out of order; the listing must come back sorted
	one, zero := 1, 0
	_, err := svc.AddMember(ctx, &dto.AddMemberRequest{
		CommitteeID: committeeID, UserID: userIDs[0], Position: "Secretary", Index: &one,
	})
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, &dto.AddMemberRequest{
		CommitteeID: committeeID, UserID: userIDs[1], Position: "President", Index: &zero,
	})
	require.NoError(t, err)

	committees, total, err := svc.ListCommittees(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, committees, 1)
	require.Len(t, committees[0].Members, 2)
	assert.Equal(t, "President", committees[0].Members[0].Position)
	assert.Equal(t, "Secretary", committees[0].Members[1].Position)
}

func TestUpdateMember(t *testing.T) {
	svc, _, _, userRepo := newCommitteeTestDeps()
	ctx := context.Background()

	committeeID, userIDs := seedCommitteeAndUsers(t, svc, userRepo, 1)

	zero := 0
	assignment, err := svc.AddMember(ctx, &dto.AddMemberRequest{
		CommitteeID: committeeID, UserID: userIDs[0], Position: "Member", Index: &zero,
	})
	require.NoError(t, err)

	_, err = svc.UpdateMember(ctx, assignment.ID, &dto.UpdateMemberRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	newPosition := "Vice President"
	newIndex := 3
	updated, err := svc.UpdateMember(ctx, assignment.ID, &dto.UpdateMemberRequest{
		Position: &newPosition, Index: &newIndex,
	})
	require.NoError(t, err)
	assert.Equal(t, "Vice President", updated.Position)
	assert.Equal(t, 3, updated.Index)
}

func TestRemoveMemberKeepsUser(t *testing.T) {
	svc, _, _, userRepo := newCommitteeTestDeps()
	ctx := context.Background()

	committeeID, userIDs := seedCommitteeAndUsers(t, svc, userRepo, 1)

	zero := 0
	assignment, err := svc.AddMember(ctx, &dto.AddMemberRequest{
		CommitteeID: committeeID, UserID: userIDs[0], Position: "Member", Index: &zero,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(ctx, assignment.ID))

	committee, err := svc.GetCommittee(ctx, committeeID)
	require.NoError(t, err)
	assert.Empty(t, committee.Members)

	// The user account survives the roster removal
	_, err = userRepo.GetByID(ctx, userIDs[0])
	assert.NoError(t, err)
}

func TestUpdateCommitteePartialFields(t *testing.T) {
	svc, _, _, userRepo := newCommitteeTestDeps()
	ctx := context.Background()

	committeeID, _ := seedCommitteeAndUsers(t, svc, userRepo, 0)

	inactive := false
	updated, err := svc.UpdateCommittee(ctx, committeeID, &dto.UpdateCommitteeRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Executive Committee 2081", updated.Name)

	badEnd := 2000
	_, err = svc.UpdateCommittee(ctx, committeeID, &dto.UpdateCommitteeRequest{EndYear: &badEnd})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeleteCommitteeNotFound(t *testing.T) {
	svc, _, _, _ := newCommitteeTestDeps()

	err := svc.DeleteCommittee(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrCommitteeNotFound)
}
