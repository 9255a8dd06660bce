package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupohub/grupohub-backend/internal/repository"
)

func newMemberFixture() (MemberService, *fakeMemberRepo, *fakeGroupRepo) {
	memRepo := newFakeMemberRepo()
	groupRepo := newFakeGroupRepo(&repository.Group{ID: "g1", Name: "Chess Club"})
	svc := NewMemberService(&fakeTxManager{}, memRepo, groupRepo, newFakeUserRepo())
	return svc, memRepo, groupRepo
}

func TestCreateManyMembers(t *testing.T) {
	svc, memRepo, _ := newMemberFixture()

	// One member already belongs to the group before the batch.
	memRepo.members["m0"] = &repository.Member{ID: "m0", Name: "Zoe", Email: "zoe@example.com"}
	require.NoError(t, memRepo.AddToGroupTx(context.Background(), nil, "m0", "g1"))

	members, err := svc.CreateMany(context.Background(), "g1", []CreateMemberInput{
		{Name: "Ana", Email: "ana@example.com"},
		{Name: "Bea", Email: "bea@example.com"},
	})
	require.NoError(t, err)
	// The call returns the group's full roster, not just the new entries.
	require.Len(t, members, 3)
	names := []string{members[0].Name, members[1].Name, members[2].Name}
	assert.ElementsMatch(t, []string{"Zoe", "Ana", "Bea"}, names)
	assert.Len(t, memRepo.joined, 3)
}

func TestCreateManyIsAllOrNothing(t *testing.T) {
	memRepo := newFakeMemberRepo()
	groupRepo := newFakeGroupRepo(&repository.Group{ID: "g1", Name: "Chess Club"})
	tx := &rollbackTxManager{memRepo: memRepo}
	svc := NewMemberService(tx, memRepo, groupRepo, newFakeUserRepo())
	memRepo.existing["g1|bea@example.com"] = true

	_, err := svc.CreateMany(context.Background(), "g1", []CreateMemberInput{
		{Name: "Ana", Email: "ana@example.com"},
		{Name: "Bea", Email: "bea@example.com"},
		{Name: "Caio", Email: "caio@example.com"},
	})
	assert.ErrorIs(t, err, ErrMembersExist)

	// The duplicate aborts the transaction and the earlier inserts are
	// rolled back with it.
	assert.Equal(t, 1, tx.rollbacks)
	assert.Empty(t, memRepo.joined)
	assert.Empty(t, memRepo.members)

	roster, err := svc.FindByGroup(context.Background(), "g1")
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestCreateManyLinksExistingAccount(t *testing.T) {
	memRepo := newFakeMemberRepo()
	groupRepo := newFakeGroupRepo(&repository.Group{ID: "g1"})
	userRepo := newFakeUserRepo(&repository.User{ID: "u7", Email: "ana@example.com"})
	svc := NewMemberService(&fakeTxManager{}, memRepo, groupRepo, userRepo)

	created, err := svc.CreateMany(context.Background(), "g1", []CreateMemberInput{
		{Name: "Ana", Email: "ana@example.com"},
	})
	require.NoError(t, err)
	require.NotNil(t, created[0].UserID)
	assert.Equal(t, "u7", *created[0].UserID)
}

func TestCreateManyUnknownGroup(t *testing.T) {
	svc, _, _ := newMemberFixture()

	_, err := svc.CreateMany(context.Background(), "missing", []CreateMemberInput{
		{Name: "Ana", Email: "ana@example.com"},
	})
	assert.True(t, IsNotFound(err))
}

func TestCreateManyEmptyBatch(t *testing.T) {
	svc, _, _ := newMemberFixture()

	_, err := svc.CreateMany(context.Background(), "g1", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEditMemberKeepsIdentity(t *testing.T) {
	svc, memRepo, _ := newMemberFixture()
	memRepo.members["m1"] = &repository.Member{ID: "m1", Name: "Ana", Email: "ana@example.com"}

	role := "treasurer"
	member, err := svc.Edit(context.Background(), "m1", EditMemberInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "treasurer", *member.Role)
	// Name and email are fixed after creation.
	assert.Equal(t, "Ana", member.Name)
	assert.Equal(t, "ana@example.com", member.Email)
}
