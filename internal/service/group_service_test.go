package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupohub/grupohub-backend/internal/repository"
)

type groupFixture struct {
	svc       GroupService
	groupRepo *fakeGroupRepo
	typeRepo  *fakeTypeGroupRepo
	repRepo   *fakeRepresentativeRepo
	memRepo   *fakeMemberRepo
	userRepo  *fakeUserRepo
}

func newGroupFixture(users ...*repository.User) *groupFixture {
	f := &groupFixture{
		groupRepo: newFakeGroupRepo(),
		typeRepo:  newFakeTypeGroupRepo(),
		repRepo:   newFakeRepresentativeRepo(),
		memRepo:   newFakeMemberRepo(),
		userRepo:  newFakeUserRepo(users...),
	}
	f.svc = NewGroupService(testConfig(), &fakeTxManager{}, f.groupRepo, f.typeRepo, f.repRepo, f.memRepo, f.userRepo, nil)
	return f
}

func TestCreateGroupWithKnownRepresentative(t *testing.T) {
	f := newGroupFixture(&repository.User{ID: "u1", Name: "Ana", Email: "ana@example.com"})

	group, err := f.svc.Create(context.Background(), "manager-1", CreateGroupInput{
		Name:                "Chess Club",
		TypeGroupName:       "Sports",
		TypeGroupKind:       "internal",
		RepresentativeEmail: "ana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "manager-1", group.CreatorUserID)
	assert.NotEmpty(t, group.TypeGroupID)
	assert.NotEmpty(t, group.RepresentativeID)

	// An existing account is linked and enters the representative set.
	require.Len(t, f.repRepo.created, 1)
	require.NotNil(t, f.repRepo.created[0].UserID)
	assert.Equal(t, "u1", *f.repRepo.created[0].UserID)
	assert.Contains(t, f.groupRepo.repUsers[group.ID], "u1")
}

func TestCreateGroupWithUnknownRepresentative(t *testing.T) {
	f := newGroupFixture()

	group, err := f.svc.Create(context.Background(), "manager-1", CreateGroupInput{
		Name:                "Chess Club",
		TypeGroupName:       "Sports",
		RepresentativeName:  "Bea",
		RepresentativeEmail: "bea@example.com",
	})
	require.NoError(t, err)

	// No account yet: the contact stays pending until registration.
	require.Len(t, f.repRepo.created, 1)
	assert.Nil(t, f.repRepo.created[0].UserID)
	assert.Empty(t, f.groupRepo.repUsers[group.ID])
}

func TestCreateGroupDefaultsKind(t *testing.T) {
	f := newGroupFixture()

	_, err := f.svc.Create(context.Background(), "manager-1", CreateGroupInput{
		Name:                "Chess Club",
		TypeGroupName:       "Sports",
		TypeGroupKind:       "interplanetary",
		RepresentativeEmail: "bea@example.com",
	})
	require.NoError(t, err)

	for _, tg := range f.typeRepo.items {
		assert.Equal(t, "internal", tg.Kind)
	}
}

func TestDeleteGroupCascadeOrder(t *testing.T) {
	f := newGroupFixture()
	calls := []string{}
	f.groupRepo.calls = &calls
	f.typeRepo.calls = &calls
	f.repRepo.calls = &calls
	f.memRepo.calls = &calls

	f.groupRepo.groups["g1"] = &repository.Group{
		ID:               "g1",
		Name:             "Chess Club",
		TypeGroupID:      "tg1",
		RepresentativeID: "rep1",
		CreatorUserID:    "manager-1",
	}

	require.NoError(t, f.svc.Delete(context.Background(), "g1"))

	// Members go first, then the group, then its owned records.
	assert.Equal(t, []string{"members:g1", "group:g1", "type_group:tg1", "representative:rep1"}, calls)
}

func TestDeleteGroupNotFound(t *testing.T) {
	f := newGroupFixture()

	err := f.svc.Delete(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestEditGroupSwapsRepresentative(t *testing.T) {
	f := newGroupFixture(&repository.User{ID: "u2", Name: "Caio", Email: "caio@example.com"})
	f.groupRepo.groups["g1"] = &repository.Group{
		ID:               "g1",
		Name:             "Chess Club",
		TypeGroupID:      "tg1",
		RepresentativeID: "rep1",
		CreatorUserID:    "manager-1",
		TypeGroup:        &repository.TypeGroup{ID: "tg1", Name: "Sports", Kind: "internal"},
		Representative:   &repository.Representative{ID: "rep1", Name: "Ana", Email: "ana@example.com"},
	}

	newEmail := "caio@example.com"
	_, err := f.svc.Edit(context.Background(), "g1", EditGroupInput{RepresentativeEmail: &newEmail})
	require.NoError(t, err)

	assert.Contains(t, f.groupRepo.repUsers["g1"], "u2")
}

func TestEditGroupRevokesOutgoingRepresentative(t *testing.T) {
	f := newGroupFixture(
		&repository.User{ID: "u1", Name: "Ana", Email: "ana@example.com"},
		&repository.User{ID: "u2", Name: "Caio", Email: "caio@example.com"},
	)
	anaID := "u1"
	f.groupRepo.groups["g1"] = &repository.Group{
		ID:               "g1",
		Name:             "Chess Club",
		TypeGroupID:      "tg1",
		RepresentativeID: "rep1",
		CreatorUserID:    "manager-1",
		TypeGroup:        &repository.TypeGroup{ID: "tg1", Name: "Sports", Kind: "internal"},
		Representative:   &repository.Representative{ID: "rep1", Name: "Ana", Email: "ana@example.com", UserID: &anaID},
	}
	f.groupRepo.repUsers["g1"] = []string{"u1"}

	newEmail := "caio@example.com"
	_, err := f.svc.Edit(context.Background(), "g1", EditGroupInput{RepresentativeEmail: &newEmail})
	require.NoError(t, err)

	// The old representative loses the grant, the new one gains it.
	assert.NotContains(t, f.groupRepo.repUsers["g1"], "u1")
	assert.Contains(t, f.groupRepo.repUsers["g1"], "u2")
}
