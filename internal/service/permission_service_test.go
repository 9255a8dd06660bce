package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/types"
)

func userWithRole(id, role string) *repository.User {
	return &repository.User{ID: id, Name: id, Email: id + "@example.com", TypeUserName: role}
}

func TestPermissionGroupLifecycle(t *testing.T) {
	manager := userWithRole("manager-1", types.RoleManager)
	viewer := userWithRole("viewer-1", types.RoleViewer)
	userRepo := newFakeUserRepo(manager, viewer)

	groupRepo := newFakeGroupRepo(&repository.Group{ID: "g1", Name: "Robotics", CreatorUserID: "manager-1"})
	perms := NewPermissionService(userRepo, groupRepo)
	ctx := context.Background()

	assert.NoError(t, perms.Can(ctx, "manager-1", ResourceGroup, ActionCreate, ""))
	assert.ErrorIs(t, perms.Can(ctx, "viewer-1", ResourceGroup, ActionCreate, ""), ErrForbidden)

	// Only the creator may update or delete, regardless of role.
	assert.NoError(t, perms.Can(ctx, "manager-1", ResourceGroup, ActionUpdate, "g1"))
	assert.ErrorIs(t, perms.Can(ctx, "viewer-1", ResourceGroup, ActionDelete, "g1"), ErrForbidden)

	// Anyone authenticated may view.
	assert.NoError(t, perms.Can(ctx, "viewer-1", ResourceGroup, ActionView, "g1"))
}

func TestPermissionGroupScopedResources(t *testing.T) {
	rep := userWithRole("rep-1", types.RoleRepresentative)
	outsider := userWithRole("rep-2", types.RoleRepresentative)
	userRepo := newFakeUserRepo(rep, outsider)

	groupRepo := newFakeGroupRepo(&repository.Group{ID: "g1", CreatorUserID: "someone"})
	groupRepo.repUsers["g1"] = []string{"rep-1"}

	perms := NewPermissionService(userRepo, groupRepo)
	ctx := context.Background()

	for _, res := range []Resource{ResourceActivity, ResourceDocument, ResourceMeeting, ResourceNote, ResourceReport} {
		assert.NoError(t, perms.Can(ctx, "rep-1", res, ActionCreate, "g1"), "resource %s", res)
		// Holding the representative role elsewhere grants nothing here.
		assert.ErrorIs(t, perms.Can(ctx, "rep-2", res, ActionCreate, "g1"), ErrForbidden, "resource %s", res)
		assert.NoError(t, perms.Can(ctx, "rep-2", res, ActionView, "g1"), "resource %s", res)
	}
}

func TestPermissionMemberUsesGlobalRole(t *testing.T) {
	rep := userWithRole("rep-1", types.RoleRepresentative)
	viewer := userWithRole("viewer-1", types.RoleViewer)
	userRepo := newFakeUserRepo(rep, viewer)

	// rep-1 sits in no group's representative set; the member rule does
	// not care.
	groupRepo := newFakeGroupRepo()
	perms := NewPermissionService(userRepo, groupRepo)
	ctx := context.Background()

	assert.NoError(t, perms.Can(ctx, "rep-1", ResourceMember, ActionCreate, ""))
	assert.NoError(t, perms.Can(ctx, "rep-1", ResourceMember, ActionDelete, ""))
	assert.ErrorIs(t, perms.Can(ctx, "viewer-1", ResourceMember, ActionCreate, ""), ErrForbidden)
	assert.NoError(t, perms.Can(ctx, "viewer-1", ResourceMember, ActionView, ""))
}

func TestPermissionTypeResources(t *testing.T) {
	admin := userWithRole("admin-1", types.RoleAdmin)
	rep := userWithRole("rep-1", types.RoleRepresentative)
	userRepo := newFakeUserRepo(admin, rep)
	perms := NewPermissionService(userRepo, newFakeGroupRepo())
	ctx := context.Background()

	assert.NoError(t, perms.Can(ctx, "admin-1", ResourceTypeUser, ActionCreate, ""))
	assert.ErrorIs(t, perms.Can(ctx, "rep-1", ResourceTypeUser, ActionCreate, ""), ErrForbidden)

	assert.NoError(t, perms.Can(ctx, "rep-1", ResourceTypeGroup, ActionCreate, ""))
	assert.ErrorIs(t, perms.Can(ctx, "admin-1", ResourceTypeGroup, ActionCreate, ""), ErrForbidden)
}

func TestPermissionUserResource(t *testing.T) {
	admin := userWithRole("admin-1", types.RoleAdmin)
	viewer := userWithRole("viewer-1", types.RoleViewer)
	userRepo := newFakeUserRepo(admin, viewer)
	perms := NewPermissionService(userRepo, newFakeGroupRepo())
	ctx := context.Background()

	// Self-service always allowed, admin may touch anyone.
	assert.NoError(t, perms.Can(ctx, "viewer-1", ResourceUser, ActionUpdate, "viewer-1"))
	assert.NoError(t, perms.Can(ctx, "admin-1", ResourceUser, ActionDelete, "viewer-1"))
	assert.ErrorIs(t, perms.Can(ctx, "viewer-1", ResourceUser, ActionUpdate, "admin-1"), ErrForbidden)

	assert.ErrorIs(t, perms.Can(ctx, "viewer-1", ResourceUser, ActionView, ""), ErrForbidden)
	assert.NoError(t, perms.Can(ctx, "admin-1", ResourceUser, ActionView, ""))
}

func TestPermissionMissingGroupIsNotFound(t *testing.T) {
	manager := userWithRole("manager-1", types.RoleManager)
	rep := userWithRole("rep-1", types.RoleRepresentative)
	userRepo := newFakeUserRepo(manager, rep)
	perms := NewPermissionService(userRepo, newFakeGroupRepo())
	ctx := context.Background()

	// A group nobody can see is reported missing, not forbidden.
	err := perms.Can(ctx, "manager-1", ResourceGroup, ActionUpdate, "missing-group")
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "Group not found")

	err = perms.Can(ctx, "manager-1", ResourceGroup, ActionDelete, "missing-group")
	assert.True(t, IsNotFound(err))

	for _, res := range []Resource{ResourceActivity, ResourceDocument, ResourceMeeting, ResourceNote, ResourceReport} {
		err := perms.Can(ctx, "rep-1", res, ActionCreate, "missing-group")
		assert.True(t, IsNotFound(err), "resource %s", res)
	}
}

func TestPermissionDenialMessage(t *testing.T) {
	viewer := userWithRole("viewer-1", types.RoleViewer)
	perms := NewPermissionService(newFakeUserRepo(viewer), newFakeGroupRepo())

	err := perms.Can(context.Background(), "viewer-1", ResourceGroup, ActionCreate, "")
	require.Error(t, err)
	assert.Equal(t, "This action is unauthorized.", err.Error())
}
