package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupohub/grupohub-backend/internal/repository"
)

func newActivityFixture() (ActivityService, *fakeActivityRepo) {
	actRepo := newFakeActivityRepo()
	groupRepo := newFakeGroupRepo(&repository.Group{ID: "g1", Name: "Chess Club"})
	return NewActivityService(actRepo, groupRepo), actRepo
}

func TestCreateActivity(t *testing.T) {
	svc, actRepo := newActivityFixture()

	desc := "Weekly open tournament"
	activity, err := svc.Create(context.Background(), "g1", CreateActivityInput{
		Name:        "Blitz Night",
		Description: &desc,
	})
	require.NoError(t, err)
	require.NotEmpty(t, activity.ID)
	assert.Equal(t, "Blitz Night", activity.Name)
	assert.Equal(t, "g1", activity.GroupID)

	stored, err := actRepo.FindByID(context.Background(), activity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blitz Night", stored.Name)
}

func TestCreateActivityUnknownGroup(t *testing.T) {
	svc, _ := newActivityFixture()

	_, err := svc.Create(context.Background(), "missing", CreateActivityInput{Name: "Blitz Night"})
	assert.True(t, IsNotFound(err))
}

func TestEditActivity(t *testing.T) {
	svc, actRepo := newActivityFixture()
	actRepo.activities["a1"] = &repository.Activity{ID: "a1", GroupID: "g1", Name: "Blitz Night"}

	name := "Rapid Night"
	activity, err := svc.Edit(context.Background(), "a1", EditActivityInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Rapid Night", activity.Name)
	assert.Equal(t, "g1", activity.GroupID)
}

func TestDeleteActivityNotFound(t *testing.T) {
	svc, _ := newActivityFixture()

	err := svc.Delete(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "Activity not found")
}
