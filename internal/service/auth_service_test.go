package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/grupohub/grupohub-backend/internal/config"
	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/types"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpiry: 24}
}

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeRepresentativeRepo, *fakeMemberRepo) {
	userRepo := newFakeUserRepo()
	typeRepo := newFakeTypeUserRepo(types.ValidRoles...)
	repRepo := newFakeRepresentativeRepo()
	memRepo := newFakeMemberRepo()
	svc := NewAuthService(testConfig(), &fakeTxManager{}, userRepo, typeRepo, repRepo, memRepo, nil, nil, nil)
	return svc, userRepo, repRepo, memRepo
}

func TestRegisterDefaultsToViewer(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user, token, err := svc.Register(context.Background(), "Ana", "ana@example.com", "password123", "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, types.RoleViewer, user.TypeUserName)
}

func TestRegisterHonorsRequestedRole(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user, _, err := svc.Register(context.Background(), "Bea", "bea@example.com", "password123", types.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, types.RoleManager, user.TypeUserName)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user, _, err := svc.Register(context.Background(), "Caio", "caio@example.com", "password123", "superuser")
	require.NoError(t, err)
	assert.Equal(t, types.RoleViewer, user.TypeUserName)
}

func TestRegisterLinksPendingRepresentative(t *testing.T) {
	svc, _, repRepo, _ := newAuthFixture()
	repRepo.pending["dani@example.com"] = &repository.Representative{ID: "rep-9", Email: "dani@example.com"}

	// The invitation outranks the requested role.
	user, _, err := svc.Register(context.Background(), "Dani", "dani@example.com", "password123", types.RoleViewer)
	require.NoError(t, err)
	assert.Equal(t, types.RoleRepresentative, user.TypeUserName)
	assert.Equal(t, user.ID, repRepo.linked["rep-9"])
}

func TestRegisterLinksPendingMember(t *testing.T) {
	svc, _, _, memRepo := newAuthFixture()
	memRepo.pending["edu@example.com"] = &repository.Member{ID: "member-9", Email: "edu@example.com"}

	user, _, err := svc.Register(context.Background(), "Edu", "edu@example.com", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, types.RoleViewer, user.TypeUserName)
	assert.Equal(t, user.ID, memRepo.linked["member-9"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, userRepo, _, _ := newAuthFixture()
	userRepo.users["u1"] = &repository.User{ID: "u1", Email: "taken@example.com"}

	_, _, err := svc.Register(context.Background(), "Fel", "taken@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc, userRepo, _, _ := newAuthFixture()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	userRepo.users["u1"] = &repository.User{
		ID:           "u1",
		Email:        "gil@example.com",
		Password:     string(hash),
		TypeUserName: types.RoleViewer,
	}

	user, token, err := svc.Login(context.Background(), "gil@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), "gil@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, userRepo, _, _ := newAuthFixture()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	userRepo.users["u1"] = &repository.User{ID: "u1", Email: "hugo@example.com", Password: string(hash)}

	_, tokenString, err := svc.Login(context.Background(), "hugo@example.com", "password123")
	require.NoError(t, err)

	token, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	userID, err := svc.GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	// The stored row backs revocation checks.
	stored, err := svc.CheckToken(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, userRepo, _, _ := newAuthFixture()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	userRepo.users["u1"] = &repository.User{ID: "u1", Email: "iris@example.com", Password: string(hash)}

	_, tokenString, err := svc.Login(context.Background(), "iris@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "u1"))

	_, err = svc.CheckToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
