package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/service"
)

type fakeTypeUserService struct {
	items map[string]*repository.TypeUser
	next  int
}

func (f *fakeTypeUserService) Create(ctx context.Context, name string) (*repository.TypeUser, error) {
	f.next++
	t := &repository.TypeUser{ID: fmt.Sprintf("tu-%d", f.next), Name: name}
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeTypeUserService) GetByID(ctx context.Context, id string) (*repository.TypeUser, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, &service.NotFoundError{Entity: "TypeUser"}
	}
	return t, nil
}

func (f *fakeTypeUserService) FindAll(ctx context.Context) ([]*repository.TypeUser, error) {
	out := make([]*repository.TypeUser, 0, len(f.items))
	for _, t := range f.items {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTypeUserService) Edit(ctx context.Context, id, name string) (*repository.TypeUser, error) {
	t, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Name = name
	return t, nil
}

func (f *fakeTypeUserService) Delete(ctx context.Context, id string) error {
	if _, err := f.GetByID(ctx, id); err != nil {
		return err
	}
	delete(f.items, id)
	return nil
}

type allowAllPermissions struct{}

func (allowAllPermissions) Can(ctx context.Context, userID string, res service.Resource, action service.Action, targetID string) error {
	return nil
}
func (allowAllPermissions) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return true, nil
}
func (allowAllPermissions) IsManager(ctx context.Context, userID string) (bool, error) {
	return false, nil
}
func (allowAllPermissions) IsRepresentative(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

type denyAllPermissions struct{ allowAllPermissions }

func (denyAllPermissions) Can(ctx context.Context, userID string, res service.Resource, action service.Action, targetID string) error {
	return service.ErrForbidden
}

func typeUserRouter(perms service.PermissionService) (*gin.Engine, *fakeTypeUserService) {
	gin.SetMode(gin.TestMode)
	svc := &fakeTypeUserService{items: make(map[string]*repository.TypeUser)}
	h := &TypeUserHandler{typeUserService: svc, permissions: perms}

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "admin-1") })
	r.POST("/api/group/type-user", h.Create)
	r.GET("/api/group/type-user/:id", h.Get)
	r.PUT("/api/group/type-user/:id", h.Update)
	r.DELETE("/api/group/type-user/:id", h.Delete)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Exercises the full lifecycle of a role: a rejected short name, a
// successful create, delete, and the 404 afterwards.
func TestTypeUserLifecycle(t *testing.T) {
	r, _ := typeUserRouter(allowAllPermissions{})

	// Name below the minimum length fails validation.
	w := doJSON(t, r, http.MethodPost, "/api/group/type-user", gin.H{"name": "abc"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Validation bodies carry the bare field map, no code wrapper.
	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotContains(t, envelope, "code")

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(envelope["errors"], &fields))
	assert.NotEmpty(t, fields["name"])

	// Valid create.
	w = doJSON(t, r, http.MethodPost, "/api/group/type-user", gin.H{"name": "moderator"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "moderator", created.Name)
	require.NotEmpty(t, created.ID)

	// Delete, then the role is gone.
	w = doJSON(t, r, http.MethodDelete, "/api/group/type-user/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/group/type-user/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var notFound struct {
		Errors string `json:"errors"`
		Code   int    `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notFound))
	assert.Equal(t, http.StatusNotFound, notFound.Code)
	assert.Contains(t, notFound.Errors, "TypeUser")
}

func TestTypeUserForbidden(t *testing.T) {
	r, _ := typeUserRouter(denyAllPermissions{})

	w := doJSON(t, r, http.MethodPost, "/api/group/type-user", gin.H{"name": "moderator"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var envelope struct {
		Errors string `json:"errors"`
		Code   int    `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "This action is unauthorized.", envelope.Errors)
	assert.Equal(t, http.StatusForbidden, envelope.Code)
}
