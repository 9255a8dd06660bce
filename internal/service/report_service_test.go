package service

import (
	"archive/zip"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupohub/grupohub-backend/internal/config"
	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/storage"
)

func newReportFixture(t *testing.T) (ReportService, *fakeDocumentRepo, *storage.Storage) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{ReportPath: t.TempDir()}
	groupRepo := newFakeGroupRepo(&repository.Group{
		ID:            "g1",
		Name:          "Chess Club",
		CreatorUserID: "u1",
		TypeGroup:     &repository.TypeGroup{ID: "tg1", Name: "Sports", Kind: "internal"},
		Representative: &repository.Representative{
			ID: "rep1", Name: "Ana", Email: "ana@example.com",
		},
	})
	docRepo := newFakeDocumentRepo()
	userRepo := newFakeUserRepo(&repository.User{ID: "u1", Name: "Bea", Email: "bea@example.com"})

	svc := NewReportService(cfg, groupRepo, newFakeMemberRepo(), docRepo, userRepo, store)
	return svc, docRepo, store
}

func TestGenerateGroupReportPDF(t *testing.T) {
	svc, _, _ := newReportFixture(t)

	file, err := svc.GenerateGroupReport(context.Background(), "g1", false)
	require.NoError(t, err)
	defer os.Remove(file.Path)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Name, ".pdf"))

	data, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateGroupReportWithFiles(t *testing.T) {
	svc, docRepo, store := newReportFixture(t)

	_, err := store.Save("documents/g1/charter.pdf", strings.NewReader("charter content"))
	require.NoError(t, err)
	require.NoError(t, docRepo.Create(context.Background(), &repository.Document{
		GroupID: "g1",
		Name:    "charter.pdf",
		Size:    15,
		Path:    "documents/g1/charter.pdf",
	}))

	file, err := svc.GenerateGroupReport(context.Background(), "g1", true)
	require.NoError(t, err)
	defer os.Remove(file.Path)

	assert.Equal(t, "application/zip", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Name, ".zip"))

	zr, err := zip.OpenReader(file.Path)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}
	assert.Contains(t, names, "documents/charter.pdf")

	// The summary PDF travels inside the archive.
	foundPDF := false
	for _, n := range names {
		if strings.HasSuffix(n, ".pdf") && !strings.HasPrefix(n, "documents/") {
			foundPDF = true
		}
	}
	assert.True(t, foundPDF)
}

func TestGenerateGroupReportUnknownGroup(t *testing.T) {
	svc, _, _ := newReportFixture(t)

	_, err := svc.GenerateGroupReport(context.Background(), "missing", false)
	assert.True(t, IsNotFound(err))
}
