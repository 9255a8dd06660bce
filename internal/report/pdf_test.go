package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	r := &GroupReport{
		GroupName:      "Chess Club",
		Description:    "Weekly chess meetups",
		TypeGroupName:  "Sports",
		Kind:           "internal",
		Representative: "Ana <ana@example.com>",
		Manager:        "Bea <bea@example.com>",
		CreatedAt:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Members: []MemberLine{
			{Name: "Caio", Email: "caio@example.com", Role: "president", EntryDate: "2025-03-02"},
			{Name: "Dani", Email: "dani@example.com"},
		},
		Documents: []DocumentLine{
			{Name: "charter.pdf", Size: 20480},
		},
	}
	require.NoError(t, Render(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Greater(t, len(data), 500)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderEmptyGroup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	r := &GroupReport{GroupName: "New Group", CreatedAt: time.Now()}
	require.NoError(t, Render(r, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
