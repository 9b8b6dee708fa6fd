package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBundle(t *testing.T, questions []Question) string {
	t.Helper()
	data, err := json.Marshal(Bundle{Questions: questions})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFetchPrefersRemote(t *testing.T) {
	remote := sampleQuestions()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Bundle{Questions: remote})
	}))
	defer srv.Close()

	local := writeBundle(t, remote[:2])
	source := NewSource(srv.URL, local, srv.Client(), zerolog.Nop())

	got, err := source.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, len(remote))
}

func TestFetchFallsBackToLocalOnRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	local := writeBundle(t, sampleQuestions()[:3])
	source := NewSource(srv.URL, local, srv.Client(), zerolog.Nop())

	got, err := source.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFetchUsesLocalWhenNoRemoteConfigured(t *testing.T) {
	local := writeBundle(t, sampleQuestions())
	source := NewSource("", local, nil, zerolog.Nop())

	got, err := source.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestFetchFailsWhenAllSourcesFail(t *testing.T) {
	source := NewSource("", filepath.Join(t.TempDir(), "missing.json"), nil, zerolog.Nop())
	_, err := source.Fetch(context.Background())
	require.Error(t, err)
}
