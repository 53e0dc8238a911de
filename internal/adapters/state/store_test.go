package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/state"
	"go.trai.ch/forge/internal/core/domain"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.DefaultRegistryPath())
	store := state.NewStore(path)

	entities := []*domain.Entity{
		{ID: "sdk1", Kind: domain.KindSDK, Location: "/sdk"},
		{ID: "r1", Kind: domain.KindRuntime, TypeID: "forge.runtime.tomcat", Name: "Tomcat", Location: "/opt/tomcat"},
		{ID: "srv1", Kind: domain.KindServer, Location: "/srv", Attributes: map[string]string{domain.AttrRuntime: "r1"}},
	}
	require.NoError(t, store.Save(entities))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, entities, loaded)
}

func TestStore_LoadMissing(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "registry.yaml"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_LoadKeepsInvalidEntities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nentities:\n  - kind: runtime\n    id: r1\n"), domain.FilePerm))

	loaded, err := state.NewStore(path).Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Empty(t, loaded[0].Location)
}

func TestStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "entities: [unterminated"},
		{"unknown kind", "entities:\n  - kind: printer\n    id: p1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "registry.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), domain.FilePerm))

			_, err := state.NewStore(path).Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), domain.ErrStateReadFailed.Error())
		})
	}
}
