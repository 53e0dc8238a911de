package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/snapshot"
	"go.trai.ch/forge/internal/core/domain"
)

func TestStore_SaveGolden(t *testing.T) {
	t.Parallel()

	store := snapshot.NewStore(t.TempDir())
	err := store.Save(&domain.Snapshot{
		Kind: domain.KindRuntime,
		Records: []domain.Record{
			{"id": "b", "location": "/opt/b", "version": "9"},
			{"id": "a", "type": "forge.runtime.tomcat", "name": "A", "location": "/opt/a"},
		},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(store.Path(domain.KindRuntime))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "runtimes", data)
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := snapshot.NewStore(filepath.Join(t.TempDir(), "settings"))
	in := &domain.Snapshot{
		Kind: domain.KindServer,
		Records: []domain.Record{
			{"id": "s1", "location": "/srv/one", "runtime": "r1", "note": `a "quoted" <value> & more`},
		},
	}
	require.NoError(t, store.Save(in))

	out, err := store.Load(domain.KindServer)
	require.NoError(t, err)
	assert.Equal(t, in.Records, out.Records)
	assert.True(t, store.Exists(domain.KindServer))
	assert.False(t, store.Exists(domain.KindSDK))
}

func TestStore_SaveIsDeterministic(t *testing.T) {
	t.Parallel()

	store := snapshot.NewStore(t.TempDir())
	s := &domain.Snapshot{
		Kind: domain.KindSDK,
		Records: []domain.Record{
			{"id": "z", "location": "/z", "b": "2", "a": "1"},
			{"id": "y"},
		},
	}

	require.NoError(t, store.Save(s))
	first, err := os.ReadFile(store.Path(domain.KindSDK))
	require.NoError(t, err)

	require.NoError(t, store.Save(s))
	second, err := os.ReadFile(store.Path(domain.KindSDK))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store := snapshot.NewStore(t.TempDir())
	s, err := store.Load(domain.KindRuntime)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.False(t, store.HasSettings())
}

func TestStore_LoadCorrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"not xml", "this is not xml"},
		{"wrong root", `<servers><server id="s"/></servers>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := snapshot.NewStore(t.TempDir())
			require.NoError(t, os.WriteFile(store.Path(domain.KindRuntime), []byte(tt.content), domain.FilePerm))

			_, err := store.Load(domain.KindRuntime)
			assert.ErrorIs(t, err, domain.ErrSnapshotReadFailed)
			assert.False(t, store.HasSettings())
		})
	}
}

func TestStore_LoadSkipsForeignElements(t *testing.T) {
	t.Parallel()

	store := snapshot.NewStore(t.TempDir())
	content := `<sdks><sdk id="a" location="/a"/><comment text="x"/></sdks>`
	require.NoError(t, os.WriteFile(store.Path(domain.KindSDK), []byte(content), domain.FilePerm))

	s, err := store.Load(domain.KindSDK)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, s.IDs())
	assert.True(t, store.HasSettings())
}
