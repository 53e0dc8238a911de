package capability_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/capability"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		env        capability.Env
		want       bool
	}{
		{"empty matches", "", nil, true},
		{"tool equality", `project.tool == "maven"`, capability.Env{"project": map[string]any{"tool": "maven"}}, true},
		{"tool mismatch", `project.tool == "maven"`, capability.Env{"project": map[string]any{"tool": "gradle"}}, false},
		{"prefix", `entity.type startsWith "forge."`, capability.Env{"entity": map[string]any{"type": "forge.runtime"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := capability.Compile(tt.expression)
			require.NoError(t, err)

			got, err := p(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	_, err := capability.Compile(`project.tool ==`)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPredicate)

	_, err = capability.Compile(`"not a bool"`)
	assert.ErrorIs(t, err, domain.ErrInvalidPredicate)
}

func TestTable_LookupFirstMatch(t *testing.T) {
	never := func(capability.Env) (bool, error) { return false, nil }

	table := capability.NewTable(
		capability.Entry[string]{ID: "never", Match: never, Value: "a"},
		capability.Entry[string]{ID: "first", Value: "b"},
		capability.Entry[string]{ID: "second", Value: "c"},
	)

	e, ok, err := table.Lookup(nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", e.ID)

	all, err := table.All(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 3, table.Len())
}

func TestTable_LookupNoMatch(t *testing.T) {
	p, err := capability.Compile(`project.tool == "ant"`)
	require.NoError(t, err)

	table := capability.NewTable(capability.Entry[int]{ID: "ant", Match: p, Value: 1})

	_, ok, err := table.Lookup(capability.ProjectEnv(&domain.Project{Tool: "maven"}))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProjectEnv_Has(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte("<project/>"), domain.FilePerm))

	p, err := capability.Compile(`has("pom.xml") && !has("build.gradle")`)
	require.NoError(t, err)

	got, err := p(capability.ProjectEnv(&domain.Project{Dir: dir}))
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEntityEnv_Exists(t *testing.T) {
	p, err := capability.Compile(`exists(entity.location)`)
	require.NoError(t, err)

	got, err := p(capability.EntityEnv(&domain.Entity{Location: t.TempDir()}))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = p(capability.EntityEnv(&domain.Entity{Location: filepath.Join(t.TempDir(), "gone")}))
	require.NoError(t, err)
	assert.False(t, got)
}
