package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
)

func TestEntity_RecordRoundTrip(t *testing.T) {
	e := &domain.Entity{
		ID:         "r1",
		Kind:       domain.KindRuntime,
		TypeID:     "forge.runtime.tomcat",
		Name:       "Tomcat 9",
		Location:   "/opt/tomcat",
		Attributes: map[string]string{"version": "9.0"},
	}

	rec := e.Record()
	assert.Equal(t, domain.Record{
		"id":       "r1",
		"type":     "forge.runtime.tomcat",
		"name":     "Tomcat 9",
		"location": "/opt/tomcat",
		"version":  "9.0",
	}, rec)

	got, err := domain.DecodeEntity(domain.KindRuntime, rec)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestEntity_RecordReservedKeysWin(t *testing.T) {
	e := &domain.Entity{
		ID:         "s1",
		Kind:       domain.KindSDK,
		Location:   "/sdk",
		Attributes: map[string]string{"id": "spoofed", "name": "spoofed"},
	}

	rec := e.Record()
	assert.Equal(t, "s1", rec.ID())
	_, hasName := rec["name"]
	assert.False(t, hasName)
}

func TestDecodeEntity_SDKWithoutLocation(t *testing.T) {
	got, err := domain.DecodeEntity(domain.KindSDK, domain.Record{"id": "local", "name": "Local SDK"})
	require.NoError(t, err)
	assert.Empty(t, got.Location)
	assert.False(t, domain.KindSDK.RequiresLocation())
}

func TestDecodeEntity_Invalid(t *testing.T) {
	tests := []struct {
		name string
		kind domain.EntityKind
		rec  domain.Record
	}{
		{"missing id", domain.KindSDK, domain.Record{"name": "sdk"}},
		{"runtime without location", domain.KindRuntime, domain.Record{"id": "r1"}},
		{"server without location", domain.KindServer, domain.Record{"id": "s1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.DecodeEntity(tt.kind, tt.rec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidEntity))
		})
	}
}

func TestEntity_MatchesVendor(t *testing.T) {
	tests := []struct {
		name   string
		entity domain.Entity
		want   bool
	}{
		{"vendor runtime", domain.Entity{Kind: domain.KindRuntime, TypeID: "forge.runtime.tomcat"}, true},
		{"foreign runtime", domain.Entity{Kind: domain.KindRuntime, TypeID: "acme.runtime"}, false},
		{"prefix without dot", domain.Entity{Kind: domain.KindRuntime, TypeID: "forgery.runtime"}, false},
		{"untyped sdk", domain.Entity{Kind: domain.KindSDK}, true},
		{"untyped server", domain.Entity{Kind: domain.KindServer}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entity.MatchesVendor("forge"))
		})
	}
}

func TestSnapshot_Normalize(t *testing.T) {
	s := &domain.Snapshot{
		Kind: domain.KindRuntime,
		Records: []domain.Record{
			{"id": "b", "location": "/b"},
			{"location": "/nowhere"},
			{"id": "a", "location": "/a-old"},
			{"id": "a", "location": "/a"},
		},
	}

	s.Normalize()

	assert.Equal(t, []string{"a", "b"}, s.IDs())
	assert.Equal(t, "/a", s.Records[0].Location())
}

func TestParseKinds(t *testing.T) {
	k, err := domain.ParseEntityKind("Runtime")
	require.NoError(t, err)
	assert.Equal(t, domain.KindRuntime, k)
	assert.Equal(t, "runtimes", k.Plural())

	_, err = domain.ParseEntityKind("printer")
	assert.Error(t, err)

	d, err := domain.ParseDescriptorKind("lang")
	require.NoError(t, err)
	assert.Equal(t, domain.DescriptorLanguage, d)
	assert.Equal(t, "Language.properties", d.FileName())
	assert.Equal(t, domain.GoalBuildLang, d.Goal())

	_, err = domain.ParseDescriptorKind("docs")
	assert.ErrorIs(t, err, domain.ErrInvalidDescriptorKind)
}

func TestProject_Contains(t *testing.T) {
	p := &domain.Project{Dir: filepath.FromSlash("/ws/portal")}

	assert.True(t, p.Contains(filepath.FromSlash("/ws/portal/docroot/WEB-INF/service.xml")))
	assert.True(t, p.Contains(filepath.FromSlash("/ws/portal")))
	assert.False(t, p.Contains(filepath.FromSlash("/ws/portal-api/service.xml")))
}

func TestProject_Aggregator(t *testing.T) {
	parent := &domain.Project{Name: "parent"}
	child := &domain.Project{Name: "child", Parent: parent}

	assert.Same(t, parent, child.Aggregator())
	assert.Same(t, parent, parent.Aggregator())
}

func TestOutcome(t *testing.T) {
	assert.True(t, domain.OK().IsOK())
	assert.NoError(t, domain.OK().Err())

	cause := errors.New("boom")
	o := domain.Failed("goal failed", cause)
	assert.False(t, o.IsOK())
	assert.Same(t, cause, o.Err())

	assert.EqualError(t, domain.Failed("plain", nil).Err(), "plain")
}

func TestJobState_IsTerminal(t *testing.T) {
	assert.False(t, domain.JobWaiting.IsTerminal())
	assert.False(t, domain.JobRunning.IsTerminal())
	assert.True(t, domain.JobSucceeded.IsTerminal())
	assert.True(t, domain.JobFailed.IsTerminal())
	assert.True(t, domain.JobCancelled.IsTerminal())
}
