// Package snapshot persists entity snapshots as XML files in the global settings directory.
package snapshot

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SnapshotStore = (*Store)(nil)

// Store implements ports.SnapshotStore with one file per entity kind.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the settings directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the snapshot file of kind.
func (s *Store) Path(kind domain.EntityKind) string {
	return filepath.Join(s.dir, kind.Plural()+".xml")
}

type document struct {
	XMLName xml.Name
	Items   []element `xml:",any"`
}

type element struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
}

// Load reads the snapshot of kind. A missing file yields an empty snapshot.
func (s *Store) Load(kind domain.EntityKind) (*domain.Snapshot, error) {
	path := s.Path(kind)
	snapshot := &domain.Snapshot{Kind: kind}

	//nolint:gosec // Path is built from the settings directory and a fixed file name
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return snapshot, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error()), "path", path)
	}

	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrSnapshotReadFailed, err.Error()), "path", path)
	}
	if doc.XMLName.Local != kind.Plural() {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrSnapshotReadFailed, "unexpected root element "+doc.XMLName.Local),
			"path", path,
		)
	}

	for _, item := range doc.Items {
		if item.XMLName.Local != string(kind) {
			continue
		}
		rec := make(domain.Record, len(item.Attrs))
		for _, attr := range item.Attrs {
			rec[attr.Name.Local] = attr.Value
		}
		snapshot.Records = append(snapshot.Records, rec)
	}
	return snapshot, nil
}

// Save replaces the snapshot file of the snapshot's kind. Records are written
// sorted by id with attributes sorted by name, so equal snapshots produce
// identical files.
func (s *Store) Save(snapshot *domain.Snapshot) error {
	normalized := &domain.Snapshot{Kind: snapshot.Kind, Records: slices.Clone(snapshot.Records)}
	normalized.Normalize()

	data, err := encode(normalized)
	if err != nil {
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "dir", s.dir)
	}
	return writeAtomic(s.Path(snapshot.Kind), data)
}

// Exists reports whether the snapshot file of kind exists.
func (s *Store) Exists(kind domain.EntityKind) bool {
	_, err := os.Stat(s.Path(kind))
	return err == nil
}

// HasSettings reports whether any snapshot file holds at least one record.
func (s *Store) HasSettings() bool {
	for _, kind := range domain.ImportOrder {
		snapshot, err := s.Load(kind)
		if err == nil && snapshot.Len() > 0 {
			return true
		}
	}
	return false
}

func encode(snapshot *domain.Snapshot) ([]byte, error) {
	doc := document{XMLName: xml.Name{Local: snapshot.Kind.Plural()}}
	for _, rec := range snapshot.Records {
		item := element{XMLName: xml.Name{Local: string(snapshot.Kind)}}
		for _, key := range sortedKeys(rec) {
			item.Attrs = append(item.Attrs, xml.Attr{Name: xml.Name{Local: key}, Value: rec[key]})
		}
		doc.Items = append(doc.Items, item)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// sortedKeys orders the id first, then the remaining keys by name.
func sortedKeys(rec domain.Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		if k != domain.AttrID {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, strings.Compare)
	return append([]string{domain.AttrID}, keys...)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", path)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", path)
	}
	return nil
}
