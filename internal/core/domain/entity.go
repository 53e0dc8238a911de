package domain

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// EntityKind identifies the kind of a synchronized entity.
type EntityKind string

const (
	// KindRuntime is an installed application server runtime.
	KindRuntime EntityKind = "runtime"
	// KindServer is a server instance bound to a runtime.
	KindServer EntityKind = "server"
	// KindSDK is a plugins SDK installation.
	KindSDK EntityKind = "sdk"
)

// ImportOrder lists entity kinds in dependency order: servers reference runtimes.
var ImportOrder = []EntityKind{KindSDK, KindRuntime, KindServer}

// ParseEntityKind converts a string to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(strings.ToLower(s)) {
	case KindRuntime:
		return KindRuntime, nil
	case KindServer:
		return KindServer, nil
	case KindSDK:
		return KindSDK, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidEntityKind, "parse kind"), "kind", s)
	}
}

// Plural returns the plural form used for snapshot file and root element names.
func (k EntityKind) Plural() string {
	return string(k) + "s"
}

// RequiresLocation reports whether records of this kind must carry a location.
func (k EntityKind) RequiresLocation() bool {
	return k == KindRuntime || k == KindServer
}

// Reserved record attribute names.
const (
	AttrID       = "id"
	AttrType     = "type"
	AttrName     = "name"
	AttrLocation = "location"
	// AttrRuntime names the runtime a server is bound to.
	AttrRuntime = "runtime"
)

// Record is the flat key/value serialization of an Entity.
type Record map[string]string

// ID returns the record's identity.
func (r Record) ID() string {
	return r[AttrID]
}

// Location returns the record's backing location, if any.
func (r Record) Location() string {
	return r[AttrLocation]
}

// Entity is a live runtime, server or SDK.
type Entity struct {
	ID         string
	Kind       EntityKind
	TypeID     string
	Name       string
	Location   string
	Attributes map[string]string
}

// Vendor returns the type-qualifying vendor prefix of the entity.
func (e *Entity) Vendor() string {
	vendor, _, _ := strings.Cut(e.TypeID, ".")
	return vendor
}

// MatchesVendor reports whether the entity belongs to the given vendor.
// SDKs without a type are always owned by the product.
func (e *Entity) MatchesVendor(vendor string) bool {
	if e.TypeID == "" {
		return e.Kind == KindSDK
	}
	return strings.HasPrefix(e.TypeID, vendor+".")
}

// Attr returns an attribute value.
func (e *Entity) Attr(key string) string {
	return e.Attributes[key]
}

// Validate checks mandatory fields.
func (e *Entity) Validate() error {
	if e.ID == "" {
		return zerr.With(zerr.Wrap(ErrInvalidEntity, "missing id"), "kind", string(e.Kind))
	}
	if e.Kind.RequiresLocation() && e.Location == "" {
		return zerr.With(zerr.Wrap(ErrInvalidEntity, "missing location"), "id", e.ID)
	}
	return nil
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	c := *e
	c.Attributes = maps.Clone(e.Attributes)
	return &c
}

// Record serializes the entity to a flat record.
// Attributes never override the reserved fields.
func (e *Entity) Record() Record {
	r := make(Record, len(e.Attributes)+4)
	for k, v := range e.Attributes {
		r[k] = v
	}
	r[AttrID] = e.ID
	setIfNotEmpty(r, AttrType, e.TypeID)
	setIfNotEmpty(r, AttrName, e.Name)
	setIfNotEmpty(r, AttrLocation, e.Location)
	return r
}

func setIfNotEmpty(r Record, key, value string) {
	if value == "" {
		delete(r, key)
		return
	}
	r[key] = value
}

// DecodeEntity deserializes a record of the given kind.
func DecodeEntity(kind EntityKind, r Record) (*Entity, error) {
	e := &Entity{
		ID:       r[AttrID],
		Kind:     kind,
		TypeID:   r[AttrType],
		Name:     r[AttrName],
		Location: r[AttrLocation],
	}
	for k, v := range r {
		switch k {
		case AttrID, AttrType, AttrName, AttrLocation:
			continue
		}
		if e.Attributes == nil {
			e.Attributes = make(map[string]string)
		}
		e.Attributes[k] = v
	}
	if err := e.Validate(); err != nil {
		return nil, zerr.Wrap(err, ErrRecordDecodeFailed.Error())
	}
	return e, nil
}

// Snapshot is the persisted collection of records of one kind.
type Snapshot struct {
	Kind    EntityKind
	Records []Record
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.Records)
}

// IDs returns the record ids in order.
func (s *Snapshot) IDs() []string {
	ids := make([]string, 0, len(s.Records))
	for _, r := range s.Records {
		ids = append(ids, r.ID())
	}
	return ids
}

// Normalize drops records without an id, keeps the last record for each id and sorts by id.
func (s *Snapshot) Normalize() {
	byID := make(map[string]Record, len(s.Records))
	for _, r := range s.Records {
		if r.ID() == "" {
			continue
		}
		byID[r.ID()] = r
	}
	s.Records = s.Records[:0]
	for _, id := range slices.Sorted(maps.Keys(byID)) {
		s.Records = append(s.Records, byID[id])
	}
}
