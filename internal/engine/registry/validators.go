package registry

import (
	"os"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/capability"
	"go.trai.ch/zerr"
)

// LookupFunc finds a live entity while validators run.
type LookupFunc func(kind domain.EntityKind, id string) (*domain.Entity, bool)

// CheckFunc validates one entity. A non-nil error rejects it.
type CheckFunc func(e *domain.Entity, lookup LookupFunc) error

// Validators is the table of entity checks, keyed by predicate over the entity.
type Validators struct {
	table *capability.Table[CheckFunc]
}

// NewValidators creates a table holding the built-in checks: a runtime's
// location must exist and a server's runtime must be live.
func NewValidators() *Validators {
	return &Validators{
		table: capability.NewTable(
			capability.Entry[CheckFunc]{
				ID:    "runtime-location",
				Match: ofKind(domain.KindRuntime),
				Value: checkLocationExists,
			},
			capability.Entry[CheckFunc]{
				ID:    "server-runtime",
				Match: ofKind(domain.KindServer),
				Value: checkServerRuntime,
			},
		),
	}
}

// AddSpecs registers configured validators. Each applies to entities whose
// type starts with the validator's type prefix.
func (v *Validators) AddSpecs(specs []domain.ValidatorSpec) error {
	for _, spec := range specs {
		when, err := capability.Compile(spec.When)
		if err != nil {
			return zerr.With(err, "validator", spec.TypePrefix)
		}
		message := spec.Message
		if message == "" {
			message = "does not satisfy " + spec.When
		}
		v.table.Register(capability.Entry[CheckFunc]{
			ID:    "config:" + spec.TypePrefix,
			Match: ofTypePrefix(spec.TypePrefix),
			Value: checkPredicate(when, message),
		})
	}
	return nil
}

// Len returns the number of registered checks.
func (v *Validators) Len() int {
	return v.table.Len()
}

// Check runs every check that applies to e and returns the first rejection.
func (v *Validators) Check(e *domain.Entity, lookup LookupFunc) error {
	entries, err := v.table.All(capability.EntityEnv(e))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := entry.Value(e, lookup); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrEntityRejected, err.Error()), "validator", entry.ID)
		}
	}
	return nil
}

func ofKind(kind domain.EntityKind) capability.Predicate {
	return func(env capability.Env) (bool, error) {
		entity, _ := env["entity"].(map[string]any)
		return entity["kind"] == string(kind), nil
	}
}

func ofTypePrefix(prefix string) capability.Predicate {
	return func(env capability.Env) (bool, error) {
		entity, _ := env["entity"].(map[string]any)
		typeID, _ := entity["type"].(string)
		return strings.HasPrefix(typeID, prefix), nil
	}
}

func checkLocationExists(e *domain.Entity, _ LookupFunc) error {
	if _, err := os.Stat(e.Location); err != nil {
		return zerr.With(zerr.New("location does not exist"), "location", e.Location)
	}
	return nil
}

func checkServerRuntime(e *domain.Entity, lookup LookupFunc) error {
	runtimeID := e.Attr(domain.AttrRuntime)
	if runtimeID == "" {
		return nil
	}
	if _, ok := lookup(domain.KindRuntime, runtimeID); !ok {
		return zerr.With(zerr.New("runtime is not registered"), "runtime", runtimeID)
	}
	return nil
}

func checkPredicate(when capability.Predicate, message string) CheckFunc {
	return func(e *domain.Entity, _ LookupFunc) error {
		ok, err := when(capability.EntityEnv(e))
		if err != nil {
			return err
		}
		if !ok {
			return zerr.New(message)
		}
		return nil
	}
}
