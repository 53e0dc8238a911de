package domain

import "go.trai.ch/zerr"

const (
	// GoalBuildService generates the service layer from service.xml.
	GoalBuildService = "build-service"
	// GoalBuildWSDD generates web service deployment descriptors.
	GoalBuildWSDD = "build-wsdd"
	// GoalBuildLang builds language resource bundles.
	GoalBuildLang = "build-lang"

	// GoalBudget is the number of work units a single goal invocation consumes.
	GoalBudget = 100
)

// GoalRequest describes a single goal invocation against a module.
type GoalRequest struct {
	Project    *Project
	Goal       string
	Descriptor string
}

// Outcome status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Outcome is the result of a goal execution or a build operation.
type Outcome struct {
	Status  string
	Message string
	Cause   error
}

// OK returns a successful Outcome.
func OK() Outcome {
	return Outcome{Status: StatusOK}
}

// Failed returns an error Outcome with the given message and cause.
func Failed(msg string, cause error) Outcome {
	return Outcome{Status: StatusError, Message: msg, Cause: cause}
}

// FailedErr returns an error Outcome whose message is taken from err.
func FailedErr(err error) Outcome {
	return Outcome{Status: StatusError, Message: err.Error(), Cause: err}
}

// IsOK reports whether the Outcome is successful.
func (o Outcome) IsOK() bool {
	return o.Status == StatusOK
}

// Err converts the Outcome to an error. It returns nil for a successful Outcome.
func (o Outcome) Err() error {
	if o.IsOK() {
		return nil
	}
	if o.Cause != nil {
		return o.Cause
	}
	return zerr.New(o.Message)
}
