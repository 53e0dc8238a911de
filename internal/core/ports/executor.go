// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// GoalExecutor runs build tool goals.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type GoalExecutor interface {
	// ExecuteGoal runs the named goal against the module.
	//
	// Executions sharing a build tool session are serialized. The scope's
	// cancellation flag is observed while the goal runs.
	ExecuteGoal(ctx context.Context, module *domain.Project, goal string, scope Progress) domain.Outcome
}
