package ports

import "context"

// Prompter asks the user yes/no questions.
//
//go:generate mockgen -source=prompter.go -destination=mocks/mock_prompter.go -package=mocks
type Prompter interface {
	// Confirm asks the question and reports the answer.
	// It returns domain.ErrPromptUnavailable when nobody can answer.
	Confirm(ctx context.Context, question string) (bool, error)
}
