// Package store persists grounding runs so external tooling can query
// past results.
package store

import (
	"context"
	"time"
)

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	SaveRun(ctx context.Context, run RunInput) (int64, error)
	ListRuns(ctx context.Context, project string) ([]RunSummary, error)
}

// RunInput is one grounding result in its storable form: rendered
// atoms, actions, axioms, and goal literals plus the run flags.
type RunInput struct {
	Project          string
	Domain           string
	Problem          string
	RelaxedReachable bool
	GoalImpossible   bool
	Atoms            []string
	Actions          []RunAction
	Axioms           []string
	GoalLiterals     []string
}

type RunAction struct {
	Name string
	Cost int
}

type RunSummary struct {
	ID               int64
	Project          string
	Domain           string
	Problem          string
	AtomCount        int
	ActionCount      int
	AxiomCount       int
	RelaxedReachable bool
	GoalImpossible   bool
	CreatedAt        time.Time
}
