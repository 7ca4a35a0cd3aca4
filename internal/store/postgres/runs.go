package postgres

import (
	"context"
	"fmt"

	"groundwork/internal/store"
)

func (c *Client) SaveRun(ctx context.Context, run store.RunInput) (int64, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
INSERT INTO runs (project, domain, problem, relaxed_reachable, goal_impossible, atom_count, action_count, axiom_count)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`,
		run.Project,
		run.Domain,
		run.Problem,
		run.RelaxedReachable,
		run.GoalImpossible,
		len(run.Atoms),
		len(run.Actions),
		len(run.Axioms),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	for i, atom := range run.Atoms {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_atoms (run_id, position, atom) VALUES ($1, $2, $3)`,
			id, i, atom,
		); err != nil {
			return 0, fmt.Errorf("inserting atom: %w", err)
		}
	}
	for i, action := range run.Actions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_actions (run_id, position, name, cost) VALUES ($1, $2, $3, $4)`,
			id, i, action.Name, action.Cost,
		); err != nil {
			return 0, fmt.Errorf("inserting action: %w", err)
		}
	}
	for i, axiom := range run.Axioms {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_axioms (run_id, position, axiom) VALUES ($1, $2, $3)`,
			id, i, axiom,
		); err != nil {
			return 0, fmt.Errorf("inserting axiom: %w", err)
		}
	}
	for i, literal := range run.GoalLiterals {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_goal_literals (run_id, position, literal) VALUES ($1, $2, $3)`,
			id, i, literal,
		); err != nil {
			return 0, fmt.Errorf("inserting goal literal: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

func (c *Client) ListRuns(ctx context.Context, project string) ([]store.RunSummary, error) {
	rows, err := c.pool.Query(ctx, `
SELECT id, project, domain, problem, atom_count, action_count, axiom_count, relaxed_reachable, goal_impossible, created_at
FROM runs
WHERE ($1 = '' OR project = $1)
ORDER BY created_at DESC, id DESC
`, project)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []store.RunSummary
	for rows.Next() {
		var r store.RunSummary
		if err := rows.Scan(
			&r.ID,
			&r.Project,
			&r.Domain,
			&r.Problem,
			&r.AtomCount,
			&r.ActionCount,
			&r.AxiomCount,
			&r.RelaxedReachable,
			&r.GoalImpossible,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}
	return runs, nil
}
