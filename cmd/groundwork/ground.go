package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"groundwork/internal/config"
	"groundwork/internal/ground"
	"groundwork/internal/model"
	"groundwork/internal/pddl"
	"groundwork/internal/store"
	"groundwork/internal/task"
)

const (
	predicatesFile       = "predicates.txt"
	staticPredicatesFile = "static-predicates.txt"
	staticAtomsFile      = "static-atoms.txt"
)

var (
	groundDumpPredicates       bool
	groundDumpStaticPredicates bool
	groundDumpStaticAtoms      bool
	groundOut                  string
	groundStore                bool
)

func groundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ground <task.yaml>",
		Short: "Ground a lifted task into concrete actions, axioms, and goal",
		Args:  cobra.ExactArgs(1),
		RunE:  runGround,
	}
	cmd.Flags().BoolVar(&groundDumpPredicates, "dump-predicates", false, "Write the fluent-predicate listing")
	cmd.Flags().BoolVar(&groundDumpStaticPredicates, "dump-static-predicates", false, "Write the static-predicate listing")
	cmd.Flags().BoolVar(&groundDumpStaticAtoms, "dump-static-atoms", false, "Write the static-atom listing")
	cmd.Flags().StringVar(&groundOut, "out", "", "Directory for the dump listings (overrides groundwork.yaml)")
	cmd.Flags().BoolVar(&groundStore, "store", false, "Save the grounding run to the configured database")
	return cmd
}

func runGround(cmd *cobra.Command, args []string) error {
	lifted, err := task.Load(args[0])
	if err != nil {
		return err
	}

	reachable, err := model.Compute(lifted)
	if err != nil {
		return err
	}

	if groundDumpPredicates || groundDumpStaticPredicates || groundDumpStaticAtoms {
		if err := writeDumps(lifted, reachable); err != nil {
			return err
		}
	}

	grounded, err := ground.Instantiate(lifted, reachable)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Grounding complete.")
	fmt.Fprintf(os.Stdout, "  Goal relaxed reachable: %v\n", grounded.RelaxedReachable)
	fmt.Fprintf(os.Stdout, "  Fluent facts:  %d\n", len(grounded.FluentFacts))
	fmt.Fprintf(os.Stdout, "  Ground actions: %d\n", len(grounded.Actions))
	fmt.Fprintf(os.Stdout, "  Ground axioms:  %d\n", len(grounded.Axioms))
	if grounded.GoalImpossible {
		fmt.Fprintln(os.Stdout, "  Goal: impossible (refuted by static initial facts)")
	} else {
		fmt.Fprintf(os.Stdout, "  Goal literals:  %d\n", len(grounded.Goal))
	}

	if groundStore {
		cfg, err := config.LoadProjectConfig("groundwork.yaml")
		if err != nil {
			return err
		}
		id, err := saveRun(cmd.Context(), cfg, lifted.Domain, lifted.Problem, grounded)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  Stored as run %d\n", id)
	}
	return nil
}

func writeDumps(lifted *pddl.Task, reachable model.Model) error {
	classification := ground.Classify(lifted)

	dumps := []struct {
		enabled bool
		name    string
		write   func(f *os.File) error
	}{
		{groundDumpPredicates, predicatesFile, func(f *os.File) error {
			return ground.WriteFluentPredicates(f, lifted, classification)
		}},
		{groundDumpStaticPredicates, staticPredicatesFile, func(f *os.File) error {
			return ground.WriteStaticPredicates(f, lifted, classification)
		}},
		{groundDumpStaticAtoms, staticAtomsFile, func(f *os.File) error {
			return ground.WriteStaticAtoms(f, lifted, classification, reachable)
		}},
	}

	dir := "."
	if cfg, err := config.LoadProjectConfig("groundwork.yaml"); err == nil {
		dir = cfg.Dumps.Dir
	}
	if groundOut != "" {
		dir = groundOut
	}

	for _, dump := range dumps {
		if !dump.enabled {
			continue
		}
		f, err := os.Create(filepath.Join(dir, dump.name))
		if err != nil {
			return fmt.Errorf("creating %s: %w", dump.name, err)
		}
		if err := dump.write(f); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", dump.name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", dump.name, err)
		}
	}
	return nil
}

func saveRun(ctx context.Context, cfg *config.ProjectConfig, domain, problem string, grounded *ground.Task) (int64, error) {
	db, err := openStore(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer db.Close(ctx)

	if err := db.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	input := store.RunInput{
		Project:          cfg.Project,
		Domain:           domain,
		Problem:          problem,
		RelaxedReachable: grounded.RelaxedReachable,
		GoalImpossible:   grounded.GoalImpossible,
	}
	for _, atom := range grounded.FluentFacts.Sorted() {
		input.Atoms = append(input.Atoms, atom.String())
	}
	for _, action := range grounded.Actions {
		input.Actions = append(input.Actions, store.RunAction{Name: action.Name, Cost: action.Cost})
	}
	for _, axiom := range grounded.Axioms {
		input.Axioms = append(input.Axioms, axiom.SortKey())
	}
	for _, lit := range grounded.Goal {
		input.GoalLiterals = append(input.GoalLiterals, lit.String())
	}

	return db.SaveRun(ctx, input)
}
