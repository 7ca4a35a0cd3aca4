package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"groundwork/internal/ground"
	"groundwork/internal/model"
	"groundwork/internal/pddl"
	"groundwork/internal/task"
)

func exploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore <task.yaml>",
		Short: "Ground a task and print the full atom, action, and axiom listing",
		Args:  cobra.ExactArgs(1),
		RunE:  runExplore,
	}
	return cmd
}

func runExplore(cmd *cobra.Command, args []string) error {
	lifted, err := task.Load(args[0])
	if err != nil {
		return err
	}
	reachable, err := model.Compute(lifted)
	if err != nil {
		return err
	}
	grounded, err := ground.Instantiate(lifted, reachable)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "goal relaxed reachable: %v\n", grounded.RelaxedReachable)

	atoms := grounded.FluentFacts.Sorted()
	fmt.Fprintf(os.Stdout, "%d atoms:\n", len(atoms))
	for _, atom := range atoms {
		fmt.Fprintf(os.Stdout, "  %s\n", atom)
	}
	fmt.Fprintln(os.Stdout)

	fmt.Fprintf(os.Stdout, "%d actions:\n", len(grounded.Actions))
	for _, action := range grounded.Actions {
		printAction(action)
		fmt.Fprintln(os.Stdout)
	}

	fmt.Fprintf(os.Stdout, "%d axioms:\n", len(grounded.Axioms))
	for _, axiom := range grounded.Axioms {
		printAxiom(axiom)
		fmt.Fprintln(os.Stdout)
	}

	if grounded.GoalImpossible {
		fmt.Fprintln(os.Stdout, "impossible goal")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%d goals:\n", len(grounded.Goal))
	for _, literal := range grounded.Goal {
		fmt.Fprintf(os.Stdout, "  %s\n", literal)
	}
	return nil
}

func printAction(action *pddl.GroundAction) {
	fmt.Fprintf(os.Stdout, "%s cost %d\n", action.Name, action.Cost)
	for _, lit := range action.Precondition {
		fmt.Fprintf(os.Stdout, "  PRE: %s\n", lit)
	}
	for _, eff := range action.AddEffects {
		printEffect("ADD", eff)
	}
	for _, eff := range action.DelEffects {
		printEffect("DEL", eff)
	}
}

func printEffect(kind string, eff pddl.GroundEffect) {
	if len(eff.Condition) == 0 {
		fmt.Fprintf(os.Stdout, "  %s: %s\n", kind, eff.Atom)
		return
	}
	for _, lit := range eff.Condition {
		fmt.Fprintf(os.Stdout, "  %s when: %s\n", kind, lit)
	}
	fmt.Fprintf(os.Stdout, "  %s: %s\n", kind, eff.Atom)
}

func printAxiom(axiom *pddl.GroundAxiom) {
	fmt.Fprintf(os.Stdout, "%s <-\n", axiom.Effect)
	for _, lit := range axiom.Condition {
		fmt.Fprintf(os.Stdout, "  %s\n", lit)
	}
}
