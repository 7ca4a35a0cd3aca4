package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"groundwork/internal/config"
)

func runsCmd() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List grounding runs stored in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(project)
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project name to filter")
	return cmd
}

func runRuns(project string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("groundwork.yaml")
	if err != nil {
		return err
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	runs, err := db.ListRuns(ctx, project)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs found.")
		return nil
	}

	for _, run := range runs {
		goal := "goal ok"
		if run.GoalImpossible {
			goal = "goal impossible"
		}
		fmt.Fprintf(os.Stdout, "%d  %s %s/%s  %d atoms, %d actions, %d axioms  (%s, %s)\n",
			run.ID, run.Project, run.Domain, run.Problem,
			run.AtomCount, run.ActionCount, run.AxiomCount,
			goal, run.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
