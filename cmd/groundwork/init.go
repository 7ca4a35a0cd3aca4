package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const sampleTask = `domain: delivery
problem: two-towns
metric: true

types:
  - name: object
  - name: vehicle
    parents: [object]
  - name: truck
    parents: [vehicle, object]
  - name: location
    parents: [object]

objects:
  - {name: red, type: truck}
  - {name: depot, type: location}
  - {name: market, type: location}

predicates:
  - {name: at, arity: 2}
  - {name: road, arity: 2}

functions:
  - {name: drive-cost, arity: 2}

actions:
  - name: drive
    parameters:
      - {name: "?t", type: truck}
      - {name: "?from", type: location}
      - {name: "?to", type: location}
    precondition:
      and:
        - {predicate: at, args: ["?t", "?from"]}
        - {predicate: road, args: ["?from", "?to"]}
    effects:
      - add: {predicate: at, args: ["?t", "?to"]}
      - delete: {predicate: at, args: ["?t", "?from"]}
    cost: {function: drive-cost, args: ["?from", "?to"]}

init:
  facts:
    - {predicate: at, args: [red, depot]}
    - {predicate: road, args: [depot, market]}
  assignments:
    - {function: drive-cost, args: [depot, market], value: 4}

goal:
  predicate: at
  args: [red, market]
`

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new groundwork project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	configPath := "groundwork.yaml"
	taskPath := "task.yaml"
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if _, err := os.Stat(taskPath); err == nil {
		return fmt.Errorf("%s already exists", taskPath)
	}

	configContents := fmt.Sprintf("project: %s\nversion: 1\n\ndatabase:\n  dsn: postgres://localhost:5432/groundwork?sslmode=disable\n\ndumps:\n  dir: .\n", projectName)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	if err := os.WriteFile(taskPath, []byte(sampleTask), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", taskPath, err)
	}

	return nil
}
