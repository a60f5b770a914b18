package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"plancore/internal/core"
	"plancore/pkg/domain"
)

func evaluateCmd() *cobra.Command {
	var refOverride string

	cmd := &cobra.Command{
		Use:   "evaluate <plan.json>",
		Short: "Evaluate a plan file against all constraint layers",
		Long: `Evaluate reads a plan document in JSON form, runs it through the
constraint engine, and prints one row per constraint result. The exit
code is non-zero when any constraint fails.

Pass "-" to read the plan from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.OutOrStdout(), args[0], refOverride)
		},
	}
	cmd.Flags().StringVar(&refOverride, "ref-override", os.Getenv("PLANCORE_REFDATA_OVERRIDE"),
		"Reference-data override file")
	return cmd
}

func runEvaluate(out io.Writer, path, refOverride string) error {
	plan, err := readPlan(path)
	if err != nil {
		return err
	}
	ref, err := loadReferenceData(refOverride)
	if err != nil {
		return err
	}

	engine := core.NewDefaultRulesEngine()
	results := engine.Evaluate(plan, ref)
	worst := domain.WorstStatus(results)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LAYER\tSTATUS\tID\tMESSAGE\tWITNESS")
	for _, res := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", res.Layer, res.Status, res.ID, res.Message, res.Witness)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\noverall: %s\n", worst)

	if worst == domain.StatusFail {
		return fmt.Errorf("plan failed evaluation")
	}
	return nil
}

func readPlan(path string) (domain.Plan, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("read plan: %w", err)
	}
	var plan domain.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	return plan, nil
}
