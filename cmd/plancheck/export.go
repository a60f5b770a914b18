package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"plancore/internal/adapters/exports"
	"plancore/internal/blob"
	"plancore/internal/core"
	"plancore/pkg/domain"
)

func exportCmd() *cobra.Command {
	var formats, outDir, refOverride string

	cmd := &cobra.Command{
		Use:   "export <plan.json>",
		Short: "Evaluate a plan and write export artifacts to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], formats, outDir, refOverride)
		},
	}
	cmd.Flags().StringVar(&formats, "formats", "json,svg,csv", "Comma-separated artifact formats")
	cmd.Flags().StringVar(&outDir, "out", "./artifacts", "Output directory")
	cmd.Flags().StringVar(&refOverride, "ref-override", os.Getenv("PLANCORE_REFDATA_OVERRIDE"),
		"Reference-data override file")
	return cmd
}

func runExport(cmd *cobra.Command, path, formats, outDir, refOverride string) error {
	plan, err := readPlan(path)
	if err != nil {
		return err
	}
	ref, err := loadReferenceData(refOverride)
	if err != nil {
		return err
	}

	parsed, err := parseFormats(formats)
	if err != nil {
		return err
	}

	engine := core.NewDefaultRulesEngine()
	results := engine.Evaluate(plan, ref)
	ev := domain.Evaluation{
		PlanID:  plan.ID,
		Status:  domain.WorstStatus(results),
		Results: results,
		Summary: domain.Summarize(plan, ref),
	}

	store, err := blob.NewFilesystem(outDir)
	if err != nil {
		return fmt.Errorf("open output directory: %w", err)
	}

	stamp := time.Now().UTC().Format("20060102T150405Z")
	base := plan.Name
	if base == "" {
		base = "plan"
	}
	base = sanitizeFileBase(base)

	for _, format := range parsed {
		payload, err := exports.Render(format, plan, ev, ref)
		if err != nil {
			return err
		}
		key := fmt.Sprintf("%s-%s.%s", base, stamp, format)
		info, err := store.Put(cmd.Context(), key, bytes.NewReader(payload), blob.PutOptions{
			ContentType: format.ContentType(),
		})
		if err != nil {
			return fmt.Errorf("write %s artifact: %w", format, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", info.Key, info.Size)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "overall: %s\n", ev.Status)
	return nil
}

func parseFormats(csv string) ([]exports.Format, error) {
	var out []exports.Format
	seen := map[exports.Format]bool{}
	for _, piece := range strings.Split(csv, ",") {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		format, err := exports.ParseFormat(piece)
		if err != nil {
			return nil, err
		}
		if seen[format] {
			continue
		}
		seen[format] = true
		out = append(out, format)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no export formats given")
	}
	return out, nil
}

// sanitizeFileBase keeps artifact keys safe for the filesystem driver.
func sanitizeFileBase(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
	if mapped == "" {
		return "plan"
	}
	return mapped
}
