package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goblintools/goblin/internal/engine"
	"github.com/goblintools/goblin/internal/planner"
)

// applyPlan previews plan, applies it unless dryRun, and reports the outcome.
func applyPlan(cmd *cobra.Command, eng *engine.Engine, plan *planner.OperationPlan, dryRun bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if !plan.HasMoves() {
		if jsonOutput {
			return outputJSON(out, &engine.ApplyResult{Plan: plan, Report: eng.ValidatePlan(ctx, plan), DryRun: dryRun})
		}
		PrintInfo(out, "Nothing to do")
		return nil
	}

	result, err := eng.ApplyPlan(ctx, &engine.ApplyRequest{Plan: plan, DryRun: dryRun})

	if jsonOutput {
		if result != nil {
			if jerr := outputJSON(out, result); jerr != nil {
				return jerr
			}
		}
		return err
	}

	if result != nil {
		PrintPlan(out, plan, result.Report)
		PrintReport(out, result.Report)
	}
	if err != nil {
		return err
	}

	PrintSuccess(out, result.Message())
	if result.DryRun {
		PrintInfo(out, "Run again without --dry-run to apply")
	} else if result.JournalID != "" {
		PrintInfo(out, fmt.Sprintf("Run 'goblin undo %s' to revert", plan.RootDir))
	}
	return nil
}
