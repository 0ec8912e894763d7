package cli

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/engine"
)

var (
	undoForce  bool
	undoDryRun bool
)

var undoCmd = &cobra.Command{
	Use:   "undo [dir]",
	Short: "Undo the last batch applied to a directory",
	Long: `Put every file moved by the last sort or rename in dir back where it was,
and remove the category folders that batch created if they are empty.

Files changed since the batch block the undo unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUndo,
}

func init() {
	undoCmd.Flags().BoolVarP(&undoForce, "force", "f", false, "Undo even if files were modified since the batch")
	undoCmd.Flags().BoolVar(&undoDryRun, "dry-run", false, "Show what would be restored without moving anything")
}

func runUndo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	eng, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.UndoLast(cmd.Context(), &engine.UndoRequest{
		Root:   dirArg(args),
		Force:  undoForce,
		DryRun: undoDryRun,
	})
	if errors.Is(err, engine.ErrNoJournal) {
		if jsonOutput {
			return outputJSON(out, map[string]any{"undone": false})
		}
		PrintInfo(out, "Nothing to undo")
		return nil
	}

	if jsonOutput {
		if result != nil {
			if jerr := outputJSON(out, result); jerr != nil {
				return jerr
			}
		}
		return err
	}

	if result != nil {
		PrintReport(out, result.Report)
	}
	if err != nil {
		return err
	}

	if result.DryRun {
		rows := make([][]string, 0, len(result.Journal.Moves))
		for _, m := range result.Journal.Moves {
			rows = append(rows, []string{relPath(result.Journal.RootDir, m.Final), relPath(result.Journal.RootDir, m.Original)})
		}
		PrintSection(out, "Undo plan for "+result.Journal.RootDir)
		PrintTable(out, []string{"CURRENT", "RESTORED"}, rows)
		_, _ = out.Write([]byte("\n"))
	}
	PrintSuccess(out, result.Message())
	if len(result.RemovedDirs) > 0 {
		PrintInfo(out, "Removed empty folders:")
		PrintList(out, result.RemovedDirs, 1)
	}
	return nil
}
