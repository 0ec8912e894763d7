package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [dir]",
	Short: "Show the batch that undo would revert",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	eng, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Status(cmd.Context(), dirArg(args))
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(out, result)
	}

	PrintSection(out, "Status")
	PrintLabelValue(out, "Directory", result.Root)
	if !result.HasJournal() {
		PrintLabelValue(out, "Last batch", "none")
		_, _ = fmt.Fprintln(out)
		return nil
	}

	journal := result.Journal
	PrintLabelValue(out, "Last batch", journal.Mode)
	PrintLabelValue(out, "Applied", journal.AppliedAt.Local().Format(time.RFC1123))
	PrintLabelValue(out, "Files", fmt.Sprintf("%d", len(journal.Moves)))
	if len(journal.CreatedDirs) > 0 {
		PrintLabelValue(out, "Created folders", fmt.Sprintf("%d", len(journal.CreatedDirs)))
	}
	_, _ = fmt.Fprintln(out)

	if result.Clean() {
		PrintSuccess(out, "Ready to undo")
		return nil
	}
	if len(result.Missing) > 0 {
		PrintWarning(out, fmt.Sprintf("%d file(s) missing", len(result.Missing)))
		PrintList(out, result.Missing, 1)
	}
	if len(result.Modified) > 0 {
		PrintWarning(out, fmt.Sprintf("%d file(s) modified since the batch", len(result.Modified)))
		PrintList(out, result.Modified, 1)
	}
	return nil
}
