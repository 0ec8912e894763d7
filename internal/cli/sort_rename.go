package cli

import (
	"github.com/spf13/cobra"
)

var (
	sortRenameDryRun          bool
	sortRenameIncludeOptional bool
	sortRenameTemplate        templateFlags
)

var sortRenameCmd = &cobra.Command{
	Use:   "sort-rename [dir]",
	Short: "Sort files into category folders and number them per category",
	Long: `Sort every file directly inside dir into its category folder and give it a
sequential name. Numbering restarts in each category, so a folder with two
images and one PDF yields Images/asset_001.png, Images/asset_002.jpg and
Documents/asset_001.pdf.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSortRename,
}

func init() {
	sortRenameCmd.Flags().BoolVar(&sortRenameDryRun, "dry-run", false, "Show the plan without moving anything")
	sortRenameCmd.Flags().BoolVar(&sortRenameIncludeOptional, "include-optional", true, "Use the Audio, Archives and Code folders instead of Other")
	addTemplateFlags(sortRenameCmd, &sortRenameTemplate)
}

func runSortRename(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	settings := eng.Settings()
	include := includeOptional(cmd, sortRenameIncludeOptional, settings.IncludeOptionalCategories)
	opts := sortRenameTemplate.options(cmd, settings.Rename)

	plan, err := eng.BuildSortThenRenamePlan(cmd.Context(), dirArg(args), opts, include)
	if err != nil {
		return err
	}
	return applyPlan(cmd, eng, plan, sortRenameDryRun)
}
