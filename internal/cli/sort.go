package cli

import (
	"github.com/spf13/cobra"
)

var (
	sortDryRun          bool
	sortIncludeOptional bool
)

var sortCmd = &cobra.Command{
	Use:   "sort [dir]",
	Short: "Move files into category folders",
	Long: `Move every file directly inside dir (default: the current directory) into
a folder named after its category: Images, Videos, Audio, Documents, Archives,
Code or Other. Name clashes get a " (n)" suffix.

Nothing is moved if any problem is found, and a failure part way through puts
every file back.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSort,
}

func init() {
	sortCmd.Flags().BoolVar(&sortDryRun, "dry-run", false, "Show the plan without moving anything")
	sortCmd.Flags().BoolVar(&sortIncludeOptional, "include-optional", true, "Use the Audio, Archives and Code folders instead of Other")
}

func runSort(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	include := includeOptional(cmd, sortIncludeOptional, eng.Settings().IncludeOptionalCategories)
	plan, err := eng.BuildSortPlan(cmd.Context(), dirArg(args), include)
	if err != nil {
		return err
	}
	return applyPlan(cmd, eng, plan, sortDryRun)
}
