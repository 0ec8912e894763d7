package cli

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/planner"
)

var (
	renameDir        string
	renameImagesOnly bool
	renameExt        string
	renameInclude    string
	renameExclude    string
	renameFind       string
	renameReplace    string
	renameTo         string
	renameDryRun     bool
	renameTemplate   templateFlags
)

var renameCmd = &cobra.Command{
	Use:   "rename [files...]",
	Short: "Rename files with a sequential template or find/replace",
	Long: `Rename files in one directory. By default files get sequential names such as
asset_001.png, asset_002.png in the order given. With --find, the text is
replaced in each name instead. With --to, a single file gets exactly that name.

Files come from the arguments or, with --dir, from a directory listing
narrowed by --images-only, --ext, --include and --exclude.`,
	Example: `  goblin rename --dir ./shots --images-only --base shot
  goblin rename a.png b.png --base hero --pad 2
  goblin rename --dir ./docs --find draft --replace final --dry-run
  goblin rename a.png --to cover.png`,
	RunE: runRename,
}

func init() {
	renameCmd.Flags().StringVar(&renameDir, "dir", "", "Rename the files of this directory")
	renameCmd.Flags().BoolVar(&renameImagesOnly, "images-only", false, "With --dir, only rename image files")
	renameCmd.Flags().StringVar(&renameExt, "ext", "", "With --dir, only rename these extensions (comma separated)")
	renameCmd.Flags().StringVar(&renameInclude, "include", "", "With --dir, only rename names matching these globs (comma separated)")
	renameCmd.Flags().StringVar(&renameExclude, "exclude", "", "With --dir, skip names matching these globs (comma separated)")
	renameCmd.Flags().StringVar(&renameFind, "find", "", "Replace this text in each name instead of numbering")
	renameCmd.Flags().StringVar(&renameReplace, "replace", "", "Replacement for --find")
	renameCmd.Flags().StringVar(&renameTo, "to", "", "Give a single file this exact name")
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "Show the plan without renaming anything")
	addTemplateFlags(renameCmd, &renameTemplate)
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if renameDir != "" && len(args) > 0 {
		return errors.New("pass either files or --dir, not both")
	}
	if renameDir == "" && len(args) == 0 {
		return errors.New("no files to rename: pass files or --dir")
	}
	explicit := cmd.Flags().Changed("to")
	if explicit && (len(args) != 1 || cmd.Flags().Changed("find")) {
		return errors.New("--to renames exactly one file and cannot be combined with --find")
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		resolved, err := fsops.Resolve(arg)
		if err != nil {
			return err
		}
		paths = append(paths, resolved)
	}
	if renameDir != "" {
		filter := planner.Filter{
			ImagesOnly: renameImagesOnly,
			Extensions: planner.ParseExtensionFilter(renameExt),
			Include:    splitList(renameInclude),
			Exclude:    splitList(renameExclude),
		}
		paths, err = eng.ListCandidates(ctx, renameDir, filter)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			PrintInfo(cmd.OutOrStdout(), "No matching files")
			return nil
		}
	}

	opts := renameTemplate.options(cmd, eng.Settings().Rename)

	var plan *planner.OperationPlan
	switch {
	case explicit:
		plan, _, err = eng.BuildExplicitRenamePlan(ctx, paths[0], renameTo, opts.Sanitize)
	case cmd.Flags().Changed("find"):
		plan, _, err = eng.BuildFindReplacePlan(ctx, paths, renameFind, renameReplace, opts.Sanitize)
	default:
		plan, err = eng.BuildRenamePlan(ctx, planner.NewEntries(paths), opts)
	}
	if err != nil {
		return err
	}
	return applyPlan(cmd, eng, plan, renameDryRun)
}
