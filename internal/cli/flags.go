package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goblintools/goblin/internal/planner"
)

// templateFlags holds the naming flags shared by rename and sort-rename.
type templateFlags struct {
	base     string
	start    int
	pad      int
	sep      string
	keepExt  bool
	sanitize bool
}

func addTemplateFlags(cmd *cobra.Command, f *templateFlags) {
	defaults := planner.DefaultRenameOptions()
	cmd.Flags().StringVar(&f.base, "base", defaults.Base, "Base name for generated names")
	cmd.Flags().IntVar(&f.start, "start", defaults.StartIndex, "Number given to the first file")
	cmd.Flags().IntVar(&f.pad, "pad", defaults.PadWidth, "Zero-pad numbers to this width (0 disables)")
	cmd.Flags().StringVar(&f.sep, "sep", defaults.Separator, "Separator between base and number")
	cmd.Flags().BoolVar(&f.keepExt, "keep-ext", defaults.PreserveExtension, "Keep the original file extension")
	cmd.Flags().BoolVar(&f.sanitize, "sanitize", defaults.Sanitize, "Make generated names filesystem-legal")
}

// options overlays the flags the user set on the configured options.
func (f *templateFlags) options(cmd *cobra.Command, opts planner.RenameOptions) planner.RenameOptions {
	flags := cmd.Flags()
	if flags.Changed("base") {
		opts.Base = f.base
	}
	if flags.Changed("start") {
		opts.StartIndex = f.start
	}
	if flags.Changed("pad") {
		opts.PadWidth = f.pad
	}
	if flags.Changed("sep") {
		opts.Separator = f.sep
	}
	if flags.Changed("keep-ext") {
		opts.PreserveExtension = f.keepExt
	}
	if flags.Changed("sanitize") {
		opts.Sanitize = f.sanitize
	}
	opts.Template = opts.Normalized()
	return opts
}

// includeOptional returns the flag value when set and the configured value otherwise.
func includeOptional(cmd *cobra.Command, flag, configured bool) bool {
	if cmd.Flags().Changed("include-optional") {
		return flag
	}
	return configured
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// dirArg returns the directory argument or the working directory.
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
