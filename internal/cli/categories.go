package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goblintools/goblin/internal/category"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category folders and the extensions they take",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

type categoryInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Optional   bool     `json:"optional"`
}

func runCategories(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	infos := make([]categoryInfo, 0, len(category.Order))
	for _, c := range category.Order {
		infos = append(infos, categoryInfo{
			Name:       string(c),
			Extensions: category.Extensions(c),
			Optional:   category.IsOptional(c),
		})
	}

	if jsonOutput {
		return outputJSON(out, infos)
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		exts := strings.Join(info.Extensions, " ")
		if info.Name == string(category.Other) {
			exts = "everything else"
		}
		optional := ""
		if info.Optional {
			optional = "yes"
		}
		rows = append(rows, []string{info.Name, optional, exts})
	}
	PrintSection(out, "Categories")
	PrintTable(out, []string{"FOLDER", "OPTIONAL", "EXTENSIONS"}, rows)
	return nil
}
