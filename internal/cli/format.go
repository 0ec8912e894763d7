package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/goblintools/goblin/internal/category"
	"github.com/goblintools/goblin/internal/planner"
)

var (
	// fatih/color disables these automatically when the output is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
)

// PrintSection prints a section header
func PrintSection(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w)
	_, _ = headerColor.Fprintf(w, "▸ %s\n", title)
	_, _ = fmt.Fprintln(w)
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(w io.Writer, msg string) {
	_, _ = warningColor.Fprintf(w, "⚠ %s\n", msg)
}

// PrintError prints an error message with a cross
func PrintError(w io.Writer, msg string) {
	_, _ = errorColor.Fprintf(w, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(w io.Writer, label, value string) {
	_, _ = labelColor.Fprintf(w, "  %s: ", label)
	_, _ = valueColor.Fprintln(w, value)
}

// PrintList prints a list of items with bullet points
func PrintList(w io.Writer, items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = infoColor.Fprintf(w, "%s• %s\n", indentStr, item)
	}
}

// PrintTable prints a simple table with aligned columns
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	// Calculate column widths
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	// Print header
	_, _ = fmt.Fprint(w, "  ")
	for i, header := range headers {
		if i > 0 {
			_, _ = fmt.Fprint(w, "  ")
		}
		_, _ = headerColor.Fprintf(w, "%-*s", colWidths[i], header)
	}
	_, _ = fmt.Fprintln(w)

	// Print separator
	_, _ = fmt.Fprint(w, "  ")
	for i, width := range colWidths {
		if i > 0 {
			_, _ = fmt.Fprint(w, "  ")
		}
		_, _ = dimColor.Fprint(w, strings.Repeat("─", width))
	}
	_, _ = fmt.Fprintln(w)

	// Print rows
	for _, row := range rows {
		_, _ = fmt.Fprint(w, "  ")
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				_, _ = fmt.Fprint(w, "  ")
			}
			_, _ = fmt.Fprintf(w, "%-*s", colWidths[i], cell)
		}
		_, _ = fmt.Fprintln(w)
	}
}

// PrintCount prints a count with a label
func PrintCount(w io.Writer, label string, count int) {
	_, _ = labelColor.Fprintf(w, "%s: ", label)
	_, _ = infoColor.Fprintf(w, "%d\n", count)
}

// relPath shows path relative to root when it lies below it.
func relPath(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// PrintPlan prints the preview table of a plan, one row per changing entry.
func PrintPlan(w io.Writer, plan *planner.OperationPlan, report *planner.Report) {
	PrintSection(w, fmt.Sprintf("%s plan for %s", plan.Mode, plan.RootDir))

	rows := make([][]string, 0, len(plan.Entries))
	for i, entry := range plan.Entries {
		status := entry.Status
		if report != nil && i < len(report.Statuses) {
			status = report.Statuses[i]
		}
		if !entry.Changed() && status == planner.StatusOK {
			continue
		}
		label := "ok"
		if status != planner.StatusOK {
			label = string(status)
		}
		rows = append(rows, []string{
			entry.CurrentName,
			relPath(plan.RootDir, entry.ProposedPath),
			string(entry.Action),
			label,
		})
	}
	if len(rows) == 0 {
		PrintInfo(w, "  Nothing to do")
	} else {
		PrintTable(w, []string{"CURRENT", "PROPOSED", "ACTION", "STATUS"}, rows)
	}

	if len(plan.CategoryCounts) > 0 {
		_, _ = fmt.Fprintln(w)
		for _, c := range category.Order {
			if n := plan.CategoryCounts[c]; n > 0 {
				PrintLabelValue(w, string(c), fmt.Sprintf("%d", n))
			}
		}
	}
	_, _ = fmt.Fprintln(w)
}

// PrintReport prints validation problems. Nothing is printed for a clean report.
func PrintReport(w io.Writer, report *planner.Report) {
	if report == nil || report.Valid {
		return
	}
	PrintError(w, fmt.Sprintf("Validation failed (%s)", report.Summary()))
	PrintList(w, report.Errors, 1)
}
