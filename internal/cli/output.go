package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cast"

	"clipshelf/internal/application/projections"
	"clipshelf/internal/domain/clipboard"
)

// terminalColors maps descriptor presets onto ANSI colours.
var terminalColors = map[string]*color.Color{
	clipboard.ColorBlue:   color.New(color.FgBlue),
	clipboard.ColorPurple: color.New(color.FgMagenta),
	clipboard.ColorGreen:  color.New(color.FgGreen),
	clipboard.ColorOrange: color.New(color.FgYellow),
	clipboard.ColorTeal:   color.New(color.FgCyan),
	clipboard.ColorPink:   color.New(color.FgHiMagenta),
	clipboard.ColorRed:    color.New(color.FgRed),
}

var dim = color.New(color.Faint)

func paint(d clipboard.Descriptor) string {
	if c, ok := terminalColors[d.Color]; ok {
		return c.Sprint(d.Name)
	}
	return d.Name
}

// parseCategory accepts a numeric code or a category name.
func parseCategory(s string) (clipboard.Category, error) {
	if code, err := cast.ToIntE(s); err == nil {
		return clipboard.ParseCategory(code)
	}
	return clipboard.CategoryFromName(s)
}

func parseCategories(args []string) ([]clipboard.Category, error) {
	cats := make([]clipboard.Category, 0, len(args))
	for _, s := range args {
		c, err := parseCategory(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		cats = append(cats, c)
	}
	return cats, nil
}

func printHistory(w io.Writer, result projections.HistoryResult) error {
	if len(result.Rows) == 0 {
		fmt.Fprintln(w, "No clipboard history")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range result.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			row.ID,
			row.Timestamp.Local().Format("2006-01-02 15:04:05"),
			paint(row.Descriptor),
			row.Preview,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, dim.Sprintf("%d of %d items", len(result.Rows), result.TotalItems))
	return nil
}
