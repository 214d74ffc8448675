package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/ukaji3/sheetplot-go/pkg/ui"
)

var presetsCmd = &cobra.Command{
	Use:   "presets FILE",
	Short: "List the charts embedded in a workbook",
	Long: `List the charts embedded in the table's sheet that can be reproduced
from the table columns. Pass the number to 'sheetplot render --preset'.`,
	Args: cobra.ExactArgs(1),
	RunE: runPresets,
}

func init() {
	addLoadFlags(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	sess, err := openSession(args[0])
	if err != nil {
		return err
	}
	presets, err := sess.Presets()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(presets) == 0 {
		fmt.Fprintln(out, ui.FormatInfo("No usable charts found in "+args[0]))
		return nil
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "#", Align: "right"},
		{Header: "Name", Width: 10},
		{Header: "Type", Width: 10},
		{Header: "Kind", Width: 9},
		{Header: "Columns"},
		{Header: "Size", Align: "right"},
	})
	for i, p := range presets {
		table.AddRow(strconv.Itoa(i+1), p.Name, p.ChartType, string(p.Selection.Kind),
			strings.Join(selectionColumns(p.Selection), ", "), frameSize(p))
	}
	fmt.Fprint(out, table.Render())
	return nil
}

// selectionColumns lists the columns a selection refers to, in order.
func selectionColumns(sel models.Selection) []string {
	var cols []string
	seen := make(map[string]bool)
	add := func(names ...string) {
		for _, n := range names {
			if n != "" && !seen[n] {
				seen[n] = true
				cols = append(cols, n)
			}
		}
	}
	add(sel.X)
	add(sel.XColumns...)
	add(sel.Y)
	add(sel.YColumns...)
	for _, l := range sel.Lines {
		add(l.X, l.Y)
	}
	return cols
}

func frameSize(p models.Preset) string {
	if p.W == nil || p.H == nil {
		return "-"
	}
	return fmt.Sprintf("%dx%d", *p.W, *p.H)
}
