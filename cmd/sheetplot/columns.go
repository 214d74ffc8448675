package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplot-go/pkg/ui"
)

var columnsCmd = &cobra.Command{
	Use:   "columns FILE",
	Short: "List the columns of a workbook table",
	Long: `Read the table of an xlsx workbook and list its columns.

Numeric columns show their observed range; text columns can only be used
as categorical axes.`,
	Args: cobra.ExactArgs(1),
	RunE: runColumns,
}

func init() {
	addLoadFlags(columnsCmd)
}

func runColumns(cmd *cobra.Command, args []string) error {
	sess, err := openSession(args[0])
	if err != nil {
		return err
	}
	t := sess.Table()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, ui.FormatTitle(t.BookName))
	fmt.Fprintln(out, ui.RenderKeyValue("Sheet", t.SheetName))
	if t.Range != "" {
		fmt.Fprintln(out, ui.RenderKeyValue("Range", t.Range))
	}
	fmt.Fprintln(out, ui.RenderKeyValue("Rows", strconv.Itoa(t.Rows)))
	fmt.Fprintln(out)

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name", Width: 12},
		{Header: "Kind", Width: 7},
		{Header: "Min", Width: 8, Align: "right"},
		{Header: "Max", Width: 8, Align: "right"},
	})
	for i := range t.Data {
		c := &t.Data[i]
		lo, hi := "-", "-"
		if mn, mx, ok := c.MinMax(); ok {
			lo, hi = formatValue(mn), formatValue(mx)
		}
		table.AddRow(c.Name, string(c.Kind), lo, hi)
	}
	fmt.Fprint(out, table.Render())
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
