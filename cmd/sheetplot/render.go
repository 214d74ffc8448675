package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/export"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/ukaji3/sheetplot-go/pkg/ui"
)

const formatHTML = "html"

var (
	renderSel    selectionFlags
	renderOutput string
	renderFormat string
	renderWidth  int
	renderHeight int
	renderWatch  bool
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Draw a chart from a workbook table",
	Long: `Draw a chart from the columns of an xlsx workbook.

The chart starts from --preset (an embedded chart), --spec (a YAML
selection file) or the defaults of --kind; column and label flags given
on the command line are applied on top.

Examples:
  sheetplot render data.xlsx --kind line --x Time --y Temp -o temp.png
  sheetplot render data.xlsx --kind shared_x --x Time --y Temp,Load --legend "upper left"
  sheetplot render data.xlsx --kind dual_axis --x Time --y Temp,Load --secondary 2
  sheetplot render data.xlsx --spec chart.yaml --format html --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	addLoadFlags(renderCmd)
	renderSel.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file, - for stdout (default: plot.<format>)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "Output format: png, svg or html (default from config)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Image height in pixels")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "Re-render when the workbook or spec file changes")
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	err := renderOnce(cmd, path)
	if !renderWatch {
		return err
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatError(err.Error()))
	}

	files := []string{path}
	if renderSel.specFile != "" {
		files = append(files, renderSel.specFile)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatMuted("Watching for changes, press Ctrl+C to stop"))
	return watchFiles(ctx, files, func() {
		if err := renderOnce(cmd, path); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatError(err.Error()))
		}
	})
}

// renderOnce loads the workbook, builds the selection and writes the chart.
func renderOnce(cmd *cobra.Command, path string) error {
	defer appLog.TimeTrack(time.Now(), "render "+path)

	sess, err := openSession(path)
	if err != nil {
		return err
	}

	format := appConfig.Render.Format
	if cmd.Flags().Changed("format") {
		format = renderFormat
	}
	ro := sess.Options().Render
	if format != formatHTML {
		if ro.Format, err = models.ParseImageFormat(format); err != nil {
			return err
		}
	}
	if renderWidth > 0 {
		ro.Width = renderWidth
	}
	if renderHeight > 0 {
		ro.Height = renderHeight
	}
	sess.SetRenderOptions(ro)

	sel, err := renderSel.selection(cmd, sess)
	if err != nil {
		return err
	}

	var f *export.File
	if format == formatHTML {
		f, err = htmlFile(sess, sel)
	} else {
		f, err = sess.Export(sel)
	}
	if err != nil {
		if sheetplot.IsIncomplete(err) {
			return fmt.Errorf("nothing to draw: %s", sheetplot.PromptOf(err))
		}
		return err
	}

	out := renderOutput
	if out == "" {
		out = f.Name
	}
	if out == "-" {
		_, err := f.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := export.Save(out, f); err != nil {
		return err
	}
	appLog.Debugf("%s chart written to %s (%d bytes)", sess.Spec().Kind(), out, f.Size)
	fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatSuccess("Wrote "+out))
	return nil
}

func htmlFile(sess *sheetplot.Session, sel models.Selection) (*export.File, error) {
	var buf bytes.Buffer
	if err := sess.HTML(&buf, sel); err != nil {
		return nil, err
	}
	return &export.File{
		Name:      export.HTMLName,
		MediaType: export.HTMLMediaType,
		Size:      int64(buf.Len()),
		Body:      bytes.NewReader(buf.Bytes()),
	}, nil
}
