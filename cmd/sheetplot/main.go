// Package main provides the CLI entry point for sheetplot.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplot-go/pkg/config"
	"github.com/ukaji3/sheetplot-go/pkg/logging"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/render"
	"github.com/ukaji3/sheetplot-go/pkg/ui"
)

var (
	cfgFile  string
	logLevel string

	// Shared by the commands that read a workbook.
	sheetName string
	printArea bool

	appConfig *config.Config
	appLog    *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sheetplot",
	Short: "Plot spreadsheet tables as charts",
	Long: ui.StyleTitle.Render("sheetplot") + " - spreadsheet charts\n\n" +
		"Reads the first table of an xlsx workbook and draws line, scatter\n" +
		"and dual-axis charts from its columns, from the command line or\n" +
		"through an HTTP session API.",
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		os.Exit(1)
	}
}

// initializeApp loads the configuration and sets up logging. Flags given on
// the command line win over the file.
func initializeApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg

	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	appLog = logging.New(os.Stderr, lvl)
	return nil
}

// addLoadFlags registers the workbook reading flags on cmd.
func addLoadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")
	cmd.Flags().BoolVar(&printArea, "print-area", false, "Read the sheet's print area instead of its data region")
}

// sessionOptions derives session options from the configuration and the
// load flags.
func sessionOptions() (sheetplot.Options, error) {
	opts := sheetplot.DefaultOptions()
	opts.Sheet = sheetName
	opts.UsePrintArea = printArea || appConfig.Load.UsePrintArea
	opts.MaxBytes = appConfig.Server.MaxUploadBytes

	ro, err := renderOptions(appConfig.Render)
	if err != nil {
		return opts, err
	}
	opts.Render = ro
	return opts, nil
}

func renderOptions(rc config.RenderConfig) (render.Options, error) {
	format := models.FormatPNG
	// html is handled by the render command, not the image renderer.
	if rc.Format != "html" {
		f, err := models.ParseImageFormat(rc.Format)
		if err != nil {
			return render.Options{}, fmt.Errorf("config render.format: %w", err)
		}
		format = f
	}
	return render.Options{
		Width:  rc.Width,
		Height: rc.Height,
		DPI:    rc.DPI,
		Format: format,
	}, nil
}

// openSession opens path as a new session.
func openSession(path string) (*sheetplot.Session, error) {
	opts, err := sessionOptions()
	if err != nil {
		return nil, err
	}
	defer appLog.TimeTrack(time.Now(), "load "+path)
	return sheetplot.Open(path, opts)
}
