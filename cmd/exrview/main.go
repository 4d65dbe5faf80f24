// Command exrview shows the R, G and B channels of an OpenEXR image.
//
// Usage:
//
//	exrview [filename] [flags]
//
// Each channel is normalized to [0,1] on its own range and drawn through a
// colormap with a colorbar, next to the three normalized channels combined
// as RGB. Without a filename a file dialog is shown.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/mrjoshuak/exrview/colormap"
	"github.com/mrjoshuak/exrview/internal/picker"
	"github.com/mrjoshuak/exrview/internal/pipeline"
	"github.com/mrjoshuak/exrview/plot"
	"github.com/mrjoshuak/exrview/viewer"
)

var rootCmd = &cobra.Command{
	Use:           "exrview [filename]",
	Short:         "Visualize the R, G and B channels of an OpenEXR image",
	Args:          cobra.MaximumNArgs(1),
	RunE:          runView,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().String("cmap", colormap.Default, fmt.Sprintf("Colormap for the channel panels %v", colormap.Names()))
	rootCmd.Flags().String("title", "", "Figure and window title (default derived from the colormap)")
	rootCmd.Flags().Int("width", viewer.DefaultWidth, "Initial window width in pixels")
	rootCmd.Flags().Int("height", viewer.DefaultHeight, "Initial window height in pixels")
	rootCmd.Flags().Bool("mmap", false, "Read the file through a memory mapping")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
}

func runView(cmd *cobra.Command, args []string) error {
	cmapName, _ := cmd.Flags().GetString("cmap")
	title, _ := cmd.Flags().GetString("title")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	mmap, _ := cmd.Flags().GetBool("mmap")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger := newLogger(verbose)
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	_, err := pipeline.Run(pipeline.Options{
		Path:     path,
		Colormap: cmapName,
		Title:    title,
		Mmap:     mmap,
		Picker:   picker.Dialog{},
		Display: pipeline.DisplayFunc(func(fig *plot.Figure) error {
			return viewer.Show(fig, viewer.WithSize(width, height), viewer.WithLogger(logger))
		}),
		Stdout: cmd.OutOrStdout(),
		Logger: logger,
	})
	return err
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
