// Package main implements the lamina CLI.
//
// Running lamina with no subcommand opens the interactive studio. The
// subcommands drive the same workflow headlessly from YAML form files.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"lamina/cmd/lamina/studio"
	"lamina/cmd/lamina/ui"
	"lamina/internal/form"
	"lamina/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	cfgPath string
	verbose bool
	timeout time.Duration

	// Studio flags
	studioForm  string
	studioWatch bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lamina",
	Short: "lamina - Instagram post generator backed by Imagen and Gemini",
	Long: `lamina builds Instagram láminas from a structured form.

Fill in the header, titles, bullet points and visual style, then generate an
image with Imagen, or restyle a template image with Gemini. Results can be
improved with an AI-written directive, downloaded, and saved to a local
gallery.

Run without arguments to open the interactive studio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The studio owns the terminal; no stderr logger there.
		if cmd.Use == "lamina" && cmd.CalledAs() == "lamina" {
			return nil
		}

		zapCfg := zap.NewProductionConfig()
		zapCfg.OutputPaths = []string{"stderr"}
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}

		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runStudio,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: ~/.lamina/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Timeout for each remote flow (default: gemini.timeout)")

	rootCmd.Flags().StringVar(&studioForm, "form", "", "Start the studio from a YAML form file")
	rootCmd.Flags().BoolVar(&studioWatch, "watch", false, "Reload the form file when it changes (requires --form)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runStudio opens the interactive studio.
func runStudio(cmd *cobra.Command, args []string) error {
	if studioWatch && studioForm == "" {
		return fmt.Errorf("--watch requires --form")
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	orch, err := a.newOrchestrator(ctx)
	if err != nil {
		return err
	}

	fields := form.Defaults()
	if studioForm != "" {
		if fields, err = form.LoadFile(studioForm); err != nil {
			return err
		}
	}

	opts := studio.Options{
		Orchestrator: orch,
		Fields:       fields,
		Styles:       ui.NewStyles(ui.PaletteFor(a.cfg.UI.Theme)),
		Timeout:      a.timeout(),
		OutputDir:    a.cfg.Output.Dir,
		GeneratedAs:  a.cfg.Output.GeneratedAs,
		ImprovedAs:   a.cfg.Output.ImprovedAs,
		Resize:       a.cfg.Output.ResizeCanvas,
	}

	if studioWatch {
		w, err := studio.NewFormWatcher(studioForm)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
		opts.Watcher = w
	}

	logging.Boot("Studio starting (form=%q watch=%v)", studioForm, studioWatch)
	p := tea.NewProgram(
		studio.New(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	logging.Boot("Studio exited")
	return err
}
