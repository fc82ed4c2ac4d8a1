package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/engine"
	"github.com/alexisbeaulieu97/rigup/internal/logger"
	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/internal/registry"
	"github.com/alexisbeaulieu97/rigup/internal/tui"
	validationpkg "github.com/alexisbeaulieu97/rigup/internal/validation"
)

type applyOptions struct {
	ConfigPath     string
	DryRun         bool
	Verbose        bool
	NonInteractive bool
}

var applyCmdRunner = runApply

func newApplyCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile the machine against a declaration document",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose
			opts.NonInteractive = !stdoutIsTerminal()

			if err := validateApplyOptions(opts); err != nil {
				return err
			}

			return applyCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to declaration document")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func newPlanCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{DryRun: true}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what apply would change, without touching the machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose
			opts.NonInteractive = !stdoutIsTerminal()

			if err := validateApplyOptions(opts); err != nil {
				return err
			}

			return applyCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to declaration document")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func runApply(opts applyOptions) error {
	cfg, err := config.ParseConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg, err := registry.FromConfig(cfg)
	if err != nil {
		return err
	}

	effectiveVerbose := opts.Verbose || cfg.Settings.Verbose
	level := "info"
	if effectiveVerbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, Pretty: true})
	if err != nil {
		return err
	}

	interactive := !opts.NonInteractive
	handlers, err := buildHandlerRegistry(log, interactive)
	if err != nil {
		return err
	}

	reconciler := engine.NewReconciler(handlers, log, engine.FromSettings(cfg.Settings, opts.DryRun))

	ids := make([]string, 0, reg.Len())
	for _, decl := range reg.Declarations() {
		ids = append(ids, decl.ID)
	}
	modelState := tui.NewModel(cfg.Name, ids, opts.NonInteractive)

	var program *tea.Program
	var programErr error
	done := make(chan struct{})

	// Interactive prompts and a full-screen TUI fight over the terminal, so
	// the live program only runs when the document cannot prompt.
	liveTUI := interactive && !documentPrompts(cfg)
	if liveTUI {
		program = tea.NewProgram(modelState)
		go func() {
			_, programErr = program.Run()
			close(done)
		}()
	}

	progress := func(entry model.ReportEntry) {
		dispatchTuiMessage(liveTUI, program, &modelState, tui.DeclCompleteMsg{Entry: entry})
	}

	report, runErr := reconciler.Run(ctx, cfg.Name, reg, progress)
	dispatchTuiMessage(liveTUI, program, &modelState, tui.RunDoneMsg{Status: report.Status()})

	var valErr error
	if !opts.DryRun && report.Status() != model.RunAborted && len(cfg.Validations) > 0 {
		validationResults, err := validationpkg.Run(ctx, cfg.Validations)
		valErr = err
		for _, vr := range validationResults {
			dispatchTuiMessage(liveTUI, program, &modelState, tui.ValidationMsg{Passed: vr.Passed, Message: vr.Message})
		}
	}

	if liveTUI {
		if program != nil {
			program.Send(tea.QuitMsg{})
		}
		<-done
		if programErr != nil {
			return programErr
		}
	} else {
		fmt.Fprintln(os.Stdout, modelState.View())
	}

	if runErr != nil {
		return runErr
	}
	return valErr
}

// documentPrompts reports whether any enabled declaration may read from stdin.
func documentPrompts(cfg *config.Config) bool {
	for _, decl := range cfg.Declarations {
		if decl.Enabled && decl.ConfigKey != nil && decl.ConfigKey.Prompt {
			return true
		}
	}
	return false
}

func dispatchTuiMessage(live bool, program *tea.Program, state *tui.Model, msg tea.Msg) {
	if live {
		if program != nil {
			program.Send(msg)
		}
		return
	}

	updated, _ := state.Update(msg)
	if m, ok := updated.(tui.Model); ok {
		*state = m
	}
}
