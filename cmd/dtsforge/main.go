// Command dtsforge generates structurally-typed ambient declaration
// packages from a mirrored source-platform API graph.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtsforge/dtsforge"
	"github.com/dtsforge/dtsforge/emitter"
	"github.com/dtsforge/dtsforge/loader"
)

// Exit codes (spec.md §6).
const (
	exitOK                = 0 // success
	exitEmissionFailure   = 1 // PhaseGate rejected the plan, or emission failed
	exitMissingInputs     = 2 // no sources / config not found
	exitUnreachableInputs = 3 // a source path exists but could not be read
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		return exitMissingInputs
	}
	return exitCode
}

// exitCode is set by whichever subcommand ran, since cobra's Execute
// only reports a single error, not a distinguishable exit status.
var exitCode = exitOK

func newRootCommand() *cobra.Command {
	var (
		verbose    int
		configPath string
	)

	root := &cobra.Command{
		Use:   "dtsforge",
		Short: "Generate ambient declaration packages from a source-platform API graph",
		Long:  "dtsforge converts a faithful mirror of a statically-typed, nominally-typed source platform's public API metadata into a structurally-typed target-language ambient declaration package.",
	}
	root.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase logging verbosity (-v debug, -vv trace)")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a dtsforge config YAML file (§2.3)")

	root.AddCommand(newGenerateCommand(&verbose, &configPath))
	root.AddCommand(newVersionCommand())
	return root
}

func newGenerateCommand(verbose *int, configPath *string) *cobra.Command {
	var (
		outDir     string
		strict     bool
		contract   string
		namespaces []string
	)

	cmd := &cobra.Command{
		Use:   "generate PATH...",
		Short: "Load assembly dumps from PATH(s) and emit the ambient declaration package",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := generateOpts{
				paths:      args,
				outDir:     outDir,
				verbose:    *verbose,
				configPath: *configPath,
				strict:     strict,
				contract:   contract,
				namespaces: namespaces,
			}
			exitCode = runGenerate(cmd.Context(), opts)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory for the generated package")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on any warning, overriding the config's strictness")
	cmd.Flags().StringVar(&contract, "library-contract", "", "path to a prior run's output, for library mode (§6)")
	cmd.Flags().StringSliceVar(&namespaces, "namespace", nil, "restrict emission to these namespaces (repeatable, default: all)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("dtsforge (devel)")
		},
	}
}

// generateOpts collects the generate subcommand's parsed flags.
type generateOpts struct {
	paths      []string
	outDir     string
	verbose    int
	configPath string
	strict     bool
	contract   string
	namespaces []string
}

func runGenerate(ctx context.Context, o generateOpts) int {
	var sources []loader.Source
	for _, p := range o.paths {
		src, err := loader.Dir(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dtsforge: cannot read %s: %v\n", p, err)
			if errors.Is(err, fs.ErrNotExist) {
				return exitMissingInputs
			}
			return exitUnreachableInputs
		}
		sources = append(sources, src)
	}

	cfg := dtsforge.DefaultConfig()
	if o.configPath != "" {
		loaded, err := dtsforge.LoadConfig(o.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dtsforge: %v\n", err)
			return exitMissingInputs
		}
		cfg = loaded
	}
	if o.strict {
		cfg.Strictness = "strict"
	}

	fileEmitter := &emitter.FileEmitter{OutDir: o.outDir, Include: o.namespaces}
	if o.contract != "" {
		loadedContract, err := emitter.LoadLibraryContract(o.contract)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dtsforge: %v\n", err)
			return exitMissingInputs
		}
		fileEmitter.Contract = loadedContract
	}

	logger := setupLogger(o.verbose)

	opts := []dtsforge.GenerateOption{
		dtsforge.WithSource(sources...),
		dtsforge.WithConfig(cfg),
		dtsforge.WithEmitter(fileEmitter),
	}
	if logger != nil {
		opts = append(opts, dtsforge.WithLogger(logger), dtsforge.WithTrace(o.verbose >= 2))
	}

	result, err := dtsforge.Generate(ctx, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dtsforge: %v\n", err)
		if result != nil {
			printDiagnosticSummary(result)
		}
		switch {
		case result == nil:
			return exitMissingInputs
		default:
			return exitEmissionFailure
		}
	}

	printDiagnosticSummary(result)
	fmt.Printf("wrote declarations to %s\n", o.outDir)
	return exitOK
}

func printDiagnosticSummary(result *dtsforge.Result) {
	if len(result.Diagnostics) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Diagnostics:")
	for _, d := range result.Diagnostics {
		fmt.Println("  " + d.String())
	}
}

func setupLogger(verbose int) *slog.Logger {
	if verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
