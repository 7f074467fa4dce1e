package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/config"
	"github.com/javelin-vm/javelin/engine"
	"github.com/javelin-vm/javelin/explore"
	"github.com/javelin-vm/javelin/hooks"
	"github.com/javelin-vm/javelin/loader"
	"github.com/javelin-vm/javelin/native"
	"github.com/javelin-vm/javelin/trace"
)

var (
	runEntry    string
	runMaxSteps int
	runWorkers  int
	runTrace    string
	runStrict   bool
)

var runCmd = &cobra.Command{
	Use:   "run <image>",
	Short: "Symbolically explore a program image",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runEntry, "entry", "", "entry method, e.g. 'Main.main(java.lang.String[])' (default: the image's entry point)")
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", 0, "step budget (default from javelin.toml)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "parallel workers (default: GOMAXPROCS)")
	runCmd.Flags().StringVar(&runTrace, "trace", "", "record telemetry to a SQLite database at this path")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "fail on untranslatable statements instead of skipping them")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.FindAndLoad(".")
	if err != nil {
		return err
	}
	if runMaxSteps > 0 {
		cfg.Explore.MaxSteps = runMaxSteps
	}
	if runWorkers > 0 {
		cfg.Explore.Workers = runWorkers
	}
	if runStrict {
		cfg.Engine.StrictTranslation = true
	}
	if runTrace != "" {
		cfg.Trace.Enabled = true
		cfg.Trace.Path = runTrace
	}

	prog, err := loader.LoadImage(args[0])
	if err != nil {
		return err
	}

	entry := prog.Entry
	if runEntry != "" {
		entry, err = parseEntry(runEntry)
		if err != nil {
			return err
		}
	}
	if entry.Sig == "" {
		return fmt.Errorf("image has no entry point; use --entry")
	}

	var recorder trace.Recorder = trace.Nop{}
	if cfg.Trace.Enabled {
		store, err := trace.Open(cfg.Trace.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		recorder = store
	}

	eng := engine.New(prog,
		engine.WithOS(native.New(prog)),
		engine.WithHooks(hooks.Default(cfg.Hooks.Disabled...)),
		engine.WithRecorder(recorder),
		engine.WithStrictTranslation(cfg.Engine.StrictTranslation),
		engine.WithWordBits(cfg.Engine.WordBits),
	)

	explorer := &explore.Explorer{
		Engine:   eng,
		MaxSteps: cfg.Explore.MaxSteps,
		Workers:  cfg.Explore.Workers,
	}
	res, err := explorer.Run(cmd.Context(), eng.NewEntryState(entry))
	if err != nil {
		return err
	}

	fmt.Printf("entry: %s\n", entry)
	fmt.Printf("steps: %d\n", res.Steps)
	fmt.Printf("%s %d\n", color.GreenString("exited paths:"), len(res.Exited))
	for _, s := range res.Exited {
		if code, ok := s.History.ExitCode(); ok {
			fmt.Printf("  state %d exit code %s\n", s.ID, code)
		}
	}
	if res.DeadEnds > 0 {
		fmt.Printf("%s %d\n", color.YellowString("dead ends:"), res.DeadEnds)
	}
	if res.Errors > 0 {
		fmt.Printf("%s %d\n", color.RedString("errored paths:"), res.Errors)
	}
	return nil
}

// parseEntry parses "Class.name(param,param)" into a method key.
func parseEntry(s string) (bytecode.MethodKey, error) {
	paren := strings.Index(s, "(")
	if paren < 0 || !strings.HasSuffix(s, ")") {
		return bytecode.MethodKey{}, fmt.Errorf("malformed entry %q: expected Class.name(params)", s)
	}
	dot := strings.LastIndex(s[:paren], ".")
	if dot <= 0 {
		return bytecode.MethodKey{}, fmt.Errorf("malformed entry %q: missing class name", s)
	}
	return bytecode.MethodKey{Class: s[:dot], Sig: s[dot+1:]}, nil
}
