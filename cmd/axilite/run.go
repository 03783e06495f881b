package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/spf13/cobra"

	"github.com/sarchlab/axilite/config"
	"github.com/sarchlab/axilite/timing/master"
	"github.com/sarchlab/axilite/timing/slave"
	"github.com/sarchlab/axilite/trace"
)

type runOptions struct {
	configPath     string
	tracePath      string
	trace          bool
	maxCycles      uint64
	respReadyDelay int
	respTimeout    int
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run <script.json>",
	Short: "Run a transaction script against the register slave.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOpts
		if opts.configPath == "" {
			opts.configPath = os.Getenv(envConfig)
		}
		if opts.tracePath == "" {
			opts.tracePath = os.Getenv(envTrace)
		}
		if opts.tracePath != "" {
			opts.trace = true
		}

		return runScript(cmd.OutOrStdout(), args[0], opts)
	},
}

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&runOpts.configPath, "config", "",
		"Path to slave configuration JSON file (env "+envConfig+")")
	flags.BoolVar(&runOpts.trace, "trace", false,
		"Record bus transfers into a SQLite database")
	flags.StringVar(&runOpts.tracePath, "trace-file", "",
		"Trace database file; implies --trace (env "+envTrace+")")
	flags.Uint64Var(&runOpts.maxCycles, "max-cycles", 1_000_000,
		"Stop after this many clock edges (0 for no limit)")
	flags.IntVar(&runOpts.respReadyDelay, "ready-delay", 0,
		"Edges the master waits before asserting RREADY/BREADY")
	flags.IntVar(&runOpts.respTimeout, "timeout", master.DefaultResponseTimeout,
		"Edges the master waits for a response (0 for no limit)")

	rootCmd.AddCommand(runCmd)
}

func loadSlaveConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func runScript(out io.Writer, scriptPath string, opts runOptions) error {
	cfg, err := loadSlaveConfig(opts.configPath)
	if err != nil {
		return err
	}

	txns, err := master.LoadScript(scriptPath)
	if err != nil {
		return err
	}

	m := master.NewMaster(
		master.WithResponseReadyDelay(opts.respReadyDelay),
		master.WithResponseTimeout(opts.respTimeout),
	)
	m.Enqueue(txns...)

	engine := sim.NewSerialEngine()

	comp, err := slave.MakeBuilder().
		WithEngine(engine).
		WithConfig(cfg).
		WithDriver(m).
		WithMaxCycles(opts.maxCycles).
		Build("Slave")
	if err != nil {
		return err
	}

	if opts.trace {
		recorder := trace.NewSQLiteRecorder(opts.tracePath)
		if err := recorder.Init(); err != nil {
			return err
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing trace: %v\n", err)
			}
		}()

		comp.AcceptHook(recorder)

		if verbose {
			fmt.Fprintf(out, "Trace: %s (run %s)\n",
				recorder.DBName(), recorder.RunID())
		}
	}

	if verbose {
		fmt.Fprintf(out, "Script: %s\n", scriptPath)
		fmt.Fprintf(out, "Registers: %d x %d bits\n",
			cfg.NumRegisters, cfg.DataWidth)
		fmt.Fprintf(out, "Ready policy: %s\n", cfg.ReadyPolicy)
		fmt.Fprintf(out, "Write policy: %s\n", cfg.WritePolicy)
	}

	comp.Start()
	if err := engine.Run(); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	printReport(out, comp, m)

	if !comp.Finished() {
		return fmt.Errorf("cycle limit of %d reached with transactions pending",
			opts.maxCycles)
	}

	return nil
}

func printReport(out io.Writer, comp *slave.Comp, m *master.Master) {
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Transactions:\n")

	for _, t := range m.Completed() {
		switch t.Op {
		case master.OpRead:
			fmt.Fprintf(out, "  read   id=%-2d addr=0x%08X data=0x%X resp=%s latency=%d%s\n",
				t.RespID, t.Addr, t.Data, t.Resp, t.Latency(), timeoutNote(t))
		case master.OpWrite:
			fmt.Fprintf(out, "  write  id=%-2d addr=0x%08X data=0x%X resp=%s latency=%d%s\n",
				t.RespID, t.Addr, t.Data, t.Resp, t.Latency(), timeoutNote(t))
		default:
			fmt.Fprintf(out, "  %-6s cycles=%d\n", t.Op, t.Latency()+1)
		}
	}

	stats := comp.Controller().Stats()
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Cycles:        %d\n", stats.Cycles)
	fmt.Fprintf(out, "Reset cycles:  %d\n", stats.ResetCycles)
	fmt.Fprintf(out, "Reads:         %d\n", stats.Reads)
	fmt.Fprintf(out, "Writes:        %d\n", stats.Writes)
	fmt.Fprintf(out, "Decode misses: %d\n", stats.DecodeMisses)
	fmt.Fprintf(out, "Read stalls:   %d\n", stats.ReadStalls)
	fmt.Fprintf(out, "Write stalls:  %d\n", stats.WriteStalls)

	if verbose {
		fmt.Fprintf(out, "\n")
		fmt.Fprintf(out, "Registers:\n")
		for i, v := range comp.Controller().RegFile().Snapshot() {
			fmt.Fprintf(out, "  [0x%08X] 0x%X\n", i*4, v)
		}
	}
}

func timeoutNote(t *master.Transaction) string {
	if t.TimedOut {
		return " (timed out)"
	}
	return ""
}
