package main

import (
	"fmt"

	"github.com/katalvlaran/wfc/config"
	"github.com/katalvlaran/wfc/metrics"
	"github.com/katalvlaran/wfc/propagator"
	"github.com/katalvlaran/wfc/render"
	"github.com/katalvlaran/wfc/tilepropagator"
	"github.com/katalvlaran/wfc/wfclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Run a rule file to completion and render the result",
	RunE:  runWFC,
}

func init() {
	runCmd.Flags().String("config", "", "path to the YAML rule file")
	runCmd.Flags().String("out", "result.html", "output path for the rendered heatmap")
	runCmd.Flags().String("log-file", "", "path to a rotated log file (stdout only if empty)")
	runCmd.Flags().Int("max-steps", 0, "observation budget (0 means unlimited)")
	_ = runCmd.MarkFlagRequired("config")
}

func runWFC(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	outPath, _ := cmd.Flags().GetString("out")
	logPath, _ := cmd.Flags().GetString("log-file")
	maxSteps, _ := cmd.Flags().GetInt("max-steps")

	logCfg := wfclog.Config{Level: wfclog.LevelInfo}
	if logPath != "" {
		logCfg.Output = &lumberjack.Logger{Filename: logPath, MaxSize: 10, MaxBackups: 3, MaxAge: 28}
	}
	logger := wfclog.New(logCfg)

	b, topo, opts, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	model, tileToPattern, patternToTile, err := b.Build()
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	opts.Logger = logger
	opts.Metrics = metrics.New(prometheus.DefaultRegisterer)

	p, err := propagator.New(topo, model, opts)
	if err != nil {
		return fmt.Errorf("construct propagator: %w", err)
	}

	status := p.Run(maxSteps)
	logger.Event("run_complete", map[string]interface{}{"status": status.String()})
	if status == propagator.StatusContradiction {
		return fmt.Errorf("propagation ended in contradiction after %d backtracks", p.BacktrackCount())
	}

	tp := tilepropagator.New(p, tileToPattern, patternToTile)
	if err := render.Heatmap(tp, outPath); err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	return nil
}
