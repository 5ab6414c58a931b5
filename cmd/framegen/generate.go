package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"
)

type cmdGenerate struct {
	stdio
	opts runOptions
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate [options] [SCHEMA.yaml ...]",
		summary: "Compile schemas and write the generated Go files",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	cmd.opts.flags(flags)
}

func (cmd *cmdGenerate) run(ctx context.Context, argv []string) int {
	cfg, err := cmd.opts.resolve(argv)
	if err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}
	units, err := collectUnits(cfg)
	if err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}

	logger := newLogger(cfg, &cmd.stdio)
	if err := newPipeline(cfg, logger).Run(units); err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}
	logger.Info().Int("units", len(units)).Str("out", cfg.OutDir).Msg("generated")
	return 0
}

type cmdCheck struct {
	stdio
	opts runOptions
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check [options] [SCHEMA.yaml ...]",
		summary: "Compile schemas and report every error without writing",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	cmd.opts.flags(flags)
}

func (cmd *cmdCheck) run(ctx context.Context, argv []string) int {
	cfg, err := cmd.opts.resolve(argv)
	if err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}
	units, err := collectUnits(cfg)
	if err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}

	if err := newPipeline(cfg, newLogger(cfg, &cmd.stdio)).Check(units); err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}
	fmt.Fprintf(cmd.out(), "ok: %d units\n", len(units))
	return 0
}
