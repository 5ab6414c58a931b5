// Command framegen compiles frame schemas into Go encoders and decoders.
package main

import (
	"context"
	stdflag "flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexhholmes/framegen/internal/logging"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

type stdio struct {
	stdout io.Writer
	stderr io.Writer
}

func (s *stdio) out() io.Writer {
	if s.stdout == nil {
		return os.Stdout
	}
	return s.stdout
}

func (s *stdio) errOut() io.Writer {
	if s.stderr == nil {
		return os.Stderr
	}
	return s.stderr
}

func main() {
	ctx := context.Background()
	logging.Configure(logging.ProfileRuntime)

	rootCmd := &cobra.Command{
		Use:   "framegen [options] COMMAND",
		Short: "Generate bit-exact Go frame codecs from schemas",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
		os.Exit(1)
		return nil
	}

	commands := []command{
		&cmdGenerate{},
		&cmdCheck{},
		&cmdDescribe{},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				os.Exit(cmd.run(ctx, args))
				return nil
			},
		}
		rootCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	rootCmd.Flags().AddGoFlagSet(stdflag.CommandLine)
	if _, err := rootCmd.ExecuteC(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
