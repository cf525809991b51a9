// Утилита overlay-cli для отладки оверлея спавна: офлайн-сканирование,
// чтение кадров из JetStream и websocket-клиент.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCLI().rootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

// cli хранит общее состояние команд
type cli struct {
	logger  *log.Logger
	verbose bool
}

func newCLI() *cli {
	return &cli{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.InfoLevel,
		}),
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "overlay-cli",
		Short:        "Debugging tool for the spawnlight overlay",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.tailCommand())
	root.AddCommand(c.watchCommand())
	return root
}
