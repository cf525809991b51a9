package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/annel0/spawnlight/internal/eventbus"
	"github.com/annel0/spawnlight/internal/render"
)

func (c *cli) tailCommand() *cobra.Command {
	var (
		url    string
		stream string
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print ParticleBatch events published to NATS JetStream",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			bus, err := eventbus.NewJetStreamBus(url, stream, time.Hour)
			if err != nil {
				return err
			}
			defer bus.Close()

			codec, err := render.NewCodec()
			if err != nil {
				return err
			}
			defer codec.Close()

			out := cmd.OutOrStdout()
			sub, err := render.SubscribeBatches(ctx, bus, codec, func(b render.ParticleBatch) {
				fmt.Fprintf(out, "%s  observer=%s  seq=%d  points=%d\n",
					time.Now().Format("15:04:05.000"), b.Observer, b.Sequence, len(b.Particles))
				for _, p := range b.Particles {
					c.logger.Debug("particle", "x", p.X, "y", p.Y, "z", p.Z, "color", p.Color.String())
				}
			}, func(err error) {
				c.logger.Warn("corrupt frame", "err", err)
			})
			if err != nil {
				return fmt.Errorf("subscribe: %w", err)
			}
			defer sub.Unsubscribe()

			c.logger.Info("📡 tailing", "url", url, "stream", stream)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "nats://127.0.0.1:4222", "NATS server URL")
	cmd.Flags().StringVar(&stream, "stream", "OVERLAY", "JetStream stream name")
	return cmd
}
