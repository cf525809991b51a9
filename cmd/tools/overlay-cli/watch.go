package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/annel0/spawnlight/internal/network"
	"github.com/annel0/spawnlight/internal/render"
)

type watchOptions struct {
	addr     string
	observer string
	x, y, z  float64
	mode     string
}

func (c *cli) watchCommand() *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Connect to the gateway as an observer, enable the overlay and print frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conn, _, err := websocket.DefaultDialer.DialContext(ctx, opts.addr, nil)
			if err != nil {
				return fmt.Errorf("dial %s: %w", opts.addr, err)
			}
			defer conn.Close()

			go func() {
				<-ctx.Done()
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
				conn.Close()
			}()

			for _, msg := range watchCommands(opts) {
				if err := conn.WriteJSON(msg); err != nil {
					return fmt.Errorf("send %s: %w", msg.Type, err)
				}
			}

			codec, err := render.NewCodec()
			if err != nil {
				return err
			}
			defer codec.Close()

			return c.readFrames(ctx, conn, codec)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "ws://localhost:8090/ws", "gateway websocket URL")
	cmd.Flags().StringVar(&opts.observer, "observer", "", "observer UUID (empty: assigned by the server)")
	cmd.Flags().Float64Var(&opts.x, "x", 0, "observer X")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "observer Y")
	cmd.Flags().Float64Var(&opts.z, "z", 0, "observer Z")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "display mode to set before showing")
	return cmd
}

// watchCommands возвращает команды, которые клиент шлёт сразу после подключения
func watchCommands(opts watchOptions) []network.ClientMessage {
	cmds := []network.ClientMessage{
		{Type: network.MsgHello, Observer: opts.observer},
		{Type: network.MsgMove, X: opts.x, Y: opts.y, Z: opts.z},
	}
	if opts.mode != "" {
		cmds = append(cmds, network.ClientMessage{Type: network.MsgMode, Mode: opts.mode})
	}
	return append(cmds, network.ClientMessage{Type: network.MsgShow})
}

func (c *cli) readFrames(ctx context.Context, conn *websocket.Conn, codec *render.Codec) error {
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		switch kind {
		case websocket.TextMessage:
			var msg network.ServerMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				c.logger.Warn("bad server message", "err", err)
				continue
			}
			if msg.Type == network.MsgError {
				c.logger.Error("server error", "error", msg.Error)
				continue
			}
			c.logger.Info("state", "observer", msg.Observer, "enabled", msg.Enabled, "mode", msg.Mode)

		case websocket.BinaryMessage:
			batch, err := codec.DecodeBatch(data)
			if err != nil {
				c.logger.Warn("corrupt frame", "err", err)
				continue
			}
			c.logger.Info("frame", "seq", batch.Sequence, "points", len(batch.Particles))
			for _, p := range batch.Particles {
				c.logger.Debug("particle", "x", p.X, "y", p.Y, "z", p.Z, "color", p.Color.String())
			}
		}
	}
}
