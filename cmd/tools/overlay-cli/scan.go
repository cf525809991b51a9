package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/annel0/spawnlight/internal/overlay"
	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world"
)

type scanOptions struct {
	seed         int64
	radiusChunks int
	x, z         int
	y            int
	autoY        bool
	radius       int
	mode         string
	jsonOut      bool
}

// scanResult одна строка вывода команды scan
type scanResult struct {
	Block vec.Vec3      `json:"block"`
	Risk  string        `json:"risk"`
	Color string        `json:"color"`
	Pos   vec.Vec3Float `json:"position"`
}

func (c *cli) scanCommand() *cobra.Command {
	var opts scanOptions

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Generate a world offline and print overlay points around a position",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.autoY = !cmd.Flags().Changed("y")
			mode, err := overlay.ParseMode(opts.mode)
			if err != nil {
				return err
			}

			wm := world.NewWorldManager("scan", opts.seed)
			world.NewWorldGenerator(opts.seed).Generate(wm, opts.radiusChunks, -1, 2)
			c.logger.Debug("world generated", "seed", opts.seed, "chunks", wm.ChunkCount())

			origin := vec.Vec3{X: opts.x, Y: opts.y, Z: opts.z}
			if opts.autoY {
				if top, ok := wm.HighestSolid(vec.Vec2{X: opts.x, Y: opts.z}); ok {
					origin.Y = top + 1
				}
			}
			c.logger.Info("scanning", "origin", origin, "radius", opts.radius, "mode", mode)

			results := scanWorld(wm, origin, opts.radius, mode)
			c.logger.Info("scan complete", "points", len(results))

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeJSON(out, results)
			}
			return writeTable(out, results)
		},
	}

	cmd.Flags().Int64Var(&opts.seed, "seed", 1337, "world seed")
	cmd.Flags().IntVar(&opts.radiusChunks, "chunks", 2, "generated world radius in chunks")
	cmd.Flags().IntVar(&opts.x, "x", 0, "observer block X")
	cmd.Flags().IntVar(&opts.y, "y", 0, "observer block Y (default: standing on the surface)")
	cmd.Flags().IntVar(&opts.z, "z", 0, "observer block Z")
	cmd.Flags().IntVarP(&opts.radius, "radius", "r", 8, "scan radius in blocks")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "spawnable", "display mode: spawnable, all, light_level")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print points as JSON")

	return cmd
}

// scanWorld выполняет один проход сканера и собирает результаты
func scanWorld(src overlay.BlockSource, origin vec.Vec3, radius int, mode overlay.Mode) []scanResult {
	var results []scanResult
	for p := range overlay.Scan(src, origin, radius, mode) {
		results = append(results, scanResult{
			Block: p.Block,
			Risk:  p.Risk.String(),
			Color: p.Color.String(),
			Pos:   p.WorldPosition(),
		})
	}
	return results
}

func writeJSON(w io.Writer, results []scanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeTable(w io.Writer, results []scanResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BLOCK\tRISK\tCOLOR\tPOSITION")
	for _, r := range results {
		fmt.Fprintf(tw, "%d,%d,%d\t%s\t%s\t%.1f,%.1f,%.1f\n",
			r.Block.X, r.Block.Y, r.Block.Z, r.Risk, r.Color, r.Pos.X, r.Pos.Y, r.Pos.Z)
	}
	return tw.Flush()
}
