package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// RootCmd builds the kinvctl command tree.
func RootCmd() *cli.Command {
	return &cli.Command{
		Name:  "kinvctl",
		Usage: "Point-in-time inventory snapshots of a Kubernetes cluster",
		Description: `kinvctl connects to a Kubernetes cluster and enumerates its contents --
nodes, pods, containers and, on request, the processes running inside
containers -- then writes the results as flat tabular files for auditing
and compliance work.

The tool is read-only and one-shot: it never mutates cluster state, keeps
no history, and is expected to be re-invoked rather than retried on
failure.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelInfo
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return ctx, nil
		},
		Commands: []*cli.Command{
			collectCmd(),
			versionCmd(),
		},
	}
}
