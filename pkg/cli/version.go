package cli

import (
	"context"
	"fmt"

	"github.com/k8sinv/kinvctl/pkg/version"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the kinvctl version",
		Action: func(context.Context, *cli.Command) error {
			fmt.Println(version.Version)
			return nil
		},
	}
}
