package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/k8sinv/kinvctl/pkg/cli"
	"github.com/k8sinv/kinvctl/pkg/k8s/client"
)

func main() {
	if err := cli.RootCmd().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var connErr *client.ConnectionError
		if errors.As(err, &connErr) {
			fmt.Fprintln(os.Stderr, "\nMake sure you have:")
			fmt.Fprintln(os.Stderr, "  - a valid kubeconfig file (--kubeconfig, KUBECONFIG, or ~/.kube/config), or")
			fmt.Fprintln(os.Stderr, "  - a service account token when running inside a cluster")
		}
		os.Exit(1)
	}
}
