// Package cli implements the command-line interface for the kinvctl tool.
//
// # Commands
//
// collect - capture a cluster inventory snapshot:
//
//	kinvctl collect [--output-dir DIR] [--processes] [--only CATEGORIES]
//	kinvctl collect --format json --output snapshot.json
//	kinvctl collect --processes --exec-workers 4 --exec-qps 10
//
// Collects nodes, pods and containers (always) and container process
// tables (with --processes) from the connected cluster. The default
// output is one CSV file per non-empty category; json and yaml emit the
// whole snapshot as a single document instead.
//
// version - print the tool version.
//
// # Cluster access
//
// The tool authenticates with the in-cluster service account when running
// as a Pod, and otherwise falls back to kubeconfig discovery (--kubeconfig
// flag, then KUBECONFIG, then ~/.kube/config). Access is strictly
// read-only plus the pod exec subresource when --processes is given.
//
// # Exit status
//
// Non-zero on connection failure or on any nodes/pods/containers
// collection failure; per-container exec failures during process
// collection never fail the run.
package cli
