// Package procs collects live process tables from running containers.
//
// The inspector execs a process-status command (ps aux) through the pod
// exec subresource and keeps the output as opaque text lines. It is the
// only collector with best-effort semantics: a container without a shell or
// ps binary, a pod terminating mid-call, or an exec-disabled runtime all
// collapse into an empty process list rather than an error, because
// enrichment failures must not degrade the primary inventory.
//
// Exec round trips are expensive (one streaming connection per container),
// so bulk collection is opt-in at the CLI and supports a bounded worker
// pool and QPS throttling.
package procs
