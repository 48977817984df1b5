package procs

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/k8sinv/kinvctl/pkg/inventory"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"
)

// processCommand lists every process with full detail. Its output is opaque
// text, one process per line; columns are not parsed.
var processCommand = []string{"ps", "aux"}

const defaultExecTimeout = 30 * time.Second

// execFunc runs a command inside a container and returns the combined
// stdout/stderr text. Injectable for testing.
type execFunc func(ctx context.Context, namespace, pod, container string, command []string) (string, error)

// Options tunes how the inspector execs into containers.
type Options struct {
	// Workers bounds concurrent exec calls. 0 or 1 means strictly sequential.
	Workers int
	// Timeout bounds each exec round trip so one unresponsive container
	// cannot stall the whole run.
	Timeout time.Duration
	// QPS throttles exec round trips against the API server. 0 disables
	// throttling.
	QPS float64
}

// Inspector retrieves live process tables from running containers via the
// exec subresource. Process inspection is best-effort enrichment: every
// per-container failure collapses into an empty result instead of an error,
// so a single container without a ps binary cannot abort fleet collection.
type Inspector struct {
	ClientSet kubernetes.Interface

	exec    execFunc
	limiter *rate.Limiter
	timeout time.Duration
	workers int
}

// NewInspector creates an inspector that execs through the given session.
func NewInspector(clientset kubernetes.Interface, config *rest.Config, opts Options) *Inspector {
	i := &Inspector{
		ClientSet: clientset,
		timeout:   opts.Timeout,
		workers:   opts.Workers,
	}
	if i.timeout <= 0 {
		i.timeout = defaultExecTimeout
	}
	if i.workers < 1 {
		i.workers = 1
	}
	if opts.QPS > 0 {
		i.limiter = rate.NewLimiter(rate.Limit(opts.QPS), 1)
	}
	i.exec = func(ctx context.Context, namespace, pod, container string, command []string) (string, error) {
		return execInContainer(ctx, clientset, config, namespace, pod, container, command)
	}
	return i
}

// ListProcesses returns the process lines from one container. The container
// name defaults to the pod's first declared container when empty.
//
// The returned slice is empty, never an error, when the pod is gone, not
// Running, or the exec fails for any reason. An empty result is therefore
// ambiguous between "no visible processes" and "exec failed"; callers that
// need the distinction should not use this interface.
func (i *Inspector) ListProcesses(ctx context.Context, namespace, podName, containerName string) []string {
	pod, err := i.ClientSet.CoreV1().Pods(namespace).Get(ctx, podName, metav1.GetOptions{})
	if err != nil {
		slog.Debug("skipping process inspection, pod read failed",
			slog.String("namespace", namespace),
			slog.String("pod", podName),
			slog.String("error", err.Error()))
		return nil
	}

	if len(pod.Spec.Containers) == 0 {
		return nil
	}
	if containerName == "" {
		containerName = pod.Spec.Containers[0].Name
	}

	// A non-running container cannot be exec'd into meaningfully.
	if pod.Status.Phase != corev1.PodRunning {
		return nil
	}

	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return nil
		}
	}

	execCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	output, err := i.exec(execCtx, namespace, podName, containerName, processCommand)
	if err != nil {
		slog.Debug("skipping process inspection, exec failed",
			slog.String("namespace", namespace),
			slog.String("pod", podName),
			slog.String("container", containerName),
			slog.String("error", err.Error()))
		return nil
	}

	return splitProcessLines(output)
}

// Collect lists pods across all namespaces and inspects every container of
// every Running pod. Unlike the per-container exec, the bulk pod listing is
// a necessary precondition, so its failure is fatal.
//
// One record is appended per (pod, container) pair regardless of whether the
// process list came back empty, in pod listing order even when exec calls
// run on multiple workers.
func (i *Inspector) Collect(ctx context.Context) (*inventory.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pods, err := i.ClientSet.CoreV1().Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &inventory.CollectionError{Resource: "processes", Err: err}
	}

	type target struct {
		namespace string
		pod       string
		container string
	}
	var targets []target
	for p := range pods.Items {
		pod := &pods.Items[p]
		if pod.Status.Phase != corev1.PodRunning {
			continue
		}
		for _, container := range pod.Spec.Containers {
			targets = append(targets, target{
				namespace: pod.Namespace,
				pod:       pod.Name,
				container: container.Name,
			})
		}
	}

	results := make([][]string, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)
	for idx, tgt := range targets {
		g.Go(func() error {
			results[idx] = i.ListProcesses(gctx, tgt.namespace, tgt.pod, tgt.container)
			return nil
		})
	}
	// ListProcesses never errors; Wait only surfaces context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &inventory.RecordSet{Category: inventory.CategoryProcesses}
	for idx, tgt := range targets {
		lines := results[idx]
		if lines == nil {
			lines = []string{}
		}
		set.Append(inventory.NewRecord().
			Set("pod_name", inventory.Str(tgt.pod)).
			Set("namespace", inventory.Str(tgt.namespace)).
			Set("container_name", inventory.Str(tgt.container)).
			Set("processes", inventory.StrList(lines)))
	}

	slog.Debug("collected processes", slog.Int("containers", set.Len()))
	return set, nil
}

// splitProcessLines splits exec output on line boundaries, trims whitespace
// and drops empty lines.
func splitProcessLines(output string) []string {
	lines := strings.Split(output, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// execInContainer runs a command through the pod exec subresource and
// captures combined stdout/stderr.
func execInContainer(ctx context.Context, clientset kubernetes.Interface, config *rest.Config, namespace, pod, container string, command []string) (string, error) {
	req := clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Name(pod).
		Namespace(namespace).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: container,
			Command:   command,
			Stdout:    true,
			Stderr:    true,
			Stdin:     false,
			TTY:       false,
		}, scheme.ParameterCodec)

	executor, err := remotecommand.NewSPDYExecutor(config, http.MethodPost, req.URL())
	if err != nil {
		return "", err
	}

	var output bytes.Buffer
	err = executor.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdout: &output,
		Stderr: &output,
	})
	if err != nil {
		return "", err
	}
	return output.String(), nil
}
