package resources

import (
	"context"
	"log/slog"

	"github.com/k8sinv/kinvctl/pkg/inventory"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// PodCollector lists pods across all namespaces and normalizes them to flat
// records. Duplicate (namespace, name) pairs are kept as-is: the inventory
// reports what the API server returned, it does not deduplicate.
type PodCollector struct {
	ClientSet kubernetes.Interface
}

// Collect lists pods across all namespaces. Any list failure is fatal.
func (c *PodCollector) Collect(ctx context.Context) (*inventory.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pods, err := c.ClientSet.CoreV1().Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &inventory.CollectionError{Resource: "pods", Err: err}
	}

	set := &inventory.RecordSet{Category: inventory.CategoryPods}
	for i := range pods.Items {
		set.Append(normalizePod(&pods.Items[i]))
	}

	slog.Debug("collected pods", slog.Int("count", set.Len()))
	return set, nil
}

// normalizePod flattens a pod into a record. Spec and status-derived fields
// are absent for pods the scheduler or kubelet has not touched yet.
func normalizePod(pod *corev1.Pod) *inventory.Record {
	return inventory.NewRecord().
		Set("name", inventory.Str(pod.Name)).
		Set("namespace", inventory.Str(pod.Namespace)).
		Set("uid", inventory.Str(string(pod.UID))).
		Set("node_name", inventory.StrOrAbsent(pod.Spec.NodeName)).
		Set("service_account", inventory.StrOrAbsent(pod.Spec.ServiceAccountName)).
		Set("status", inventory.StrOrAbsent(string(pod.Status.Phase))).
		Set("pod_ip", inventory.StrOrAbsent(pod.Status.PodIP))
}
