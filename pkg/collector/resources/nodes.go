package resources

import (
	"context"
	"log/slog"
	"time"

	"github.com/k8sinv/kinvctl/pkg/inventory"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// NodeCollector lists all cluster nodes and normalizes them to flat records.
type NodeCollector struct {
	ClientSet kubernetes.Interface
}

// Collect lists nodes cluster-wide. Any list failure is fatal; no partial
// results are returned.
func (c *NodeCollector) Collect(ctx context.Context) (*inventory.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nodes, err := c.ClientSet.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &inventory.CollectionError{Resource: "nodes", Err: err}
	}

	set := &inventory.RecordSet{Category: inventory.CategoryNodes}
	for i := range nodes.Items {
		set.Append(normalizeNode(&nodes.Items[i]))
	}

	slog.Debug("collected nodes", slog.Int("count", set.Len()))
	return set, nil
}

// normalizeNode flattens a node into a record, substituting the absent
// marker for any status field the API server did not populate.
func normalizeNode(node *corev1.Node) *inventory.Record {
	created := inventory.Absent()
	if !node.CreationTimestamp.IsZero() {
		created = inventory.Str(node.CreationTimestamp.UTC().Format(time.RFC3339))
	}

	info := node.Status.NodeInfo
	return inventory.NewRecord().
		Set("name", inventory.Str(node.Name)).
		Set("uid", inventory.Str(string(node.UID))).
		Set("creation_timestamp", created).
		Set("kubernetes_version", inventory.StrOrAbsent(info.KubeletVersion)).
		Set("os_image", inventory.StrOrAbsent(info.OSImage)).
		Set("container_runtime", inventory.StrOrAbsent(info.ContainerRuntimeVersion))
}
