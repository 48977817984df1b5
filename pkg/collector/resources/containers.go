package resources

import (
	"context"
	"log/slog"

	"github.com/distribution/reference"
	"github.com/k8sinv/kinvctl/pkg/inventory"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ContainerCollector flattens every pod's declared container list into one
// record per (pod, container) pair.
type ContainerCollector struct {
	ClientSet kubernetes.Interface
}

// Collect lists pods across all namespaces and emits one record per declared
// container. Pods with no containers contribute zero records; that is not an
// error. Any list failure is fatal.
func (c *ContainerCollector) Collect(ctx context.Context) (*inventory.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pods, err := c.ClientSet.CoreV1().Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &inventory.CollectionError{Resource: "containers", Err: err}
	}

	set := &inventory.RecordSet{Category: inventory.CategoryContainers}
	for i := range pods.Items {
		pod := &pods.Items[i]
		for _, container := range pod.Spec.Containers {
			set.Append(normalizeContainer(pod, &container))
		}
	}

	slog.Debug("collected containers", slog.Int("count", set.Len()))
	return set, nil
}

func normalizeContainer(pod *corev1.Pod, container *corev1.Container) *inventory.Record {
	repository, tag := parseImageRef(container.Image)
	return inventory.NewRecord().
		Set("name", inventory.Str(container.Name)).
		Set("image", inventory.Str(container.Image)).
		Set("image_repository", repository).
		Set("image_tag", tag).
		Set("pod_name", inventory.Str(pod.Name)).
		Set("namespace", inventory.Str(pod.Namespace)).
		Set("node_name", inventory.StrOrAbsent(pod.Spec.NodeName))
}

// parseImageRef splits an image reference into its normalized repository and
// tag. Unparsable references yield absent fields; the record is still
// emitted with the raw image string.
func parseImageRef(image string) (repository, tag inventory.Value) {
	repository = inventory.Absent()
	tag = inventory.Absent()

	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return repository, tag
	}
	repository = inventory.Str(named.Name())

	if tagged, ok := reference.TagNameOnly(named).(reference.Tagged); ok {
		tag = inventory.Str(tagged.Tag())
	}
	return repository, tag
}
