// Package resources collects Kubernetes resource inventory data.
//
// The collectors in this package list cluster state through the standard
// clientset and normalize the partially-optional nested API objects into
// flat records with a fixed field order.
//
// # Collected Categories
//
// 1. nodes - one record per cluster node:
//   - name, uid, creation_timestamp
//   - kubernetes_version: kubelet version from node status
//   - os_image, container_runtime: runtime details from node status
//
// 2. pods - one record per pod across all namespaces:
//   - name, namespace, uid
//   - node_name: absent for unscheduled pods
//   - service_account, status (phase), pod_ip
//
// 3. containers - one record per (pod, declared container) pair:
//   - name, image, image_repository, image_tag
//   - pod_name, namespace, node_name of the owning pod
//
// Any field backed by a status sub-object the API server did not populate
// is reported as an explicit absent value, never an error.
//
// # Failure Policy
//
// Listing is idempotent and side-effect free, so there is no retry logic: a
// failed list surfaces as an inventory.CollectionError and aborts the run.
// A partial inventory is worse than no inventory for auditing purposes.
package resources
