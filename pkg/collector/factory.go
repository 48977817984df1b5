package collector

import (
	"time"

	"github.com/k8sinv/kinvctl/pkg/collector/procs"
	"github.com/k8sinv/kinvctl/pkg/collector/resources"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateNodeCollector() Collector
	CreatePodCollector() Collector
	CreateContainerCollector() Collector
	CreateProcessCollector() Collector
}

// DefaultFactory creates collectors backed by a live cluster session.
// The session is established once and shared; collectors never mutate it.
type DefaultFactory struct {
	ClientSet  kubernetes.Interface
	RestConfig *rest.Config

	// Exec tuning for the process collector.
	ExecWorkers int
	ExecTimeout time.Duration
	ExecQPS     float64
}

// NewDefaultFactory creates a factory with default exec settings.
func NewDefaultFactory(clientset kubernetes.Interface, config *rest.Config) *DefaultFactory {
	return &DefaultFactory{
		ClientSet:   clientset,
		RestConfig:  config,
		ExecWorkers: 1,
		ExecTimeout: 30 * time.Second,
	}
}

// CreateNodeCollector creates a node collector.
func (f *DefaultFactory) CreateNodeCollector() Collector {
	return &resources.NodeCollector{ClientSet: f.ClientSet}
}

// CreatePodCollector creates a pod collector.
func (f *DefaultFactory) CreatePodCollector() Collector {
	return &resources.PodCollector{ClientSet: f.ClientSet}
}

// CreateContainerCollector creates a container collector.
func (f *DefaultFactory) CreateContainerCollector() Collector {
	return &resources.ContainerCollector{ClientSet: f.ClientSet}
}

// CreateProcessCollector creates the in-container process collector.
func (f *DefaultFactory) CreateProcessCollector() Collector {
	return procs.NewInspector(f.ClientSet, f.RestConfig, procs.Options{
		Workers: f.ExecWorkers,
		Timeout: f.ExecTimeout,
		QPS:     f.ExecQPS,
	})
}
