package snapshotter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/k8sinv/kinvctl/pkg/collector"
	"github.com/k8sinv/kinvctl/pkg/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiversion "k8s.io/apimachinery/pkg/version"
	clocktesting "k8s.io/utils/clock/testing"
)

type stubCollector struct {
	category string
	err      error
	calls    int
}

func (c *stubCollector) Collect(context.Context) (*inventory.RecordSet, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	set := &inventory.RecordSet{Category: c.category}
	set.Append(inventory.NewRecord().Set("name", inventory.Str(c.category+"-1")))
	return set, nil
}

type stubFactory struct {
	nodes, pods, containers, processes *stubCollector
}

func newStubFactory() *stubFactory {
	return &stubFactory{
		nodes:      &stubCollector{category: inventory.CategoryNodes},
		pods:       &stubCollector{category: inventory.CategoryPods},
		containers: &stubCollector{category: inventory.CategoryContainers},
		processes:  &stubCollector{category: inventory.CategoryProcesses},
	}
}

func (f *stubFactory) CreateNodeCollector() collector.Collector      { return f.nodes }
func (f *stubFactory) CreatePodCollector() collector.Collector       { return f.pods }
func (f *stubFactory) CreateContainerCollector() collector.Collector { return f.containers }
func (f *stubFactory) CreateProcessCollector() collector.Collector   { return f.processes }

type stubExporter struct {
	snap *inventory.Snapshot
	err  error
}

func (e *stubExporter) Export(_ context.Context, snap *inventory.Snapshot) error {
	e.snap = snap
	return e.err
}

func TestRun_MandatoryCategoriesInOrder(t *testing.T) {
	factory := newStubFactory()
	exporter := &stubExporter{}
	s := &InventorySnapshotter{Factory: factory, Exporter: exporter, Version: "test"}

	snap, err := s.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	var categories []string
	for _, set := range snap.Sets {
		categories = append(categories, set.Category)
	}
	assert.Equal(t, []string{"nodes", "pods", "containers"}, categories)
	assert.Equal(t, 0, factory.processes.calls, "process collection is opt-in")
	assert.Same(t, snap, exporter.snap, "snapshot must be handed to the exporter")
}

func TestRun_IncludeProcesses(t *testing.T) {
	factory := newStubFactory()
	s := &InventorySnapshotter{Factory: factory, Exporter: &stubExporter{}, IncludeProcesses: true}

	snap, err := s.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.Set(inventory.CategoryProcesses))
	assert.Equal(t, 1, factory.processes.calls)
}

func TestRun_MandatoryFailureAbortsBeforeExport(t *testing.T) {
	factory := newStubFactory()
	factory.pods.err = &inventory.CollectionError{Resource: "pods", Err: errors.New("forbidden")}
	exporter := &stubExporter{}
	s := &InventorySnapshotter{Factory: factory, Exporter: exporter}

	snap, err := s.Run(context.Background())
	assert.Nil(t, snap)

	var collErr *inventory.CollectionError
	require.True(t, errors.As(err, &collErr))
	assert.Nil(t, exporter.snap, "nothing may be exported on a failed run")
	assert.Equal(t, 0, factory.containers.calls, "collection stops at the first failure")
}

func TestRun_OnlyFilter(t *testing.T) {
	factory := newStubFactory()
	s := &InventorySnapshotter{
		Factory:  factory,
		Exporter: &stubExporter{},
		Only:     []string{inventory.CategoryNodes},
	}

	snap, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Sets, 1)
	assert.Equal(t, inventory.CategoryNodes, snap.Sets[0].Category)
	assert.Equal(t, 0, factory.pods.calls)
}

func TestRun_SnapshotMetadataUsesClock(t *testing.T) {
	ts := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &InventorySnapshotter{
		Factory:  newStubFactory(),
		Exporter: &stubExporter{},
		Clock:    clocktesting.NewFakePassiveClock(ts),
		Version:  "9.9.9",
	}

	snap, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01T12:00:00Z", snap.Metadata["collected-at"])
	assert.Equal(t, "9.9.9", snap.Metadata["tool-version"])
}

type stubVersioner struct {
	info *apiversion.Info
	err  error
}

func (v *stubVersioner) ServerVersion() (*apiversion.Info, error) {
	return v.info, v.err
}

func TestRun_ServerVersionMetadata(t *testing.T) {
	s := &InventorySnapshotter{
		Factory:   newStubFactory(),
		Exporter:  &stubExporter{},
		Discovery: &stubVersioner{info: &apiversion.Info{GitVersion: "v1.33.4"}},
	}

	snap, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.33.4", snap.Metadata["server-version"])
}

func TestRun_ServerVersionUnreachable(t *testing.T) {
	s := &InventorySnapshotter{
		Factory:   newStubFactory(),
		Exporter:  &stubExporter{},
		Discovery: &stubVersioner{err: errors.New("the server could not find the requested resource")},
	}

	snap, err := s.Run(context.Background())
	require.NoError(t, err, "an unreachable discovery endpoint must not fail the run")
	_, ok := snap.Metadata["server-version"]
	assert.False(t, ok)
}

func TestRun_ExportFailure(t *testing.T) {
	s := &InventorySnapshotter{
		Factory:  newStubFactory(),
		Exporter: &stubExporter{err: errors.New("disk full")},
	}

	snap, err := s.Run(context.Background())
	assert.Nil(t, snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to export inventory")
}
