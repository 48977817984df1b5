package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Inventory collection metrics
	inventoryCollectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kinv_inventory_collection_duration_seconds",
			Help:    "Time taken to collect a complete cluster inventory",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	inventoryCollectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinv_inventory_collection_total",
			Help: "Total number of inventory collection attempts",
		},
		[]string{"status"}, // success or error
	)

	inventoryCollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kinv_inventory_collector_duration_seconds",
			Help:    "Time taken by individual collectors",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 120},
		},
		[]string{"collector"}, // nodes, pods, containers, processes
	)

	inventoryRecordCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kinv_inventory_records",
			Help: "Number of records per category in the last collected inventory",
		},
		[]string{"category"},
	)
)
