package sort

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var tasksSpawned = promauto.NewCounter(prometheus.CounterOpts{
	Name: "forkmerge_tasks_spawned_total",
	Help: "Number of subrange sorts that ran in their own goroutine",
})

var spawnFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Name: "forkmerge_spawn_fallbacks_total",
	Help: "Number of subrange sorts that ran sequentially because a goroutine could not be spawned",
})

var sortDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "forkmerge_sort_duration_seconds",
	Help:    "Wall-clock duration of top-level parallel sorts",
	Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
})
