package metrics

import "sync"

var (
	globalCollector *Collector
	once            sync.Once
)

// Global returns the global metrics collector.
func Global() *Collector {
	once.Do(func() {
		globalCollector = NewCollector()
	})
	return globalCollector
}

// Metric names recorded while resolving bundles.
const (
	MetricFilesResolved   = "lintbundle_files_resolved_total"
	MetricFilesOverridden = "lintbundle_files_overridden_total"
	MetricResolveErrors   = "lintbundle_resolve_errors_total"
	MetricResolveLatency  = "lintbundle_resolve_duration_ms"

	MetricCacheHits   = "lintbundle_cache_hits"
	MetricCacheMisses = "lintbundle_cache_misses"
	MetricCacheSize   = "lintbundle_cache_size"
)
