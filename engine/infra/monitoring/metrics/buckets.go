package metrics

// HTTPDurationBuckets defines latency buckets for request duration metrics.
var HTTPDurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// HTTPSizeBucketBoundaries defines body size buckets up to the default 1 MiB limit.
var HTTPSizeBucketBoundaries = []float64{100, 1_000, 10_000, 100_000, 1_000_000}
