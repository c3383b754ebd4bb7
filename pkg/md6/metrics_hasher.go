package md6

import (
	"hash"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	hasherPrometheusMetrics sync.Once

	hasherBytesHashed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "md6",
			Subsystem: "hasher",
			Name:      "bytes_hashed_total",
			Help:      "Number of message bytes absorbed by hashers.",
		},
		[]string{"name"})
	hasherDigestsComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "md6",
			Subsystem: "hasher",
			Name:      "digests_computed_total",
			Help:      "Number of digests extracted from hashers.",
		},
		[]string{"name"})
)

type metricsHasher struct {
	hash.Hash
	bytesHashed     prometheus.Counter
	digestsComputed prometheus.Counter
}

// NewMetricsHasher creates a decorator for hash.Hash that exposes the
// number of bytes hashed and digests computed through Prometheus,
// keyed by a name identifying the consumer.
func NewMetricsHasher(base hash.Hash, name string) hash.Hash {
	hasherPrometheusMetrics.Do(func() {
		prometheus.MustRegister(hasherBytesHashed)
		prometheus.MustRegister(hasherDigestsComputed)
	})
	return &metricsHasher{
		Hash:            base,
		bytesHashed:     hasherBytesHashed.WithLabelValues(name),
		digestsComputed: hasherDigestsComputed.WithLabelValues(name),
	}
}

func (h *metricsHasher) Write(p []byte) (int, error) {
	n, err := h.Hash.Write(p)
	h.bytesHashed.Add(float64(n))
	return n, err
}

func (h *metricsHasher) Sum(b []byte) []byte {
	h.digestsComputed.Inc()
	return h.Hash.Sum(b)
}
