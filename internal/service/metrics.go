package service

import "github.com/prometheus/client_golang/prometheus"

// ImportMetrics tracks importer outcomes. A nil *ImportMetrics is valid
// and records nothing, which is how the CLI runs.
type ImportMetrics struct {
	filesImported    prometheus.Counter
	readingsImported prometheus.Counter
	readingsSkipped  prometheus.Counter
	importFailures   *prometheus.CounterVec
}

// NewImportMetrics creates the importer counters and registers them with
// reg.
func NewImportMetrics(reg prometheus.Registerer) (*ImportMetrics, error) {
	m := &ImportMetrics{
		filesImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "d0010_files_imported_total",
			Help: "Total number of flow files imported successfully.",
		}),
		readingsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "d0010_readings_imported_total",
			Help: "Total number of new readings created by imports.",
		}),
		readingsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "d0010_readings_skipped_total",
			Help: "Total number of readings skipped because they already existed.",
		}),
		importFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "d0010_import_failures_total",
			Help: "Total number of failed imports by error kind.",
		}, []string{"kind"}),
	}

	collectors := []prometheus.Collector{
		m.filesImported,
		m.readingsImported,
		m.readingsSkipped,
		m.importFailures,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *ImportMetrics) importSucceeded(imported, skipped int) {
	if m == nil {
		return
	}
	m.filesImported.Inc()
	m.readingsImported.Add(float64(imported))
	m.readingsSkipped.Add(float64(skipped))
}

func (m *ImportMetrics) importFailed(kind string) {
	if m == nil {
		return
	}
	m.importFailures.WithLabelValues(kind).Inc()
}
