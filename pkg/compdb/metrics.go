// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package compdb

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsCompdb holds Prometheus metrics for database loading, config
// resolution, and parse dispatch.
type metricsCompdb struct {
	once sync.Once

	dbLoads      prometheus.Counter
	dbLoadErrors prometheus.Counter

	resolveHits     prometheus.Counter
	resolveFallback prometheus.Counter
	resolveMisses   prometheus.Counter

	filesDispatched prometheus.Counter
	parseErrors     prometheus.Counter

	loadDuration     prometheus.Histogram
	dispatchDuration prometheus.Histogram
}

var cdbMetrics metricsCompdb

func (m *metricsCompdb) init() {
	m.once.Do(func() {
		m.dbLoads = prometheus.NewCounter(prometheus.CounterOpts{Name: "clangdb_db_loads_total", Help: "Compilation databases loaded"})
		m.dbLoadErrors = prometheus.NewCounter(prometheus.CounterOpts{Name: "clangdb_db_load_errors_total", Help: "Compilation database load failures"})

		m.resolveHits = prometheus.NewCounter(prometheus.CounterOpts{Name: "clangdb_resolve_hits_total", Help: "Configurations resolved by exact entry"})
		m.resolveFallback = prometheus.NewCounter(prometheus.CounterOpts{Name: "clangdb_resolve_fallback_total", Help: "Configurations resolved via extension fallback"})
		m.resolveMisses = prometheus.NewCounter(prometheus.CounterOpts{Name: "clangdb_resolve_misses_total", Help: "Resolution requests with no match under any extension"})

		m.filesDispatched = prometheus.NewCounter(prometheus.CounterOpts{Name: "clangdb_parse_files_total", Help: "Files dispatched to the single-file parser"})
		m.parseErrors = prometheus.NewCounter(prometheus.CounterOpts{Name: "clangdb_parse_errors_total", Help: "Files whose parse returned an error"})

		buckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
		m.loadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "clangdb_db_load_seconds", Help: "Compilation database load duration", Buckets: buckets})
		m.dispatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "clangdb_parse_file_seconds", Help: "Single-file parse duration", Buckets: buckets})

		prometheus.MustRegister(
			m.dbLoads, m.dbLoadErrors,
			m.resolveHits, m.resolveFallback, m.resolveMisses,
			m.filesDispatched, m.parseErrors,
			m.loadDuration, m.dispatchDuration,
		)
	})
}

// record helpers - used by Load, FindConfigFor, and the parse drivers.

func recordLoad(d time.Duration) {
	cdbMetrics.init()
	cdbMetrics.dbLoads.Inc()
	cdbMetrics.loadDuration.Observe(d.Seconds())
}

func recordLoadError() { cdbMetrics.init(); cdbMetrics.dbLoadErrors.Inc() }

func recordResolveHit()      { cdbMetrics.init(); cdbMetrics.resolveHits.Inc() }
func recordResolveFallback() { cdbMetrics.init(); cdbMetrics.resolveFallback.Inc() }
func recordResolveMiss()     { cdbMetrics.init(); cdbMetrics.resolveMisses.Inc() }

func recordDispatch(d time.Duration, ok bool) {
	cdbMetrics.init()
	cdbMetrics.filesDispatched.Inc()
	cdbMetrics.dispatchDuration.Observe(d.Seconds())
	if !ok {
		cdbMetrics.parseErrors.Inc()
	}
}
