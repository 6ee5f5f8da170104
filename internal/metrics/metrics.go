// Package metrics - Prometheus метрики сервиса: оптимизации, каталог,
// анализ близости, HTTP и кэш.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOptimal     = "optimal"
	OutcomeFeasible    = "feasible"
	OutcomeInfeasible  = "infeasible"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
)

// Collector - набор метрик сервиса. Методы безопасны для nil-получателя,
// поэтому компоненты можно собирать без метрик (CLI, тесты).
type Collector struct {
	gatherer prometheus.Gatherer

	Optimizations        *prometheus.CounterVec
	OptimizationDuration *prometheus.HistogramVec
	CatalogStations      prometheus.Gauge
	CatalogDistricts     prometheus.Gauge
	ProximityMatches     prometheus.Gauge
	HTTPRequests         *prometheus.CounterVec
	CacheRequests        *prometheus.CounterVec
}

// New регистрирует метрики в reg (по умолчанию - глобальный реестр).
// Повторная регистрация возвращает уже существующие коллекторы.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.Optimizations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "siting_optimizations_total",
		Help: "Site selection runs by solver backend and outcome.",
	}, []string{"solver", "outcome"}), "siting_optimizations_total"); err != nil {
		return nil, err
	}
	if c.OptimizationDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "siting_optimization_duration_seconds",
		Help:    "Site selection solve time in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60},
	}, []string{"solver"}), "siting_optimization_duration_seconds"); err != nil {
		return nil, err
	}
	if c.CatalogStations, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "siting_catalog_stations",
		Help: "Stations in the current catalog snapshot.",
	}), "siting_catalog_stations"); err != nil {
		return nil, err
	}
	if c.CatalogDistricts, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "siting_catalog_districts",
		Help: "Districts in the current catalog snapshot.",
	}), "siting_catalog_districts"); err != nil {
		return nil, err
	}
	if c.ProximityMatches, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "siting_proximity_matches",
		Help: "Stations near traffic nodes in the last proximity analysis.",
	}), "siting_proximity_matches"); err != nil {
		return nil, err
	}
	if c.HTTPRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "siting_http_requests_total",
		Help: "HTTP requests by method, route template and status code.",
	}, []string{"method", "route", "status"}), "siting_http_requests_total"); err != nil {
		return nil, err
	}
	if c.CacheRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "siting_cache_requests_total",
		Help: "Redis cache lookups by cache name and result (hit/miss).",
	}, []string{"cache", "result"}), "siting_cache_requests_total"); err != nil {
		return nil, err
	}

	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T, name string) (T, error) {
	if err := reg.Register(collector); err != nil {
		var zero T
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return zero, err
	}
	return collector, nil
}

// ObserveOptimization - один запуск оптимизатора
func (c *Collector) ObserveOptimization(solver, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.Optimizations.WithLabelValues(solver, outcome).Inc()
	c.OptimizationDuration.WithLabelValues(solver).Observe(d.Seconds())
}

func (c *Collector) SetCatalog(stations, districts int) {
	if c == nil {
		return
	}
	c.CatalogStations.Set(float64(stations))
	c.CatalogDistricts.Set(float64(districts))
}

func (c *Collector) SetProximityMatches(n int) {
	if c == nil {
		return
	}
	c.ProximityMatches.Set(float64(n))
}

func (c *Collector) ObserveHTTP(method, route string, status int) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (c *Collector) CacheHit(cache string) {
	if c == nil {
		return
	}
	c.CacheRequests.WithLabelValues(cache, "hit").Inc()
}

func (c *Collector) CacheMiss(cache string) {
	if c == nil {
		return
	}
	c.CacheRequests.WithLabelValues(cache, "miss").Inc()
}

// Handler - HTTP обработчик для /metrics
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
