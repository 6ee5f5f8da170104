package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList(""))
	assert.Equal(t, []string{"primary", "secondary"}, parseList(" primary, ,secondary ,"))
}

func TestParseBBox(t *testing.T) {
	bbox, err := parseBBox("13.08, 52.33, 13.76, 52.67")
	require.NoError(t, err)
	assert.Equal(t, [4]float64{13.08, 52.33, 13.76, 52.67}, bbox)

	empty, err := parseBBox("")
	require.NoError(t, err)
	assert.Equal(t, [4]float64{}, empty)

	for _, bad := range []string{"1,2,3", "a,2,3,4", "13.7,52.3,13.0,52.6"} {
		_, err := parseBBox(bad)
		assert.Error(t, err, bad)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "disable", cfg.OSMDB.SSLMode)
	assert.Equal(t, time.Hour, cfg.Cache.StatsCacheTTL)
	assert.Equal(t, "siting-optimization-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, "branchbound", cfg.Optimizer.Solver)
	assert.Equal(t, "angular", cfg.Proximity.Metric)
	assert.Contains(t, cfg.Proximity.HighwayTypes, "residential")
	assert.Less(t, cfg.Proximity.BBox[0], cfg.Proximity.BBox[2])
}

var zeroAllowedKeys = []string{
	"OPTIMIZER_MIN_STATIONS",
	"OPTIMIZER_MIN_COVERAGE",
	"PROXIMITY_THRESHOLD_M",
	"CATALOG_DEFAULT_COST",
	"CATALOG_DEFAULT_COVERAGE",
}

func TestLoad_DefaultsForUnsetKeys(t *testing.T) {
	for _, key := range zeroAllowedKeys {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Optimizer.MinStations)
	assert.InDelta(t, 150, cfg.Optimizer.MinCoverage, 1e-9)
	assert.InDelta(t, 500, cfg.Proximity.ThresholdM, 1e-9)
	assert.InDelta(t, 10000, cfg.Catalog.DefaultCost, 1e-9)
	assert.InDelta(t, 1, cfg.Catalog.DefaultCoverage, 1e-9)
}

func TestLoad_ExplicitZeroIsKept(t *testing.T) {
	for _, key := range zeroAllowedKeys {
		t.Setenv(key, "0")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Optimizer.MinStations)
	assert.Zero(t, cfg.Optimizer.MinCoverage)
	assert.Zero(t, cfg.Proximity.ThresholdM)
	assert.Zero(t, cfg.Catalog.DefaultCost)
	assert.Zero(t, cfg.Catalog.DefaultCoverage)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Optimizer: OptimizerConfig{Solver: "glpk", MinStations: 5},
		Proximity: ProximityConfig{Metric: "geodesic"},
	}
	applyDefaults(cfg)

	assert.Equal(t, "glpk", cfg.Optimizer.Solver)
	assert.Equal(t, 5, cfg.Optimizer.MinStations)
	assert.Equal(t, "geodesic", cfg.Proximity.Metric)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "siting", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=siting sslmode=disable", d.DSN())
}
