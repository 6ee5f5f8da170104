package main

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/ingest"
	"github.com/ev-siting/internal/pkg/errors"
	"github.com/ev-siting/internal/siting"
	"github.com/ev-siting/internal/solver"
)

type memStations struct {
	stations []domain.Station
	err      error
}

func (m *memStations) GetAll(context.Context) ([]domain.Station, int, error) {
	return m.stations, 0, m.err
}

func (m *memStations) ReplaceAll(_ context.Context, stations []domain.Station) error {
	if m.err != nil {
		return m.err
	}
	m.stations = stations
	return nil
}

func (m *memStations) Count(context.Context) (int, error) {
	return len(m.stations), m.err
}

type memDistricts struct {
	records []domain.DistrictRecord
}

func (m *memDistricts) GetAll(context.Context) ([]domain.DistrictRecord, error) {
	return m.records, nil
}

func (m *memDistricts) ReplaceAll(_ context.Context, records []domain.DistrictRecord) error {
	m.records = records
	return nil
}

const registryCSV = "Bundesnetzagentur Ladesäulenregister;;;;;\n" +
	"Stand: 01.10.2026;;;;;\n" +
	"Betreiber;Straße;Ort;Breitengrad;Längengrad;Nennleistung Ladeeinrichtung [kW]\n" +
	"Stromnetz Berlin;Unter den Linden;Berlin;52,5170;13,3889;22\n" +
	"Allego;Alexanderplatz;Berlin;52,5219;13,4132;150\n" +
	"EnBW;Königstraße;Stuttgart;48,7784;9,1800;50\n" +
	"Ohne Koordinaten;Weg;Berlin;;;11\n"

func TestImportStations(t *testing.T) {
	repo := &memStations{}
	var out bytes.Buffer

	err := importStations(context.Background(), strings.NewReader(registryCSV),
		ingest.Defaults{Cost: 10000, Coverage: 1, City: "Berlin"}, repo, &out)
	require.NoError(t, err)

	require.Len(t, repo.stations, 2)
	assert.Equal(t, "Stromnetz Berlin", repo.stations[0].Operator)
	assert.InDelta(t, 150, repo.stations[1].PowerKW, 1e-9)

	var report ingest.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.Filtered)
	assert.Equal(t, 1, report.Skipped)

	var stored struct {
		Stored int `json:"stored"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &stored))
	assert.Equal(t, 2, stored.Stored)
}

func TestImportStations_RepositoryError(t *testing.T) {
	repo := &memStations{err: stderrors.New("connection refused")}

	err := importStations(context.Background(), strings.NewReader(registryCSV),
		ingest.Defaults{Cost: 1, Coverage: 1}, repo, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestImportStations_NoHeader(t *testing.T) {
	err := importStations(context.Background(), strings.NewReader("a;b;c\n1;2;3\n"),
		ingest.Defaults{}, &memStations{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ingest.ErrHeaderNotFound)
}

func TestImportDistricts(t *testing.T) {
	raw := "Gemeinde_name,geometry\n" +
		`Mitte,"POLYGON((13.35 52.50,13.42 52.50,13.42 52.54,13.35 52.54,13.35 52.50))"` + "\n" +
		`Pankow,"POLYGON((13.40 52.55,13.50 52.55,13.50 52.65,13.40 52.65,13.40 52.55))"` + "\n" +
		`Pankow,"POLYGON((13.50 52.55,13.52 52.55,13.52 52.57,13.50 52.57,13.50 52.55))"` + "\n"

	repo := &memDistricts{}
	var out bytes.Buffer

	require.NoError(t, importDistricts(context.Background(), strings.NewReader(raw), repo, &out))
	assert.Len(t, repo.records, 3)

	var summary map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, 3, summary["rows"])
	assert.Equal(t, 2, summary["districts"])
}

func TestRunOptimize(t *testing.T) {
	stations := make([]domain.Station, 6)
	for i := range stations {
		stations[i] = domain.Station{
			ID:             int64(i + 1),
			Lat:            52.5,
			Lon:            13.4,
			Cost:           float64(10 * (i + 1)),
			CoverageWeight: 1,
		}
	}
	repo := &memStations{stations: stations}
	optimizer := siting.NewOptimizer(solver.NewBranchBound(10_000), 0)

	var out bytes.Buffer
	err := runOptimize(context.Background(), repo, optimizer,
		domain.SelectionParams{MinStations: 2, MinCoverage: 2}, &out)
	require.NoError(t, err)

	var result domain.SelectionResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.True(t, result.Feasible)
	assert.True(t, result.Optimal)
	assert.Equal(t, []int64{1, 2}, result.SelectedIDs)
	assert.InDelta(t, 30, result.ObjectiveValue, 1e-9)
}

func TestRunOptimize_EmptyCatalog(t *testing.T) {
	optimizer := siting.NewOptimizer(solver.NewBranchBound(10_000), 0)

	err := runOptimize(context.Background(), &memStations{}, optimizer,
		domain.SelectionParams{MinStations: 1}, &bytes.Buffer{})
	assert.ErrorIs(t, err, errors.ErrInvalidInputData)
}
