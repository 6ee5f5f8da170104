package siting

import (
	"github.com/paulmach/orb"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/geometry"
	"github.com/ev-siting/internal/pkg/utils"
)

// ProximityResult - станции, попавшие в буфер узлов дорожной сети
type ProximityResult struct {
	Stations []domain.Station `json:"stations"`
	Count    int              `json:"count"`
	Metric   string           `json:"metric"`
}

// ProximityAnalyzer находит станции в пределах порога от любого узла дорожной сети
type ProximityAnalyzer struct {
	metric geometry.Metric
}

func NewProximityAnalyzer(metric geometry.Metric) *ProximityAnalyzer {
	return &ProximityAnalyzer{metric: metric}
}

// Near возвращает станции, точка которых пересекает объединение буферов
// радиуса thresholdM вокруг узлов. Порядок входных станций сохраняется.
func (a *ProximityAnalyzer) Near(nodes []domain.TrafficNode, stations []domain.Station, thresholdM float64) (*ProximityResult, error) {
	if !utils.IsFinite(thresholdM) || thresholdM <= 0 {
		return nil, invalidParam("threshold_m", "must be a positive finite number")
	}

	result := &ProximityResult{
		Stations: []domain.Station{},
		Metric:   a.metric.Name(),
	}
	if len(nodes) == 0 || len(stations) == 0 {
		return result, nil
	}

	for _, st := range stations {
		if err := validateLocation(st); err != nil {
			return nil, err
		}
	}

	centers := make([]orb.Point, 0, len(nodes))
	for _, n := range nodes {
		if !utils.ValidateCoordinates(n.Lat, n.Lon) {
			return nil, invalidParam("nodes", "traffic node has invalid coordinates")
		}
		centers = append(centers, orb.Point{n.Lon, n.Lat})
	}

	union := geometry.NewBufferUnion(centers, thresholdM, a.metric)
	for _, st := range stations {
		if union.Intersects(stationPoint(st)) {
			result.Stations = append(result.Stations, st)
		}
	}
	result.Count = len(result.Stations)

	return result, nil
}
