package siting

import (
	"fmt"

	"github.com/ev-siting/internal/domain"
)

func uniformCatalog(n int, cost, weight float64) []domain.Station {
	stations := make([]domain.Station, n)
	for i := range stations {
		stations[i] = domain.Station{
			ID:             int64(i + 1),
			Operator:       fmt.Sprintf("op-%d", i%3),
			Lat:            52.45 + float64(i%20)*0.01,
			Lon:            13.30 + float64(i/20)*0.01,
			PowerKW:        float64(11 + (i%4)*50),
			Cost:           cost,
			CoverageWeight: weight,
		}
	}
	return stations
}
