package siting

import (
	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/pkg/utils"
)

// StationFilter - фильтр по оператору и диапазону мощности (границы включительно).
// Пустые поля не ограничивают выборку.
type StationFilter struct {
	Operator string
	PowerMin *float64
	PowerMax *float64
}

func (f StationFilter) Validate() error {
	if f.PowerMin != nil && !utils.NonNegative(*f.PowerMin) {
		return invalidParam("power_min", "must be a finite non-negative number")
	}
	if f.PowerMax != nil && !utils.NonNegative(*f.PowerMax) {
		return invalidParam("power_max", "must be a finite non-negative number")
	}
	if f.PowerMin != nil && f.PowerMax != nil && *f.PowerMin > *f.PowerMax {
		return invalidParam("power_min", "must not exceed power_max")
	}
	return nil
}

func (f StationFilter) IsEmpty() bool {
	return f.Operator == "" && f.PowerMin == nil && f.PowerMax == nil
}

// Apply возвращает станции, удовлетворяющие фильтру, в исходном порядке
func (f StationFilter) Apply(stations []domain.Station) []domain.Station {
	if f.IsEmpty() {
		return stations
	}
	result := []domain.Station{}
	for _, st := range stations {
		if f.Operator != "" && st.Operator != f.Operator {
			continue
		}
		if f.PowerMin != nil && st.PowerKW < *f.PowerMin {
			continue
		}
		if f.PowerMax != nil && st.PowerKW > *f.PowerMax {
			continue
		}
		result = append(result, st)
	}
	return result
}
