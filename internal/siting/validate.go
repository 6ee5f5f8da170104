// Package siting - ядро выбора площадок для зарядных станций: модель
// оптимизации, анализ близости к дорожной сети и фильтры по округу
// и атрибутам. Пакет не хранит состояния между вызовами.
package siting

import (
	"github.com/paulmach/orb"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/pkg/errors"
	"github.com/ev-siting/internal/pkg/utils"
)

// ValidateStations проверяет каталог перед вычислениями: валидные координаты,
// конечные неотрицательные cost и coverage_weight, уникальные ID.
// Значения не исправляются - первая же ошибка возвращается как INVALID_INPUT_DATA.
func ValidateStations(stations []domain.Station) error {
	seen := make(map[int64]struct{}, len(stations))
	for _, st := range stations {
		if _, dup := seen[st.ID]; dup {
			return invalidStation(st.ID, "duplicate station id")
		}
		seen[st.ID] = struct{}{}

		if err := validateLocation(st); err != nil {
			return err
		}
		if !utils.NonNegative(st.Cost) {
			return invalidStation(st.ID, "cost must be a finite non-negative number")
		}
		if !utils.NonNegative(st.CoverageWeight) {
			return invalidStation(st.ID, "coverage_weight must be a finite non-negative number")
		}
	}
	return nil
}

func validateLocation(st domain.Station) error {
	if !utils.ValidateCoordinates(st.Lat, st.Lon) {
		return invalidStation(st.ID, "invalid coordinates")
	}
	return nil
}

func invalidStation(id int64, reason string) error {
	return errors.ErrInvalidInputData.WithDetails(map[string]interface{}{
		"station_id": id,
		"reason":     reason,
	})
}

func invalidParam(name, reason string) error {
	return errors.ErrInvalidInputData.WithDetails(map[string]interface{}{
		"param":  name,
		"reason": reason,
	})
}

// stationPoint - координаты станции в порядке orb (lon, lat)
func stationPoint(st domain.Station) orb.Point {
	return orb.Point{st.Lon, st.Lat}
}
