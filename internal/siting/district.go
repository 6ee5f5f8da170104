package siting

import (
	"fmt"
	"strings"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/geometry"
	"github.com/ev-siting/internal/pkg/errors"
)

// Имена, означающие отсутствие фильтра по округу ("Alle" - как в исходном интерфейсе карты)
const (
	AllDistricts   = "all"
	AllDistrictsDE = "alle"
)

// ResolveDistrict находит округ по имени. Пустое имя, "all" и "Alle" дают nil -
// фильтр не применяется.
func ResolveDistrict(districts map[string]*domain.District, name string) (*domain.District, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, AllDistricts) || strings.EqualFold(name, AllDistrictsDE) {
		return nil, nil
	}
	d, ok := districts[name]
	if !ok {
		return nil, errors.ErrUnknownDistrict.WithDetails(map[string]interface{}{
			"district": name,
		})
	}
	return d, nil
}

// FilterByDistrict оставляет станции внутри границы округа (граница включительно).
// nil-округ возвращает вход без изменений, вырожденная граница - пустой результат.
func FilterByDistrict(stations []domain.Station, d *domain.District) []domain.Station {
	if d == nil {
		return stations
	}
	result := []domain.Station{}
	if geometry.IsEmptyBoundary(d.Boundary) {
		return result
	}
	for _, st := range stations {
		if geometry.MultiPolygonContains(d.Boundary, stationPoint(st)) {
			result = append(result, st)
		}
	}
	return result
}

// BuildDistricts разбирает WKT границ и объединяет строки с одинаковым
// именем в один мультиполигон
func BuildDistricts(records []domain.DistrictRecord) (map[string]*domain.District, error) {
	districts := make(map[string]*domain.District, len(records))
	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			return nil, fmt.Errorf("district without name")
		}
		boundary, err := geometry.ParseWKT(rec.WKT)
		if err != nil {
			return nil, fmt.Errorf("district %q: %w", name, err)
		}
		if d, ok := districts[name]; ok {
			d.Boundary = append(d.Boundary, boundary...)
			continue
		}
		districts[name] = &domain.District{Name: name, Boundary: boundary}
	}
	return districts, nil
}
