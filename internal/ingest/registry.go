// Package ingest - разбор исходных CSV: реестр зарядных станций
// Bundesnetzagentur (Ladesäulenregister) и границы округов в WKT.
package ingest

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/pkg/utils"
)

const (
	colOperator     = "Betreiber"
	colStreet       = "Straße"
	colHouseNumber  = "Hausnummer"
	colPostalCode   = "Postleitzahl"
	colCity         = "Ort"
	colLat          = "Breitengrad"
	colLon          = "Längengrad"
	colCommissioned = "Inbetriebnahmedatum"
	colPower        = "Nennleistung Ladeeinrichtung [kW]"
	colChargePoints = "Anzahl Ladepunkte"

	commissionedLayout = "02.01.2006"
)

var ErrHeaderNotFound = stderrors.New("registry header row not found")

// Defaults - значения для полей, которых нет в реестре
type Defaults struct {
	Cost     float64
	Coverage float64
	// City - если задан, берутся только строки с этим Ort (без учёта регистра)
	City string
}

// Report - итог разбора реестра
type Report struct {
	Rows     int `json:"rows"`
	Imported int `json:"imported"`
	// Skipped - строки без координат или с нечисловыми координатами
	Skipped int `json:"skipped"`
	// Filtered - строки другого города
	Filtered int `json:"filtered"`
}

// ParseRegistry читает реестр: разделитель ';', десятичная запятая,
// перед строкой заголовка может идти произвольная преамбула.
// ID станции - порядковый номер строки данных в файле (с 1).
func ParseRegistry(r io.Reader, d Defaults) ([]domain.Station, Report, error) {
	var report Report

	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	columns, err := findHeader(reader)
	if err != nil {
		return nil, report, err
	}
	for _, required := range []string{colOperator, colLat, colLon} {
		if _, ok := columns[required]; !ok {
			return nil, report, fmt.Errorf("registry: missing column %q", required)
		}
	}

	var stations []domain.Station
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, fmt.Errorf("registry: line %d: %w", report.Rows+1, err)
		}
		if isBlank(record) {
			continue
		}
		report.Rows++

		get := func(col string) string {
			idx, ok := columns[col]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		if d.City != "" && !strings.EqualFold(get(colCity), d.City) {
			report.Filtered++
			continue
		}

		lat, latErr := ParseDecimal(get(colLat))
		lon, lonErr := ParseDecimal(get(colLon))
		if latErr != nil || lonErr != nil || !utils.ValidateCoordinates(lat, lon) {
			report.Skipped++
			continue
		}

		st := domain.Station{
			ID:             int64(report.Rows),
			Operator:       get(colOperator),
			Street:         get(colStreet),
			HouseNumber:    get(colHouseNumber),
			PostalCode:     get(colPostalCode),
			City:           get(colCity),
			Lat:            lat,
			Lon:            lon,
			Cost:           d.Cost,
			CoverageWeight: d.Coverage,
		}
		if power, err := ParseDecimal(get(colPower)); err == nil && utils.NonNegative(power) {
			st.PowerKW = power
		}
		if n, err := strconv.Atoi(get(colChargePoints)); err == nil && n > 0 {
			st.ChargePoints = n
		}
		if ts, err := time.Parse(commissionedLayout, get(colCommissioned)); err == nil {
			st.CommissionedAt = &ts
		}

		stations = append(stations, st)
	}
	report.Imported = len(stations)

	return stations, report, nil
}

// findHeader пропускает преамбулу до строки с колонками Betreiber и Breitengrad
func findHeader(reader *csv.Reader) (map[string]int, error) {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil, ErrHeaderNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("registry: read header: %w", err)
		}

		columns := make(map[string]int, len(record))
		for i, name := range record {
			name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
			if name != "" {
				columns[name] = i
			}
		}
		_, hasOperator := columns[colOperator]
		_, hasLat := columns[colLat]
		if hasOperator && hasLat {
			return columns, nil
		}
	}
}

// ParseDecimal разбирает число с десятичной запятой ("52,520008", "1.234,5")
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !utils.IsFinite(v) {
		return 0, fmt.Errorf("number %q is not finite", s)
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
