package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/geometry"
)

const (
	colDistrictName     = "Gemeinde_name"
	colDistrictGeometry = "geometry"
)

// ParseDistricts читает CSV округов (разделитель ','): имя в Gemeinde_name,
// граница в geometry как WKT. Каждая геометрия проверяется разбором.
func ParseDistricts(r io.Reader) ([]domain.DistrictRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("districts: read header: %w", err)
	}
	nameIdx, geomIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")) {
		case colDistrictName:
			nameIdx = i
		case colDistrictGeometry:
			geomIdx = i
		}
	}
	if nameIdx < 0 || geomIdx < 0 {
		return nil, fmt.Errorf("districts: columns %q and %q are required", colDistrictName, colDistrictGeometry)
	}

	var records []domain.DistrictRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("districts: line %d: %w", line, err)
		}
		if nameIdx >= len(row) || geomIdx >= len(row) {
			return nil, fmt.Errorf("districts: line %d: too few columns", line)
		}

		rec := domain.DistrictRecord{
			Name: strings.TrimSpace(row[nameIdx]),
			WKT:  strings.TrimSpace(row[geomIdx]),
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("districts: line %d: empty name", line)
		}
		if _, err := geometry.ParseWKT(rec.WKT); err != nil {
			return nil, fmt.Errorf("districts: line %d (%s): %w", line, rec.Name, err)
		}
		records = append(records, rec)
	}

	return records, nil
}
