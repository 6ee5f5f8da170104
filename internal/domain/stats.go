package domain

import "time"

// Statistics - сводная статистика по каталогу станций
type Statistics struct {
	CatalogVersion string         `json:"catalog_version"`
	Stations       int            `json:"stations"`
	SkippedRows    int            `json:"skipped_rows"`
	Districts      int            `json:"districts"`
	ByOperator     map[string]int `json:"by_operator"`
	Power          PowerStats     `json:"power"`
	ByDistrict     map[string]int `json:"by_district"`
	LastUpdated    time.Time      `json:"last_updated"`
}

// PowerStats - распределение номинальной мощности, кВт
type PowerStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
	FastDC int     `json:"fast_dc"` // >= 50 кВт
}
