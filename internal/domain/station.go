package domain

import "time"

// Station - запись реестра зарядных станций. Все станции каталога являются
// кандидатами для модели выбора, включая уже существующие.
type Station struct {
	ID             int64      `json:"id" db:"id"`
	Operator       string     `json:"operator" db:"operator"`
	Street         string     `json:"street" db:"street"`
	HouseNumber    string     `json:"house_number" db:"house_number"`
	PostalCode     string     `json:"postal_code" db:"postal_code"`
	City           string     `json:"city" db:"city"`
	Lat            float64    `json:"lat" db:"lat"`
	Lon            float64    `json:"lon" db:"lon"`
	PowerKW        float64    `json:"power_kw" db:"power_kw"`
	ChargePoints   int        `json:"charge_points" db:"charge_points"`
	Cost           float64    `json:"cost" db:"cost"`
	CoverageWeight float64    `json:"coverage_weight" db:"coverage_weight"`
	CommissionedAt *time.Time `json:"commissioned_at,omitempty" db:"commissioned_at"`
}

// Address - адрес для отображения (улица + номер дома)
func (s Station) Address() string {
	if s.HouseNumber == "" {
		return s.Street
	}
	return s.Street + " " + s.HouseNumber
}
