package dto

// StationListRequest - фильтры каталога станций (query параметры)
type StationListRequest struct {
	Operator string   `query:"operator" json:"operator"`
	PowerMin *float64 `query:"power_min" json:"power_min" validate:"omitempty,min=0"`
	PowerMax *float64 `query:"power_max" json:"power_max" validate:"omitempty,min=0"`
	District string   `query:"district" json:"district"`
}

// OptimizeRequest - параметры модели выбора. Отсутствующие поля
// берутся из конфигурации (OPTIMIZER_MIN_STATIONS, OPTIMIZER_MIN_COVERAGE).
type OptimizeRequest struct {
	MinStations *int     `json:"min_stations" validate:"omitempty,min=0"`
	MinCoverage *float64 `json:"min_coverage" validate:"omitempty,min=0"`
}

// ProximityRequest - запрос анализа близости станций к узлам дорожной сети
type ProximityRequest struct {
	ThresholdM *float64 `json:"threshold_m" validate:"omitempty,gt=0,max=50000"` // meters
	Metric     string   `json:"metric" validate:"omitempty,oneof=angular geodesic"`
	District   string   `json:"district"`
}
