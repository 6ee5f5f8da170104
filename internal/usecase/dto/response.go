package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ev-siting/internal/domain"
)

// StationListResponse - отфильтрованный каталог, отсортирован по id
type StationListResponse struct {
	Stations []domain.Station `json:"stations"`
	Total    int              `json:"total"`
}

// OptimizeResponse - результат синхронной оптимизации
type OptimizeResponse struct {
	Result         *domain.SelectionResult `json:"result"`
	Params         domain.SelectionParams  `json:"params"`
	CatalogVersion string                  `json:"catalog_version"`
}

// JobResponse - поставленная в очередь задача оптимизации
type JobResponse struct {
	RequestID uuid.UUID              `json:"request_id"`
	Stream    string                 `json:"stream"`
	Params    domain.SelectionParams `json:"params"`
}

// ProximityResponse - станции в пределах порога от узлов дорожной сети
type ProximityResponse struct {
	Stations   []domain.Station `json:"stations"`
	Count      int              `json:"count"`
	Metric     string           `json:"metric"`
	ThresholdM float64          `json:"threshold_m"`
	Nodes      int              `json:"nodes"`
}

// CatalogResponse - сводка загруженного snapshot
type CatalogResponse struct {
	Version   string    `json:"catalog_version"`
	Stations  int       `json:"stations"`
	Districts int       `json:"districts"`
	Skipped   int       `json:"skipped_rows"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// NamesResponse - список имён (округа, операторы)
type NamesResponse struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}
