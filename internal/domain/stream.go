package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamOptimizationRequested = "stream:siting:optimize"
	StreamOptimizationDone      = "stream:siting:optimized"
)

// OptimizationRequestedEvent - входящая задача на оптимизацию
type OptimizationRequestedEvent struct {
	RequestID   uuid.UUID `json:"request_id"`
	MinStations int       `json:"min_stations"`
	MinCoverage float64   `json:"min_coverage"`
}

// Params - параметры модели из события
func (e *OptimizationRequestedEvent) Params() SelectionParams {
	return SelectionParams{MinStations: e.MinStations, MinCoverage: e.MinCoverage}
}

// OptimizationDoneEvent - результат задачи. Error/ErrorCode заполнены,
// если оптимизация не выполнена (infeasible ошибкой не является).
type OptimizationDoneEvent struct {
	RequestID      uuid.UUID        `json:"request_id"`
	CatalogVersion string           `json:"catalog_version,omitempty"`
	Result         *SelectionResult `json:"result,omitempty"`
	Error          string           `json:"error,omitempty"`
	ErrorCode      string           `json:"error_code,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
