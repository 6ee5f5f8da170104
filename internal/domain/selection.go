package domain

// SelectionResult - результат одного запуска модели выбора станций.
// Не хранится: пересчитывается на каждый вызов.
type SelectionResult struct {
	SelectedIDs    []int64 `json:"selected_ids"`
	ObjectiveValue float64 `json:"objective_value"`
	Feasible       bool    `json:"feasible"`
	// Optimal=false при feasible=true означает, что решатель упёрся в лимит
	// и вернул лучшее найденное решение
	Optimal       bool    `json:"optimal"`
	SelectedCount int     `json:"selected_count"`
	Coverage      float64 `json:"coverage"`
	Solver        string  `json:"solver"`
	DurationMS    float64 `json:"duration_ms"`
}

// SelectionParams - ограничения модели: минимальное число станций и минимальное покрытие
type SelectionParams struct {
	MinStations int     `json:"min_stations"`
	MinCoverage float64 `json:"min_coverage"`
}
