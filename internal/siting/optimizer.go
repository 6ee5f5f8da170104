package siting

import (
	"context"
	stderrors "errors"
	"sort"
	"time"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/pkg/errors"
	"github.com/ev-siting/internal/pkg/utils"
	"github.com/ev-siting/internal/solver"
)

const (
	constraintMinStations = "min_stations"
	constraintMinCoverage = "min_coverage"
)

// Optimizer выбирает подмножество станций минимальной стоимости при
// ограничениях на минимальное число станций и минимальное покрытие.
// Каждый вызов строит собственную модель; общего состояния нет.
type Optimizer struct {
	solver  solver.Solver
	timeout time.Duration
}

func NewOptimizer(s solver.Solver, timeout time.Duration) *Optimizer {
	return &Optimizer{
		solver:  s,
		timeout: timeout,
	}
}

// SolverName - имя бэкенда, для метрик и логов
func (o *Optimizer) SolverName() string {
	return o.solver.Name()
}

// Optimize решает задачу выбора на переданном каталоге.
// Недопустимость ограничений - нормальный результат (Feasible=false), не ошибка.
func (o *Optimizer) Optimize(ctx context.Context, stations []domain.Station, params domain.SelectionParams) (*domain.SelectionResult, error) {
	if len(stations) == 0 {
		return nil, errors.ErrInvalidInputData.WithMessage("Station catalog is empty")
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}
	if err := ValidateStations(stations); err != nil {
		return nil, err
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	start := time.Now()
	sol, err := o.solver.Solve(ctx, buildModel(stations, params))
	elapsed := time.Since(start)
	if err != nil {
		if stderrors.Is(err, solver.ErrUnsupportedModel) {
			return nil, errors.ErrInvalidInputData.WithMessage(err.Error())
		}
		return nil, errors.ErrSolverUnavailable.WithDetails(map[string]interface{}{
			"solver": o.solver.Name(),
			"reason": err.Error(),
		})
	}

	result := &domain.SelectionResult{
		SelectedIDs: []int64{},
		Solver:      o.solver.Name(),
		DurationMS:  float64(elapsed.Microseconds()) / 1000,
	}
	if sol.Status == solver.StatusInfeasible {
		return result, nil
	}

	result.Feasible = true
	result.Optimal = sol.Status == solver.StatusOptimal
	for _, i := range sol.Selected() {
		st := stations[i]
		result.SelectedIDs = append(result.SelectedIDs, st.ID)
		result.ObjectiveValue += st.Cost
		result.Coverage += st.CoverageWeight
	}
	sort.Slice(result.SelectedIDs, func(a, b int) bool {
		return result.SelectedIDs[a] < result.SelectedIDs[b]
	})
	result.SelectedCount = len(result.SelectedIDs)

	return result, nil
}

func validateParams(p domain.SelectionParams) error {
	if p.MinStations < 0 {
		return invalidParam("min_stations", "must be non-negative")
	}
	if !utils.NonNegative(p.MinCoverage) {
		return invalidParam("min_coverage", "must be a finite non-negative number")
	}
	return nil
}

func buildModel(stations []domain.Station, params domain.SelectionParams) *solver.Model {
	n := len(stations)
	m := &solver.Model{
		Name:      "charging_site_selection",
		Objective: make([]float64, n),
	}
	ones := make([]float64, n)
	coverage := make([]float64, n)
	for i, st := range stations {
		m.Objective[i] = st.Cost
		ones[i] = 1
		coverage[i] = st.CoverageWeight
	}
	m.Constraints = []solver.Constraint{
		{Name: constraintMinStations, Coeffs: ones, RHS: float64(params.MinStations)},
		{Name: constraintMinCoverage, Coeffs: coverage, RHS: params.MinCoverage},
	}
	return m
}
