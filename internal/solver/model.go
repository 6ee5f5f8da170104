// Package solver - минимизация линейной стоимости по бинарным переменным
// при ограничениях вида sum(a_ij * x_i) >= b_j с неотрицательными a_ij.
// Этого класса достаточно для задачи выбора площадок; реализации
// подключаются через интерфейс Solver.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnavailable - бэкенд не может быть запущен (нет бинарника, упал процесс)
	ErrUnavailable = errors.New("solver unavailable")
	// ErrUnsupportedModel - модель выходит за поддерживаемый класс
	ErrUnsupportedModel = errors.New("unsupported model")
	// ErrNoSolution - лимит исчерпан до нахождения допустимого решения
	ErrNoSolution = errors.New("no solution found within limits")
)

type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusFeasible   Status = "feasible"
	StatusInfeasible Status = "infeasible"
)

// Constraint - ограничение sum(Coeffs[i] * x_i) >= RHS
type Constraint struct {
	Name   string
	Coeffs []float64
	RHS    float64
}

// Model - задача min sum(Objective[i] * x_i), x_i in {0, 1}
type Model struct {
	Name        string
	Objective   []float64
	Constraints []Constraint
}

func (m *Model) NumVars() int {
	return len(m.Objective)
}

// Validate проверяет, что модель принадлежит поддерживаемому классу
func (m *Model) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrUnsupportedModel)
	}
	n := m.NumVars()
	for i, c := range m.Objective {
		if !nonNegative(c) {
			return fmt.Errorf("%w: objective coefficient %d is %v", ErrUnsupportedModel, i, c)
		}
	}
	for _, con := range m.Constraints {
		if len(con.Coeffs) != n {
			return fmt.Errorf("%w: constraint %q has %d coefficients, want %d",
				ErrUnsupportedModel, con.Name, len(con.Coeffs), n)
		}
		if math.IsNaN(con.RHS) || math.IsInf(con.RHS, 0) {
			return fmt.Errorf("%w: constraint %q rhs is %v", ErrUnsupportedModel, con.Name, con.RHS)
		}
		for i, a := range con.Coeffs {
			if !nonNegative(a) {
				return fmt.Errorf("%w: constraint %q coefficient %d is %v", ErrUnsupportedModel, con.Name, i, a)
			}
		}
	}
	return nil
}

// Solution - результат решения. Values заполнен для Optimal и Feasible.
type Solution struct {
	Status    Status
	Values    []bool
	Objective float64
	Nodes     int
}

// Selected - индексы переменных со значением 1, по возрастанию
func (s *Solution) Selected() []int {
	var idx []int
	for i, v := range s.Values {
		if v {
			idx = append(idx, i)
		}
	}
	return idx
}

type Solver interface {
	Name() string
	Solve(ctx context.Context, m *Model) (*Solution, error)
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func tolerance(v float64) float64 {
	return 1e-9 * math.Max(1, math.Abs(v))
}

// activeConstraints отбрасывает тривиально выполненные ограничения (RHS <= 0)
// и проверяет, что каждое оставшееся выполнимо при выборе всех переменных.
// Если хотя бы одно невыполнимо, задача недопустима без перебора.
func activeConstraints(m *Model) (active []Constraint, feasible bool) {
	for _, con := range m.Constraints {
		if con.RHS <= 0 {
			continue
		}
		var capacity float64
		for _, a := range con.Coeffs {
			capacity += a
		}
		if capacity < con.RHS-tolerance(con.RHS) {
			return nil, false
		}
		active = append(active, con)
	}
	return active, true
}

// objectiveOf - значение целевой функции на наборе x
func objectiveOf(m *Model, x []bool) float64 {
	var total float64
	for i, v := range x {
		if v {
			total += m.Objective[i]
		}
	}
	return total
}

// satisfies - x удовлетворяет всем ограничениям модели
func satisfies(m *Model, x []bool) bool {
	for _, con := range m.Constraints {
		var lhs float64
		for i, v := range x {
			if v {
				lhs += con.Coeffs[i]
			}
		}
		if lhs < con.RHS-tolerance(con.RHS) {
			return false
		}
	}
	return true
}
