package solver

import (
	"context"
	"math"
	"sort"
)

const checkEvery = 1024

// BranchBound - точный перебор с отсечениями по границе дробного покрытия.
// Начальное решение строится жадно, поэтому при остановке по лимиту узлов
// или по контексту всегда есть допустимый ответ со статусом Feasible.
type BranchBound struct {
	nodeLimit int
}

func NewBranchBound(nodeLimit int) *BranchBound {
	return &BranchBound{nodeLimit: nodeLimit}
}

func (b *BranchBound) Name() string {
	return BackendBranchBound
}

func (b *BranchBound) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	active, feasible := activeConstraints(m)
	if !feasible {
		return &Solution{Status: StatusInfeasible}, nil
	}

	n := m.NumVars()
	if len(active) == 0 {
		return &Solution{Status: StatusOptimal, Values: make([]bool, n)}, nil
	}

	s := newSearch(ctx, m, active, b.nodeLimit)
	incumbent := s.greedy()
	if incumbent == nil {
		// после проверки ёмкости сюда не попадаем
		return &Solution{Status: StatusInfeasible}, nil
	}
	s.best = incumbent
	s.bestCost = objectiveOf(m, incumbent)

	s.dfs(0, 0)

	status := StatusOptimal
	if s.stopped {
		status = StatusFeasible
	}
	return &Solution{
		Status:    status,
		Values:    s.best,
		Objective: s.bestCost,
		Nodes:     s.nodes,
	}, nil
}

type search struct {
	ctx       context.Context
	m         *Model
	cons      []Constraint
	nodeLimit int

	order    []int   // порядок ветвления
	pos      []int   // позиция переменной в order
	ratio    [][]int // для каждого ограничения: переменные с a_ij > 0 по возрастанию c/a
	residual []float64
	x        []bool

	best     []bool
	bestCost float64
	nodes    int
	stopped  bool
}

func newSearch(ctx context.Context, m *Model, cons []Constraint, nodeLimit int) *search {
	n := m.NumVars()
	s := &search{
		ctx:       ctx,
		m:         m,
		cons:      cons,
		nodeLimit: nodeLimit,
		order:     make([]int, n),
		pos:       make([]int, n),
		ratio:     make([][]int, len(cons)),
		residual:  make([]float64, len(cons)),
		x:         make([]bool, n),
	}

	// относительный вклад переменной во все ограничения
	density := make([]float64, n)
	for _, con := range cons {
		for i, a := range con.Coeffs {
			density[i] += math.Min(a, con.RHS) / con.RHS
		}
	}
	for i := range s.order {
		s.order[i] = i
	}
	sort.SliceStable(s.order, func(a, b int) bool {
		i, j := s.order[a], s.order[b]
		if m.Objective[i] != m.Objective[j] {
			return m.Objective[i] < m.Objective[j]
		}
		if density[i] != density[j] {
			return density[i] > density[j]
		}
		return i < j
	})
	for p, i := range s.order {
		s.pos[i] = p
	}

	for j, con := range cons {
		s.residual[j] = con.RHS
		var vars []int
		for i, a := range con.Coeffs {
			if a > 0 {
				vars = append(vars, i)
			}
		}
		sort.SliceStable(vars, func(a, b int) bool {
			ra := m.Objective[vars[a]] / con.Coeffs[vars[a]]
			rb := m.Objective[vars[b]] / con.Coeffs[vars[b]]
			if ra != rb {
				return ra < rb
			}
			return vars[a] < vars[b]
		})
		s.ratio[j] = vars
	}

	return s
}

// greedy набирает переменные по минимальной стоимости за единицу
// относительного покрытия остатка, затем убирает лишние начиная с дорогих.
func (s *search) greedy() []bool {
	n := s.m.NumVars()
	x := make([]bool, n)
	residual := make([]float64, len(s.cons))
	for j, con := range s.cons {
		residual[j] = con.RHS
	}

	for !covered(s.cons, residual) {
		pick, pickScore := -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if x[i] {
				continue
			}
			var gain float64
			for j, con := range s.cons {
				if residual[j] > tolerance(con.RHS) {
					gain += math.Min(con.Coeffs[i], residual[j]) / con.RHS
				}
			}
			if gain <= 0 {
				continue
			}
			score := s.m.Objective[i] / gain
			if score < pickScore {
				pick, pickScore = i, score
			}
		}
		if pick < 0 {
			return nil
		}
		x[pick] = true
		for j, con := range s.cons {
			residual[j] -= con.Coeffs[pick]
		}
	}

	chosen := make([]int, 0)
	for i, v := range x {
		if v {
			chosen = append(chosen, i)
		}
	}
	sort.SliceStable(chosen, func(a, b int) bool {
		return s.m.Objective[chosen[a]] > s.m.Objective[chosen[b]]
	})
	for _, i := range chosen {
		redundant := true
		for j, con := range s.cons {
			if residual[j]+con.Coeffs[i] > tolerance(con.RHS) {
				redundant = false
				break
			}
		}
		if redundant {
			x[i] = false
			for j, con := range s.cons {
				residual[j] += con.Coeffs[i]
			}
		}
	}

	return x
}

func covered(cons []Constraint, residual []float64) bool {
	for j, con := range cons {
		if residual[j] > tolerance(con.RHS) {
			return false
		}
	}
	return true
}

func (s *search) dfs(depth int, cost float64) {
	s.nodes++
	if s.nodes%checkEvery == 0 {
		if s.ctx.Err() != nil || (s.nodeLimit > 0 && s.nodes >= s.nodeLimit) {
			s.stopped = true
		}
	}
	if s.stopped {
		return
	}

	if covered(s.cons, s.residual) {
		// стоимости неотрицательны, добавлять переменные дальше бессмысленно
		if cost < s.bestCost-tolerance(s.bestCost) {
			s.best = append(s.best[:0:0], s.x...)
			s.bestCost = cost
		}
		return
	}
	if depth == len(s.order) {
		return
	}
	if cost+s.lowerBound(depth) >= s.bestCost-tolerance(s.bestCost) {
		return
	}

	i := s.order[depth]
	if s.contributes(i) {
		s.x[i] = true
		for j, con := range s.cons {
			s.residual[j] -= con.Coeffs[i]
		}
		s.dfs(depth+1, cost+s.m.Objective[i])
		for j, con := range s.cons {
			s.residual[j] += con.Coeffs[i]
		}
		s.x[i] = false
	}
	s.dfs(depth+1, cost)
}

func (s *search) contributes(i int) bool {
	for j, con := range s.cons {
		if s.residual[j] > tolerance(con.RHS) && con.Coeffs[i] > 0 {
			return true
		}
	}
	return false
}

// lowerBound - максимум по ограничениям стоимости дробного покрытия остатка
// свободными переменными (позиции >= depth). +Inf, если остаток не покрыть.
func (s *search) lowerBound(depth int) float64 {
	var bound float64
	for j, con := range s.cons {
		need := s.residual[j]
		if need <= tolerance(con.RHS) {
			continue
		}
		var cost float64
		for _, i := range s.ratio[j] {
			if s.pos[i] < depth {
				continue
			}
			a := con.Coeffs[i]
			if a >= need {
				cost += s.m.Objective[i] * need / a
				need = 0
				break
			}
			cost += s.m.Objective[i]
			need -= a
		}
		if need > tolerance(con.RHS) {
			return math.Inf(1)
		}
		if cost > bound {
			bound = cost
		}
	}
	return bound
}
