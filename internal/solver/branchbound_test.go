package solver

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformModel(n int, cost, weight, minStations, minCoverage float64) *Model {
	m := &Model{Name: "uniform", Objective: make([]float64, n)}
	ones := make([]float64, n)
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		m.Objective[i] = cost
		ones[i] = 1
		weights[i] = weight
	}
	m.Constraints = []Constraint{
		{Name: "min_stations", Coeffs: ones, RHS: minStations},
		{Name: "min_coverage", Coeffs: weights, RHS: minCoverage},
	}
	return m
}

func TestBranchBound_Uniform(t *testing.T) {
	s := NewBranchBound(0)

	sol, err := s.Solve(context.Background(), uniformModel(300, 10000, 1, 200, 150))
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, sol.Status)
	assert.Len(t, sol.Selected(), 200)
	assert.InDelta(t, 2_000_000, sol.Objective, 1e-6)
}

func TestBranchBound_Infeasible(t *testing.T) {
	s := NewBranchBound(0)

	sol, err := s.Solve(context.Background(), uniformModel(50, 10000, 1, 200, 150))
	require.NoError(t, err)

	assert.Equal(t, StatusInfeasible, sol.Status)
	assert.Empty(t, sol.Selected())
}

func TestBranchBound_CoverageBinding(t *testing.T) {
	// 5 дешёвых станций с малым весом и 3 дорогих с большим
	m := &Model{
		Objective: []float64{1, 1, 1, 1, 1, 5, 5, 5},
		Constraints: []Constraint{
			{Name: "min_stations", Coeffs: []float64{1, 1, 1, 1, 1, 1, 1, 1}, RHS: 3},
			{Name: "min_coverage", Coeffs: []float64{1, 1, 1, 1, 1, 10, 10, 10}, RHS: 20},
		},
	}

	sol, err := NewBranchBound(0).Solve(context.Background(), m)
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, sol.Status)
	// две дорогих дают покрытие 20, плюс одна дешёвая для количества
	assert.InDelta(t, 11, sol.Objective, 1e-9)
	assert.True(t, satisfies(m, sol.Values))
}

func TestBranchBound_NoActiveConstraints(t *testing.T) {
	m := uniformModel(10, 3, 1, 0, 0)

	sol, err := NewBranchBound(0).Solve(context.Background(), m)
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, sol.Status)
	assert.Empty(t, sol.Selected())
	assert.Zero(t, sol.Objective)
}

func TestBranchBound_EmptyModel(t *testing.T) {
	sol, err := NewBranchBound(0).Solve(context.Background(), uniformModel(0, 1, 1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, sol.Status)
}

func TestBranchBound_Unsupported(t *testing.T) {
	s := NewBranchBound(0)

	m := uniformModel(3, 1, 1, 1, 1)
	m.Objective[1] = -1
	_, err := s.Solve(context.Background(), m)
	assert.ErrorIs(t, err, ErrUnsupportedModel)

	m = uniformModel(3, 1, 1, 1, 1)
	m.Constraints[1].Coeffs[0] = math.NaN()
	_, err = s.Solve(context.Background(), m)
	assert.ErrorIs(t, err, ErrUnsupportedModel)

	m = uniformModel(3, 1, 1, 1, 1)
	m.Constraints[0].Coeffs = []float64{1}
	_, err = s.Solve(context.Background(), m)
	assert.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestBranchBound_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBranchBound(0).Solve(ctx, uniformModel(10, 1, 1, 2, 2))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBranchBound_NodeLimitReturnsIncumbent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	m := randomModel(rng, 60)
	var totalWeight float64
	for _, w := range m.Constraints[1].Coeffs {
		totalWeight += w
	}
	m.Constraints[0].RHS = 20
	m.Constraints[1].RHS = math.Floor(totalWeight / 2)

	sol, err := NewBranchBound(checkEvery).Solve(context.Background(), m)
	require.NoError(t, err)

	require.Contains(t, []Status{StatusOptimal, StatusFeasible}, sol.Status)
	assert.True(t, satisfies(m, sol.Values))
	assert.InDelta(t, objectiveOf(m, sol.Values), sol.Objective, 1e-9)
}

func TestBranchBound_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewBranchBound(0)

	for iter := 0; iter < 60; iter++ {
		n := 1 + rng.Intn(12)
		m := randomModel(rng, n)

		want, wantFeasible := bruteForce(m)
		sol, err := s.Solve(context.Background(), m)
		require.NoError(t, err)

		if !wantFeasible {
			assert.Equal(t, StatusInfeasible, sol.Status, "iteration %d", iter)
			continue
		}
		require.Equal(t, StatusOptimal, sol.Status, "iteration %d", iter)
		assert.True(t, satisfies(m, sol.Values), "iteration %d", iter)
		assert.InDelta(t, want, sol.Objective, 1e-6, "iteration %d", iter)
	}
}

func TestBranchBound_PermutationInvariantObjective(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := randomModel(rng, 10)

	base, err := NewBranchBound(0).Solve(context.Background(), m)
	require.NoError(t, err)

	perm := rng.Perm(10)
	shuffled := &Model{Objective: make([]float64, 10)}
	for _, con := range m.Constraints {
		shuffled.Constraints = append(shuffled.Constraints, Constraint{Name: con.Name, Coeffs: make([]float64, 10), RHS: con.RHS})
	}
	for to, from := range perm {
		shuffled.Objective[to] = m.Objective[from]
		for j := range m.Constraints {
			shuffled.Constraints[j].Coeffs[to] = m.Constraints[j].Coeffs[from]
		}
	}

	other, err := NewBranchBound(0).Solve(context.Background(), shuffled)
	require.NoError(t, err)

	assert.Equal(t, base.Status, other.Status)
	assert.InDelta(t, base.Objective, other.Objective, 1e-6)
}

func TestNew(t *testing.T) {
	cases := map[string]string{
		"":            BackendBranchBound,
		"branchbound": BackendBranchBound,
		"glpk":        BackendGLPK,
	}
	for backend, want := range cases {
		s, err := New(optimizerConfig(backend))
		require.NoError(t, err)
		assert.Equal(t, want, s.Name())
	}

	_, err := New(optimizerConfig("cplex"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func randomModel(rng *rand.Rand, n int) *Model {
	m := &Model{Objective: make([]float64, n)}
	ones := make([]float64, n)
	weights := make([]float64, n)
	var totalWeight float64
	for i := 0; i < n; i++ {
		m.Objective[i] = float64(1 + rng.Intn(20))
		ones[i] = 1
		weights[i] = float64(rng.Intn(6))
		totalWeight += weights[i]
	}
	m.Constraints = []Constraint{
		{Name: "min_stations", Coeffs: ones, RHS: float64(rng.Intn(n + 2))},
		{Name: "min_coverage", Coeffs: weights, RHS: math.Floor(rng.Float64() * (totalWeight + 3))},
	}
	return m
}

func bruteForce(m *Model) (float64, bool) {
	n := m.NumVars()
	best, found := math.Inf(1), false
	x := make([]bool, n)
	for mask := 0; mask < 1<<n; mask++ {
		for i := 0; i < n; i++ {
			x[i] = mask&(1<<i) != 0
		}
		if !satisfies(m, x) {
			continue
		}
		if cost := objectiveOf(m, x); cost < best {
			best, found = cost, true
		}
	}
	return best, found
}
