package solver

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ev-siting/internal/config"
)

func optimizerConfig(backend string) config.OptimizerConfig {
	return config.OptimizerConfig{Solver: backend, GLPSOLPath: "glpsol", NodeLimit: 1000}
}

func TestWriteLP(t *testing.T) {
	m := &Model{
		Name:      "siting",
		Objective: []float64{10000, 10000, 0},
		Constraints: []Constraint{
			{Name: "min_stations", Coeffs: []float64{1, 1, 1}, RHS: 2},
			{Name: "min_coverage", Coeffs: []float64{0.5, 0, 2}, RHS: 1.5},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLP(&buf, m, m.Constraints))

	want := strings.Join([]string{
		`\ siting`,
		"Minimize",
		" obj: 10000 x1 + 10000 x2 + 0 x3",
		"Subject To",
		" c1: 1 x1 + 1 x2 + 1 x3 >= 2",
		" c2: 0.5 x1 + 2 x3 >= 1.5",
		"Binary",
		"  x1 x2 x3",
		"End",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteLP_WrapsLongLines(t *testing.T) {
	m := uniformModel(20, 1, 1, 5, 5)

	var buf bytes.Buffer
	require.NoError(t, WriteLP(&buf, m, m.Constraints))

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len(line), 255)
	}
	assert.Contains(t, buf.String(), "x20")
}

func TestReadSolution(t *testing.T) {
	t.Run("optimal", func(t *testing.T) {
		raw := strings.Join([]string{
			"c Problem:    siting",
			"c Rows:       2",
			"c Columns:    3",
			"c",
			"s mip 2 3 o 20000",
			"i 1 2",
			"i 2 1",
			"j 1 1",
			"j 2 1",
			"j 3 0",
			"e o f",
		}, "\n")

		sol, err := ReadSolution(strings.NewReader(raw), 3)
		require.NoError(t, err)
		assert.Equal(t, StatusOptimal, sol.Status)
		assert.Equal(t, []int{0, 1}, sol.Selected())
		assert.Equal(t, 20000.0, sol.Objective)
	})

	t.Run("no feasible solution", func(t *testing.T) {
		sol, err := ReadSolution(strings.NewReader("s mip 2 3 n 0\ne o f\n"), 3)
		require.NoError(t, err)
		assert.Equal(t, StatusInfeasible, sol.Status)
		assert.Empty(t, sol.Selected())
	})

	t.Run("undefined", func(t *testing.T) {
		_, err := ReadSolution(strings.NewReader("s mip 2 3 u 0\n"), 3)
		assert.ErrorIs(t, err, ErrNoSolution)
	})

	t.Run("column mismatch", func(t *testing.T) {
		_, err := ReadSolution(strings.NewReader("s mip 2 4 o 0\n"), 3)
		assert.Error(t, err)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := ReadSolution(strings.NewReader("j 1 1\n"), 3)
		assert.Error(t, err)
	})
}

func TestGLPK_MissingBinary(t *testing.T) {
	g := NewGLPK("glpsol-not-installed-here")

	_, err := g.Solve(context.Background(), uniformModel(5, 1, 1, 2, 2))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGLPK_InfeasibleWithoutBinary(t *testing.T) {
	g := NewGLPK("glpsol-not-installed-here")

	sol, err := g.Solve(context.Background(), uniformModel(5, 1, 1, 10, 2))
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, sol.Status)
}

func TestGLPK_Uniform(t *testing.T) {
	if _, err := exec.LookPath("glpsol"); err != nil {
		t.Skip("glpsol not installed")
	}

	sol, err := NewGLPK("glpsol").Solve(context.Background(), uniformModel(300, 10000, 1, 200, 150))
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, sol.Status)
	assert.Len(t, sol.Selected(), 200)
	assert.InDelta(t, 2_000_000, sol.Objective, 1e-6)
}
