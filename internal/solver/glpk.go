package solver

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const termsPerLine = 8

// GLPK - решение через внешний glpsol: модель пишется в CPLEX LP,
// решение читается из файла в формате GLPK (-w).
type GLPK struct {
	path string
}

func NewGLPK(path string) *GLPK {
	if path == "" {
		path = "glpsol"
	}
	return &GLPK{path: path}
}

func (g *GLPK) Name() string {
	return BackendGLPK
}

func (g *GLPK) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	active, feasible := activeConstraints(m)
	if !feasible {
		return &Solution{Status: StatusInfeasible}, nil
	}
	if len(active) == 0 {
		return &Solution{Status: StatusOptimal, Values: make([]bool, m.NumVars())}, nil
	}

	bin, err := exec.LookPath(g.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found: %v", ErrUnavailable, g.path, err)
	}

	dir, err := os.MkdirTemp("", "siting-glpk-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	lpPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "model.sol")

	var buf bytes.Buffer
	if err := WriteLP(&buf, m, active); err != nil {
		return nil, err
	}
	if err := os.WriteFile(lpPath, buf.Bytes(), 0o600); err != nil {
		return nil, fmt.Errorf("write lp: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, "--lp", lpPath, "-w", solPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: glpsol: %v: %s", ErrUnavailable, err, lastLine(out))
	}

	f, err := os.Open(solPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read solution: %v", ErrUnavailable, err)
	}
	defer f.Close()

	sol, err := ReadSolution(f, m.NumVars())
	if err != nil {
		return nil, err
	}
	if sol.Status != StatusInfeasible {
		// пересчитываем по исходным коэффициентам, в файле objective округлён
		sol.Objective = objectiveOf(m, sol.Values)
	}
	return sol, nil
}

// WriteLP пишет модель в формате CPLEX LP. Переменные называются x1..xn
// и впервые появляются в целевой функции по порядку, поэтому номера
// столбцов в решении совпадают с индексами модели.
func WriteLP(w io.Writer, m *Model, cons []Constraint) error {
	bw := bufio.NewWriter(w)

	name := m.Name
	if name == "" {
		name = "model"
	}
	fmt.Fprintf(bw, "\\ %s\n", name)
	fmt.Fprintln(bw, "Minimize")
	bw.WriteString(" obj:")
	writeTerms(bw, m.Objective, true)
	bw.WriteString("\n")

	fmt.Fprintln(bw, "Subject To")
	for j, con := range cons {
		fmt.Fprintf(bw, " c%d:", j+1)
		writeTerms(bw, con.Coeffs, false)
		fmt.Fprintf(bw, " >= %s\n", formatNumber(con.RHS))
	}

	fmt.Fprintln(bw, "Binary")
	for i := range m.Objective {
		if i%termsPerLine == 0 {
			if i > 0 {
				bw.WriteString("\n")
			}
			bw.WriteString(" ")
		}
		fmt.Fprintf(bw, " x%d", i+1)
	}
	if len(m.Objective) > 0 {
		bw.WriteString("\n")
	}
	fmt.Fprintln(bw, "End")

	return bw.Flush()
}

func writeTerms(bw *bufio.Writer, coeffs []float64, keepZero bool) {
	written := 0
	for i, a := range coeffs {
		if a == 0 && !keepZero {
			continue
		}
		if written > 0 && written%termsPerLine == 0 {
			bw.WriteString("\n  ")
		}
		if written > 0 {
			bw.WriteString(" +")
		}
		fmt.Fprintf(bw, " %s x%d", formatNumber(a), i+1)
		written++
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReadSolution разбирает решение MIP в формате glp_write_sol:
// строка "s mip ROWS COLS STATUS OBJ" и строки столбцов "j COL VALUE".
func ReadSolution(r io.Reader, numVars int) (*Solution, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		sol       *Solution
		seenState bool
	)
	x := make([]bool, numVars)

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "s":
			if len(fields) < 6 || fields[1] != "mip" {
				return nil, fmt.Errorf("unexpected solution header %q", sc.Text())
			}
			cols, err := strconv.Atoi(fields[3])
			if err != nil || cols != numVars {
				return nil, fmt.Errorf("solution has %s columns, want %d", fields[3], numVars)
			}
			obj, err := strconv.ParseFloat(fields[5], 64)
			if err != nil {
				return nil, fmt.Errorf("parse objective %q: %w", fields[5], err)
			}
			sol = &Solution{Objective: obj}
			switch fields[4] {
			case "o":
				sol.Status = StatusOptimal
			case "f":
				sol.Status = StatusFeasible
			case "n":
				sol.Status = StatusInfeasible
			default:
				return nil, ErrNoSolution
			}
			seenState = true
		case "j":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed column line %q", sc.Text())
			}
			col, err := strconv.Atoi(fields[1])
			if err != nil || col < 1 || col > numVars {
				return nil, fmt.Errorf("column index %q out of range", fields[1])
			}
			val, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("parse column %d value: %w", col, err)
			}
			x[col-1] = val > 0.5
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read solution: %w", err)
	}
	if !seenState {
		return nil, fmt.Errorf("solution header not found")
	}

	if sol.Status == StatusInfeasible {
		sol.Objective = 0
		return sol, nil
	}
	sol.Values = x
	return sol, nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return lines[len(lines)-1]
}
