package solver

import (
	"fmt"

	"github.com/ev-siting/internal/config"
)

const (
	BackendBranchBound = "branchbound"
	BackendGLPK        = "glpk"
)

// New создаёт бэкенд по конфигурации оптимизатора
func New(cfg config.OptimizerConfig) (Solver, error) {
	switch cfg.Solver {
	case "", BackendBranchBound:
		return NewBranchBound(cfg.NodeLimit), nil
	case BackendGLPK:
		return NewGLPK(cfg.GLPSOLPath), nil
	default:
		return nil, fmt.Errorf("%w: unknown solver backend %q", ErrUnavailable, cfg.Solver)
	}
}
