package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

// BufferUnion - объединение буферов одинакового радиуса вокруг набора центров.
// Точка пересекает объединение, если лежит хотя бы в одном буфере;
// поиск кандидатов идёт через quadtree по центрам.
type BufferUnion struct {
	metric  Metric
	radiusM float64
	tree    *quadtree.Quadtree
	size    int
}

// NewBufferUnion строит объединение буферов. Дубликаты центров схлопываются.
func NewBufferUnion(centers []orb.Point, radiusM float64, metric Metric) *BufferUnion {
	u := &BufferUnion{metric: metric, radiusM: radiusM}
	if len(centers) == 0 {
		return u
	}

	unique := make([]orb.Point, 0, len(centers))
	seen := make(map[orb.Point]struct{}, len(centers))
	for _, c := range centers {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	bound := orb.MultiPoint(unique).Bound().Pad(1e-9)
	u.tree = quadtree.New(bound)
	for _, c := range unique {
		// все точки внутри bound, ошибка невозможна
		_ = u.tree.Add(c)
	}
	u.size = len(unique)

	return u
}

// Size - количество уникальных центров
func (u *BufferUnion) Size() int {
	return u.size
}

// Intersects - лежит ли точка в объединении буферов (граница включительно)
func (u *BufferUnion) Intersects(p orb.Point) bool {
	if u.tree == nil {
		return false
	}
	candidates := u.tree.InBound(nil, u.metric.Bound(p, u.radiusM))
	for _, c := range candidates {
		if u.metric.Within(c.Point(), p, u.radiusM) {
			return true
		}
	}
	return false
}
