package postgresosm

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"

	"github.com/ev-siting/internal/domain"
)

// nodeID - стабильный идентификатор узла по координатам (7 знаков ~ 1 см)
func nodeID(lat, lon float64) int64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%.7f:%.7f", lat, lon)
	return int64(h.Sum64() & math.MaxInt64)
}

// normalizeHighwayTypes приводит типы дорог к нижнему регистру, убирает пустые и дубликаты
func normalizeHighwayTypes(types []string) []string {
	seen := make(map[string]struct{}, len(types))
	result := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}

func validateBBox(b domain.BoundingBox) error {
	if b.MinLat >= b.MaxLat || b.MinLon >= b.MaxLon {
		return fmt.Errorf("invalid bbox: min must be less than max")
	}
	if b.MinLat < -90 || b.MaxLat > 90 || b.MinLon < -180 || b.MaxLon > 180 {
		return fmt.Errorf("invalid bbox: out of range")
	}
	return nil
}
