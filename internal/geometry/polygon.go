package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/planar"
)

// boundaryTolerance - допуск попадания на границу, градусы (~0.1 мкм)
const boundaryTolerance = 1e-12

// ParseWKT разбирает POLYGON / MULTIPOLYGON / GEOMETRYCOLLECTION в MultiPolygon
func ParseWKT(s string) (orb.MultiPolygon, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("parse wkt: %w", err)
	}
	return toMultiPolygon(g)
}

func toMultiPolygon(g orb.Geometry) (orb.MultiPolygon, error) {
	switch v := g.(type) {
	case orb.Polygon:
		if len(v) == 0 {
			return orb.MultiPolygon{}, nil
		}
		return orb.MultiPolygon{v}, nil
	case orb.MultiPolygon:
		return v, nil
	case orb.Collection:
		var mp orb.MultiPolygon
		for _, item := range v {
			part, err := toMultiPolygon(item)
			if err != nil {
				return nil, err
			}
			mp = append(mp, part...)
		}
		return mp, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %s", g.GeoJSONType())
	}
}

// IsDegenerate - у полигона нет внешнего кольца с тремя различными вершинами и ненулевой площадью
func IsDegenerate(p orb.Polygon) bool {
	if len(p) == 0 {
		return true
	}
	outer := p[0]
	distinct := make(map[orb.Point]struct{}, len(outer))
	for _, pt := range outer {
		distinct[pt] = struct{}{}
	}
	if len(distinct) < 3 {
		return true
	}
	return planar.Area(outer) == 0
}

// IsEmptyBoundary - в мультиполигоне нет ни одного невырожденного полигона
func IsEmptyBoundary(mp orb.MultiPolygon) bool {
	for _, p := range mp {
		if !IsDegenerate(p) {
			return false
		}
	}
	return true
}

// PolygonContains - точка внутри полигона или на его границе (включая границы дыр)
func PolygonContains(p orb.Polygon, pt orb.Point) bool {
	if IsDegenerate(p) {
		return false
	}
	if onBoundary(p, pt) {
		return true
	}
	return planar.PolygonContains(p, pt)
}

// MultiPolygonContains - точка принадлежит хотя бы одному полигону (граница включительно)
func MultiPolygonContains(mp orb.MultiPolygon, pt orb.Point) bool {
	for _, p := range mp {
		if PolygonContains(p, pt) {
			return true
		}
	}
	return false
}

func onBoundary(p orb.Polygon, pt orb.Point) bool {
	tol := boundaryTolerance * boundaryTolerance
	for _, ring := range p {
		n := len(ring)
		if n == 0 {
			continue
		}
		if !ring.Bound().Pad(boundaryTolerance).Contains(pt) {
			continue
		}
		for i := 0; i < n; i++ {
			// замыкающий отрезок учитываем даже для незамкнутых колец
			a, b := ring[i], ring[(i+1)%n]
			if planar.DistanceFromSegmentSquared(a, b, pt) <= tol {
				return true
			}
		}
	}
	return false
}
