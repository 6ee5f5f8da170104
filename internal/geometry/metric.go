// Package geometry - операции над точками, буферами и полигонами в координатах
// lon/lat (orb.Point{lon, lat}), общие для фильтра по округам и анализа близости.
package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

const (
	MetricAngular  = "angular"
	MetricGeodesic = "geodesic"
)

// Metric задаёт круговой буфер заданного радиуса в метрах вокруг точки
type Metric interface {
	Name() string
	// Bound - прямоугольник, гарантированно покрывающий буфер
	Bound(center orb.Point, radiusM float64) orb.Bound
	// Within - лежит ли p в замкнутом буфере (граница включительно)
	Within(center, p orb.Point, radiusM float64) bool
}

// Angular - буфер фиксированного углового радиуса: radiusM * DegreesPerMeter градусов,
// одинаковый по широте и долготе (круг в пространстве lon/lat).
// Приближение: при DegreesPerMeter=1e-5 (0.005° на 500 м) оно верно по широте
// и завышает расстояние по долготе примерно в 1.6 раза на широте Берлина (~52° с.ш.).
// Для других широт нужно подбирать коэффициент или использовать Geodesic.
type Angular struct {
	DegreesPerMeter float64
}

func (a Angular) Name() string { return MetricAngular }

// RadiusDegrees - радиус буфера в градусах
func (a Angular) RadiusDegrees(radiusM float64) float64 {
	return radiusM * a.DegreesPerMeter
}

func (a Angular) Bound(center orb.Point, radiusM float64) orb.Bound {
	return center.Bound().Pad(a.RadiusDegrees(radiusM))
}

func (a Angular) Within(center, p orb.Point, radiusM float64) bool {
	r := a.RadiusDegrees(radiusM)
	return planar.DistanceSquared(center, p) <= r*r
}

// Geodesic - буфер по расстоянию на сфере (haversine), в метрах
type Geodesic struct{}

func (Geodesic) Name() string { return MetricGeodesic }

func (Geodesic) Bound(center orb.Point, radiusM float64) orb.Bound {
	dLat := radiusM / orb.EarthRadius * 180 / math.Pi
	// долготу расширяем по самой полярной широте буфера, чтобы bound не был уже круга
	maxLat := math.Min(math.Abs(center.Lat())+dLat, 89.999)
	dLon := dLat / math.Cos(maxLat*math.Pi/180)
	if dLon > 180 {
		dLon = 180
	}
	return orb.Bound{
		Min: orb.Point{center.Lon() - dLon, center.Lat() - dLat},
		Max: orb.Point{center.Lon() + dLon, center.Lat() + dLat},
	}
}

func (Geodesic) Within(center, p orb.Point, radiusM float64) bool {
	return geo.DistanceHaversine(center, p) <= radiusM
}

// NewMetric возвращает метрику по имени из конфигурации
func NewMetric(name string, degreesPerMeter float64) (Metric, error) {
	switch name {
	case "", MetricAngular:
		if degreesPerMeter <= 0 || math.IsNaN(degreesPerMeter) || math.IsInf(degreesPerMeter, 0) {
			return nil, fmt.Errorf("degrees per meter must be positive, got %v", degreesPerMeter)
		}
		return Angular{DegreesPerMeter: degreesPerMeter}, nil
	case MetricGeodesic:
		return Geodesic{}, nil
	default:
		return nil, fmt.Errorf("unknown proximity metric %q", name)
	}
}
