package domain

import "github.com/paulmach/orb"

// District - административный округ (Bezirk) с границей.
// Boundary в координатах lon/lat (orb.Point{lon, lat}).
type District struct {
	Name     string           `json:"name"`
	Boundary orb.MultiPolygon `json:"-"`
}

// DistrictRecord - строка таблицы districts: граница хранится как WKT
type DistrictRecord struct {
	Name string `db:"name"`
	WKT  string `db:"wkt"`
}
