package postgresosm

const (
	SRID4326 = 4326
	// SRID3857 - проекция geometry в таблицах osm2pgsql по умолчанию
	SRID3857 = 3857

	// LimitTrafficNodes - верхняя граница выборки узлов, защита от bbox на всю планету
	LimitTrafficNodes = 500000
)

const (
	planetLineTable = "planet_osm_line"
)
