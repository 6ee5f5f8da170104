package postgresosm

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/domain/repository"
)

type trafficNodeRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTrafficNodeRepository создает источник узлов дорожной сети из OSM базы
func NewTrafficNodeRepository(db *DB) repository.TrafficNodeRepository {
	return &trafficNodeRepository{
		db:     db,
		logger: db.logger,
	}
}

type nodeRow struct {
	Lat float64 `db:"lat"`
	Lon float64 `db:"lon"`
}

// GetRoadJunctions возвращает уникальные начальные и конечные точки линий
// planet_osm_line с highway из highwayTypes, попадающие в bbox.
// Для сети из osm2pgsql это перекрёстки и концы участков дорог.
func (r *trafficNodeRepository) GetRoadJunctions(
	ctx context.Context,
	bbox domain.BoundingBox,
	highwayTypes []string,
) ([]domain.TrafficNode, error) {
	if err := validateBBox(bbox); err != nil {
		return nil, err
	}
	types := normalizeHighwayTypes(highwayTypes)
	if len(types) == 0 {
		return []domain.TrafficNode{}, nil
	}

	query := fmt.Sprintf(`
		WITH env AS (
			SELECT ST_Transform(ST_MakeEnvelope($1, $2, $3, $4, %d), %d) AS geom
		),
		roads AS (
			SELECT l.way
			FROM %s l, env
			WHERE l.highway = ANY($5)
			  AND l.way && env.geom
		),
		endpoints AS (
			SELECT ST_StartPoint(way) AS pt FROM roads
			UNION
			SELECT ST_EndPoint(way) AS pt FROM roads
		)
		SELECT DISTINCT
			ST_Y(ST_Transform(e.pt, %d)) AS lat,
			ST_X(ST_Transform(e.pt, %d)) AS lon
		FROM endpoints e, env
		WHERE e.pt IS NOT NULL
		  AND ST_Intersects(e.pt, env.geom)
		ORDER BY lat, lon
		LIMIT %d
	`, SRID4326, SRID3857, planetLineTable, SRID4326, SRID4326, LimitTrafficNodes)

	var rows []nodeRow
	err := r.db.SelectContext(ctx, &rows, query,
		bbox.MinLon, bbox.MinLat, bbox.MaxLon, bbox.MaxLat, pq.Array(types))
	if err != nil {
		r.logger.Error("failed to load road junctions",
			zap.Strings("highway_types", types),
			zap.Error(err))
		return nil, fmt.Errorf("select road junctions: %w", err)
	}

	nodes := make([]domain.TrafficNode, 0, len(rows))
	for _, row := range rows {
		nodes = append(nodes, domain.TrafficNode{
			ID:  nodeID(row.Lat, row.Lon),
			Lat: row.Lat,
			Lon: row.Lon,
		})
	}

	if len(nodes) == LimitTrafficNodes {
		r.logger.Warn("road junction limit reached, bbox is too large",
			zap.Int("limit", LimitTrafficNodes))
	}
	r.logger.Debug("road junctions loaded", zap.Int("count", len(nodes)))

	return nodes, nil
}
