package repository

import (
	"context"

	"github.com/ev-siting/internal/domain"
)

// TrafficNodeRepository - источник узлов дорожной сети
type TrafficNodeRepository interface {
	// GetRoadJunctions возвращает начальные и конечные точки автомобильных дорог
	// заданных типов внутри bbox
	GetRoadJunctions(ctx context.Context, bbox domain.BoundingBox, highwayTypes []string) ([]domain.TrafficNode, error)
}
