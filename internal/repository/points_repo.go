package repository

import (
	"github.com/kdudkov/cortran/pkg/validate"
)

var _ PointsRepository = &PointsMemoryRepository{}

// PointsMemoryRepository serves a fixed list, the built-in one by default.
type PointsMemoryRepository struct {
	points []validate.ReferencePoint
}

func NewPointsMemoryRepo(points []validate.ReferencePoint) *PointsMemoryRepository {
	if points == nil {
		points = validate.DefaultPoints()
	}

	return &PointsMemoryRepository{points: points}
}

func (r *PointsMemoryRepository) Start() error {
	return nil
}

func (r *PointsMemoryRepository) Stop() {}

func (r *PointsMemoryRepository) Points() []validate.ReferencePoint {
	res := make([]validate.ReferencePoint, len(r.points))
	copy(res, r.points)

	return res
}

func (r *PointsMemoryRepository) Source() string {
	return "builtin"
}
