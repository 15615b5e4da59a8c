package repository

import (
	"github.com/kdudkov/cortran/pkg/validate"
)

type PointsRepository interface {
	Start() error
	Stop()
	Points() []validate.ReferencePoint
	Source() string
}
