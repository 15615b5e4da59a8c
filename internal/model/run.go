package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/kdudkov/cortran/pkg/validate"
)

// ValidationRun is one stored validator pass over a set of reference points.
type ValidationRun struct {
	ID        uint   `gorm:"primarykey"`
	UID       string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	Started   time.Time
	Finished  time.Time
	Profile   string `gorm:"index"`
	Oracle    string `gorm:"index"`
	Height    float64
	Points    int
	Failed    int
	MeanDX    float64
	MeanDY    float64
	Max       float64
	MaxAt     string
	Residuals []*ResidualRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

type ResidualRecord struct {
	ID    uint `gorm:"primarykey"`
	RunID uint `gorm:"index"`
	N     int
	Point string
	Lat   float64
	Lon   float64
	X1    float64
	Y1    float64
	X2    float64
	Y2    float64
	DX    float64
	DY    float64
	Error string
}

func NewValidationRun(rep *validate.Report) *ValidationRun {
	run := &ValidationRun{
		UID:       uuid.NewString(),
		Started:   rep.Started,
		Finished:  rep.Finished,
		Profile:   rep.Profile,
		Oracle:    rep.Oracle,
		Height:    rep.Height,
		Points:    len(rep.Residuals),
		Failed:    rep.Failed,
		MeanDX:    rep.MeanDX,
		MeanDY:    rep.MeanDY,
		Max:       rep.Max,
		MaxAt:     rep.MaxAt,
		Residuals: make([]*ResidualRecord, len(rep.Residuals)),
	}

	for i, r := range rep.Residuals {
		run.Residuals[i] = &ResidualRecord{
			N:     r.N,
			Point: r.Point,
			Lat:   r.Lat,
			Lon:   r.Lon,
			X1:    r.X1,
			Y1:    r.Y1,
			X2:    r.X2,
			Y2:    r.Y2,
			DX:    r.DX,
			DY:    r.DY,
			Error: r.Error,
		}
	}

	return run
}

func (r *ResidualRecord) Residual() validate.Residual {
	return validate.Residual{
		N:     r.N,
		Point: r.Point,
		Lat:   r.Lat,
		Lon:   r.Lon,
		X1:    r.X1,
		Y1:    r.Y1,
		X2:    r.X2,
		Y2:    r.Y2,
		DX:    r.DX,
		DY:    r.DY,
		Error: r.Error,
	}
}
