package model

import (
	"time"

	"github.com/kdudkov/cortran/pkg/validate"
)

type ValidationRunDTO struct {
	UID       string              `json:"uid"`
	Started   time.Time           `json:"started"`
	Finished  time.Time           `json:"finished"`
	Seconds   float64             `json:"seconds"`
	Profile   string              `json:"profile"`
	Oracle    string              `json:"oracle"`
	Height    float64             `json:"height"`
	Points    int                 `json:"points"`
	Failed    int                 `json:"failed"`
	MeanDX    float64             `json:"mean_dx_cm"`
	MeanDY    float64             `json:"mean_dy_cm"`
	Max       float64             `json:"max_cm"`
	MaxAt     string              `json:"max_at,omitempty"`
	Residuals []validate.Residual `json:"residuals,omitempty"`
}

// ToDTO converts the run, residuals are included only when they were loaded and full is set.
func (r *ValidationRun) ToDTO(full bool) *ValidationRunDTO {
	if r == nil {
		return nil
	}

	d := &ValidationRunDTO{
		UID:      r.UID,
		Started:  r.Started,
		Finished: r.Finished,
		Seconds:  r.Finished.Sub(r.Started).Seconds(),
		Profile:  r.Profile,
		Oracle:   r.Oracle,
		Height:   r.Height,
		Points:   r.Points,
		Failed:   r.Failed,
		MeanDX:   r.MeanDX,
		MeanDY:   r.MeanDY,
		Max:      r.Max,
		MaxAt:    r.MaxAt,
	}

	if full {
		d.Residuals = make([]validate.Residual, len(r.Residuals))

		for i, res := range r.Residuals {
			d.Residuals[i] = res.Residual()
		}
	}

	return d
}
