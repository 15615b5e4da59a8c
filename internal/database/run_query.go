package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/kdudkov/cortran/internal/model"
)

type RunQuery struct {
	Query[model.ValidationRun]
	uid     string
	profile string
	oracle  string
	after   time.Time
	full    bool
}

func NewRunQuery(db *gorm.DB) *RunQuery {
	q := new(RunQuery)
	q.setDefaults(db, "started desc, id desc")

	return q
}

func (q *RunQuery) Order(s string) *RunQuery {
	q.order = s
	return q
}

func (q *RunQuery) Limit(n int) *RunQuery {
	q.limit = n
	return q
}

func (q *RunQuery) Offset(n int) *RunQuery {
	q.offset = n
	return q
}

func (q *RunQuery) UID(uid string) *RunQuery {
	q.uid = uid
	return q
}

func (q *RunQuery) Profile(name string) *RunQuery {
	q.profile = name
	return q
}

func (q *RunQuery) Oracle(name string) *RunQuery {
	q.oracle = name
	return q
}

func (q *RunQuery) After(t time.Time) *RunQuery {
	q.after = t
	return q
}

// Full loads the residuals of the runs too.
func (q *RunQuery) Full() *RunQuery {
	q.full = true
	return q
}

func (q *RunQuery) where() *gorm.DB {
	tx := q.filtered(q.db)

	if q.full {
		tx = tx.Preload("Residuals", func(db *gorm.DB) *gorm.DB {
			return db.Order("residual_records.n")
		})
	}

	return tx
}

func (q *RunQuery) Get() []*model.ValidationRun {
	return q.get(q.where().Model(&model.ValidationRun{}))
}

func (q *RunQuery) One() *model.ValidationRun {
	return q.one(q.where().Model(&model.ValidationRun{}))
}

func (q *RunQuery) Count() int64 {
	return q.count(q.where().Model(&model.ValidationRun{}))
}

func (q *RunQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.ValidationRun{}), updates)
}

func (q *RunQuery) Delete() error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint

		if err := q.filtered(tx).Model(&model.ValidationRun{}).Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("run_id IN ?", ids).Delete(&model.ResidualRecord{}).Error; err != nil {
			return err
		}

		return tx.Where("id IN ?", ids).Delete(&model.ValidationRun{}).Error
	})
}

func (q *RunQuery) filtered(tx *gorm.DB) *gorm.DB {
	if q.uid != "" {
		tx = tx.Where("uid = ?", q.uid)
	}

	if q.profile != "" {
		tx = tx.Where("profile = ?", q.profile)
	}

	if q.oracle != "" {
		tx = tx.Where("oracle = ?", q.oracle)
	}

	if !q.after.IsZero() {
		tx = tx.Where("started >= ?", q.after)
	}

	return tx
}
