package database

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kdudkov/cortran/internal/model"
	"github.com/kdudkov/cortran/pkg/validate"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	m := &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}

	return m
}

// Open opens the sqlite file, ":memory:" gives a private in-memory database.
func Open(name string, debug bool) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(name), cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	if name == ":memory:" {
		// every new connection would get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}

		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func (mm *DatabaseManager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) RunQuery() *RunQuery {
	return NewRunQuery(mm.db)
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	return mm.db.AutoMigrate(
		&model.ValidationRun{},
		&model.ResidualRecord{},
	)
}

// SaveReport stores the report with all residuals and returns the new run.
func (mm *DatabaseManager) SaveReport(rep *validate.Report) (*model.ValidationRun, error) {
	if rep == nil {
		return nil, fmt.Errorf("empty report")
	}

	run := model.NewValidationRun(rep)

	if err := mm.Create(run); err != nil {
		return nil, err
	}

	mm.logger.Info(fmt.Sprintf("run %s saved: %s", run.UID, rep.String()))

	return run, nil
}

// Trim keeps the newest n runs.
func (mm *DatabaseManager) Trim(n int) error {
	if mm == nil || mm.db == nil || n <= 0 {
		return nil
	}

	old := mm.RunQuery().Offset(n).Limit(math.MaxInt32).Get()

	for _, r := range old {
		if err := mm.RunQuery().UID(r.UID).Delete(); err != nil {
			return err
		}
	}

	if len(old) > 0 {
		mm.logger.Info(fmt.Sprintf("%d old runs deleted", len(old)))
	}

	return nil
}
