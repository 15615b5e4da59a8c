package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/kdudkov/cortran/pkg/validate"
)

var _ PointsRepository = &PointsFileRepository{}

type PointsFileRepository struct {
	pointsFile string
	logger     *slog.Logger
	points     []validate.ReferencePoint
	onChange   func([]validate.ReferencePoint)

	watcher *fsnotify.Watcher

	mx sync.RWMutex
}

// NewFilePointsRepo reads the points file, a missing file is created with the built-in points.
func NewFilePointsRepo(pointsFile string) *PointsFileRepository {
	r := &PointsFileRepository{
		logger:     slog.Default().With("logger", "points_repo", "file", pointsFile),
		pointsFile: filepath.Clean(pointsFile),
	}

	if err := r.loadPointsFile(); err != nil {
		r.logger.Error("error loading points file", slog.Any("error", err))
	}

	if len(r.points) == 0 {
		r.logger.Info("no valid points found - using built-in list")
		r.points = validate.DefaultPoints()
	}

	return r
}

// OnChange sets the function called with the new list after every successful reload.
func (r *PointsFileRepository) OnChange(f func([]validate.ReferencePoint)) {
	r.mx.Lock()
	defer r.mx.Unlock()

	r.onChange = f
}

func (r *PointsFileRepository) loadPointsFile() error {
	if _, err := os.Lstat(r.pointsFile); errors.Is(err, os.ErrNotExist) {
		f, err := os.Create(r.pointsFile)
		if err != nil {
			return err
		}

		if err := validate.SavePoints(f, validate.DefaultPoints()); err != nil {
			_ = f.Close()

			return err
		}

		return f.Close()
	}

	points, err := validate.LoadPointsFile(r.pointsFile)
	if err != nil {
		return err
	}

	if len(points) == 0 {
		return fmt.Errorf("no points in %s", r.pointsFile)
	}

	r.mx.Lock()
	r.points = points
	cb := r.onChange
	r.mx.Unlock()

	r.logger.Info(fmt.Sprintf("%d points loaded", len(points)))

	if cb != nil {
		cb(points)
	}

	return nil
}

func (r *PointsFileRepository) Start() error {
	var err error
	r.watcher, err = fsnotify.NewWatcher()

	if err != nil {
		return err
	}

	// editors often replace the file, so the directory is watched
	if err := r.watcher.Add(filepath.Dir(r.pointsFile)); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-r.watcher.Events:
				if !ok {
					return
				}

				r.logger.Debug(fmt.Sprintf("event: %v", event))

				if filepath.Clean(event.Name) == r.pointsFile && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					r.logger.Info("points file is modified, reloading")

					if err := r.loadPointsFile(); err != nil {
						r.logger.Error("error", slog.Any("error", err))
					}
				}
			case err, ok := <-r.watcher.Errors:
				if !ok {
					return
				}

				r.logger.Error("error", slog.Any("error", err))
			}
		}
	}()

	return nil
}

func (r *PointsFileRepository) Stop() {
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
}

func (r *PointsFileRepository) Points() []validate.ReferencePoint {
	r.mx.RLock()
	defer r.mx.RUnlock()

	res := make([]validate.ReferencePoint, len(r.points))
	copy(res, r.points)

	return res
}

func (r *PointsFileRepository) Source() string {
	return r.pointsFile
}
