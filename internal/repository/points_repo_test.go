package repository

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/cortran/pkg/validate"
)

func TestMemoryRepo(t *testing.T) {
	r := NewPointsMemoryRepo(nil)
	require.NoError(t, r.Start())
	defer r.Stop()

	points := r.Points()
	assert.Len(t, points, len(validate.DefaultPoints()))

	points[0].Name = "changed"
	assert.Equal(t, "p1", r.Points()[0].Name)
	assert.Equal(t, "builtin", r.Source())
}

func TestFileRepoCreates(t *testing.T) {
	name := filepath.Join(t.TempDir(), "points.yml")

	r := NewFilePointsRepo(name)
	assert.Equal(t, validate.DefaultPoints(), r.Points())

	points, err := validate.LoadPointsFile(name)
	require.NoError(t, err)
	assert.Equal(t, validate.DefaultPoints(), points)
}

func TestFileRepoBadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "points.yml")
	require.NoError(t, os.WriteFile(name, []byte("points:\n  - lat: 95\n    lon: 44\n"), 0o600))

	r := NewFilePointsRepo(name)
	assert.Equal(t, validate.DefaultPoints(), r.Points())
}

func TestFileRepoReload(t *testing.T) {
	name := filepath.Join(t.TempDir(), "points.yml")
	require.NoError(t, os.WriteFile(name, []byte("points:\n  - name: yerevan\n    lat: 40.1872\n    lon: 44.5152\n"), 0o600))

	r := NewFilePointsRepo(name)
	require.Len(t, r.Points(), 1)
	assert.Equal(t, "yerevan", r.Points()[0].Name)

	var changes atomic.Int32

	r.OnChange(func(points []validate.ReferencePoint) {
		changes.Add(1)
	})

	require.NoError(t, r.Start())
	defer r.Stop()

	data := "points:\n  - name: yerevan\n    lat: 40.1872\n    lon: 44.5152\n  - name: gyumri\n    lat: 40.7929\n    lon: 43.8465\n"
	require.NoError(t, os.WriteFile(name, []byte(data), 0o600))

	assert.Eventually(t, func() bool {
		return len(r.Points()) == 2
	}, time.Second*5, time.Millisecond*20)

	assert.Equal(t, "gyumri", r.Points()[1].Name)
	assert.Positive(t, changes.Load())

	// broken edits keep the last good list
	require.NoError(t, os.WriteFile(name, []byte("points: [\n"), 0o600))
	time.Sleep(time.Millisecond * 200)
	assert.Len(t, r.Points(), 2)
}
