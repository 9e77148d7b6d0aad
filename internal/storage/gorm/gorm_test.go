package gormstorage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/OCAP2/ttkplot/internal/database"
	"github.com/OCAP2/ttkplot/internal/model"
	"github.com/OCAP2/ttkplot/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, batchSize int) *Backend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ttk.db")
	b := New(Dependencies{
		Manager:   database.NewManager(zerolog.Nop()),
		Connect:   func(m *database.Manager) error { return m.ConnectSQLite(path) },
		BatchSize: batchSize,
	})
	require.NoError(t, b.Init())
	t.Cleanup(func() { b.Close() })
	return b
}

func testRun(id string) core.Run {
	return core.Run{ID: id, StartTime: time.Now().UTC(), StatsFile: "Stats.csv", WeaponCount: 3, Batch: true}
}

func testSeries(weapon string, ttk ...int) core.Series {
	return core.Series{
		RunID:         "run-1",
		Artifact:      "BF6-Multiplayer-AllBody-All",
		Description:   "Multiplayer (100 HP) - All Body",
		HealthProfile: "Multiplayer",
		DamageProfile: "All Body",
		ClassFilter:   "All",
		Weapon:        weapon,
		WeaponClass:   "AR",
		RPM:           600,
		Distances:     core.DistanceLabels(),
		TTK:           ttk,
	}
}

func TestNew_Defaults(t *testing.T) {
	b := New(Dependencies{})
	assert.Equal(t, DefaultBatchSize, b.deps.BatchSize)
	assert.NotNil(t, b.deps.Logger)
	assert.Error(t, b.Init(), "no manager")
}

func TestRecordSeries_BeforeStartRun(t *testing.T) {
	b := newTestBackend(t, 10)
	err := b.RecordSeries(context.Background(), testSeries("M433", 1, 2, 3, 4, 5))
	assert.ErrorIs(t, err, ErrNoRun)
	assert.ErrorIs(t, b.EndRun(context.Background()), ErrNoRun)
}

func TestRunLifecycle_PersistsSeries(t *testing.T) {
	b := newTestBackend(t, 2)
	ctx := context.Background()

	require.NoError(t, b.StartRun(ctx, testRun("run-1")))
	require.NoError(t, b.RecordSeries(ctx, testSeries("M433", 400, 400, 500, 500, 600)))
	assert.Equal(t, 1, b.series.Len(), "below batch size stays queued")

	require.NoError(t, b.RecordSeries(ctx, testSeries("SGX", 300, 300, 350, 400, 450)))
	assert.Equal(t, 0, b.series.Len(), "full batch is written")

	require.NoError(t, b.RecordSeries(ctx, testSeries("PW7A2", 350, 350, 350, 420, 490)))
	require.NoError(t, b.EndRun(ctx))
	assert.Equal(t, 0, b.series.Len())

	db := b.deps.Manager.DB
	var run model.Run
	require.NoError(t, db.Preload("Series").Where("run_id = ?", "run-1").First(&run).Error)
	assert.True(t, run.EndTime.Valid)
	assert.Equal(t, 3, run.SeriesCount)
	assert.Equal(t, 3, run.WeaponCount)
	require.Len(t, run.Series, 3)

	var sgx model.Series
	require.NoError(t, db.Where("weapon = ?", "SGX").First(&sgx).Error)
	assert.Equal(t, run.ID, sgx.RunID)
	assert.Equal(t, []int{300, 300, 350, 400, 450}, []int(sgx.TTK))
	assert.Equal(t, core.DistanceLabels(), []string(sgx.Distances))
}

func TestStartRun_DuplicateRunID(t *testing.T) {
	b := newTestBackend(t, 10)
	ctx := context.Background()

	require.NoError(t, b.StartRun(ctx, testRun("dup")))
	require.NoError(t, b.EndRun(ctx))
	assert.Error(t, b.StartRun(ctx, testRun("dup")))
}
