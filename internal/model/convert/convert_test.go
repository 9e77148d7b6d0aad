package convert

import (
	"testing"
	"time"

	"github.com/OCAP2/ttkplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries() core.Series {
	return core.Series{
		RunID:         "run-1",
		Artifact:      "BF6-Multiplayer-AllBody-All",
		Description:   "Multiplayer (100 HP) - All Body",
		HealthProfile: "Multiplayer",
		DamageProfile: "All Body",
		ClassFilter:   "All",
		Weapon:        "M433",
		WeaponClass:   "AR",
		RPM:           720,
		Distances:     core.DistanceLabels(),
		TTK:           []int{333, 333, 333, 416, 416},
	}
}

func TestCoreToRun(t *testing.T) {
	start := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	r := CoreToRun(core.Run{ID: "run-1", StartTime: start, StatsFile: "Stats.csv", WeaponCount: 12, Batch: true})

	assert.Zero(t, r.ID)
	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, start, r.StartTime)
	assert.False(t, r.EndTime.Valid)
	assert.Equal(t, "Stats.csv", r.StatsFile)
	assert.Equal(t, 12, r.WeaponCount)
	assert.True(t, r.Batch)

	back := RunToCore(r)
	assert.Equal(t, "run-1", back.ID)
	assert.Equal(t, start, back.StartTime)
}

func TestCoreToSeries(t *testing.T) {
	s := testSeries()
	g := CoreToSeries(s, 7)

	assert.Equal(t, uint(7), g.RunID)
	assert.Equal(t, s.Artifact, g.Artifact)
	assert.Equal(t, s.Weapon, g.Weapon)
	assert.Equal(t, 720, g.RPM)
	assert.Equal(t, []int{333, 333, 333, 416, 416}, []int(g.TTK))
	assert.Equal(t, []string{"0 m", "10 m", "20 m", "40 m", "70+ m"}, []string(g.Distances))
}

func TestCoreToSeries_CopiesSlices(t *testing.T) {
	s := testSeries()
	g := CoreToSeries(s, 1)

	s.TTK[0] = -1
	s.Distances[0] = "changed"
	assert.Equal(t, 333, g.TTK[0])
	assert.Equal(t, "0 m", g.Distances[0])
}

func TestSeriesToCore(t *testing.T) {
	s := testSeries()
	back := SeriesToCore(CoreToSeries(s, 3), "run-1")
	require.Equal(t, s, back)
}
