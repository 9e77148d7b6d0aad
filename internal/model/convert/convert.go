package convert

import (
	"github.com/OCAP2/ttkplot/internal/model"
	"github.com/OCAP2/ttkplot/pkg/core"
)

// RunToCore converts a GORM model.Run back to a core.Run.
func RunToCore(r model.Run) core.Run {
	return core.Run{
		ID:          r.RunID,
		StartTime:   r.StartTime,
		StatsFile:   r.StatsFile,
		WeaponCount: r.WeaponCount,
		Batch:       r.Batch,
	}
}

// SeriesToCore converts a stored series back to a core.Series. runID is the
// external run id, not the row id.
func SeriesToCore(s model.Series, runID string) core.Series {
	return core.Series{
		RunID:         runID,
		Artifact:      s.Artifact,
		Description:   s.Description,
		HealthProfile: s.HealthProfile,
		DamageProfile: s.DamageProfile,
		ClassFilter:   s.ClassFilter,
		Weapon:        s.Weapon,
		WeaponClass:   s.WeaponClass,
		RPM:           s.RPM,
		Distances:     append([]string(nil), s.Distances...),
		TTK:           append([]int(nil), s.TTK...),
	}
}
