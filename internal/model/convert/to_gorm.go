// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"database/sql"

	"github.com/OCAP2/ttkplot/internal/model"
	"github.com/OCAP2/ttkplot/pkg/core"
	"gorm.io/datatypes"
)

// CoreToRun converts a core.Run to a GORM model.Run.
// core.Run.ID maps to the GORM RunID column; the row id is assigned on insert.
func CoreToRun(r core.Run) model.Run {
	return model.Run{
		RunID:       r.ID,
		StartTime:   r.StartTime,
		EndTime:     sql.NullTime{},
		StatsFile:   r.StatsFile,
		WeaponCount: r.WeaponCount,
		Batch:       r.Batch,
	}
}

// CoreToSeries converts a core.Series to a GORM model.Series owned by run row runID.
func CoreToSeries(s core.Series, runID uint) model.Series {
	return model.Series{
		RunID:         runID,
		Artifact:      s.Artifact,
		Description:   s.Description,
		HealthProfile: s.HealthProfile,
		DamageProfile: s.DamageProfile,
		ClassFilter:   s.ClassFilter,
		Weapon:        s.Weapon,
		WeaponClass:   s.WeaponClass,
		RPM:           s.RPM,
		Distances:     datatypes.NewJSONSlice(append([]string(nil), s.Distances...)),
		TTK:           datatypes.NewJSONSlice(append([]int(nil), s.TTK...)),
	}
}
