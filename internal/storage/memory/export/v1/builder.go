package v1

import (
	"sort"
	"time"

	"github.com/OCAP2/ttkplot/pkg/core"
)

// RunData is everything the memory backend collected for one run.
type RunData struct {
	Run     core.Run
	EndTime time.Time
	Series  []core.Series
}

// Build groups the collected series by artifact. Artifacts are sorted by name;
// series keep the order they were recorded in.
func Build(data *RunData) Report {
	report := Report{
		FormatVersion: FormatVersion,
		RunID:         data.Run.ID,
		StartTime:     data.Run.StartTime,
		EndTime:       data.EndTime,
		StatsFile:     data.Run.StatsFile,
		WeaponCount:   data.Run.WeaponCount,
		Batch:         data.Run.Batch,
		Distances:     core.DistanceLabels(),
		Artifacts:     make([]Artifact, 0),
	}

	index := make(map[string]int)
	for _, s := range data.Series {
		i, ok := index[s.Artifact]
		if !ok {
			i = len(report.Artifacts)
			index[s.Artifact] = i
			report.Artifacts = append(report.Artifacts, Artifact{
				Name:          s.Artifact,
				Description:   s.Description,
				HealthProfile: s.HealthProfile,
				DamageProfile: s.DamageProfile,
				ClassFilter:   s.ClassFilter,
				Series:        make([]Series, 0),
			})
		}
		report.Artifacts[i].Series = append(report.Artifacts[i].Series, Series{
			Weapon: s.Weapon,
			Class:  s.WeaponClass,
			RPM:    s.RPM,
			TTK:    append([]int(nil), s.TTK...),
		})
	}

	sort.SliceStable(report.Artifacts, func(a, b int) bool {
		return report.Artifacts[a].Name < report.Artifacts[b].Name
	})
	return report
}
