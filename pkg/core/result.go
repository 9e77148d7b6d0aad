// pkg/core/result.go
package core

import "time"

// Run identifies one invocation of the tool.
type Run struct {
	ID          string
	StartTime   time.Time
	StatsFile   string
	WeaponCount int
	Batch       bool
}

// Series is the TTK curve of one weapon under one preset.
type Series struct {
	RunID         string
	Artifact      string
	Description   string
	HealthProfile string
	DamageProfile string
	ClassFilter   string
	Weapon        string
	WeaponClass   string
	RPM           int
	Distances     []string
	TTK           []int
}

// NewSeries packs a computed curve together with the preset and weapon it came from.
func NewSeries(runID, artifact string, p Preset, w Weapon, ttk []int) Series {
	return Series{
		RunID:         runID,
		Artifact:      artifact,
		Description:   p.Describe(),
		HealthProfile: p.Health.Name,
		DamageProfile: p.Damage.Name,
		ClassFilter:   p.Filter.String(),
		Weapon:        w.Name,
		WeaponClass:   w.Class.String(),
		RPM:           w.RPM,
		Distances:     DistanceLabels(),
		TTK:           append([]int(nil), ttk...),
	}
}

// UploadMetadata describes an exported run report for the upload endpoint.
type UploadMetadata struct {
	RunID       string
	StatsFile   string
	SeriesCount int
	Artifacts   []string
	// Duration of the run in seconds.
	Duration float64
}
