// Package v1 contains the v1 report format for a ttkplot run.
package v1

import "time"

// FormatVersion is written into every report.
const FormatVersion = 1

// Report is the root JSON structure for v1 format
type Report struct {
	FormatVersion int        `json:"formatVersion"`
	RunID         string     `json:"runId"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       time.Time  `json:"endTime"`
	StatsFile     string     `json:"statsFile"`
	WeaponCount   int        `json:"weaponCount"`
	Batch         bool       `json:"batch"`
	Distances     []string   `json:"distances"`
	Artifacts     []Artifact `json:"artifacts"`
}

// Artifact is one rendered chart and the curves drawn on it
type Artifact struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	HealthProfile string   `json:"healthProfile"`
	DamageProfile string   `json:"damageProfile"`
	ClassFilter   string   `json:"classFilter"`
	Series        []Series `json:"series"`
}

// Series is one weapon's TTK per distance bucket, in milliseconds
type Series struct {
	Weapon string `json:"weapon"`
	Class  string `json:"class"`
	RPM    int    `json:"rpm"`
	TTK    []int  `json:"ttk"`
}
