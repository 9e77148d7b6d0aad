package model

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Run{},
	&Series{},
}

// Run is one invocation of the tool. A batch run owns the series of every
// preset it rendered.
type Run struct {
	ID          uint         `json:"id" gorm:"primarykey;autoIncrement;"`
	RunID       string       `json:"runId" gorm:"size:36;uniqueIndex:idx_run_run_id"`
	StartTime   time.Time    `json:"startTime" gorm:"NOT NULL;"`
	EndTime     sql.NullTime `json:"endTime" gorm:"default:NULL"`
	StatsFile   string       `json:"statsFile" gorm:"size:255"`
	WeaponCount int          `json:"weaponCount"`
	Batch       bool         `json:"batch"`
	SeriesCount int          `json:"seriesCount"`
	Series      []Series     `json:"series" gorm:"foreignKey:RunID;references:ID"`
}

func (*Run) TableName() string {
	return "runs"
}

// Series is one weapon's TTK curve under one preset.
type Series struct {
	ID            uint                        `json:"id" gorm:"primarykey;autoIncrement;"`
	CreatedAt     time.Time                   `json:"createdAt"`
	RunID         uint                        `json:"runId" gorm:"index:idx_series_run_id"`
	Artifact      string                      `json:"artifact" gorm:"size:127;index:idx_series_artifact"`
	Description   string                      `json:"description" gorm:"size:255"`
	HealthProfile string                      `json:"healthProfile" gorm:"size:64"`
	DamageProfile string                      `json:"damageProfile" gorm:"size:64"`
	ClassFilter   string                      `json:"classFilter" gorm:"size:16"`
	Weapon        string                      `json:"weapon" gorm:"size:64;index:idx_series_weapon"`
	WeaponClass   string                      `json:"weaponClass" gorm:"size:16"`
	RPM           int                         `json:"rpm"`
	Distances     datatypes.JSONSlice[string] `json:"distances"`
	TTK           datatypes.JSONSlice[int]    `json:"ttk"`
}

func (*Series) TableName() string {
	return "series"
}
