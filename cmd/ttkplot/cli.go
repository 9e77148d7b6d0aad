package main

import (
	"fmt"
	"strings"

	"github.com/OCAP2/ttkplot/internal/config"
	"github.com/OCAP2/ttkplot/internal/profile"
	"github.com/OCAP2/ttkplot/pkg/core"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps flags onto the config keys they override.
var flagKeys = map[string]string{
	"stats":    "statsFile",
	"out":      "output",
	"outdir":   "outputDir",
	"loglevel": "logLevel",
	"workers":  "workers",
	"ymin":     "chart.ymin",
	"ymax":     "chart.ymax",
	"ystep":    "chart.ystep",
}

// cliOptions are the flags that select what to plot. Everything else is read
// back through viper.
type cliOptions struct {
	All           bool
	Filter        core.ClassFilter
	HealthProfile string
	DamageProfile string
	ConfigDir     string
	Health        profile.HealthOverrides
	Damage        profile.DamageOverrides
}

// Request builds the single-mode preset request.
func (o cliOptions) Request() profile.PresetRequest {
	return profile.PresetRequest{
		Filter:          o.Filter,
		HealthKey:       o.HealthProfile,
		DamageKey:       o.DamageProfile,
		HealthOverrides: o.Health,
		DamageOverrides: o.Damage,
	}
}

// HasOverrides reports whether any profile field flag was given.
func (o cliOptions) HasOverrides() bool {
	return !o.Health.IsEmpty() || !o.Damage.IsEmpty()
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(ExtensionName, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.Bool("all", false, "render every class filter x health profile x damage profile combination")
	fs.StringP("class", "c", "All", "weapon class filter: All, AR, Carbine, SMG, LMG, DMR, Pistol")
	fs.String("healthprofile", profile.Multiplayer, "health profile: Multiplayer, Gauntlet, BattleRoyale")
	fs.String("damageprofile", profile.Body, "damage profile: Body, SingleMissAndBody, SingleHeadshotAndBody")

	fs.Int("health", 0, "override base health")
	fs.Int("plates", 0, "override plate count")
	fs.Int("plate_health", 0, "override health per plate")
	fs.Float64("platedr", 0, "override plate damage reduction, 0 <= dr < 1")
	fs.Int("headshots", 0, "override number of leading headshots")
	fs.Float64("hsmult", 0, "override headshot multiplier for every weapon")
	fs.Int("misses", 0, "override number of leading misses")

	fs.Float64("ymin", 50, "lowest y axis tick (ms)")
	fs.Float64("ymax", 600, "highest y axis tick (ms)")
	fs.Float64("ystep", 50, "y axis tick step (ms)")

	fs.String("stats", "Stats.csv", "weapon stats CSV")
	fs.String("out", "ttk.png", "chart path in single mode")
	fs.String("outdir", "./plots", "chart directory with --all")
	fs.String("config", ".", "directory containing "+config.FileName)
	fs.String("loglevel", "info", "log level: debug, info, warn, error")
	fs.Int("workers", 4, "charts rendered concurrently with --all")
	return fs
}

// parseArgs parses args, binds the config flags into viper and collects the
// preset selection.
func parseArgs(fs *pflag.FlagSet, args []string) (cliOptions, error) {
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return cliOptions{}, fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	var opts cliOptions
	opts.All, _ = fs.GetBool("all")
	opts.HealthProfile, _ = fs.GetString("healthprofile")
	opts.DamageProfile, _ = fs.GetString("damageprofile")
	opts.ConfigDir, _ = fs.GetString("config")

	class, _ := fs.GetString("class")
	filter, err := core.ParseClassFilter(class)
	if err != nil {
		return cliOptions{}, fmt.Errorf("--class: %w", err)
	}
	opts.Filter = filter

	opts.Health = profile.HealthOverrides{
		BaseHealth:           intFlag(fs, "health"),
		PlateCount:           intFlag(fs, "plates"),
		PlateHealth:          intFlag(fs, "plate_health"),
		PlateDamageReduction: floatFlag(fs, "platedr"),
	}
	opts.Damage = profile.DamageOverrides{
		HeadshotCount:      intFlag(fs, "headshots"),
		HeadshotMultiplier: floatFlag(fs, "hsmult"),
		MissCount:          intFlag(fs, "misses"),
	}
	return opts, nil
}

// intFlag returns nil unless the flag was given on the command line.
func intFlag(fs *pflag.FlagSet, name string) *int {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetInt(name)
	if err != nil {
		return nil
	}
	return &v
}

func floatFlag(fs *pflag.FlagSet, name string) *float64 {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetFloat64(name)
	if err != nil {
		return nil
	}
	return &v
}
