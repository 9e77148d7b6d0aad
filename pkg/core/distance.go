package core

// DistanceBucket is one column of the damage falloff table.
type DistanceBucket struct {
	Label  string // column header in the stats sheet
	Meters int    // lower bound of the band
}

// Distances are the falloff buckets in distance order. Intermediate ranges the
// game reports (15, 25, 35, 50, 55 and 70 m) carry the previous bucket's damage
// and are not listed.
var Distances = []DistanceBucket{
	{Label: "0 m", Meters: 0},
	{Label: "10 m", Meters: 10},
	{Label: "20 m", Meters: 20},
	{Label: "40 m", Meters: 40},
	{Label: "70+ m", Meters: 70},
}

// DistanceLabels returns the bucket labels in order.
func DistanceLabels() []string {
	labels := make([]string, len(Distances))
	for i, d := range Distances {
		labels[i] = d.Label
	}
	return labels
}
