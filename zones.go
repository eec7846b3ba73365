package cyclecoach

import "math"

// ZoneDuration is the time spent in one power zone, bounds in percent of FTP.
// MaxPctFTP is nil for the open-ended top zone.
type ZoneDuration struct {
	Zone       string   `json:"zone"`
	MinPctFTP  float64  `json:"min_pct_ftp"`
	MaxPctFTP  *float64 `json:"max_pct_ftp,omitempty"`
	Seconds    float64  `json:"seconds"`
	Percentage float64  `json:"percentage"`
}

type zoneBound struct {
	zone     string
	min, max float64
}

var powerZones = []zoneBound{
	{zone: "Z1 Active Recovery", min: 0, max: 55},
	{zone: "Z2 Endurance", min: 55, max: 75},
	{zone: "Z3 Tempo", min: 75, max: 90},
	{zone: "Z4 Threshold", min: 90, max: 105},
	{zone: "Z5 VO2", min: 105, max: 120},
	{zone: "Z6 Anaerobic", min: 120, max: 150},
	{zone: "Z7 Neuromuscular", min: 150, max: math.Inf(1)},
}

// PowerZones distributes samples over the seven FTP zones, one second per sample.
// Coasting counts toward Z1. It returns nil without a positive FTP.
func PowerZones(samples []RideSample, ftp float64) []ZoneDuration {
	if ftp <= 0 || len(samples) == 0 {
		return nil
	}

	counts := make([]int, len(powerZones))
	total := 0
	for _, s := range samples {
		if s.Power == nil || *s.Power < 0 {
			continue
		}
		pct := *s.Power / ftp * 100
		for i, z := range powerZones {
			if pct >= z.min && pct < z.max {
				counts[i]++
				total++
				break
			}
		}
	}
	if total == 0 {
		return nil
	}

	out := make([]ZoneDuration, 0, len(powerZones))
	for i, z := range powerZones {
		seconds := float64(counts[i])
		zd := ZoneDuration{
			Zone:       z.zone,
			MinPctFTP:  z.min,
			Seconds:    seconds,
			Percentage: seconds / float64(total) * 100,
		}
		if !math.IsInf(z.max, 1) {
			zd.MaxPctFTP = floatPtr(z.max)
		}
		out = append(out, zd)
	}
	return out
}
