package cyclecoach

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Profile holds the athlete-specific zones and the feedback thresholds.
// The zero value is not useful; start from DefaultProfile.
type Profile struct {
	Name                string  `json:"name" toml:"name" yaml:"name"`
	FTPWatts            float64 `json:"ftp_watts" toml:"ftp_watts" yaml:"ftp_watts"`
	Z2PowerMinWatts     float64 `json:"z2_power_min_watts" toml:"z2_power_min_watts" yaml:"z2_power_min_watts"`
	Z2PowerMaxWatts     float64 `json:"z2_power_max_watts" toml:"z2_power_max_watts" yaml:"z2_power_max_watts"`
	Z2HRCapBPM          float64 `json:"z2_hr_cap_bpm" toml:"z2_hr_cap_bpm" yaml:"z2_hr_cap_bpm"`
	TargetCadenceRPM    float64 `json:"target_cadence_rpm" toml:"target_cadence_rpm" yaml:"target_cadence_rpm"`
	ActivePowerMinWatts float64 `json:"active_power_min_watts" toml:"active_power_min_watts" yaml:"active_power_min_watts"`

	RecoveryMaxWatts       float64 `json:"recovery_max_watts" toml:"recovery_max_watts" yaml:"recovery_max_watts"`
	SweetSpotMinWatts      float64 `json:"sweet_spot_min_watts" toml:"sweet_spot_min_watts" yaml:"sweet_spot_min_watts"`
	IntensityMinWatts      float64 `json:"intensity_min_watts" toml:"intensity_min_watts" yaml:"intensity_min_watts"`
	DecouplingExcellentPct float64 `json:"decoupling_excellent_pct" toml:"decoupling_excellent_pct" yaml:"decoupling_excellent_pct"`
	DecouplingGoodPct      float64 `json:"decoupling_good_pct" toml:"decoupling_good_pct" yaml:"decoupling_good_pct"`
	CadenceGrindRPM        float64 `json:"cadence_grind_rpm" toml:"cadence_grind_rpm" yaml:"cadence_grind_rpm"`
}

// DefaultProfile returns the reference rider: FTP 242 W, Z2 140-155 W, HR cap 130 bpm, 90 rpm.
func DefaultProfile() Profile {
	return Profile{
		Name:                "default",
		FTPWatts:            242,
		Z2PowerMinWatts:     140,
		Z2PowerMaxWatts:     155,
		Z2HRCapBPM:          130,
		TargetCadenceRPM:    90,
		ActivePowerMinWatts: 10,

		RecoveryMaxWatts:       115,
		SweetSpotMinWatts:      125,
		IntensityMinWatts:      160,
		DecouplingExcellentPct: 3,
		DecouplingGoodPct:      5,
		CadenceGrindRPM:        85,
	}
}

// Validate checks that the thresholds are ordered so every feedback band is reachable.
func (p Profile) Validate() error {
	if p.FTPWatts < 0 {
		return fmt.Errorf("ftp_watts must not be negative, got %.0f", p.FTPWatts)
	}
	if p.ActivePowerMinWatts < 0 {
		return fmt.Errorf("active_power_min_watts must not be negative, got %.0f", p.ActivePowerMinWatts)
	}
	if !(p.RecoveryMaxWatts <= p.SweetSpotMinWatts &&
		p.SweetSpotMinWatts <= p.Z2PowerMinWatts &&
		p.Z2PowerMinWatts <= p.Z2PowerMaxWatts &&
		p.Z2PowerMaxWatts <= p.IntensityMinWatts) {
		return fmt.Errorf(
			"power thresholds out of order: recovery %.0f, sweet spot %.0f, z2 %.0f-%.0f, intensity %.0f",
			p.RecoveryMaxWatts, p.SweetSpotMinWatts, p.Z2PowerMinWatts, p.Z2PowerMaxWatts, p.IntensityMinWatts,
		)
	}
	if p.DecouplingExcellentPct > p.DecouplingGoodPct {
		return fmt.Errorf("decoupling_excellent_pct %.1f exceeds decoupling_good_pct %.1f", p.DecouplingExcellentPct, p.DecouplingGoodPct)
	}
	if p.CadenceGrindRPM > p.TargetCadenceRPM {
		return fmt.Errorf("cadence_grind_rpm %.0f exceeds target_cadence_rpm %.0f", p.CadenceGrindRPM, p.TargetCadenceRPM)
	}
	return nil
}

// LoadProfile reads a TOML or YAML profile file and overlays it on DefaultProfile.
// An empty path returns the default profile.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if strings.TrimSpace(path) == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &profile); err != nil {
			return Profile{}, fmt.Errorf("decode toml profile: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return Profile{}, fmt.Errorf("decode yaml profile: %w", err)
		}
	default:
		return Profile{}, fmt.Errorf("unsupported profile extension %q (expected .toml|.yaml|.yml)", ext)
	}

	if err := profile.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return profile, nil
}

// EncodeTOML renders the profile in the same TOML shape LoadProfile accepts.
func (p Profile) EncodeTOML() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(p); err != nil {
		return "", err
	}
	return b.String(), nil
}
