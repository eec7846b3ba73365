package cyclecoach

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultProfileIsValid(t *testing.T) {
	p := DefaultProfile()
	require.NoError(t, p.Validate())
	assert.Equal(t, 242.0, p.FTPWatts)
	assert.Equal(t, 140.0, p.Z2PowerMinWatts)
	assert.Equal(t, 155.0, p.Z2PowerMaxWatts)
	assert.Equal(t, 130.0, p.Z2HRCapBPM)
	assert.Equal(t, 90.0, p.TargetCadenceRPM)
}

func TestLoadProfileEmptyPath(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), p)
}

func TestLoadProfileTOMLOverlaysDefaults(t *testing.T) {
	path := writeProfile(t, "rider.toml", "name = \"sam\"\nftp_watts = 275\nz2_hr_cap_bpm = 138\n")

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "sam", p.Name)
	assert.Equal(t, 275.0, p.FTPWatts)
	assert.Equal(t, 138.0, p.Z2HRCapBPM)
	assert.Equal(t, 155.0, p.Z2PowerMaxWatts)
	assert.Equal(t, 10.0, p.ActivePowerMinWatts)
}

func TestLoadProfileYAMLOverlaysDefaults(t *testing.T) {
	path := writeProfile(t, "rider.yaml", "name: alex\ntarget_cadence_rpm: 95\ncadence_grind_rpm: 88\n")

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "alex", p.Name)
	assert.Equal(t, 95.0, p.TargetCadenceRPM)
	assert.Equal(t, 88.0, p.CadenceGrindRPM)
	assert.Equal(t, 242.0, p.FTPWatts)
}

func TestLoadProfileRejectsInvalidThresholds(t *testing.T) {
	path := writeProfile(t, "bad.toml", "z2_power_min_watts = 170\n")

	_, err := LoadProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "power thresholds out of order")
}

func TestLoadProfileErrors(t *testing.T) {
	_, err := LoadProfile(writeProfile(t, "rider.json", "{}"))
	assert.ErrorContains(t, err, "unsupported profile extension")

	_, err = LoadProfile(writeProfile(t, "broken.toml", "ftp_watts = = 1"))
	assert.ErrorContains(t, err, "decode toml profile")

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProfileEncodeTOMLRoundTrip(t *testing.T) {
	p := DefaultProfile()
	p.Name = "round-trip"
	p.FTPWatts = 301

	text, err := p.EncodeTOML()
	require.NoError(t, err)

	loaded, err := LoadProfile(writeProfile(t, "rt.toml", text))
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}
