package cyclecoach

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/tormoder/fit"
)

var standardColumns = []string{"timestamp", "heart_rate", "cadence", "power"}

// ReadFIT decodes a FIT activity and lays its records out as a standard-layout table,
// so FIT and CSV input share the same normalization path.
func ReadFIT(r io.Reader) (RawTable, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return RawTable{}, fmt.Errorf("%w: decode FIT file: %v", ErrUnreadable, err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return RawTable{}, fmt.Errorf("%w: activity FIT expected: %v", ErrUnreadable, err)
	}

	table := RawTable{
		Columns: append([]string(nil), standardColumns...),
		Rows:    make([]RawRow, 0, len(activity.Records)),
	}
	for _, rec := range activity.Records {
		if rec == nil {
			table.SkippedRows++
			continue
		}
		row := RawRow{
			"timestamp":  "",
			"heart_rate": "",
			"cadence":    "",
			"power":      "",
		}
		if ts := validTimeOrZero(rec.Timestamp); !ts.IsZero() {
			row["timestamp"] = ts.UTC().Format(time.RFC3339)
		}
		if hr, ok := extractHeartRate(rec); ok {
			row["heart_rate"] = formatCell(hr)
		}
		if cad, ok := extractCadence(rec); ok {
			row["cadence"] = formatCell(cad)
		}
		if p, ok := extractPower(rec); ok {
			row["power"] = formatCell(p)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func extractPower(rec *fit.RecordMsg) (float64, bool) {
	if rec.Power == math.MaxUint16 {
		return 0, false
	}
	return float64(rec.Power), true
}

func extractHeartRate(rec *fit.RecordMsg) (float64, bool) {
	if rec.HeartRate == math.MaxUint8 {
		return 0, false
	}
	return float64(rec.HeartRate), true
}

func extractCadence(rec *fit.RecordMsg) (float64, bool) {
	cad256 := rec.GetCadence256Scaled()
	if isFinite(cad256) && cad256 > 0 {
		return cad256, true
	}
	if rec.Cadence == math.MaxUint8 {
		return 0, false
	}
	return float64(rec.Cadence), true
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
