package cyclecoach

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// SourceFormat identifies the encoding of a ride file.
type SourceFormat string

const (
	FormatCSV SourceFormat = "csv"
	FormatFIT SourceFormat = "fit"
)

// FormatFromPath infers the source format from a file extension.
func FormatFromPath(path string) (SourceFormat, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".fit":
		return FormatFIT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ParseRide reads and normalizes one ride file. Any failure yields an empty result and a
// reportable error; malformed rows are dropped rather than failing the parse.
func ParseRide(r io.Reader, format SourceFormat, hint LayoutID) (NormalizeResult, error) {
	var (
		table RawTable
		err   error
	)
	switch format {
	case FormatCSV:
		table, err = ReadCSV(r)
	case FormatFIT:
		table, err = ReadFIT(r)
		if hint == LayoutAuto {
			hint = LayoutStandard
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return NormalizeResult{Samples: []RideSample{}}, fmt.Errorf("parse ride file: %w", err)
	}

	res, err := Normalize(table, hint)
	if err != nil {
		return NormalizeResult{Samples: []RideSample{}}, fmt.Errorf("normalize ride file: %w", err)
	}
	return res, nil
}
