package pipeline

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	cyclecoach "github.com/lucasjlepore/cycle-coach"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Run analyzes one ride file and writes all artifacts into opts.OutDir.
// Rides without active pedaling still get a summary with null metrics.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.SourcePath) == "" {
		return nil, fmt.Errorf("source path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	b, err := analyze(filepath.Base(opts.SourcePath), data, opts.Profile, opts.Layout, format)
	if err != nil {
		return nil, err
	}

	if err := ensureOutputDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}

	samplesPath := filepath.Join(opts.OutDir, samplesFileName(format))
	switch format {
	case "csv":
		if err := writeNormalizedCSV(samplesPath, b.samples); err != nil {
			return nil, fmt.Errorf("write normalized csv: %w", err)
		}
	case "parquet":
		if err := writeNormalizedParquet(samplesPath, b.samples); err != nil {
			return nil, fmt.Errorf("write normalized parquet: %w", err)
		}
	}

	summaryPath := filepath.Join(opts.OutDir, SummaryFileName)
	if err := writeJSON(summaryPath, b.report); err != nil {
		return nil, fmt.Errorf("write %s: %w", SummaryFileName, err)
	}

	notesPath := filepath.Join(opts.OutDir, NotesFileName)
	if err := os.WriteFile(notesPath, []byte(b.report.Notes+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", NotesFileName, err)
	}

	chartsPath := filepath.Join(opts.OutDir, ChartsFileName)
	if err := writeJSON(chartsPath, b.charts); err != nil {
		return nil, fmt.Errorf("write %s: %w", ChartsFileName, err)
	}

	manifestPath := filepath.Join(opts.OutDir, ManifestFileName)
	if err := writeJSON(manifestPath, b.manifest); err != nil {
		return nil, fmt.Errorf("write %s: %w", ManifestFileName, err)
	}

	return &Result{
		OutputDir:    opts.OutDir,
		SamplesPath:  samplesPath,
		SummaryPath:  summaryPath,
		NotesPath:    notesPath,
		ChartsPath:   chartsPath,
		ManifestPath: manifestPath,
		Report:       &b.report,
		Warnings:     b.report.Warnings,
	}, nil
}

// RunBytes produces the same artifacts as Run without touching the filesystem.
func RunBytes(opts BytesOptions) (*BytesResult, error) {
	if len(opts.Data) == 0 {
		return nil, fmt.Errorf("ride data is required")
	}
	name := strings.TrimSpace(opts.SourceFileName)
	if name == "" {
		return nil, fmt.Errorf("source file name is required to infer the format")
	}
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	b, err := analyze(filepath.Base(name), opts.Data, opts.Profile, opts.Layout, format)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, 5)

	var samples []byte
	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := encodeNormalizedCSV(&buf, b.samples); err != nil {
			return nil, fmt.Errorf("encode normalized csv: %w", err)
		}
		samples = buf.Bytes()
	case "parquet":
		samples, err = marshalNormalizedParquet(b.samples)
		if err != nil {
			return nil, fmt.Errorf("encode normalized parquet: %w", err)
		}
	}
	files[samplesFileName(format)] = samples
	files[NotesFileName] = []byte(b.report.Notes + "\n")

	for fileName, v := range map[string]any{
		SummaryFileName:  b.report,
		ChartsFileName:   b.charts,
		ManifestFileName: b.manifest,
	} {
		data, err := marshalJSON(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", fileName, err)
		}
		files[fileName] = data
	}

	return &BytesResult{
		Files:    files,
		Report:   &b.report,
		Warnings: b.report.Warnings,
	}, nil
}

type bundle struct {
	report   cyclecoach.Report
	samples  []NormalizedSample
	charts   cyclecoach.ChartSeries
	manifest Manifest
}

func analyze(name string, data []byte, profile *cyclecoach.Profile, layout cyclecoach.LayoutID, format string) (*bundle, error) {
	logger := log.WithField("source", name)

	srcFormat, err := cyclecoach.FormatFromPath(name)
	if err != nil {
		return nil, err
	}
	res, err := cyclecoach.ParseRide(bytes.NewReader(data), srcFormat, layout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	logger.Debugf("layout %s: %d rows read, %d samples", res.Layout, res.RowsRead, len(res.Samples))

	p := cyclecoach.DefaultProfile()
	if profile != nil {
		p = *profile
	}
	report := cyclecoach.NewEngine(p).Analyze(res)
	for _, w := range report.Warnings {
		logger.Warn(w)
	}

	sum := sha256.Sum256(data)
	b := &bundle{
		report:  report,
		samples: buildNormalizedSamples(res.Samples, p.ActivePowerMinWatts),
		charts:  cyclecoach.BuildChartSeries(res.Samples, p),
		manifest: Manifest{
			RunID:       uuid.NewString(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Source: SourceInfo{
				FileName:  name,
				Format:    string(srcFormat),
				SHA256:    hex.EncodeToString(sum[:]),
				SizeBytes: int64(len(data)),
			},
			Profile:     p.Name,
			Format:      format,
			Layout:      res.Layout,
			RowsRead:    res.RowsRead,
			RowsDropped: res.RowsDropped,
			RowsSkipped: res.RowsSkipped,
			SampleCount: len(res.Samples),
			Files:       []string{samplesFileName(format), SummaryFileName, NotesFileName, ChartsFileName, ManifestFileName},
			Warnings:    report.Warnings,
		},
	}
	return b, nil
}

func buildNormalizedSamples(samples []cyclecoach.RideSample, activeMin float64) []NormalizedSample {
	out := make([]NormalizedSample, 0, len(samples))
	if len(samples) == 0 {
		return out
	}
	first := samples[0].Timestamp
	for _, s := range samples {
		out = append(out, NormalizedSample{
			TSUTCISO:   s.Timestamp.UTC().Format(time.RFC3339Nano),
			ElapsedS:   s.Timestamp.Sub(first).Seconds(),
			PowerW:     s.Power,
			HRBPM:      s.HeartRate,
			CadenceRPM: s.Cadence,
			Active:     s.PowerWatts() > activeMin,
		})
	}
	return out
}

func normalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "parquet"
	}
	if format != "parquet" && format != "csv" {
		return "", fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}
	return format, nil
}

func samplesFileName(format string) string {
	if format == "csv" {
		return SamplesBaseName + ".csv"
	}
	return SamplesBaseName + ".parquet"
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	return encodeJSON(f, v)
}

var normalizedHeader = []string{"ts_utc_iso", "elapsed_s", "power_w", "hr_bpm", "cadence_rpm", "active"}

func writeNormalizedCSV(path string, samples []NormalizedSample) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	return encodeNormalizedCSV(f, samples)
}

func encodeNormalizedCSV(out io.Writer, samples []NormalizedSample) error {
	w := csv.NewWriter(out)
	if err := w.Write(normalizedHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			s.TSUTCISO,
			formatFloat(s.ElapsedS),
			formatFloatPtr(s.PowerW),
			formatFloatPtr(s.HRBPM),
			formatFloatPtr(s.CadenceRPM),
			strconv.FormatBool(s.Active),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
