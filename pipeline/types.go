package pipeline

import (
	cyclecoach "github.com/lucasjlepore/cycle-coach"
)

// Artifact file names written by Run and returned by RunBytes.
const (
	SamplesBaseName  = "normalized_samples"
	SummaryFileName  = "ride_summary.json"
	NotesFileName    = "coach_notes.md"
	ChartsFileName   = "chart_series.json"
	ManifestFileName = "manifest.json"
)

// Options configures one pipeline run over a ride file on disk.
type Options struct {
	SourcePath string
	OutDir     string
	Profile    *cyclecoach.Profile // nil uses cyclecoach.DefaultProfile
	Layout     cyclecoach.LayoutID
	Format     string // parquet|csv
	Overwrite  bool
}

// Result returns generated output paths.
type Result struct {
	OutputDir    string             `json:"output_dir"`
	SamplesPath  string             `json:"samples_path"`
	SummaryPath  string             `json:"summary_path"`
	NotesPath    string             `json:"notes_path"`
	ChartsPath   string             `json:"charts_path"`
	ManifestPath string             `json:"manifest_path"`
	Report       *cyclecoach.Report `json:"-"`
	Warnings     []string           `json:"warnings,omitempty"`
}

// BytesOptions configures an in-memory run.
type BytesOptions struct {
	SourceFileName string
	Data           []byte
	Profile        *cyclecoach.Profile
	Layout         cyclecoach.LayoutID
	Format         string // parquet|csv
}

// BytesResult holds every artifact keyed by file name.
type BytesResult struct {
	Files    map[string][]byte
	Report   *cyclecoach.Report
	Warnings []string
}

// Manifest describes one run and the files it produced.
type Manifest struct {
	RunID       string              `json:"run_id"`
	GeneratedAt string              `json:"generated_at"`
	Source      SourceInfo          `json:"source"`
	Profile     string              `json:"profile"`
	Format      string              `json:"format"`
	Layout      cyclecoach.LayoutID `json:"layout"`
	RowsRead    int                 `json:"rows_read"`
	RowsDropped int                 `json:"rows_dropped"`
	RowsSkipped int                 `json:"rows_skipped"`
	SampleCount int                 `json:"sample_count"`
	Files       []string            `json:"files"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// SourceInfo identifies the input ride file.
type SourceInfo struct {
	FileName  string `json:"file_name"`
	Format    string `json:"format"`
	SHA256    string `json:"sha256"`
	SizeBytes int64  `json:"size_bytes"`
}

// NormalizedSample is one exported row of normalized_samples.
type NormalizedSample struct {
	TSUTCISO   string   `json:"ts_utc_iso"`
	ElapsedS   float64  `json:"elapsed_s"`
	PowerW     *float64 `json:"power_w,omitempty"`
	HRBPM      *float64 `json:"hr_bpm,omitempty"`
	CadenceRPM *float64 `json:"cadence_rpm,omitempty"`
	Active     bool     `json:"active"`
}

// BatchItem is the outcome for one file of RunBatch.
type BatchItem struct {
	SourcePath string  `json:"source_path"`
	Result     *Result `json:"result,omitempty"`
	Err        error   `json:"-"`
}
