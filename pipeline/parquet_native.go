package pipeline

import (
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/multierr"
)

type normalizedParquetRow struct {
	TSUTCISO   string  `parquet:"name=ts_utc_iso, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ElapsedS   float64 `parquet:"name=elapsed_s, type=DOUBLE"`
	PowerW     float64 `parquet:"name=power_w, type=DOUBLE"`
	HRBPM      float64 `parquet:"name=hr_bpm, type=DOUBLE"`
	CadenceRPM float64 `parquet:"name=cadence_rpm, type=DOUBLE"`
	Active     bool    `parquet:"name=active, type=BOOLEAN"`
}

func writeNormalizedParquet(path string, samples []NormalizedSample) (err error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, fw.Close()) }()
	return writeParquetRows(fw, samples)
}

func marshalNormalizedParquet(samples []NormalizedSample) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	if err := writeParquetRows(fw, samples); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

// writeParquetRows encodes samples with snappy; absent values are stored as NaN.
func writeParquetRows(fw source.ParquetFile, samples []NormalizedSample) error {
	pw, err := writer.NewParquetWriter(fw, new(normalizedParquetRow), 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, s := range samples {
		row := normalizedParquetRow{
			TSUTCISO:   s.TSUTCISO,
			ElapsedS:   s.ElapsedS,
			PowerW:     valueOrNaN(s.PowerW),
			HRBPM:      valueOrNaN(s.HRBPM),
			CadenceRPM: valueOrNaN(s.CadenceRPM),
			Active:     s.Active,
		}
		if err := pw.Write(row); err != nil {
			return multierr.Append(err, pw.WriteStop())
		}
	}
	return pw.WriteStop()
}
