package logging

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, GetLevel("warning"))
	assert.Equal(t, log.ErrorLevel, GetLevel(" error "))
	assert.Equal(t, log.TraceLevel, GetLevel("trace"))
	assert.Equal(t, log.InfoLevel, GetLevel(""))
	assert.Equal(t, log.InfoLevel, GetLevel("loud"))
}

func TestCombinedWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here")
	sb2 := &strings.Builder{}

	cw := NewCombinedWriter(sb1, sb2)
	require.Len(t, cw.Writers, 2)

	msg := "a message"
	n, err := cw.Write([]byte(msg))
	require.NoError(t, err)
	assert.Equal(t, len(msg), n)
	assert.Equal(t, "already-here"+msg, sb1.String())
	assert.Equal(t, msg, sb2.String())
}

func TestCombinedWriter_WriteWithError(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(&faultyWriter{}, sb)

	msg := "a message"
	n, err := cw.Write([]byte(msg))
	assert.EqualError(t, err, "disk full")
	assert.Zero(t, n)
	assert.Equal(t, msg, sb.String())
}

func TestCombinedWriter_WriteShort(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(sb, &shortWriter{})

	msg := "a message"
	n, err := cw.Write([]byte(msg))
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, 3, n)
	assert.LessOrEqual(t, n, len(msg))
}

func TestSetupWritesToLogFile(t *testing.T) {
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	}()

	base := filepath.Join(t.TempDir(), "cyclecoach")
	Setup(LoggerSetupParams{LogFileName: base, LogLevel: "debug", LogFormatJSON: true})
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	log.WithField("source", "ride.csv").Debug("layout gotoes")

	data, err := os.ReadFile(base + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"source":"ride.csv"`)
	assert.Contains(t, string(data), `"msg":"layout gotoes"`)
}

type shortWriter struct{}

func (sw *shortWriter) Write(p []byte) (int, error) {
	return min(3, len(p)), nil
}

type faultyWriter struct{}

func (fw *faultyWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}
