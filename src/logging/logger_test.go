package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := current.Load()
	savedLevel := level.Level()
	SetDefault(New(&buf, FormatJSON))
	t.Cleanup(func() {
		SetDefault(saved)
		level.Set(savedLevel)
	})
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := captureJSON(t)
	SetLogLevel("info")

	msg := "rendered region_total share=(100.0% of 412345) in 12ms"
	Infof(msg)

	var rec map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &rec)).Required()
	gt.Equal(t, rec["msg"], any(msg))
	gt.False(t, strings.Contains(buf.String(), "MISSING"))
}

func TestLevelFiltering(t *testing.T) {
	buf := captureJSON(t)
	SetLogLevel("warn")

	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	Warnf("shown %d", 3)
	Errorf("shown %d", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	gt.Equal(t, len(lines), 2)
	gt.S(t, lines[0]).Contains("shown 3")
	gt.S(t, lines[1]).Contains("shown 4")
	gt.Equal(t, level.Level(), slog.LevelWarn)

	SetLogLevel("bogus")
	gt.Equal(t, level.Level(), slog.LevelWarn)
}

func TestParse(t *testing.T) {
	l, err := ParseLevel(" DEBUG ")
	gt.NoError(t, err)
	gt.Equal(t, l, slog.LevelDebug)
	_, err = ParseLevel("loud")
	gt.Error(t, err)

	f, err := ParseFormat("json")
	gt.NoError(t, err)
	gt.Equal(t, f, FormatJSON)
	f, err = ParseFormat("")
	gt.NoError(t, err)
	gt.Equal(t, f, FormatAuto)
	_, err = ParseFormat("xml")
	gt.Error(t, err)
}

func TestConfigure(t *testing.T) {
	saved := current.Load()
	savedLevel := level.Level()
	t.Cleanup(func() {
		SetDefault(saved)
		level.Set(savedLevel)
	})

	var buf bytes.Buffer
	logger, err := Configure(&buf, "debug", "console")
	gt.NoError(t, err).Required()
	gt.V(t, logger).NotNil()
	Debugf("console line")
	gt.S(t, buf.String()).Contains("console line")

	_, err = Configure(&buf, "debug", "xml")
	gt.Error(t, err)
}
