package log

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestTestLoggerCapture(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Info("evaluation finished",
		StepKey, 3,
		CoverageKey, 0.92,
	)

	line := strings.TrimSpace(buffer.String())
	var record map[string]interface{}
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("captured record is not valid JSON: %v", err)
	}
	if record["message"] != "evaluation finished" {
		t.Errorf("message = %v", record["message"])
	}
	if record[CoverageKey] != 0.92 {
		t.Errorf("%s = %v, want 0.92", CoverageKey, record[CoverageKey])
	}
}

func TestTestLoggerLevelFiltering(t *testing.T) {
	logger, buffer := NewTestLogger(LevelWarn)

	logger.Debug("should be dropped")
	logger.Info("should be dropped too")
	logger.Warn("kept")

	out := buffer.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("records below the level were captured: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %q", out)
	}

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("Enabled(LevelDebug) = true for a warn-level logger")
	}
}

func TestTestLoggerWith(t *testing.T) {
	logger, buffer := NewTestLogger(LevelInfo)
	runLogger := logger.With(RunKey, 7)

	runLogger.Info("step done", StepKey, 1)

	if !strings.Contains(buffer.String(), "\"eval.run\":7") {
		t.Errorf("pre-populated field missing: %q", buffer.String())
	}
}

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "DEBUG" || LevelError.String() != "ERROR" {
		t.Error("unexpected Level.String() values")
	}
	if Level(42).String() != "UNKNOWN" {
		t.Error("out-of-range level should stringify as UNKNOWN")
	}
}
