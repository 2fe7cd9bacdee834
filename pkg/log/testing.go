// Testing utilities for structured logging. TestLogger captures records in
// memory so tests can assert on emitted fields without touching stdout.
package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TestLogger is a Logger implementation designed for tests. All records are
// captured in an internal buffer for later inspection.
type TestLogger struct {
	buffer *bytes.Buffer
	level  Level
	fields map[string]interface{}
}

// NewTestLogger creates a TestLogger with the given minimum level and
// returns it together with the buffer holding captured output.
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{
		buffer: buffer,
		level:  level,
		fields: make(map[string]interface{}),
	}, buffer
}

// Debug implements Logger.Debug.
func (t *TestLogger) Debug(msg string, fields ...any) {
	if t.level <= LevelDebug {
		t.writeLog("DEBUG", msg, fields...)
	}
}

// Info implements Logger.Info.
func (t *TestLogger) Info(msg string, fields ...any) {
	if t.level <= LevelInfo {
		t.writeLog("INFO", msg, fields...)
	}
}

// Warn implements Logger.Warn.
func (t *TestLogger) Warn(msg string, fields ...any) {
	if t.level <= LevelWarn {
		t.writeLog("WARN", msg, fields...)
	}
}

// Error implements Logger.Error.
func (t *TestLogger) Error(msg string, fields ...any) {
	if t.level <= LevelError {
		t.writeLog("ERROR", msg, fields...)
	}
}

// With implements Logger.With.
func (t *TestLogger) With(fields ...any) Logger {
	merged := make(map[string]interface{}, len(t.fields)+len(fields)/2)
	for k, v := range t.fields {
		merged[k] = v
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", fields[i])
		}
		merged[key] = fields[i+1]
	}
	return &TestLogger{buffer: t.buffer, level: t.level, fields: merged}
}

// Enabled implements Logger.Enabled.
func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return t.level <= level
}

// Contains reports whether any captured record contains the substring.
func (t *TestLogger) Contains(substr string) bool {
	return strings.Contains(t.buffer.String(), substr)
}

func (t *TestLogger) writeLog(level, msg string, fields ...any) {
	record := map[string]interface{}{
		"severity": level,
		"message":  msg,
	}
	for k, v := range t.fields {
		record[k] = v
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", fields[i])
		}
		record[key] = normalize(fields[i+1])
	}
	line, err := json.Marshal(record)
	if err != nil {
		fmt.Fprintf(t.buffer, "{\"severity\":%q,\"message\":%q}\n", level, msg)
		return
	}
	t.buffer.Write(line)
	t.buffer.WriteByte('\n')
}

func normalize(v any) any {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}
