package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("KernelDensity", "ScoreSamples")
	if err == nil {
		t.Fatal("NewNotFittedError() returned nil")
	}

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("As() failed to extract *NotFittedError from %v", err)
	}
	if nfe.ModelName != "KernelDensity" || nfe.Method != "ScoreSamples" {
		t.Errorf("unexpected fields: %+v", nfe)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDimensionError(t *testing.T) {
	tests := []struct {
		name     string
		axis     int
		wantWord string
	}{
		{name: "rows axis", axis: 0, wantWord: "points"},
		{name: "feature axis", axis: 1, wantWord: "features"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("ScoreSamples", 2, 3, tt.axis)
			if !strings.Contains(err.Error(), tt.wantWord) {
				t.Errorf("Error() = %q, want substring %q", err.Error(), tt.wantWord)
			}
		})
	}
}

func TestCollaboratorErrorUnwrap(t *testing.T) {
	cause := New("connection refused")
	err := NewCollaboratorError("classifier", "Predict", cause)

	if !Is(err, cause) {
		t.Errorf("Is() did not find the wrapped cause in %v", err)
	}

	var ce *CollaboratorError
	if !As(err, &ce) {
		t.Fatalf("As() failed to extract *CollaboratorError from %v", err)
	}
	if ce.Collaborator != "classifier" {
		t.Errorf("Collaborator = %q, want %q", ce.Collaborator, "classifier")
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewUndefinedMetricWarning("js_divergence", "no confident predictions", 2.0)
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	if !strings.Contains(captured.Error(), "ill-defined") {
		t.Errorf("unexpected warning message: %v", captured)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("ConfidenceThreshold", "must be in (0, 1)", 1.5)
	if !strings.Contains(err.Error(), "ConfidenceThreshold") {
		t.Errorf("unexpected message: %v", err)
	}
	var ve *ValidationError
	if !As(err, &ve) {
		t.Fatalf("As() failed to extract *ValidationError from %v", err)
	}
}
