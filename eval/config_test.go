package eval

import (
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		kind    DatasetKind
		wantErr bool
	}{
		{name: "continuous defaults", kind: Continuous2D, mutate: func(c *Config) {}},
		{name: "discrete defaults", kind: DiscreteSingle, mutate: func(c *Config) {}},
		{name: "composite defaults", kind: DiscreteComposite, mutate: func(c *Config) {}},
		{
			name:    "unsupported kind",
			kind:    Unsupported,
			mutate:  func(c *Config) {},
			wantErr: true,
		},
		{
			name:    "zero batch size",
			kind:    DiscreteSingle,
			mutate:  func(c *Config) { c.ClassifierBatchSize = 0 },
			wantErr: true,
		},
		{
			name:    "threshold too high",
			kind:    DiscreteSingle,
			mutate:  func(c *Config) { c.ConfidenceThreshold = 1 },
			wantErr: true,
		},
		{
			name:    "threshold too low",
			kind:    DiscreteComposite,
			mutate:  func(c *Config) { c.ConfidenceThreshold = 0 },
			wantErr: true,
		},
		{
			name:    "zero max rows",
			kind:    DiscreteSingle,
			mutate:  func(c *Config) { c.MaxRows = 0 },
			wantErr: true,
		},
		{
			// Classifier options are irrelevant for continuous kinds.
			name:   "continuous ignores classifier options",
			kind:   Continuous1D,
			mutate: func(c *Config) { c.ClassifierBatchSize = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(tt.kind)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatasetKindString(t *testing.T) {
	want := map[DatasetKind]string{
		Unsupported:       "unsupported",
		Continuous1D:      "continuous-1d",
		Continuous2D:      "continuous-2d",
		DiscreteSingle:    "discrete-single",
		DiscreteComposite: "discrete-composite",
	}
	for kind, s := range want {
		if kind.String() != s {
			t.Errorf("%d.String() = %q, want %q", kind, kind.String(), s)
		}
	}
}

func TestDatasetKindPredicates(t *testing.T) {
	if !Continuous1D.Continuous() || !Continuous2D.Continuous() {
		t.Error("continuous kinds misclassified")
	}
	if !DiscreteSingle.Discrete() || !DiscreteComposite.Discrete() {
		t.Error("discrete kinds misclassified")
	}
	if Unsupported.Continuous() || Unsupported.Discrete() {
		t.Error("Unsupported should be neither continuous nor discrete")
	}
}

func TestEvaluateUnsupportedKind(t *testing.T) {
	if _, err := Evaluate(Config{}, Inputs{}); err == nil {
		t.Fatal("expected error for unsupported dataset kind")
	}
}
