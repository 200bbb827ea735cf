package generator

import (
	"testing"

	"github.com/rakushite-inc/demo-obentou/models"
)

func TestOptionsFor(t *testing.T) {
	switch opts := OptionsFor(models.ModelGPT4o).(type) {
	case SampledOptions:
		if opts.Temperature != DefaultTemperature {
			t.Fatalf("temperature = %v, want %v", opts.Temperature, DefaultTemperature)
		}
	default:
		t.Fatalf("gpt-4o got %T, want SampledOptions", opts)
	}

	if _, ok := OptionsFor(models.ModelO3).(ReasoningOptions); !ok {
		t.Fatalf("o3 got %T, want ReasoningOptions", OptionsFor(models.ModelO3))
	}
}
