package generator

import (
	"context"

	"github.com/rakushite-inc/demo-obentou/models"
	"github.com/tmc/langchaingo/llms"
)

// DefaultTemperature is sent to models that accept a sampling temperature.
const DefaultTemperature = 0.7

// RequestOptions holds the sampling parameters a model accepts. It has exactly
// two implementations so a provider can only send a temperature when it holds
// SampledOptions.
type RequestOptions interface {
	requestOptions()
}

// SampledOptions is used for models that take a sampling temperature.
type SampledOptions struct {
	Temperature float64
}

// ReasoningOptions is used for models that reject the temperature parameter.
type ReasoningOptions struct{}

func (SampledOptions) requestOptions()   {}
func (ReasoningOptions) requestOptions() {}

// OptionsFor returns the request options variant for model.
func OptionsFor(model models.ModelID) RequestOptions {
	if model == models.ModelO3 {
		return ReasoningOptions{}
	}
	return SampledOptions{Temperature: DefaultTemperature}
}

// CompletionRequest is one structured-output completion call.
type CompletionRequest struct {
	Model    models.ModelID
	Messages []llms.MessageContent
	Options  RequestOptions
	JSONMode bool
}

// Completer sends a completion request and returns the text content of the
// first choice.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, req CompletionRequest) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}
