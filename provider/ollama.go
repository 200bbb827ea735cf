package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/rakushite-inc/demo-obentou/generator"
	"github.com/rakushite-inc/demo-obentou/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Ollama serves completions from locally hosted models, one per public model
// id.
type Ollama struct {
	llms map[models.ModelID]llms.Model
}

func NewOllama(address string, mapping map[string]string) (*Ollama, error) {
	o := &Ollama{llms: map[models.ModelID]llms.Model{}}

	for _, id := range models.AllModels() {
		name := mapping[string(id)]
		if name == "" {
			return nil, &generator.ConfigurationError{Setting: fmt.Sprintf("ollama model for %s", id)}
		}

		llm, err := ollama.New(
			ollama.WithServerURL(address),
			ollama.WithModel(name),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client for %s: %w", id, err)
		}
		o.llms[id] = llm
	}

	return o, nil
}

// NewOllamaWithModels builds an Ollama completer from already constructed
// models.
func NewOllamaWithModels(m map[models.ModelID]llms.Model) *Ollama {
	return &Ollama{llms: m}
}

// CallOptions maps the request options onto langchaingo call options. The
// temperature option is only added for SampledOptions.
func CallOptions(req generator.CompletionRequest) []llms.CallOption {
	var opts []llms.CallOption
	if req.JSONMode {
		opts = append(opts, llms.WithJSONMode())
	}
	if sampled, ok := req.Options.(generator.SampledOptions); ok {
		opts = append(opts, llms.WithTemperature(sampled.Temperature))
	}

	return opts
}

func (o *Ollama) Complete(ctx context.Context, req generator.CompletionRequest) (string, error) {
	llm, ok := o.llms[req.Model]
	if !ok {
		return "", &generator.ConfigurationError{Setting: fmt.Sprintf("ollama model for %s", req.Model)}
	}

	resp, err := llm.GenerateContent(ctx, req.Messages, CallOptions(req)...)
	if err != nil {
		return "", &generator.ProviderError{Reason: "ollama request failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &generator.ProviderError{Reason: "response has no choices"}
	}

	content := resp.Choices[0].Content
	if strings.TrimSpace(content) == "" {
		return "", &generator.ProviderError{Reason: "completion returned no content"}
	}

	return content, nil
}
