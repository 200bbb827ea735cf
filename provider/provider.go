package provider

import (
	"fmt"

	"github.com/rakushite-inc/demo-obentou/config"
	"github.com/rakushite-inc/demo-obentou/generator"
)

const (
	BackendOpenAI = "openai"
	BackendOllama = "ollama"
)

type UnknownBackendError struct {
	Backend string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown llm backend %q", e.Backend)
}

// New returns the completer selected by llm.backend.
func New(cfg *config.Config) (generator.Completer, error) {
	switch cfg.LLM.Backend {
	case BackendOpenAI, "":
		c, err := NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendOllama:
		c, err := NewOllama(cfg.Ollama.Address(), cfg.Ollama.Models)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, &UnknownBackendError{Backend: cfg.LLM.Backend}
	}
}
