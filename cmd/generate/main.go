package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rakushite-inc/demo-obentou/config"
	"github.com/rakushite-inc/demo-obentou/generator"
	"github.com/rakushite-inc/demo-obentou/models"
	"github.com/rakushite-inc/demo-obentou/provider"
	"github.com/spf13/cobra"
)

type options struct {
	configPath     string
	conditionsPath string
	model          string
	sample         bool
}

type completerFactory func(cfg *config.Config) (generator.Completer, error)

func newRootCmd(newCompleter completerFactory) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "generate [flags]",
		Short:         "Generate bento menu proposals from a conditions file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), newCompleter)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to the config file (defaults and env only if empty)")
	cmd.Flags().StringVar(&opts.conditionsPath, "conditions", "-", "conditions JSON file, - reads stdin")
	cmd.Flags().StringVar(&opts.model, "model", "", "model to use (gpt-4o or o3); overrides the conditions file")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "print the sample menus without calling a provider")

	return cmd
}

func readConditions(path string, stdin io.Reader) (models.GenerationConditions, error) {
	var conditions models.GenerationConditions

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return conditions, fmt.Errorf("failed to open conditions: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&conditions); err != nil {
		return conditions, fmt.Errorf("failed to decode conditions: %w", err)
	}

	return conditions, nil
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer, newCompleter completerFactory) error {
	if err := config.LoadEnvFile(); err != nil {
		return err
	}
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	loc, err := cfg.LLM.Location()
	if err != nil {
		return fmt.Errorf("invalid llm.timezone: %w", err)
	}
	now := func() time.Time { return time.Now().In(loc) }

	var menus []models.BentoMenu
	if opts.sample {
		menus = generator.SampleMenus(now())
	} else {
		conditions, err := readConditions(opts.conditionsPath, stdin)
		if err != nil {
			return err
		}
		if opts.model != "" {
			conditions.Model = models.ModelID(opts.model)
		}
		if err := conditions.Validate(); err != nil {
			return fmt.Errorf("invalid conditions: %w", err)
		}

		completer, err := newCompleter(cfg)
		if err != nil {
			return err
		}

		menus, err = generator.New(completer, generator.WithClock(now)).Generate(ctx, conditions, conditions.Model)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(map[string]any{"menus": menus})
}

func main() {
	if err := newRootCmd(provider.New).ExecuteContext(context.Background()); err != nil {
		if kind := generator.ErrorKind(err); kind != "" {
			fmt.Fprintf(os.Stderr, "%s error: %v\n", kind, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
