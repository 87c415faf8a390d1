package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/NeuralTrust/perspective/pkg/config"
	"github.com/NeuralTrust/perspective/pkg/dependency_container"
	"github.com/NeuralTrust/perspective/pkg/infra/logger"
	"github.com/NeuralTrust/perspective/pkg/infra/perspective"
	"github.com/spf13/cobra"
)

type analyzeFlags struct {
	attributes []string
	doNotStore bool
	timeout    time.Duration
	transport  string
}

func newAnalyzeCommand(app *App, global *globalFlags) *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Score text for the requested attributes",
		Long: `Score text for the requested attributes. Arguments are joined with a single
space and sent as one comment. With no arguments the text is read from stdin.`,
		Example: `  perspective analyze "you are a wonderful person"
  echo "buy cheap pills now" | perspective analyze --attributes SPAM,TOXICITY -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, app, global, flags, args)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.attributes, "attributes", "a", nil, "comma separated attribute tokens (default from config)")
	cmd.Flags().BoolVar(&flags.doNotStore, "do-not-store", false, "ask the service not to store the text")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "per request timeout, e.g. 5s (default from config)")
	cmd.Flags().StringVar(&flags.transport, "transport", "", "http transport: net/http or fasthttp (default from config)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, app *App, global *globalFlags, flags *analyzeFlags, args []string) error {
	cfg, err := app.LoadConfig(global.configPath)
	if err != nil {
		return newUsageError("%v", err)
	}
	if err := applyAnalyzeFlags(cmd, cfg, flags); err != nil {
		return err
	}

	text, err := readText(cmd.InOrStdin(), args)
	if err != nil {
		return &CLIError{Err: err, ExitCode: ExitFailure}
	}

	log := logger.NewLogger(cfg.Log, cmd.ErrOrStderr())
	if cfg.Log.File != "" {
		hook, err := logger.NewFileHook(cfg.Log.File)
		if err != nil {
			return newUsageError("%v", err)
		}
		log.AddHook(hook)
		defer func() { _ = hook.Close() }()
	}

	container, err := app.NewContainer(dependency_container.ContainerDI{Cfg: cfg, Logger: log})
	if err != nil {
		return newUsageError("%v", err)
	}
	defer func() {
		if err := container.FlushMetrics(); err != nil {
			log.WithError(err).Warn("failed to flush metrics")
		}
	}()

	result, err := container.Analyzer.Analyze(cmd.Context(), text, cfg.Attributes)
	if err != nil {
		return fromAnalyzeError(err)
	}

	return renderAnalysis(cmd.OutOrStdout(), global.format, result)
}

// applyAnalyzeFlags lets explicitly set flags win over file and env values.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config, flags *analyzeFlags) error {
	if cmd.Flags().Changed("attributes") {
		attrs := make([]perspective.AttributeType, 0, len(flags.attributes))
		for _, token := range flags.attributes {
			attr, err := perspective.ParseAttributeType(strings.ToUpper(strings.TrimSpace(token)))
			if err != nil {
				return newUsageError("%v", err)
			}
			attrs = append(attrs, attr)
		}
		cfg.Attributes = attrs
	}
	if cmd.Flags().Changed("do-not-store") {
		cfg.DoNotStore = flags.doNotStore
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if cmd.Flags().Changed("transport") {
		cfg.Transport = flags.transport
	}
	return nil
}

func readText(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
