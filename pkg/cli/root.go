package cli

import (
	"io"
	"os"

	"github.com/NeuralTrust/perspective/pkg/config"
	"github.com/NeuralTrust/perspective/pkg/dependency_container"
	"github.com/NeuralTrust/perspective/pkg/version"
	"github.com/spf13/cobra"
)

// App holds the process boundaries the commands talk to. Tests swap them.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	LoadConfig   func(path string) (*config.Config, error)
	NewContainer func(di dependency_container.ContainerDI) (*dependency_container.Container, error)
}

func NewApp() *App {
	return &App{
		In:           os.Stdin,
		Out:          os.Stdout,
		Err:          os.Stderr,
		LoadConfig:   config.Load,
		NewContainer: dependency_container.NewContainer,
	}
}

type globalFlags struct {
	configPath string
	format     string
}

func NewRootCommand(app *App) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   version.AppName,
		Short: "Score text with the Perspective comment analyzer",
		Long: `perspective sends a piece of text to the Perspective comment analyzer and
prints one probability per requested attribute (TOXICITY, SPAM, ...).

The API key and defaults are read from perspective.yaml or PERSPECTIVE_*
environment variables.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(flags.format)
		},
	}
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newUsageError("%v", err)
	})

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "directory containing perspective.yaml")
	root.PersistentFlags().StringVarP(&flags.format, "format", "o", FormatTable, "output format: table or json")

	root.AddCommand(newAnalyzeCommand(app, flags))
	root.AddCommand(newAttributesCommand(flags))
	root.AddCommand(newVersionCommand(flags))

	return root
}
