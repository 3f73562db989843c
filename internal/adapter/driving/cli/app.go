package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diillson/aws-which-region/internal/application/usecase"
	"github.com/diillson/aws-which-region/internal/domain/repository"
	"github.com/diillson/aws-which-region/internal/shared/types"
	"github.com/diillson/aws-which-region/pkg/logging"
	"github.com/diillson/aws-which-region/pkg/version"
)

// envPrefix prefixes the environment variables that mirror each flag,
// e.g. WHICH_REGION_QUICK=false.
const envPrefix = "WHICH_REGION"

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	settings      *viper.Viper
	configRepo    repository.ConfigRepository
	regionUseCase *usecase.RegionUseCase
	showBanner    bool
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(configRepo repository.ConfigRepository) *CLIApp {
	app := &CLIApp{
		settings:   viper.New(),
		configRepo: configRepo,
		showBanner: true,
	}

	rootCmd := &cobra.Command{
		Use:           "which-region",
		Short:         "Rank AWS regions by active EC2, ELBv2 and RDS resources",
		Version:       version.FormatVersion(),
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Which Region version: %s\n" .Version}}`)

	// Command-line flags
	flags := rootCmd.Flags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("profile", "p", "", "AWS profile to use (default: SDK credential chain)")
	flags.BoolP("quick", "q", true, "Query only us-east-1, us-east-2, us-west-1, us-west-2, eu-west-1, eu-west-2 and eu-central-1")
	flags.Bool("debug", false, "Show every queried region, including regions with no resources")
	flags.Bool("continue-on-error", false, "Record n/a for regions that fail instead of aborting the run")
	flags.Duration("timeout", 0, "Timeout for each AWS API call, e.g. 30s (default: none)")
	flags.String("endpoint-url", "", "Override the AWS endpoint for every service (e.g. LocalStack)")
	flags.CountP("verbose", "v", "Increase diagnostic log verbosity on stderr (repeatable)")
	flags.Bool("no-banner", false, "Do not print the welcome banner")

	app.settings.SetEnvPrefix(envPrefix)
	app.settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	app.settings.AutomaticEnv()
	// BindPFlags only fails on a nil FlagSet.
	_ = app.settings.BindPFlags(flags)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// ExecuteContext runs the CLI application with ctx as the command context.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, used by tests.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs resolves flags, environment variables and the config file into
// a CLIArgs. Precedence: changed flag, env, config file, flag default.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	configFile := app.settings.GetString("config-file")
	if configFile != "" {
		cfg, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		if err := app.settings.MergeConfigMap(cfg.Values()); err != nil {
			return nil, fmt.Errorf("error applying config file %s: %w", configFile, err)
		}
	}

	timeout, err := parseDuration(app.settings.GetString("timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout: %w", err)
	}

	args := &types.CLIArgs{
		ConfigFile:      configFile,
		Profile:         app.settings.GetString("profile"),
		EndpointURL:     app.settings.GetString("endpoint-url"),
		Quick:           app.settings.GetBool("quick"),
		Debug:           app.settings.GetBool("debug"),
		ContinueOnError: app.settings.GetBool("continue-on-error"),
		Timeout:         timeout,
		Verbose:         app.settings.GetInt("verbose"),
	}
	app.showBanner = !app.settings.GetBool("no-banner")

	return args, nil
}

// runCommand is the main entry point for the CLI command.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	if app.regionUseCase == nil {
		return fmt.Errorf("region use case not configured")
	}
	app.regionUseCase.SetLogger(logging.NewLogger(cliArgs.Verbose))
	// The banner waits for authentication so a credential failure prints nothing.
	app.regionUseCase.SetOnConnected(func() {
		if app.showBanner {
			displayWelcomeBanner(cmd.OutOrStdout())
		}
	})
	return app.regionUseCase.RunReport(cmd.Context(), cliArgs)
}

// SetRegionUseCase sets the region report use case for the CLI app.
func (app *CLIApp) SetRegionUseCase(useCase *usecase.RegionUseCase) {
	app.regionUseCase = useCase
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative: %s", s)
	}
	return d, nil
}
