// Package cmd provides the entrypoint for the sonar-slack-bridge cli.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/isometry/sonar-slack-bridge/internal/config"
	awsctl "github.com/isometry/sonar-slack-bridge/internal/controllers/aws"
	"github.com/isometry/sonar-slack-bridge/internal/destination"
	"github.com/isometry/sonar-slack-bridge/internal/handler"
	"github.com/isometry/sonar-slack-bridge/internal/helpers"
	"github.com/isometry/sonar-slack-bridge/internal/metrics"
	"github.com/isometry/sonar-slack-bridge/internal/notifier"
	"github.com/isometry/sonar-slack-bridge/internal/runtime"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configFileEnv names the environment variable pointing at the optional YAML configuration file.
const configFileEnv = "CONFIG_FILE"

// modeAnnotation pins the runtime mode of a subcommand.
const modeAnnotation = "mode"

var logger = helpers.NewNoopLogger()

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
}

// New returns the root command for the sonar-slack-bridge.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sonar-slack-bridge",
		Short:        "Forward inbound webhook status notifications to a Slack incoming webhook",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if mode, ok := cmd.Annotations[modeAnnotation]; ok {
				config.Global.Mode = mode
			}
			config.Global.Mode = strings.TrimSpace(config.Global.Mode)
			logger = helpers.NewLogger(config.Global.Logging.Verbosity, config.Global.Logging.CallerTrace).
				With("mode", config.Global.Mode)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch config.Global.Mode {
			case config.ModeService:
				return runService(cmd)
			case config.ModeLambdaHTTP:
				return runLambdaHTTP(cmd)
			case config.ModeLambdaEvent:
				return runLambdaEvent(cmd)
			default:
				return fmt.Errorf("invalid mode: %s", config.Global.Mode)
			}
		},
	}

	// Configuration loading & defaults
	configFilePath := os.Getenv(configFileEnv)
	if configFilePath == "" {
		configFilePath = "config.yaml"
	}
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	// Subcommands
	cmd.AddCommand(
		cmdLambda(),
		cmdService(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapCount)
	bindEnvMap(cmd, envMapDuration)
	bindEnvMap(cmd, lambdaEnvMapString)
	bindEnvMap(cmd, svcEnvMapString)
	bindEnvMap(cmd, svcEnvMapDuration)
}

// setup wires the handler and its runtime from the loaded configuration.
func setup(ctx context.Context) (*runtime.Runtime, error) {
	var (
		awsController *awsctl.Controller
		secretGetter  destination.SecretGetter
		err           error
	)
	if config.Slack.WebhookSource == destination.SourceSSM || config.Archive.S3.Enabled {
		logger.Debug("creating AWS controller...")
		awsController, err = awsctl.NewController(
			awsctl.WithContext(ctx),
			awsctl.WithLogger(logger.With("component", "aws-controller")))
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS controller: %w", err)
		}
		secretGetter = awsController
	}

	resolver, err := destination.New(config.Slack.WebhookSource, config.Slack.WebhookURL, config.Slack.SSMKey, secretGetter)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved destination source", slog.String("source", config.Slack.WebhookSource))

	opts := []handler.Option{
		handler.WithLogger(logger.With("component", "handler")),
		handler.WithResolver(resolver),
		handler.WithSender(notifier.NewSlack(
			notifier.WithLogger(logger.With("component", "notifier")),
			notifier.WithTimeout(config.Slack.Timeout))),
		handler.WithMetrics(metrics.Prometheus{}),
	}
	if config.Archive.S3.Enabled {
		opts = append(opts, handler.WithArchive(awsController, config.Archive.S3.BucketName))
	}

	logger.Debug("creating handler...")
	hdl, err := handler.NewHandler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create handler: %w", err)
	}

	logger.Debug("creating runtime...")
	return runtime.NewRuntime(hdl,
		runtime.WithLogger(logger.With("component", "runtime")),
		runtime.WithPayloadType(config.Lambda.PayloadType)), nil
}
