package cmd

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/isometry/sonar-slack-bridge/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdLambda() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Run as an AWS Lambda function",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:         "http",
			Short:       "Handle API Gateway or function URL invocations",
			Annotations: map[string]string{modeAnnotation: config.ModeLambdaHTTP},
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runLambdaHTTP(cmd)
			},
		},
		&cobra.Command{
			Use:         "event",
			Short:       "Handle EventBridge invocations",
			Annotations: map[string]string{modeAnnotation: config.ModeLambdaEvent},
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runLambdaEvent(cmd)
			},
		},
	)

	return cmd
}

func runLambdaHTTP(cmd *cobra.Command) error {
	rt, err := setup(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "failed to setup lambda")
	}

	logger.Info("lambda starting...", "payloadType", config.Lambda.PayloadType)
	lambda.StartWithOptions(rt.Lambda,
		lambda.WithContext(cmd.Context()))

	return nil
}

func runLambdaEvent(cmd *cobra.Command) error {
	rt, err := setup(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "failed to setup lambda")
	}

	logger.Info("lambda starting...")
	lambda.StartWithOptions(rt.LambdaForEvent,
		lambda.WithContext(cmd.Context()))

	return nil
}
