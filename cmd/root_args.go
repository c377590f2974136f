package cmd

import (
	"time"

	"github.com/isometry/sonar-slack-bridge/internal/config"
	"github.com/isometry/sonar-slack-bridge/internal/destination"
	"github.com/isometry/sonar-slack-bridge/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'service', 'lambda-http' and 'lambda-event'",
		Short:       helpers.Ptr("m"),
	},
	&config.Slack.WebhookSource: {
		Name:        "slack-webhook-source",
		Description: "Where the destination webhook URL is read from. Supported values are 'env' (SLACK_WEBHOOK_URL at call time), 'static' and 'ssm'",
	},
	&config.Slack.WebhookURL: {
		Name:        "slack-webhook-url",
		Description: "The destination incoming webhook URL used by the 'static' source",
		Env:         helpers.Ptr(destination.DefaultEnvVar),
	},
	&config.Slack.SSMKey: {
		Name:        "slack-webhook-ssm-key",
		Description: "The SSM parameter holding the destination incoming webhook URL",
	},
	&config.Archive.S3.BucketName: {
		Name:        "archive-s3-bucket",
		Description: "The S3 bucket inbound payloads are archived to",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
	&config.Archive.S3.Enabled: {
		Name:        "archive-s3",
		Description: "Enable archiving of inbound payloads to S3",
		Env:         helpers.Ptr("ARCHIVE_S3_ENABLED"),
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Slack.Timeout: {
		Name:        "slack-timeout",
		Description: "The timeout of a single call to the destination webhook",
	},
}
