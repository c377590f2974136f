// Package destination resolves the incoming-webhook URL notifications are delivered to.
// Resolution happens on every call; nothing is cached between invocations.
package destination

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Supported destination sources.
const (
	SourceEnv    = "env"
	SourceStatic = "static"
	SourceSSM    = "ssm"
)

// DefaultEnvVar is the environment variable holding the webhook URL.
const DefaultEnvVar = "SLACK_WEBHOOK_URL"

// Resolver returns the current destination URL. An empty URL means "not configured".
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// SecretGetter fetches a (possibly encrypted) parameter by key.
type SecretGetter interface {
	GetSecret(ctx context.Context, key string, encrypted bool) (string, error)
}

// Env resolves the URL from an environment variable at call time.
type Env string

func (e Env) Resolve(_ context.Context) (string, error) {
	return strings.TrimSpace(os.Getenv(string(e))), nil
}

// Static resolves to a fixed URL.
type Static string

func (s Static) Resolve(_ context.Context) (string, error) {
	return strings.TrimSpace(string(s)), nil
}

// SSM resolves the URL from an SSM Parameter Store SecureString.
type SSM struct {
	Getter SecretGetter
	Key    string
}

func (s *SSM) Resolve(ctx context.Context) (string, error) {
	if s.Key == "" {
		return "", nil
	}
	value, err := s.Getter.GetSecret(ctx, s.Key, true)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve destination from SSM")
	}
	return strings.TrimSpace(value), nil
}

// New builds the resolver for the given source.
func New(source, url, ssmKey string, getter SecretGetter) (Resolver, error) {
	switch strings.TrimSpace(source) {
	case SourceEnv, "":
		return Env(DefaultEnvVar), nil
	case SourceStatic:
		return Static(url), nil
	case SourceSSM:
		if getter == nil {
			return nil, errors.New("ssm destination source requires an SSM client")
		}
		return &SSM{Getter: getter, Key: ssmKey}, nil
	default:
		return nil, fmt.Errorf("unsupported destination source: %s", source)
	}
}
