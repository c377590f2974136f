package cmd

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/isometry/sonar-slack-bridge/internal/config"
	"github.com/isometry/sonar-slack-bridge/internal/helpers"
	"github.com/isometry/sonar-slack-bridge/internal/metrics"
	"github.com/isometry/sonar-slack-bridge/internal/models"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const healthPath = "/healthz"

func cmdService() *cobra.Command {
	return &cobra.Command{
		Use:         "service",
		Aliases:     []string{"s", "serve", "standalone", "server"},
		Short:       "Run as a standalone HTTP service",
		Annotations: map[string]string{modeAnnotation: config.ModeService},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runService(cmd)
		},
	}
}

func runService(cmd *cobra.Command) error {
	logger.Info("Spawning...")

	rt, err := setup(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "failed to setup service")
	}

	logger.Debug("Creating HTTP server...")
	s := &http.Server{
		Handler:      newServeMux(rt),
		Addr:         net.JoinHostPort(config.Service.Addr, config.Service.Port),
		WriteTimeout: config.Service.Timeout,
		ReadTimeout:  config.Service.Timeout,
		IdleTimeout:  config.Service.Timeout,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving...", "address", s.Addr, "path", config.Service.Path, "timeout", config.Service.Timeout.String())
		errCh <- s.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

func newServeMux(rt http.Handler) *http.ServeMux {
	h := http.NewServeMux()
	h.Handle(config.Service.Path, rt)
	if config.Service.MetricsPath != "" {
		h.Handle(config.Service.MetricsPath, metrics.Handler())
	}
	h.HandleFunc(healthPath, func(rw http.ResponseWriter, _ *http.Request) {
		helpers.RespondHTTP(models.Response{Body: `{"message":"ok"}`, StatusCode: http.StatusOK}, rw)
	})
	return h
}
