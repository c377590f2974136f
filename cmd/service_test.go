package cmd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/isometry/sonar-slack-bridge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServeMux(t *testing.T) {
	config.Service.Path = "/webhook"
	config.Service.MetricsPath = "/metrics"

	webhook := http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusAccepted)
	})
	srv := httptest.NewServer(newServeMux(webhook))
	defer srv.Close()

	testCases := []struct {
		Name           string
		Method         string
		Path           string
		ExpectedStatus int
		ExpectedBody   string
	}{
		{
			Name:           "webhook",
			Method:         http.MethodPost,
			Path:           "/webhook",
			ExpectedStatus: http.StatusAccepted,
		},
		{
			Name:           "health",
			Method:         http.MethodGet,
			Path:           "/healthz",
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `{"message":"ok"}`,
		},
		{
			Name:           "metrics",
			Method:         http.MethodGet,
			Path:           "/metrics",
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   "# HELP",
		},
		{
			Name:           "unknown",
			Method:         http.MethodGet,
			Path:           "/other",
			ExpectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req, err := http.NewRequest(tc.Method, srv.URL+tc.Path, strings.NewReader(`{"status":"OK"}`))
			require.NoError(t, err)
			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tc.ExpectedStatus, resp.StatusCode)
			assert.Contains(t, string(body), tc.ExpectedBody)
		})
	}
}
