package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/isometry/sonar-slack-bridge/internal/models"
	"github.com/isometry/sonar-slack-bridge/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlack_Send(t *testing.T) {
	testCases := []struct {
		Name          string
		Text          string
		Status        int
		ExpectedText  any
		ExpectedError any
	}{
		{
			Name:         "accepted",
			Text:         "OK",
			Status:       http.StatusOK,
			ExpectedText: "OK",
		},
		{
			Name:         "empty_text_omits_field",
			Text:         "",
			Status:       http.StatusOK,
			ExpectedText: nil,
		},
		{
			Name:         "accepted_async",
			Text:         "OK",
			Status:       http.StatusAccepted,
			ExpectedText: "OK",
		},
		{
			Name:         "accepted_no_content",
			Text:         "OK",
			Status:       http.StatusNoContent,
			ExpectedText: "OK",
		},
		{
			Name:          "redirect",
			Text:          "OK",
			Status:        http.StatusMultipleChoices,
			ExpectedText:  "OK",
			ExpectedError: &notifier.TransportError{},
		},
		{
			Name:          "rejected",
			Text:          "ERROR",
			Status:        http.StatusNotFound,
			ExpectedText:  "ERROR",
			ExpectedError: &notifier.TransportError{},
		},
		{
			Name:          "server_error",
			Text:          "ERROR",
			Status:        http.StatusInternalServerError,
			ExpectedText:  "ERROR",
			ExpectedError: &notifier.TransportError{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				var payload map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				text, found := payload["text"]
				assert.Equal(t, tc.ExpectedText != nil, found)
				assert.Equal(t, tc.ExpectedText, text)
				w.WriteHeader(tc.Status)
			}))
			defer srv.Close()

			err := notifier.NewSlack(notifier.WithHTTPClient(srv.Client())).
				Send(context.Background(), srv.URL, models.Message{Text: tc.Text})

			assert.EqualValues(t, 1, calls.Load())
			if tc.ExpectedError == nil {
				assert.NoError(t, err)
			} else {
				var transportErr *notifier.TransportError
				assert.ErrorAs(t, err, &transportErr)
			}
		})
	}
}

func TestSlack_Send_Payload(t *testing.T) {
	testCases := []struct {
		Name     string
		Text     string
		Expected string
	}{
		{
			Name:     "text",
			Text:     "OK",
			Expected: `{"text":"OK","replace_original":false,"delete_original":false}`,
		},
		{
			Name:     "empty_text",
			Text:     "",
			Expected: `{"replace_original":false,"delete_original":false}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var raw []byte
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var err error
				raw, err = io.ReadAll(r.Body)
				assert.NoError(t, err)
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			err := notifier.NewSlack(notifier.WithHTTPClient(srv.Client())).
				Send(context.Background(), srv.URL, models.Message{Text: tc.Text})

			require.NoError(t, err)
			assert.Equal(t, tc.Expected, string(raw))
		})
	}
}

func TestSlack_Send_MissingURL(t *testing.T) {
	err := notifier.NewSlack().Send(context.Background(), "", models.Message{Text: "OK"})

	var missing *notifier.MissingConfigurationError
	assert.ErrorAs(t, err, &missing)
}

func TestSlack_Send_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := notifier.NewSlack(notifier.WithTimeout(time.Second)).Send(context.Background(), url, models.Message{Text: "OK"})

	var transportErr *notifier.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.NotNil(t, errors.Unwrap(err))
}
