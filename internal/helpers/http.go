package helpers

import (
	"net/http"

	"github.com/isometry/sonar-slack-bridge/internal/models"
)

// RespondHTTP writes a handler response to an HTTP response writer.
// The body is expected to be JSON already; a zero status code is written as 200.
func RespondHTTP(response models.Response, rw http.ResponseWriter) {
	for k, v := range response.Headers {
		rw.Header().Set(k, v)
	}
	if rw.Header().Get("Content-Type") == "" {
		rw.Header().Set("Content-Type", "application/json")
	}
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	rw.WriteHeader(statusCode)
	_, _ = rw.Write([]byte(response.Body))
}
