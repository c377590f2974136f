// Package runtime adapts the hosting platforms (API Gateway, Lambda function URLs, EventBridge and plain HTTP)
// to the status handler.
package runtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/isometry/sonar-slack-bridge/internal/handler"
	"github.com/isometry/sonar-slack-bridge/internal/helpers"
	"github.com/isometry/sonar-slack-bridge/internal/models"
	"github.com/pkg/errors"
)

// Supported Lambda payload types.
const (
	PayloadAPIGatewayV1 = "api-gateway-v1"
	PayloadAPIGatewayV2 = "api-gateway-v2"
	PayloadLambdaURL    = "lambda-url"
)

// Processor handles one inbound request.
type Processor interface {
	Process(ctx context.Context, req models.Request) (models.Response, error)
}

type Option func(*Runtime)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithPayloadType sets the Lambda invocation payload format.
func WithPayloadType(payloadType string) Option {
	return func(r *Runtime) {
		r.payloadType = payloadType
	}
}

type Runtime struct {
	processor   Processor
	logger      *slog.Logger
	payloadType string
}

var _ Processor = (*handler.Handler)(nil)

// NewRuntime creates a new runtime instance
func NewRuntime(processor Processor, opts ...Option) *Runtime {
	_inst := &Runtime{processor: processor, payloadType: PayloadAPIGatewayV1}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// Lambda is the Lambda handler for HTTP-shaped invocations. Handler failures are reported through
// the response only; an error is returned solely for undecodable invocations.
func (r *Runtime) Lambda(ctx context.Context, payload json.RawMessage) (any, error) {
	r.logger.Info("received lambda invocation", slog.String("payloadType", r.payloadType))

	switch r.payloadType {
	case PayloadAPIGatewayV1:
		var req events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v1 request")
		}
		result := r.process(ctx, req.RequestContext.RequestID, req.Body, req.IsBase64Encoded, req.Headers)
		return events.APIGatewayProxyResponse{
			Body:       result.Body,
			Headers:    result.Headers,
			StatusCode: result.StatusCode,
		}, nil
	case PayloadAPIGatewayV2:
		var req events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v2 request")
		}
		result := r.process(ctx, req.RequestContext.RequestID, req.Body, req.IsBase64Encoded, req.Headers)
		return events.APIGatewayV2HTTPResponse{
			Body:       result.Body,
			Headers:    result.Headers,
			StatusCode: result.StatusCode,
		}, nil
	case PayloadLambdaURL:
		var req events.LambdaFunctionURLRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, errors.Wrap(err, "failed to decode Lambda function URL request")
		}
		result := r.process(ctx, req.RequestContext.RequestID, req.Body, req.IsBase64Encoded, req.Headers)
		return events.LambdaFunctionURLResponse{
			Body:       result.Body,
			Headers:    result.Headers,
			StatusCode: result.StatusCode,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported lambda payload type: %s", r.payloadType)
	}
}

// LambdaForEvent is the Lambda handler for EventBridge invocations. The event detail is the inbound body.
// Handler failures are logged and reported in the response only, so asynchronous invocation never retries a send.
func (r *Runtime) LambdaForEvent(ctx context.Context, event models.Event) (models.Response, error) {
	r.logger.Info("received EventBridge event", slog.String("source", event.Source), slog.String("detailType", event.DetailType))

	id := event.ID
	if id == "" {
		id = requestID(ctx)
	}
	var body *string
	if detail := strings.TrimSpace(string(event.Detail)); detail != "" && detail != "null" {
		body = &detail
	}
	result, err := r.processor.Process(ctx, models.Request{ID: id, Body: body})
	r.logger.Info("handled event", slog.Int("statusCode", result.StatusCode), slog.String("outcome", handler.Outcome(err)))
	return result, nil
}

// ServeHTTP is the HTTP handler for the runtime
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.logger.Debug("rejecting HTTP request...", slog.Any("requestor", req.RemoteAddr), "reason", "method not allowed", slog.Any("method", req.Method))
		resp.Header().Set("Allow", http.MethodPost)
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusMethodNotAllowed}, resp)
		return
	}

	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("path", req.URL.Path))
	headers := make(map[string]string)
	for k, v := range req.Header {
		headers[strings.ToLower(k)] = v[0]
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusInternalServerError}, resp)
		return
	}

	id := headers["x-request-id"]
	if id == "" {
		id = uuid.NewString()
	}
	result, _ := r.processor.Process(req.Context(), models.Request{ID: id, Body: optional(string(body)), Headers: headers})
	helpers.RespondHTTP(result, resp)
}

func (r *Runtime) process(ctx context.Context, id, body string, base64Encoded bool, headers map[string]string) models.Response {
	if id == "" {
		id = requestID(ctx)
	}
	if base64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			r.logger.Warn("failed to decode base64 body", slog.Any("error", err))
		} else {
			body = string(decoded)
		}
	}
	lch := make(map[string]string, len(headers))
	for k, v := range headers {
		lch[strings.ToLower(k)] = v
	}

	result, err := r.processor.Process(ctx, models.Request{ID: id, Body: optional(body), Headers: lch})
	r.logger.Info("handled event", slog.Int("statusCode", result.StatusCode), slog.String("outcome", handler.Outcome(err)))
	return result
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}

func optional(body string) *string {
	if body == "" {
		return nil
	}
	return &body
}
