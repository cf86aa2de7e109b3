// Package lambdaproxy runs the HTTP router inside AWS Lambda.
//
// API Gateway HTTP API (payload v2) events are converted to *http.Request,
// served by the same handler the standalone server uses, and converted back.
// Scheduled warmup events ({"source":"warmup","concurrency":N}) are answered
// directly and fan out N asynchronous self-invocations to keep instances warm.
package lambdaproxy

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/charmbracelet/log"
)

// Handler dispatches raw Lambda events.
type Handler struct {
	router       http.Handler
	invoker      Invoker
	functionName string
	warmupDelay  time.Duration
	logger       *log.Logger
}

// New creates a Handler serving router. invoker may be nil, in which case
// warmup events never self-invoke.
func New(router http.Handler, invoker Invoker, functionName string, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		router:       router,
		invoker:      invoker,
		functionName: functionName,
		warmupDelay:  WarmupDelay,
		logger:       logger,
	}
}

// Handle is the Lambda entry point. Warmup detection runs before any other
// decoding.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (any, error) {
	if warmup, ok := IsWarmupEvent(event); ok {
		return h.HandleWarmup(ctx, warmup), nil
	}

	var req events.APIGatewayV2HTTPRequest
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, fmt.Errorf("decode api gateway event: %w", err)
	}
	return h.ServeEvent(ctx, req)
}

// ServeEvent runs one API Gateway request through the router.
func (h *Handler) ServeEvent(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	req, err := toHTTPRequest(ctx, event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return toEventResponse(rec.Result())
}

// =============================================================================
// Conversion
// =============================================================================

func toHTTPRequest(ctx context.Context, event events.APIGatewayV2HTTPRequest) (*http.Request, error) {
	method := event.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}
	path := event.RawPath
	if path == "" {
		path = event.RequestContext.HTTP.Path
	}
	if path == "" {
		path = "/"
	}

	u := &url.URL{
		Scheme:   "https",
		Host:     event.RequestContext.DomainName,
		RawQuery: event.RawQueryString,
	}
	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return nil, fmt.Errorf("decode path %q: %w", path, err)
	}
	u.Path, u.RawPath = unescaped, path

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		if body, err = base64.StdEncoding.DecodeString(event.Body); err != nil {
			return nil, fmt.Errorf("decode body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range event.Headers {
		req.Header.Set(k, v)
	}
	for _, c := range event.Cookies {
		req.Header.Add("Cookie", c)
	}
	if req.Host == "" {
		req.Host = req.Header.Get("Host")
	}
	req.RemoteAddr = event.RequestContext.HTTP.SourceIP
	req.RequestURI = u.RequestURI()
	return req, nil
}

func toEventResponse(resp *http.Response) (events.APIGatewayV2HTTPResponse, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}

	out := events.APIGatewayV2HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    make(map[string]string, len(resp.Header)),
	}
	for k, vs := range resp.Header {
		if k == "Set-Cookie" {
			out.Cookies = append(out.Cookies, vs...)
			continue
		}
		out.Headers[k] = strings.Join(vs, ",")
	}

	if utf8.Valid(body) {
		out.Body = string(body)
	} else {
		out.Body = base64.StdEncoding.EncodeToString(body)
		out.IsBase64Encoded = true
	}
	return out, nil
}
