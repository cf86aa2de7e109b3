package lambdaproxy

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

const (
	// WarmupSource identifies scheduled warmup events.
	WarmupSource = "warmup"

	// WarmupDelay keeps this instance busy long enough for the
	// self-invocations to land on other instances.
	WarmupDelay = 75 * time.Millisecond
)

// WarmupEvent is the scheduled warmup payload.
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse is returned for warmup events.
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// Invoker invokes a Lambda function. Implemented by *lambda.Client.
type Invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// NewInvoker builds a Lambda client from the default AWS credential chain.
func NewInvoker(ctx context.Context) (*lambdasdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return lambdasdk.NewFromConfig(cfg), nil
}

// IsWarmupEvent reports whether event is a warmup event. A missing or
// non-numeric concurrency counts as zero.
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var head struct {
		Source      string          `json:"source"`
		Concurrency json.RawMessage `json:"concurrency"`
	}
	if err := json.Unmarshal(event, &head); err != nil || head.Source != WarmupSource {
		return nil, false
	}

	warmup := &WarmupEvent{Source: WarmupSource}
	var n float64
	if json.Unmarshal(head.Concurrency, &n) == nil && n > 0 {
		warmup.Concurrency = int(n)
	}
	return warmup, true
}

// HandleWarmup answers a warmup event, self-invoking warmup.Concurrency
// copies first. Invocation failures are logged and do not fail the event.
func (h *Handler) HandleWarmup(ctx context.Context, warmup *WarmupEvent) WarmupResponse {
	warmed := 1
	if warmup.Concurrency > 0 && h.invoker != nil {
		invoked, err := h.selfInvoke(ctx, warmup.Concurrency)
		if err != nil {
			h.logger.Warn("warmup self-invoke failed", "requested", warmup.Concurrency, "invoked", invoked, "err", err)
		}
		warmed += invoked
	}

	time.Sleep(h.warmupDelay)
	h.logger.Debug("warm", "instances", warmed)
	return WarmupResponse{Status: "warm", InstancesWarmed: warmed}
}

// selfInvoke fires count asynchronous invocations of this function. Child
// payloads carry concurrency 0 so they never fan out again.
func (h *Handler) selfInvoke(ctx context.Context, count int) (int, error) {
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return 0, err
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		errs []error
	)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.invoker.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(h.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			ok++
		}()
	}
	wg.Wait()
	return ok, errors.Join(errs...)
}
