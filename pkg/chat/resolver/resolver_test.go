package resolver

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"erp-agent-nexus/internal/constant"
	"erp-agent-nexus/internal/dto"
	"erp-agent-nexus/internal/mapper"
	"erp-agent-nexus/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	name  string
	calls atomic.Int32
	fn    func(ctx context.Context, attempt int32, q Query) (*dto.ChatBackendResponse, error)
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Respond(ctx context.Context, q Query) (*dto.ChatBackendResponse, error) {
	n := f.calls.Add(1)
	return f.fn(ctx, n, q)
}

type permanentErr struct{}

func (permanentErr) Error() string   { return "bad request" }
func (permanentErr) Retryable() bool { return false }

func answer(content string) func(context.Context, int32, Query) (*dto.ChatBackendResponse, error) {
	return func(context.Context, int32, Query) (*dto.ChatBackendResponse, error) {
		return &dto.ChatBackendResponse{Content: content, SuggestedPrompts: []string{"next"}}, nil
	}
}

func fail(msg string) func(context.Context, int32, Query) (*dto.ChatBackendResponse, error) {
	return func(context.Context, int32, Query) (*dto.ChatBackendResponse, error) {
		return nil, errors.New(msg)
	}
}

func newResolver(primary, fallback Source, cfg Config) *Resolver {
	return New(primary, fallback, mapper.NewChatMapper(), logger.NewNopLogger(), cfg)
}

func TestResolveRemoteSuccess(t *testing.T) {
	primary := &fakeSource{name: "remote", fn: answer("Hello from the backend")}
	fallback := &fakeSource{name: "simulator", fn: answer("unused")}

	res := newResolver(primary, fallback, Config{}).Resolve(context.Background(), Query{Text: "hi"})

	assert.Equal(t, StateRemoteSucceeded, res.State)
	assert.Equal(t, []State{StateIdle, StateDispatching, StateRemoteSucceeded, StateDone}, res.Trace)
	assert.Equal(t, "Hello from the backend", res.Response.Content)
	assert.Equal(t, constant.ResponseSourceRemote, res.Response.Source)
	assert.Equal(t, []string{"next"}, res.Response.SuggestedPrompts)
	assert.NotNil(t, res.Response.ActionItems)
	assert.NotNil(t, res.Response.Documents)
	assert.Zero(t, fallback.calls.Load())
}

func TestResolveFallsBackWithOfflineNotice(t *testing.T) {
	primary := &fakeSource{name: "remote", fn: fail("connection refused")}
	fallback := &fakeSource{name: "simulator", fn: answer("Simulated answer")}

	res := newResolver(primary, fallback, Config{}).Resolve(context.Background(), Query{Text: "hi"})

	assert.Equal(t, StateFallbackSucceeded, res.State)
	assert.Equal(t, []State{StateIdle, StateDispatching, StateRemoteFailed, StateFallbackSucceeded, StateDone}, res.Trace)
	assert.Equal(t, constant.OfflineModeNotice+"Simulated answer", res.Response.Content)
	assert.Equal(t, constant.ResponseSourceFallback, res.Response.Source)
	assert.EqualError(t, res.PrimaryErr, "connection refused")
}

func TestResolveBothFail(t *testing.T) {
	primary := &fakeSource{name: "remote", fn: fail("Server Error (503)")}
	fallback := &fakeSource{name: "simulator", fn: fail("generator broke")}

	res := newResolver(primary, fallback, Config{}).Resolve(context.Background(), Query{Text: "hi"})

	assert.Equal(t, StateFallbackFailed, res.State)
	assert.Equal(t, constant.ResponseSourceError, res.Response.Source)
	assert.Equal(t,
		"⚠️ **System Error**: Could not connect to backend AND mock fallback failed. (Server Error (503))",
		res.Response.Content)
	assert.Empty(t, res.Response.SuggestedPrompts)
	assert.NotNil(t, res.Response.Visualizations)
	assert.EqualError(t, res.FallbackErr, "generator broke")
}

func TestResolveRecoversFallbackPanic(t *testing.T) {
	primary := &fakeSource{name: "remote", fn: fail("timeout")}
	fallback := &fakeSource{name: "simulator", fn: func(context.Context, int32, Query) (*dto.ChatBackendResponse, error) {
		panic("boom")
	}}

	res := newResolver(primary, fallback, Config{}).Resolve(context.Background(), Query{Text: "hi"})

	assert.Equal(t, StateFallbackFailed, res.State)
	assert.Contains(t, res.Response.Content, "(timeout)")
	assert.ErrorContains(t, res.FallbackErr, "boom")
}

func TestResolveSimulationModeSkipsPrimary(t *testing.T) {
	primary := &fakeSource{name: "remote", fn: answer("unused")}
	fallback := &fakeSource{name: "simulator", fn: answer("Simulated answer")}

	res := newResolver(primary, fallback, Config{}).Resolve(context.Background(), Query{Text: "hi", SimulationMode: true})

	assert.Zero(t, primary.calls.Load())
	assert.Equal(t, StateFallbackSucceeded, res.State)
	assert.Equal(t, "Simulated answer", res.Response.Content)
	assert.Equal(t, constant.ResponseSourceSimulated, res.Response.Source)
	assert.Nil(t, res.PrimaryErr)
}

func TestResolveSimulationModeFailureUsesFallbackError(t *testing.T) {
	fallback := &fakeSource{name: "simulator", fn: fail("generator broke")}

	res := newResolver(nil, fallback, Config{}).Resolve(context.Background(), Query{SimulationMode: true})

	assert.True(t, strings.HasSuffix(res.Response.Content, "(generator broke)"))
}

func TestResolveRejectsResponseWithoutContent(t *testing.T) {
	primary := &fakeSource{name: "remote", fn: answer("")}
	fallback := &fakeSource{name: "simulator", fn: answer("Simulated answer")}

	res := newResolver(primary, fallback, Config{MaxRetries: 3, RetryInitialInterval: time.Millisecond}).
		Resolve(context.Background(), Query{Text: "hi"})

	assert.Equal(t, StateFallbackSucceeded, res.State)
	var invalid *InvalidResponseError
	assert.ErrorAs(t, res.PrimaryErr, &invalid)
	// Invalid bodies are not retried.
	assert.Equal(t, int32(1), primary.calls.Load())
}

func TestResolveRetriesPrimary(t *testing.T) {
	primary := &fakeSource{name: "remote", fn: func(ctx context.Context, attempt int32, q Query) (*dto.ChatBackendResponse, error) {
		if attempt < 3 {
			return nil, errors.New("flaky")
		}
		return &dto.ChatBackendResponse{Content: "third time lucky"}, nil
	}}
	fallback := &fakeSource{name: "simulator", fn: answer("unused")}

	res := newResolver(primary, fallback, Config{MaxRetries: 2, RetryInitialInterval: time.Millisecond}).
		Resolve(context.Background(), Query{Text: "hi"})

	require.Equal(t, StateRemoteSucceeded, res.State)
	assert.Equal(t, "third time lucky", res.Response.Content)
	assert.Equal(t, int32(3), primary.calls.Load())
}

func TestResolveDoesNotRetryPermanentErrors(t *testing.T) {
	primary := &fakeSource{name: "remote", fn: func(context.Context, int32, Query) (*dto.ChatBackendResponse, error) {
		return nil, permanentErr{}
	}}
	fallback := &fakeSource{name: "simulator", fn: answer("ok")}

	res := newResolver(primary, fallback, Config{MaxRetries: 5, RetryInitialInterval: time.Millisecond}).
		Resolve(context.Background(), Query{Text: "hi"})

	assert.Equal(t, int32(1), primary.calls.Load())
	assert.EqualError(t, res.PrimaryErr, "bad request")
}

func TestResolveAppliesPerAttemptTimeout(t *testing.T) {
	primary := &fakeSource{name: "remote", fn: func(ctx context.Context, _ int32, _ Query) (*dto.ChatBackendResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	fallback := &fakeSource{name: "simulator", fn: answer("ok")}

	res := newResolver(primary, fallback, Config{Timeout: 10 * time.Millisecond}).
		Resolve(context.Background(), Query{Text: "hi"})

	assert.ErrorIs(t, res.PrimaryErr, context.DeadlineExceeded)
	assert.Equal(t, StateFallbackSucceeded, res.State)
}

func TestResolveIgnoresCallerCancellation(t *testing.T) {
	primary := &fakeSource{name: "remote", fn: func(ctx context.Context, _ int32, _ Query) (*dto.ChatBackendResponse, error) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return &dto.ChatBackendResponse{Content: "still answered"}, nil
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newResolver(primary, &fakeSource{name: "simulator", fn: answer("x")}, Config{}).Resolve(ctx, Query{})
	assert.Equal(t, "still answered", res.Response.Content)
}
