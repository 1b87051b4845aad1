package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"erp-agent-nexus/internal/constant"
	"erp-agent-nexus/internal/dto"
	"erp-agent-nexus/internal/entity"
	"erp-agent-nexus/internal/mapper"
	"erp-agent-nexus/internal/pkg/logger"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-playground/validator/v10"
)

const logModule = "ChatResolver"

type Config struct {
	Timeout              time.Duration // Per primary attempt
	MaxRetries           uint          // Extra primary attempts; 0 disables retrying
	RetryInitialInterval time.Duration
}

// Result always carries a response. The errors explain how it was obtained.
type Result struct {
	Response    *entity.AssistantResponse
	State       State // Last state before Done
	Trace       []State
	PrimaryErr  error
	FallbackErr error
}

// Resolver answers a query from the primary source, falling back to the
// secondary one and finally to a terminal error message.
type Resolver struct {
	primary  Source
	fallback Source
	validate *validator.Validate
	mapper   *mapper.ChatMapper
	logger   logger.ILogger
	config   Config
	now      func() time.Time
}

func New(primary, fallback Source, chatMapper *mapper.ChatMapper, log logger.ILogger, cfg Config) *Resolver {
	return &Resolver{
		primary:  primary,
		fallback: fallback,
		validate: validator.New(),
		mapper:   chatMapper,
		logger:   log,
		config:   cfg,
		now:      time.Now,
	}
}

type run struct {
	r     *Resolver
	q     Query
	trace []State
}

func (x *run) enter(s State, details map[string]interface{}) {
	from := StateIdle
	if len(x.trace) > 0 {
		from = x.trace[len(x.trace)-1]
	}
	x.trace = append(x.trace, s)
	if details == nil {
		details = map[string]interface{}{}
	}
	details["from"] = string(from)
	details["to"] = string(s)
	details["role_id"] = x.q.RoleId
	x.r.logger.Debug(logModule, "Resolver transition", details)
}

// Resolve never returns an error. Cancelling ctx does not abort a resolution
// that already started; the caller's session must still receive a reply.
func (r *Resolver) Resolve(ctx context.Context, q Query) *Result {
	ctx = context.WithoutCancel(ctx)
	x := &run{r: r, q: q, trace: []State{StateIdle}}
	x.enter(StateDispatching, map[string]interface{}{"simulation_mode": q.SimulationMode})

	res := &Result{}

	if !q.SimulationMode {
		resp, err := r.callPrimary(ctx, q)
		if err == nil {
			x.enter(StateRemoteSucceeded, map[string]interface{}{"source": r.primary.Name()})
			res.Response = r.mapper.ChatBackendResponseToEntity(resp, constant.ResponseSourceRemote, r.now())
			return r.finish(x, res, StateRemoteSucceeded)
		}
		res.PrimaryErr = err
		x.enter(StateRemoteFailed, map[string]interface{}{"error": err.Error()})
		r.logger.Warn(logModule, "Remote chat backend unavailable, using fallback", map[string]interface{}{
			"source": r.primary.Name(),
			"error":  err.Error(),
		})
	}

	resp, err := r.callFallback(ctx, q)
	if err != nil {
		res.FallbackErr = err
		x.enter(StateFallbackFailed, map[string]interface{}{"error": err.Error()})

		cause := res.PrimaryErr
		if cause == nil {
			cause = err
		}
		r.logger.Error(logModule, "Fallback source failed", map[string]interface{}{
			"source":        r.fallback.Name(),
			"error":         err.Error(),
			"primary_error": errString(res.PrimaryErr),
		})
		res.Response = &entity.AssistantResponse{
			Content:          fmt.Sprintf(constant.SystemErrorTemplate, cause.Error()),
			Source:           constant.ResponseSourceError,
			SuggestedPrompts: []string{},
			ActionItems:      []entity.ActionItem{},
			Visualizations:   []entity.Visualization{},
			Documents:        []entity.Document{},
			Notifications:    []entity.Notification{},
		}
		return r.finish(x, res, StateFallbackFailed)
	}

	x.enter(StateFallbackSucceeded, map[string]interface{}{"source": r.fallback.Name()})
	if q.SimulationMode {
		res.Response = r.mapper.ChatBackendResponseToEntity(resp, constant.ResponseSourceSimulated, r.now())
	} else {
		res.Response = r.mapper.ChatBackendResponseToEntity(resp, constant.ResponseSourceFallback, r.now())
		res.Response.Content = constant.OfflineModeNotice + res.Response.Content
	}
	return r.finish(x, res, StateFallbackSucceeded)
}

func (r *Resolver) finish(x *run, res *Result, last State) *Result {
	x.enter(StateDone, nil)
	res.State = last
	res.Trace = x.trace
	return res
}

func (r *Resolver) callPrimary(ctx context.Context, q Query) (*dto.ChatBackendResponse, error) {
	if r.primary == nil {
		return nil, errors.New("no primary source configured")
	}

	attempt := 0
	op := func() (*dto.ChatBackendResponse, error) {
		attempt++
		attemptCtx := ctx
		if r.config.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, r.config.Timeout)
			defer cancel()
		}

		resp, err := r.primary.Respond(attemptCtx, q)
		if err == nil {
			err = r.check(resp)
		}
		if err != nil {
			r.logger.Debug(logModule, "Primary attempt failed", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
			var re Retryable
			if errors.As(err, &re) && !re.Retryable() {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return resp, nil
	}

	b := backoff.NewExponentialBackOff()
	if r.config.RetryInitialInterval > 0 {
		b.InitialInterval = r.config.RetryInitialInterval
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(r.config.MaxRetries+1),
	)
}

// callFallback converts a panicking fallback into an error.
func (r *Resolver) callFallback(ctx context.Context, q Query) (resp *dto.ChatBackendResponse, err error) {
	if r.fallback == nil {
		return nil, errors.New("no fallback source configured")
	}

	defer func() {
		if p := recover(); p != nil {
			resp = nil
			err = fmt.Errorf("fallback panicked: %v", p)
		}
	}()

	resp, err = r.fallback.Respond(ctx, q)
	if err == nil {
		err = r.check(resp)
	}
	return resp, err
}

func (r *Resolver) check(resp *dto.ChatBackendResponse) error {
	if resp == nil {
		return &InvalidResponseError{Err: errors.New("empty response")}
	}
	if err := r.validate.Struct(resp); err != nil {
		return &InvalidResponseError{Err: err}
	}
	return nil
}

// InvalidResponseError reports a body that decoded but does not have the expected shape.
type InvalidResponseError struct {
	Err error
}

func (e *InvalidResponseError) Error() string {
	return "invalid response: " + e.Err.Error()
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

func (e *InvalidResponseError) Retryable() bool { return false }

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
