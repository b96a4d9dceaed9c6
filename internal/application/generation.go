package application

import (
	"context"
	"errors"
	"strings"

	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/bnema/emergent-chefs/internal/ports"
	"go.uber.org/zap"
)

const (
	FallbackResponse        = "Let me reconsider my approach to this dish..."
	EmptyCompletionResponse = "I need to think about this more..."
)

type ErrorClass string

const (
	ErrorClassTimeout         ErrorClass = "timeout"
	ErrorClassCanceled        ErrorClass = "canceled"
	ErrorClassRateLimited     ErrorClass = "rate_limited"
	ErrorClassAPI             ErrorClass = "api_error"
	ErrorClassEmptyCompletion ErrorClass = "empty_completion"
	ErrorClassTransport       ErrorClass = "transport"
)

func ClassifyGenerationError(err error) ErrorClass {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorClassTimeout
	case errors.Is(err, context.Canceled):
		return ErrorClassCanceled
	case errors.Is(err, domain.ErrRateLimited):
		return ErrorClassRateLimited
	case errors.Is(err, domain.ErrEmptyCompletion):
		return ErrorClassEmptyCompletion
	case errors.Is(err, domain.ErrGeneratorAPI):
		return ErrorClassAPI
	default:
		return ErrorClassTransport
	}
}

// generate calls the generator under the per-call timeout. Any failure is
// replaced by a fallback text unless the run itself was cancelled, in which
// case the turn is abandoned and ctx.Err() is returned.
func (s *Session) generate(ctx context.Context, state *State, turn domain.Turn, req ports.GenerationRequest) (string, bool, error) {
	callCtx := ctx
	if s.settings.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.settings.GenerationTimeout)
		defer cancel()
	}

	text, err := s.generator.Generate(callCtx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = domain.ErrEmptyCompletion
	}
	if err == nil {
		return text, false, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", false, ctxErr
	}

	class := ClassifyGenerationError(err)
	s.logger.Warn("generation failed, using fallback response",
		zap.String("run_id", state.RunID),
		zap.Int("turn", turn.Index),
		zap.String("agent", req.AgentName),
		zap.String("error_class", string(class)),
		zap.Error(err),
	)

	if class == ErrorClassEmptyCompletion {
		return EmptyCompletionResponse, true, nil
	}

	return FallbackResponse, true, nil
}
