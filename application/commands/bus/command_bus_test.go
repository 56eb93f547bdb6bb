package bus

import (
	"context"
	"errors"
	"testing"

	"rollouthq/application/ports/mocks"
	pkgerrors "rollouthq/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingCommand struct{ valid bool }

func (c pingCommand) Validate() error {
	if !c.valid {
		return pkgerrors.NewValidationError("ping invalid")
	}
	return nil
}

func TestCommandBus_SendReturnsResult(t *testing.T) {
	metrics := new(mocks.MetricsRecorder)
	metrics.On("RecordOperation", mock.Anything, "pingCommand", mock.AnythingOfType("time.Duration"), nil).Return()

	b := NewCommandBus(LoggingMiddleware(zap.NewNop()), MetricsMiddleware(metrics))
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return "pong", nil
	})))

	result, err := b.Send(context.Background(), pingCommand{valid: true})
	require.NoError(t, err)
	assert.Equal(t, "pong", result)
	metrics.AssertExpectations(t)
}

func TestCommandBus_ValidationKeepsAppError(t *testing.T) {
	b := NewCommandBus()
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		t.Fatal("handler must not run")
		return nil, nil
	})))

	_, err := b.Send(context.Background(), pingCommand{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, "ping invalid", pkgerrors.GetAppError(err).Message)
}

func TestCommandBus_DuplicateAndMissing(t *testing.T) {
	b := NewCommandBus()
	h := CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) { return nil, nil })
	require.NoError(t, b.Register(pingCommand{}, h))
	assert.Error(t, b.Register(pingCommand{}, h))

	empty := NewCommandBus()
	_, err := empty.Send(context.Background(), pingCommand{valid: true})
	assert.True(t, errors.Is(err, ErrHandlerNotFound))
}

func TestPipeline_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}
	h := NewPipeline(mw("outer"), mw("inner")).Execute(CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		order = append(order, "handler")
		return nil, nil
	}))

	_, _ = h.Handle(context.Background(), pingCommand{valid: true})
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
