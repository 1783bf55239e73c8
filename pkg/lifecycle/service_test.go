package lifecycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edmback/pkg/lifecycle"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{DisableStartupMessage: true})
}

func TestService_RunHooksInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls []string
	err := lifecycle.New("test").
		Addr("127.0.0.1:0").
		ShutdownTimeout(time.Second).
		App(newApp()).
		OnStart(func(*lifecycle.Service) error {
			calls = append(calls, "start")
			return nil
		}).
		OnReady(func(*lifecycle.Service) error {
			calls = append(calls, "ready")
			cancel()
			return nil
		}).
		OnStop(func(*lifecycle.Service) error {
			calls = append(calls, "stop")
			return nil
		}).
		Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"start", "ready", "stop"}, calls)
}

func TestService_StartHookFailure(t *testing.T) {
	boom := errors.New("migrate failed")
	stopped := false

	err := lifecycle.New("test").
		Addr("127.0.0.1:0").
		App(newApp()).
		OnStart(func(*lifecycle.Service) error { return boom }).
		OnStop(func(*lifecycle.Service) error {
			stopped = true
			return nil
		}).
		Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.False(t, stopped)
}

func TestService_RequiresApp(t *testing.T) {
	err := lifecycle.New("test").Run(context.Background())
	assert.Error(t, err)
}
