package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/todos/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("TODOS_OTEL_ENDPOINT", "")
	t.Setenv("TODOS_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("TODOS_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("TODOS_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsMalformedEnabledFlag(t *testing.T) {
	t.Setenv("TODOS_OTEL_ENABLED", "maybe")

	if _, err := otel.Setup(context.Background(), "test-service"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSetupWithConfig_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export happens.
	cfg := otel.Config{Endpoint: "http://192.0.2.1:4318", Enabled: true}

	shutdown, err := otel.SetupWithConfig(context.Background(), "test-service", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestConfigActive(t *testing.T) {
	t.Parallel()

	if (otel.Config{Enabled: true}).Active() {
		t.Fatal("config without endpoint should be inactive")
	}
	if (otel.Config{Endpoint: "http://x", Enabled: false}).Active() {
		t.Fatal("disabled config should be inactive")
	}
	if !(otel.Config{Endpoint: "http://x", Enabled: true}).Active() {
		t.Fatal("enabled config with endpoint should be active")
	}
}
