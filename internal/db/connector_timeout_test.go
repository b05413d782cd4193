package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vvka-141/inetl/internal/logging"
	"github.com/vvka-141/inetl/pkg/inetl"
)

// TestConnector_RespectsContextTimeout verifies that the connector respects
// the context timeout passed from the CLI.
func TestConnector_RespectsContextTimeout(t *testing.T) {
	config := &inetl.ConnectionConfig{
		Host:     "nonexistent.invalid",
		Port:     5432,
		Database: "app_db",
		Username: "admin",
		Password: "admin123",
	}

	connector := NewConnector(config, logging.NewNullLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := connector.Connect(ctx)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Expected connection error, got nil")
	}
	if !errors.Is(err, inetl.ErrConnection) {
		t.Errorf("Expected ErrConnection, got %v", err)
	}

	// No retry: the attempt ends with the context
	if elapsed > 2*time.Second {
		t.Errorf("Expected connection to fail within the timeout, took %v", elapsed)
	}
}

// TestConnector_UnreachableServer verifies a refused connection is reported once
// as ErrConnection.
func TestConnector_UnreachableServer(t *testing.T) {
	config := &inetl.ConnectionConfig{
		Host:           "127.0.0.1",
		Port:           1,
		Database:       "app_db",
		Username:       "admin",
		SSLMode:        "disable",
		ConnectTimeout: time.Second,
	}

	_, err := NewConnector(config, logging.NewNullLogger()).Connect(context.Background())
	if !errors.Is(err, inetl.ErrConnection) {
		t.Fatalf("Expected ErrConnection, got %v", err)
	}
	if inetl.ExitCodeForError(err) != inetl.ExitConnectionError {
		t.Errorf("Expected exit code %d, got %d", inetl.ExitConnectionError, inetl.ExitCodeForError(err))
	}
}

func TestNewConnector_PanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for nil config")
		}
	}()
	NewConnector(nil, logging.NewNullLogger())
}
