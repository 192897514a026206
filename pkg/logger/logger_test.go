package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "production json",
			config: Config{Level: "info", Encoding: "json"},
		},
		{
			name:   "development console",
			config: Config{Level: "debug", Development: true, Encoding: "console"},
		},
		{
			name:   "invalid level falls back to info",
			config: Config{Level: "shouting", Encoding: "json"},
		},
		{
			name:   "empty config",
			config: Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && logger == nil {
				t.Fatal("New() returned nil logger")
			}
			if logger != nil {
				logger.Sync()
			}
		})
	}
}

func TestNew_LevelApplied(t *testing.T) {
	logger, err := New(Config{Level: "warn", Encoding: "json"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("Default() returned nil")
	}
}

func TestWithContext(t *testing.T) {
	logger, err := New(Config{Level: "info", Encoding: "json"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	child := WithContext(logger, zap.String("request_id", "abc-123"))
	if child == nil {
		t.Fatal("WithContext() returned nil")
	}
	if child == logger {
		t.Error("WithContext() should return a derived logger")
	}
}
