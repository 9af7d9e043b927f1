package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		env     string
		level   string
		wantErr bool
		enabled zapcore.Level
	}{
		{env: "prod", enabled: zapcore.InfoLevel},
		{env: "local", enabled: zapcore.DebugLevel},
		{env: "prod", level: "debug", enabled: zapcore.DebugLevel},
		{env: "staging", wantErr: true},
		{env: "local", level: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.level, func(t *testing.T) {
			l, err := NewLogger(tt.env, tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !l.Core().Enabled(tt.enabled) {
				t.Errorf("level %s should be enabled", tt.enabled)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext must never return nil")
	}

	fallback := zap.NewExample()
	if got := FromContextOr(context.Background(), fallback); got != fallback {
		t.Error("expected fallback logger for bare context")
	}

	reqLogger := zap.NewNop().With(zap.String("request_id", "r-1"))
	ctx := ContextWithLogger(context.Background(), reqLogger)
	if got := FromContextOr(ctx, fallback); got != reqLogger {
		t.Error("expected request logger from context")
	}
}
