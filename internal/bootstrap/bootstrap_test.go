package bootstrap_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/bootstrap"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingAuditLogger struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingAuditLogger) Log(ctx context.Context, entry bootstrap.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, entry.Action)
}

func (r *recordingAuditLogger) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.actions...)
}

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	audit := bootstrap.NewStdoutAuditLogger(zap.New(core))

	audit.Log(context.Background(), bootstrap.AuditLog{
		Action:  "SERVER_START",
		Message: "Server is starting",
		Meta:    map[string]any{"port": "3000"},
	})

	entries := logs.Filter(func(e observer.LoggedEntry) bool {
		return e.LoggerName == "audit"
	}).All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "SERVER_START", fields["action"])
		assert.Equal(t, "Server is starting", fields["message"])
		assert.NotEmpty(t, fields["timestamp"])
	}
}

func TestStartHTTPServer_StopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &recordingAuditLogger{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- bootstrap.StartHTTPServer(ctx, gin.New(), bootstrap.ServerConfig{Port: "0"}, audit)
	}()

	assert.Eventually(t, func() bool { return len(audit.Actions()) == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{"SERVER_START", "SERVER_SHUTDOWN"}, audit.Actions())
}
