package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinekit/dinekit/pkg/audit"
)

func newCapture() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestLogger_Log(t *testing.T) {
	t.Parallel()

	log, buf := newCapture()
	auditLog := audit.NewLogger(log)

	auditLog.Log(context.Background(), "tenant.scope_entered",
		audit.WithResource("connection"),
		audit.WithMetadata("pool", "primary"),
	)

	rec := decode(t, buf)
	assert.Equal(t, "tenant.scope_entered", rec["action"])
	assert.Equal(t, "success", rec["result"])
	assert.Equal(t, "info", rec["severity"])
	assert.Equal(t, "connection", rec["resource"])
	assert.NotEmpty(t, rec["audit_id"])
}

func TestLogger_Security(t *testing.T) {
	t.Parallel()

	log, buf := newCapture()
	auditLog := audit.NewLogger(log)

	auditLog.Security(context.Background(), "rls.clear_failed", errors.New("connection reset"))

	rec := decode(t, buf)
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "rls.clear_failed", rec["action"])
	assert.Equal(t, "failure", rec["result"])
	assert.Equal(t, "critical", rec["severity"])
	assert.Equal(t, "connection reset", rec["error"])
}

func TestLogger_ContextExtractors(t *testing.T) {
	t.Parallel()

	type tenantKey struct{}
	type principalKey struct{}

	log, buf := newCapture()
	auditLog := audit.NewLogger(log,
		audit.WithTenantIDExtractor(func(ctx context.Context) (string, bool) {
			v, ok := ctx.Value(tenantKey{}).(string)
			return v, ok
		}),
		audit.WithPrincipalIDExtractor(func(ctx context.Context) (string, bool) {
			v, ok := ctx.Value(principalKey{}).(string)
			return v, ok
		}),
	)

	ctx := context.WithValue(context.Background(), tenantKey{}, "t-1")
	ctx = context.WithValue(ctx, principalKey{}, "p-1")

	auditLog.LogError(ctx, "access.denied", errors.New("access denied"))

	rec := decode(t, buf)
	assert.Equal(t, "t-1", rec["tenant_id"])
	assert.Equal(t, "p-1", rec["principal_id"])
	assert.Equal(t, "failure", rec["result"])
}

func TestLogger_DropsInvalidEvents(t *testing.T) {
	t.Parallel()

	log, buf := newCapture()
	auditLog := audit.NewLogger(log)

	auditLog.Log(context.Background(), "")

	rec := decode(t, buf)
	assert.Equal(t, "audit event dropped", rec["msg"])
}

func TestEvent_Validate(t *testing.T) {
	t.Parallel()

	e := &audit.Event{}
	assert.ErrorIs(t, e.Validate(), audit.ErrEventValidation)

	e.Action = "rls.bind_failed"
	assert.NoError(t, e.Validate())
}
