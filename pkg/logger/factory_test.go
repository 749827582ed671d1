package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinekit/dinekit/pkg/logger"
	"github.com/dinekit/dinekit/pkg/tenancy"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output includes static attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat(logger.FormatJSON),
			logger.WithAttr(slog.String("service", "dinekit")),
		)

		log.Info("hello")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "dinekit", rec["service"])
	})

	t.Run("debug is suppressed at default level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))

		log.Debug("invisible")
		assert.Empty(t, buf.Bytes())
	})

	t.Run("development option enables debug and text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithDevelopment("dinekit"),
			logger.WithOutput(&buf),
		)

		log.Debug("visible")
		assert.Contains(t, buf.String(), "visible")
		assert.Contains(t, buf.String(), "service=dinekit")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			logger.New(logger.WithFormat("yaml"))
		})
	})
}

func TestContextExtraction(t *testing.T) {
	t.Parallel()

	t.Run("tenant and principal ids appear inside a tenant scope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(
				tenancy.LoggerExtractor(),
				tenancy.PrincipalLoggerExtractor(),
			),
		)

		tenant := uuid.New()
		tc, err := tenancy.NewContext(tenancy.Principal{
			ID:           uuid.New(),
			Email:        "manager@resto.example",
			Role:         tenancy.RoleManager,
			OwningTenant: &tenant,
		}, tenancy.NewAllowList())
		require.NoError(t, err)

		ctx := tenancy.WithContext(context.Background(), tc)
		log.InfoContext(ctx, "order created")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, tenant.String(), rec["tenant_id"])
		assert.Equal(t, tc.PrincipalID().String(), rec["principal_id"])
	})

	t.Run("no attrs outside a tenant scope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(tenancy.LoggerExtractor()),
		)

		log.InfoContext(context.Background(), "startup")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		_, present := rec["tenant_id"]
		assert.False(t, present)
	})

	t.Run("nil extractors are ignored", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(nil, tenancy.LoggerExtractor()),
		)

		log.Info("ok")
		assert.NotEmpty(t, buf.Bytes())
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(assert.AnError).Key)

	assert.Equal(t, slog.Attr{}, logger.TenantID(nil))
	assert.Equal(t, "tenant_id", logger.TenantID("t1").Key)

	assert.Equal(t, slog.Attr{}, logger.PrincipalID(nil))
	assert.Equal(t, "principal_id", logger.PrincipalID("p1").Key)

	assert.Equal(t, "operation", logger.Operation("orders.read").Key)
	assert.Equal(t, "component", logger.Component("rls").Key)
}
