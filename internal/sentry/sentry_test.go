package sentry

import (
	"context"
	"errors"
	"testing"

	"github.com/flexprice/propbill/internal/config"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestService_DisabledIsNoop(t *testing.T) {
	svc := NewSentryService(config.GetDefaultConfig(), logger.NewNoopLogger())
	ctx := context.Background()

	assert.NotPanics(t, func() {
		svc.CaptureException(ctx, errors.New("boom"), map[string]string{"customer_id": "cust_1"})
		svc.CaptureMessage(ctx, "cadence not advanced", nil)
		svc.AddBreadcrumb("billing", "run started", nil)
	})

	span, got := svc.StartTransaction(ctx, "billing.run")
	assert.Nil(t, span)
	assert.Equal(t, ctx, got)
	assert.True(t, svc.Flush(0))
}
