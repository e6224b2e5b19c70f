package xsentry

import (
	"context"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/tracekit/pkg/observability/xfingerprint"
	"github.com/omeyang/tracekit/pkg/observability/xsampling"
)

func TestBeforeSendSetsFingerprint(t *testing.T) {
	hook := NewBeforeSend(nil)

	event := sentry.NewEvent()
	hint := &sentry.EventHint{
		OriginalException: errors.New("aggregate version 42 conflict"),
	}

	result := hook(event, hint)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Fingerprint)
	assert.Equal(t, "errorString", result.Fingerprint[0],
		"fingerprint should lead with the error type name")
	assert.Contains(t, result.Fingerprint, "aggregate version {number} conflict")
}

func TestBeforeSendStableAcrossVaryingDetails(t *testing.T) {
	hook := NewBeforeSend(nil)

	first := hook(sentry.NewEvent(), &sentry.EventHint{
		OriginalException: errors.New("aggregate version 42 conflict"),
	})
	second := hook(sentry.NewEvent(), &sentry.EventHint{
		OriginalException: errors.New("aggregate version 314 conflict"),
	})

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Fingerprint, second.Fingerprint,
		"events differing only in numerics should group together")
}

func TestBeforeSendWrapperAggregate(t *testing.T) {
	hook := NewBeforeSend(nil)

	err := xfingerprint.NewCommandExecutionError("Order", "order-1", errors.New("boom"))
	result := hook(sentry.NewEvent(), &sentry.EventHint{OriginalException: err})

	require.NotNil(t, result)
	assert.Contains(t, result.Fingerprint, "CommandExecution")
	assert.Contains(t, result.Fingerprint, "Order")
}

func TestBeforeSendTagFallback(t *testing.T) {
	hook := NewBeforeSend(nil)

	event := sentry.NewEvent()
	event.Tags[TagAggregateType] = "Shipment"
	event.Tags[TagAggregateID] = "ship-7"

	result := hook(event, &sentry.EventHint{OriginalException: errors.New("boom")})

	require.NotNil(t, result)
	assert.Contains(t, result.Fingerprint, "Shipment",
		"aggregate type tag should flow into the fingerprint for plain errors")
}

func TestBeforeSendPassThrough(t *testing.T) {
	hook := NewBeforeSend(nil)

	t.Run("nil event", func(t *testing.T) {
		assert.Nil(t, hook(nil, &sentry.EventHint{OriginalException: errors.New("x")}))
	})

	t.Run("nil hint", func(t *testing.T) {
		event := sentry.NewEvent()
		result := hook(event, nil)
		require.NotNil(t, result)
		assert.Empty(t, result.Fingerprint, "no exception means default grouping")
	})

	t.Run("no original exception", func(t *testing.T) {
		event := sentry.NewEvent()
		result := hook(event, &sentry.EventHint{})
		require.NotNil(t, result)
		assert.Empty(t, result.Fingerprint)
	})
}

func TestBeforeSendCustomGenerator(t *testing.T) {
	gen := xfingerprint.NewGenerator()
	hook := NewBeforeSend(gen)

	result := hook(sentry.NewEvent(), &sentry.EventHint{OriginalException: errors.New("boom")})
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Fingerprint)
}

func TestTracesSamplerDecisionMapping(t *testing.T) {
	span := &sentry.Span{
		TraceID: sentry.TraceID{0x01, 0x02, 0x03, 0x04},
		Name:    "GET /orders",
	}

	keep := NewTracesSampler(xsampling.AlwaysKeep())
	assert.Equal(t, 1.0, keep(sentry.SamplingContext{Span: span}))

	drop := NewTracesSampler(xsampling.AlwaysDrop())
	assert.Equal(t, 0.0, drop(sentry.SamplingContext{Span: span}))
}

func TestTracesSamplerParameterMapping(t *testing.T) {
	var captured xsampling.Params
	probe := xsampling.SamplerFunc(func(_ context.Context, p xsampling.Params) xsampling.Decision {
		captured = p
		return xsampling.Keep
	})

	sampler := NewTracesSampler(probe)

	t.Run("name preferred", func(t *testing.T) {
		span := &sentry.Span{
			TraceID: sentry.TraceID{0xab, 0xcd},
			Name:    "checkout",
			Op:      "http.server",
		}
		sampler(sentry.SamplingContext{Span: span})
		assert.Equal(t, span.TraceID.String(), captured.TraceID)
		assert.Equal(t, "checkout", captured.SpanName)
	})

	t.Run("op fallback", func(t *testing.T) {
		span := &sentry.Span{Op: "http.server"}
		sampler(sentry.SamplingContext{Span: span})
		assert.Equal(t, "http.server", captured.SpanName)
	})
}

func TestTracesSamplerDegradedInputs(t *testing.T) {
	t.Run("nil inner keeps all", func(t *testing.T) {
		sampler := NewTracesSampler(nil)
		assert.Equal(t, 1.0, sampler(sentry.SamplingContext{Span: &sentry.Span{}}))
	})

	t.Run("nil span keeps", func(t *testing.T) {
		sampler := NewTracesSampler(xsampling.AlwaysDrop())
		assert.Equal(t, 1.0, sampler(sentry.SamplingContext{}),
			"missing span context should not drop the transaction")
	})
}

func TestTracesSamplerDeterministic(t *testing.T) {
	ps, err := xsampling.NewProbabilitySampler(0.5)
	require.NoError(t, err)
	sampler := NewTracesSampler(ps)

	span := &sentry.Span{TraceID: sentry.TraceID{0x10, 0x20, 0x30}}
	first := sampler(sentry.SamplingContext{Span: span})
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, sampler(sentry.SamplingContext{Span: span}))
	}
}
