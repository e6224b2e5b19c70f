package xsentry

import (
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/omeyang/tracekit/pkg/observability/xfingerprint"
	"github.com/omeyang/tracekit/pkg/observability/xsampling"
)

// Sentry 事件标签键。当错误本身不携带聚合上下文时，
// BeforeSend 会从这两个标签兜底读取。
const (
	TagAggregateType = "aggregate_type"
	TagAggregateID   = "aggregate_id"
)

// BeforeSend 是 sentry.ClientOptions.BeforeSend 的函数签名。
type BeforeSend func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event

// Option 配置 BeforeSend 钩子。
type Option func(*hookOptions)

type hookOptions struct {
	logger *slog.Logger
}

// WithLogger 设置降级日志的输出。传入 nil 时忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *hookOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewBeforeSend 返回一个为异常事件写入稳定指纹的 BeforeSend 钩子。
//
// 钩子从 hint.OriginalException 取原始错误，经指纹生成器归一化后
// 覆盖 event.Fingerprint，使同类错误在 Sentry 端聚合为同一个 issue。
// 聚合上下文优先取分类包装错误自带的字段，事件标签
// (aggregate_type / aggregate_id) 仅作兜底。
//
// 设计决策: 钩子永不拦截事件。无论指纹能否生成，事件都原样上报;
// 指纹失败时保留 Sentry 默认分组，宁可分组粗糙也不丢事件。
func NewBeforeSend(gen *xfingerprint.Generator, opts ...Option) BeforeSend {
	options := hookOptions{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if gen == nil {
		gen = xfingerprint.NewGenerator(xfingerprint.WithLogger(options.logger))
	}

	return func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
		if event == nil {
			return nil
		}
		if hint == nil || hint.OriginalException == nil {
			return event
		}

		aggregateType := event.Tags[TagAggregateType]
		aggregateID := event.Tags[TagAggregateID]

		fp := gen.Generate(hint.OriginalException, aggregateType, aggregateID)
		if len(fp) == 0 {
			options.logger.Warn("fingerprint generation returned empty, keeping default grouping",
				slog.String("event_id", string(event.EventID)))
			return event
		}

		event.Fingerprint = fp
		return event
	}
}

// NewTracesSampler 把采样器适配为 sentry.ClientOptions.TracesSampler。
//
// Keep 映射为采样率 1.0，Drop 映射为 0.0，决策完全由内部采样器作出，
// Sentry 侧不再引入二次随机。inner 为 nil 时退化为全量采样。
func NewTracesSampler(inner xsampling.Sampler) sentry.TracesSampler {
	if inner == nil {
		inner = xsampling.AlwaysKeep()
	}

	return func(ctx sentry.SamplingContext) float64 {
		if ctx.Span == nil {
			return 1.0
		}

		name := ctx.Span.Name
		if name == "" {
			name = ctx.Span.Op
		}

		decision := inner.ShouldSample(ctx.Span.Context(), xsampling.Params{
			TraceID:  ctx.Span.TraceID.String(),
			SpanName: name,
		})
		if decision.Sampled() {
			return 1.0
		}
		return 0.0
	}
}
