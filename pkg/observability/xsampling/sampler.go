package xsampling

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Decision 采样决策
//
// 采样决策是封闭的二值类型：Keep 表示保留（记录并导出），
// Drop 表示丢弃。每次决策都是全新产生的终态值，不会被持久化。
type Decision uint8

const (
	// Drop 丢弃该 trace/span
	Drop Decision = iota

	// Keep 保留该 trace/span
	Keep
)

// String 返回采样决策的字符串表示
func (d Decision) String() string {
	switch d {
	case Keep:
		return "KEEP"
	case Drop:
		return "DROP"
	default:
		return "Unknown"
	}
}

// Sampled 返回该决策是否为保留
//
// 便于与以 bool 表达采样结果的外部 SDK（如 Sentry TracesSampler）对接。
func (d Decision) Sampled() bool {
	return d == Keep
}

// Params 单次采样决策的输入参数
//
// TraceID 是不透明的追踪标识（通常为 16 字节值的十六进制编码），
// 采样器只将其作为哈希输入，不做任何语义解析。
// SpanName/SpanKind/Attributes 是 span 元数据，供需要按元数据
// 决策的自定义采样器使用；内置采样器只依赖 TraceID。
type Params struct {
	TraceID    string
	SpanName   string
	SpanKind   trace.SpanKind
	Attributes []attribute.KeyValue
}

// Sampler 采样策略接口
//
// 采样器用于决定是否保留某条 trace。所有实现都必须并发安全：
// 采样决策发生在每个 span 启动的热路径上，可能被任意多个
// goroutine 同时调用。决策不阻塞、不做 I/O，必须无条件完成。
//
// ctx 不得为 nil；如需占位请使用 context.TODO()。
// 内置采样器不从 ctx 读取任何信息，但保留该参数以便
// 自定义采样器携带决策所需的上下文。
type Sampler interface {
	// ShouldSample 判断是否保留 p 所描述的 trace
	ShouldSample(ctx context.Context, p Params) Decision
}

// SamplerFunc 函数适配器，允许普通函数作为 Sampler 使用
type SamplerFunc func(ctx context.Context, p Params) Decision

// ShouldSample 调用 f 本身
func (f SamplerFunc) ShouldSample(ctx context.Context, p Params) Decision {
	return f(ctx, p)
}

// 确保实现了接口
var _ Sampler = SamplerFunc(nil)
