package xotel

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/tracekit/pkg/observability/xsampling"
)

// sampler 将 xsampling.Sampler 适配为 OpenTelemetry SDK 采样器
type sampler struct {
	inner       xsampling.Sampler
	description string
}

// NewSampler 把 xsampling 采样器包装为 sdktrace.Sampler
//
// 适配器把 SDK 的采样参数映射为 xsampling.Params（TraceID 十六进制
// 编码、span 名称/类型/属性原样传递），并把 Keep/Drop 映射为
// RecordAndSample/Drop。父 span 的 TraceState 原样透传。
//
// inner 为 nil 时退化为全保留——宁可多采也不能让追踪管线
// 因装配疏漏而静默丢弃所有数据。
func NewSampler(inner xsampling.Sampler) sdktrace.Sampler {
	if inner == nil {
		inner = xsampling.AlwaysKeep()
	}
	return &sampler{
		inner:       inner,
		description: fmt.Sprintf("XSampling{%T}", inner),
	}
}

func (s *sampler) ShouldSample(p sdktrace.SamplingParameters) sdktrace.SamplingResult {
	psc := trace.SpanContextFromContext(p.ParentContext)

	decision := s.inner.ShouldSample(p.ParentContext, xsampling.Params{
		TraceID:    p.TraceID.String(),
		SpanName:   p.Name,
		SpanKind:   p.Kind,
		Attributes: p.Attributes,
	})

	result := sdktrace.SamplingResult{
		Decision:   sdktrace.Drop,
		Tracestate: psc.TraceState(),
	}
	if decision == xsampling.Keep {
		result.Decision = sdktrace.RecordAndSample
	}
	return result
}

// Description 返回采样器描述，SDK 用于调试输出
func (s *sampler) Description() string {
	return s.description
}

// 确保实现了接口
var _ sdktrace.Sampler = (*sampler)(nil)
