// Package xotel 把 xsampling 的采样策略接入 OpenTelemetry SDK。
//
// NewSampler 返回可直接传给 sdktrace.WithSampler 的适配器：
//
//	cfg, _ := xsampling.LoadConfig("/etc/app/sampling.yaml")
//	policy, _ := xsampling.Resolve(cfg)
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithSampler(xotel.NewSampler(policy)),
//	)
//
// 适配器只做参数映射，不实现任何 SDK 内部机制；
// 父子 span 的采样继承、TraceState 传播仍由 SDK 负责。
package xotel
