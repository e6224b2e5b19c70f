// Package xsentry 提供 Sentry SDK 的接入胶水。
//
// 两个入口分别对应 Sentry 客户端的两个扩展点:
//
//   - NewBeforeSend: 错误上报前用 xfingerprint 生成稳定指纹，
//     覆盖 event.Fingerprint，控制 Sentry 端的 issue 聚合粒度。
//   - NewTracesSampler: 把 xsampling.Sampler 适配为 Sentry 的
//     链路采样回调，采样策略与 OTel 侧共用同一套配置。
//
// 典型接入:
//
//	gen := xfingerprint.NewGenerator()
//	sampler, _ := xsampling.Resolve(cfg)
//	err := sentry.Init(sentry.ClientOptions{
//		Dsn:           dsn,
//		BeforeSend:    xsentry.NewBeforeSend(gen),
//		TracesSampler: xsentry.NewTracesSampler(sampler),
//	})
package xsentry
