// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xsampling: 采样策略（概率采样、限速采样、组合采样、配置热更新）
//   - xfingerprint: 错误指纹（消息归一化与稳定分组键生成）
//   - xotel: OpenTelemetry SDK 采样器适配
//   - xsentry: Sentry 事件指纹与链路采样接入
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 采样决策对 TraceID 确定，多实例间天然一致
//   - 错误指纹只依赖错误的结构特征，不受可变细节影响
package observability
