// Package xsampling 提供面向分布式追踪的采样决策库。
//
// xsampling 遵循策略模式设计，提供统一的 Sampler 接口和多种采样策略实现，
// 用于在 span 启动时决定保留（Keep）还是丢弃（Drop）一条 trace。
//
// # 核心接口
//
// Sampler 是采样策略的核心接口，ShouldSample(ctx, p) 返回封闭的二值
// 决策 Decision（Keep/Drop）。Params 携带 TraceID 和 span 元数据。
//
// # 基础策略
//
//   - AlwaysKeep(): 全保留，总是返回 Keep
//   - AlwaysDrop(): 全丢弃，总是返回 Drop
//   - NewProbabilitySampler(p): 确定性概率采样
//   - NewRateLimitingSampler(n): 令牌桶限速采样
//
// # 组合策略
//
// NewCompositeSampler(strategy, ...) 将多个采样器按 AND/OR 逻辑组合，
// 使用短路求值。All()/Any() 是便捷写法。
//
// # 确定性与跨进程一致性
//
// ProbabilitySampler 对 TraceID 做确定性哈希（乘数 31 的多项式滚动哈希，
// 取模 100000 后归一化），同一 TraceID 在所有进程、所有调用顺序下
// 产生相同的决策。这对分布式追踪采样至关重要：
//   - 同一 trace_id 在所有服务中被一致地保留或丢弃
//   - 不同服务实例之间的采样决策保持一致
//   - 服务重启后采样行为不变
//
// # 限速采样
//
// RateLimitingSampler 是令牌桶准入控制：以每秒 N 个令牌的速率补充，
// 上限为突发容量（默认 N），初始为满。桶状态打包为单个不可变快照，
// 通过 atomic.Pointer 的 CAS 循环整体替换，决策路径上没有互斥锁。
//
// # 配置装配
//
// Resolve(Config) 将声明式配置装配为采样器：禁用时全保留；概率与
// 限速同时配置时按 CombineStrategy（AND/OR）组合。LoadConfig 支持
// YAML/JSON 文件，WatchConfig 配合 DynamicSampler 支持配置热加载。
//
// # 并发安全
//
// 所有采样器都是并发安全的，可以在多个 goroutine 中同时使用。
// 采样决策不阻塞、不做 I/O，适合 span 启动热路径上的高频并发调用。
package xsampling
