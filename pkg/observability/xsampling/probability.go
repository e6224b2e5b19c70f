package xsampling

import (
	"context"
	"math"
)

// hashBuckets 哈希值归一化的桶数
//
// TraceID 哈希后取模到 [0, hashBuckets)，再除以 hashBuckets 得到
// [0, 1) 区间的归一化值。10 万个桶可以精确表达万分之一粒度的采样率。
const hashBuckets = 100000

// ProbabilitySampler 确定性概率采样策略
//
// 对 TraceID 做确定性哈希后与概率阈值比较：相同的 TraceID 在相同的
// probability 下总是产生相同的决策，与进程、线程、调用顺序无关。
// 这对分布式追踪采样至关重要——同一条 trace 在所有参与方中被一致地
// 保留或丢弃，不需要任何跨进程通信。
//
// 设计决策: 工厂函数返回具体类型而非 Sampler 接口，因为 Probability()
// 方法提供了有用的自省能力（如日志、调试），这些无法通过 Sampler 接口获得。
type ProbabilitySampler struct {
	probability float64
}

// NewProbabilitySampler 创建确定性概率采样器
//
// probability 表示保留概率，范围 [0.0, 1.0]：
//   - probability=0.0: 丢弃所有 trace
//   - probability=1.0: 保留所有 trace
//   - probability=0.1: 约 10% 的 TraceID 会被保留
//
// probability 超出 [0.0, 1.0] 范围或为 NaN 时返回 ErrInvalidProbability。
func NewProbabilitySampler(probability float64) (*ProbabilitySampler, error) {
	if err := validateProbability(probability); err != nil {
		return nil, err
	}
	return &ProbabilitySampler{probability: probability}, nil
}

func (s *ProbabilitySampler) ShouldSample(_ context.Context, p Params) Decision {
	if s.probability <= 0 {
		return Drop
	}
	if s.probability >= 1 {
		return Keep
	}

	normalized := float64(traceIDHash(p.TraceID)%hashBuckets) / hashBuckets
	if normalized < s.probability {
		return Keep
	}
	return Drop
}

// Probability 返回当前保留概率
func (s *ProbabilitySampler) Probability() float64 {
	return s.probability
}

// traceIDHash 计算 TraceID 的非负多项式滚动哈希
//
// 乘数 31，逐码点累加，最后屏蔽符号位保持非负。
// 哈希必须是确定性的：同一 TraceID 在所有进程中产生相同的值，
// 因此不能使用进程内随机种子的哈希（如 maphash）。
//
// 设计决策: 这里不复用 xxhash——归一化只取 10 万个桶，
// 多项式哈希的分布质量已经足够，而固定算法保证了与
// 使用相同约定的其他语言实现跨进程一致。
func traceIDHash(traceID string) uint64 {
	var h int64
	for _, r := range traceID {
		h = h*31 + int64(r)
	}
	return uint64(h & math.MaxInt64)
}

// validateProbability 验证概率值是否在 [0.0, 1.0] 范围内
func validateProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return ErrInvalidProbability
	}
	return nil
}

// 确保实现了接口
var _ Sampler = (*ProbabilitySampler)(nil)
