package xsampling

import (
	"context"
	"fmt"
	"strings"
)

// Strategy 组合采样策略
type Strategy int

const (
	// StrategyAND 要求所有子采样器都保留才保留
	//
	// 逻辑与：sampler1 == Keep && sampler2 == Keep && ...
	StrategyAND Strategy = iota

	// StrategyOR 任一子采样器保留即保留
	//
	// 逻辑或：sampler1 == Keep || sampler2 == Keep || ...
	StrategyOR
)

// String 返回组合策略的字符串表示
func (s Strategy) String() string {
	switch s {
	case StrategyAND:
		return "AND"
	case StrategyOR:
		return "OR"
	default:
		return "Unknown"
	}
}

// ParseStrategy 解析组合策略字符串
//
// 接受 "AND"/"OR"（不区分大小写）；空字符串按 AND 处理——
// 概率与限速同时配置时，"两个约束都满足" 是最保守的默认组合。
// 其他值返回 ErrInvalidStrategy，错误信息中带上非法值本身。
func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", "AND":
		return StrategyAND, nil
	case "OR":
		return StrategyOR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, value)
	}
}

// CompositeSampler 组合采样策略
//
// 将多个采样器按顺序组合在一起：
//   - StrategyAND: 所有子采样器都返回 Keep 时才保留
//   - StrategyOR: 任一子采样器返回 Keep 时即保留
//
// 组合采样器使用短路求值：AND 遇到 Drop 立即返回，OR 遇到 Keep 立即返回。
// 设计决策: 有状态子采样器（如 RateLimitingSampler）的令牌仅在实际被求值时
// 消耗，因此子采样器的排列顺序会影响限速预算的消耗。例如 AND 链中排在
// 概率采样器之后的限速采样器，只会为已通过概率筛选的 trace 消耗令牌——
// 这会避免把限速预算花在注定被丢弃的 trace 上。
type CompositeSampler struct {
	samplers []Sampler
	strategy Strategy
}

// NewCompositeSampler 创建组合采样器
//
// strategy 指定组合逻辑（StrategyAND 或 StrategyOR），
// samplers 是要组合的子采样器列表，不能为空。
//
// 非法 strategy 返回 ErrInvalidStrategy，空列表返回 ErrEmptySamplers，
// nil 子采样器返回 ErrNilSampler。
func NewCompositeSampler(strategy Strategy, samplers ...Sampler) (*CompositeSampler, error) {
	if strategy != StrategyAND && strategy != StrategyOR {
		return nil, ErrInvalidStrategy
	}
	if len(samplers) == 0 {
		return nil, ErrEmptySamplers
	}
	for _, s := range samplers {
		if s == nil {
			return nil, ErrNilSampler
		}
	}

	// 复制切片以防止外部修改
	copied := make([]Sampler, len(samplers))
	copy(copied, samplers)
	return &CompositeSampler{
		samplers: copied,
		strategy: strategy,
	}, nil
}

func (s *CompositeSampler) ShouldSample(ctx context.Context, p Params) Decision {
	for _, sampler := range s.samplers {
		decision := sampler.ShouldSample(ctx, p)
		if s.strategy == StrategyAND && decision == Drop {
			return Drop // 短路求值：AND 遇到 Drop 立即返回
		}
		if s.strategy == StrategyOR && decision == Keep {
			return Keep // 短路求值：OR 遇到 Keep 立即返回
		}
	}

	// AND：所有都是 Keep，返回 Keep
	// OR：所有都是 Drop，返回 Drop
	if s.strategy == StrategyAND {
		return Keep
	}
	return Drop
}

// Strategy 返回组合策略
func (s *CompositeSampler) Strategy() Strategy {
	return s.strategy
}

// Samplers 返回子采样器列表（只读副本）
func (s *CompositeSampler) Samplers() []Sampler {
	copied := make([]Sampler, len(s.samplers))
	copy(copied, s.samplers)
	return copied
}

// All 创建 AND 组合采样器（便捷函数）
//
// 等同于 NewCompositeSampler(StrategyAND, samplers...)
func All(samplers ...Sampler) (*CompositeSampler, error) {
	return NewCompositeSampler(StrategyAND, samplers...)
}

// Any 创建 OR 组合采样器（便捷函数）
//
// 等同于 NewCompositeSampler(StrategyOR, samplers...)
func Any(samplers ...Sampler) (*CompositeSampler, error) {
	return NewCompositeSampler(StrategyOR, samplers...)
}

// 确保实现了接口
var _ Sampler = (*CompositeSampler)(nil)
