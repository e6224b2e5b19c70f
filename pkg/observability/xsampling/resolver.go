package xsampling

import "fmt"

// Resolve 将声明式配置装配为采样器
//
// 装配规则：
//   - Enabled=false: 返回全保留采样器（禁用过滤 ≠ 丢弃所有）
//   - 仅设置 Probability: 返回 ProbabilitySampler
//   - 仅设置 TracesPerSecond: 返回 RateLimitingSampler
//   - 两者都设置: 按 CombineStrategy 组合为 CompositeSampler
//   - 两者都未设置: 返回全保留采样器（启用但无约束即全保留）
//
// 配置非法时返回描述性错误（快速失败，不静默修正）：
// 概率越界返回 ErrInvalidProbability，速率/突发非正返回
// ErrInvalidRate/ErrInvalidBurst，未知组合策略返回 ErrInvalidStrategy
// 并在错误信息中带上非法值。
func Resolve(cfg Config) (Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("resolve sampler config: %w", err)
	}

	if !cfg.Enabled {
		return AlwaysKeep(), nil
	}

	var samplers []Sampler

	if cfg.Probability != nil {
		ps, err := NewProbabilitySampler(*cfg.Probability)
		if err != nil {
			return nil, err
		}
		samplers = append(samplers, ps)
	}

	if cfg.TracesPerSecond != nil {
		var opts []RateLimitOption
		if cfg.Burst != nil {
			opts = append(opts, WithBurst(*cfg.Burst))
		}
		rs, err := NewRateLimitingSampler(*cfg.TracesPerSecond, opts...)
		if err != nil {
			return nil, err
		}
		samplers = append(samplers, rs)
	}

	switch len(samplers) {
	case 0:
		// 启用但没有任何约束：本层不过滤
		return AlwaysKeep(), nil
	case 1:
		return samplers[0], nil
	default:
		strategy, err := ParseStrategy(cfg.CombineStrategy)
		if err != nil {
			return nil, err
		}
		return NewCompositeSampler(strategy, samplers...)
	}
}
