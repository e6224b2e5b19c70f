package xsampling

import "fmt"

// Config 采样策略的声明式配置
//
// 由外部配置层（文件、ConfigMap 等）提供，经 Resolve 装配为 Sampler。
// Probability 与 TracesPerSecond 均为指针：nil 表示未设置，
// 区别于显式设置为零值。
type Config struct {
	// Enabled 是否启用采样过滤
	// false 表示本层不做过滤（全保留），上游 trace 级开关是另一个关注点
	Enabled bool `json:"enabled" yaml:"enabled" koanf:"enabled"`

	// Probability 确定性概率采样的保留概率，范围 [0.0, 1.0]
	Probability *float64 `json:"probability" yaml:"probability" koanf:"probability"`

	// TracesPerSecond 限速采样的每秒保留上限，必须 > 0
	TracesPerSecond *int `json:"traces_per_second" yaml:"traces_per_second" koanf:"traces_per_second"`

	// Burst 限速采样的突发容量，必须 > 0，未设置时等于 TracesPerSecond
	Burst *int `json:"burst" yaml:"burst" koanf:"burst"`

	// CombineStrategy 概率与限速同时配置时的组合策略："AND" 或 "OR"
	// 空字符串按 AND 处理
	CombineStrategy string `json:"combine_strategy" yaml:"combine_strategy" koanf:"combine_strategy"`
}

// Validate 验证配置是否有效
//
// 配置错误在启动期快速失败，绝不静默修正。
func (c Config) Validate() error {
	if c.Probability != nil {
		if err := validateProbability(*c.Probability); err != nil {
			return fmt.Errorf("%w: got %v", err, *c.Probability)
		}
	}
	if c.TracesPerSecond != nil && *c.TracesPerSecond <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRate, *c.TracesPerSecond)
	}
	if c.Burst != nil && *c.Burst <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBurst, *c.Burst)
	}
	if _, err := ParseStrategy(c.CombineStrategy); err != nil {
		return err
	}
	return nil
}

// DefaultConfig 返回默认配置
//
// 默认禁用过滤（全保留），组合策略为 AND。
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		CombineStrategy: StrategyAND.String(),
	}
}

// Clone 创建配置的深拷贝
func (c Config) Clone() Config {
	clone := c
	if c.Probability != nil {
		p := *c.Probability
		clone.Probability = &p
	}
	if c.TracesPerSecond != nil {
		t := *c.TracesPerSecond
		clone.TracesPerSecond = &t
	}
	if c.Burst != nil {
		b := *c.Burst
		clone.Burst = &b
	}
	return clone
}
