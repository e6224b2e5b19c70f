package xsampling

import "context"

// alwaysKeepSampler 全保留策略
type alwaysKeepSampler struct{}

// alwaysKeepInstance 全保留单例
var alwaysKeepInstance = &alwaysKeepSampler{}

// AlwaysKeep 返回全保留策略
//
// 返回的采样器总是返回 Keep，即所有 trace 都会被保留。
// 采样被禁用时解析器会退化为此策略——禁用采样的含义是
// "本层不做过滤"，上游 trace 级的开关是另一个关注点。
func AlwaysKeep() Sampler {
	return alwaysKeepInstance
}

func (s *alwaysKeepSampler) ShouldSample(_ context.Context, _ Params) Decision {
	return Keep
}

// alwaysDropSampler 全丢弃策略
type alwaysDropSampler struct{}

// alwaysDropInstance 全丢弃单例
var alwaysDropInstance = &alwaysDropSampler{}

// AlwaysDrop 返回全丢弃策略
//
// 返回的采样器总是返回 Drop。适用于测试，
// 或在组合采样器中作为显式的"关闭"分支。
func AlwaysDrop() Sampler {
	return alwaysDropInstance
}

func (s *alwaysDropSampler) ShouldSample(_ context.Context, _ Params) Decision {
	return Drop
}

// 确保实现了接口
var (
	_ Sampler = (*alwaysKeepSampler)(nil)
	_ Sampler = (*alwaysDropSampler)(nil)
)
