package xsampling

import "errors"

// 采样器创建相关的错误
var (
	// ErrInvalidProbability 表示采样概率不在 [0.0, 1.0] 范围内
	ErrInvalidProbability = errors.New("xsampling: probability must be in [0.0, 1.0]")

	// ErrInvalidRate 表示 RateLimitingSampler 的每秒速率不合法（必须 > 0）
	ErrInvalidRate = errors.New("xsampling: traces per second must be > 0")

	// ErrInvalidBurst 表示 RateLimitingSampler 的突发容量不合法（必须 > 0）
	ErrInvalidBurst = errors.New("xsampling: burst capacity must be > 0")

	// ErrEmptySamplers 表示 CompositeSampler 的子采样器列表为空
	ErrEmptySamplers = errors.New("xsampling: composite sampler requires at least one sampler")

	// ErrNilSampler 表示子采样器为 nil
	ErrNilSampler = errors.New("xsampling: sampler must not be nil")

	// ErrInvalidStrategy 表示组合策略不合法，仅支持 AND 和 OR
	ErrInvalidStrategy = errors.New("xsampling: invalid combine strategy")

	// ErrNilOption 表示传入的选项为 nil
	ErrNilOption = errors.New("xsampling: option must not be nil")
)

// 配置加载相关的错误
var (
	// ErrEmptyPath 表示配置文件路径为空
	ErrEmptyPath = errors.New("xsampling: config path must not be empty")

	// ErrUnsupportedFormat 表示配置格式不受支持（仅支持 yaml/json）
	ErrUnsupportedFormat = errors.New("xsampling: unsupported config format")

	// ErrLoadFailed 表示配置读取失败
	ErrLoadFailed = errors.New("xsampling: failed to load config")

	// ErrUnmarshalFailed 表示配置反序列化失败
	ErrUnmarshalFailed = errors.New("xsampling: failed to unmarshal config")
)
