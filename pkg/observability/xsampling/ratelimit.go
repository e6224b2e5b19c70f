package xsampling

import (
	"context"
	"sync/atomic"
	"time"
)

// bucketState 令牌桶的不可变快照
//
// tokens 与 lastRefill 必须作为一个整体原子替换：
// 如果拆成两个独立的原子变量，refill 与 consume 之间会出现
// 经典的 read-modify-write 竞态，并发下可能丢失补充的令牌。
type bucketState struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimitOption 配置 RateLimitingSampler 的可选参数
type RateLimitOption func(*RateLimitingSampler)

// WithBurst 设置突发容量
//
// 突发容量是令牌桶的上限，决定静默期后瞬时可保留的 trace 数。
// 默认等于每秒速率。burst <= 0 时 NewRateLimitingSampler 返回 ErrInvalidBurst。
func WithBurst(burst int) RateLimitOption {
	return func(s *RateLimitingSampler) {
		s.burst = float64(burst)
	}
}

// WithTimeSource 设置时间源
//
// 仅用于测试：注入可控时钟以验证令牌补充行为。
// 生产环境使用默认的 time.Now（携带单调时钟读数）。
func WithTimeSource(now func() time.Time) RateLimitOption {
	return func(s *RateLimitingSampler) {
		if now != nil {
			s.now = now
		}
	}
}

// RateLimitingSampler 限速采样策略
//
// 令牌桶准入控制：以 tracesPerSecond 的速率补充令牌，上限为突发容量，
// 初始为满。每保留一条 trace 消耗一个令牌，令牌不足时丢弃。
//
// 决策路径完全无锁：桶状态打包为单个不可变快照，通过
// atomic.Pointer 的 CAS 循环整体替换。采样决策发生在每个
// span 启动的热路径上，不允许阻塞在互斥锁上。
//
// 设计决策: 未复用 golang.org/x/time/rate.Limiter——其 Allow()
// 内部持有互斥锁，高并发 span 启动场景下会成为串行化点。
type RateLimitingSampler struct {
	rate  float64 // 每秒补充的令牌数
	burst float64 // 桶容量
	now   func() time.Time
	state atomic.Pointer[bucketState]
}

// NewRateLimitingSampler 创建限速采样器
//
// tracesPerSecond 表示每秒允许保留的 trace 数，必须 > 0，
// 否则返回 ErrInvalidRate。突发容量默认等于 tracesPerSecond，
// 可通过 WithBurst 调整。nil 选项返回 ErrNilOption。
func NewRateLimitingSampler(tracesPerSecond int, opts ...RateLimitOption) (*RateLimitingSampler, error) {
	if tracesPerSecond <= 0 {
		return nil, ErrInvalidRate
	}

	s := &RateLimitingSampler{
		rate:  float64(tracesPerSecond),
		burst: float64(tracesPerSecond),
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(s)
	}
	if s.burst <= 0 {
		return nil, ErrInvalidBurst
	}

	// 初始为满桶
	s.state.Store(&bucketState{
		tokens:     s.burst,
		lastRefill: s.now(),
	})
	return s, nil
}

func (s *RateLimitingSampler) ShouldSample(_ context.Context, _ Params) Decision {
	for {
		cur := s.state.Load()
		next := *cur
		now := s.now()

		// 先补充后消耗。只有累积满至少 1 个完整令牌才补充并推进
		// 时间戳，以限制状态更新频率；不足 1 个令牌时时间戳保持
		// 不动，零头时间留到下次累计。
		if accrued := now.Sub(cur.lastRefill).Seconds() * s.rate; accrued >= 1.0 {
			next.tokens = min(next.tokens+accrued, s.burst)
			next.lastRefill = now
		}

		if next.tokens < 1.0 {
			// 没发生补充时状态未变，无需写回。发生了补充也不可能
			// 走到这里：accrued >= 1 且 tokens >= 0 保证补充后 >= 1。
			return Drop
		}

		next.tokens--
		if s.state.CompareAndSwap(cur, &next) {
			return Keep
		}
		// CAS 失败说明有并发更新，重读最新状态重试
	}
}

// Rate 返回每秒速率
func (s *RateLimitingSampler) Rate() float64 {
	return s.rate
}

// Burst 返回突发容量
func (s *RateLimitingSampler) Burst() float64 {
	return s.burst
}

// 确保实现了接口
var _ Sampler = (*RateLimitingSampler)(nil)
