package xsampling

import (
	"context"
	"testing"
)

var (
	benchCtx      = context.Background()
	benchParams   = Params{TraceID: "4bf92f3577b34da6a3ce929d0e0e4736"}
	benchDecision Decision
)

func BenchmarkAlwaysKeep(b *testing.B) {
	sampler := AlwaysKeep()
	var d Decision

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		d = sampler.ShouldSample(benchCtx, benchParams)
	}

	benchDecision = d
}

func BenchmarkProbabilitySampler(b *testing.B) {
	sampler, err := NewProbabilitySampler(0.5)
	if err != nil {
		b.Fatal(err)
	}
	var d Decision

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		d = sampler.ShouldSample(benchCtx, benchParams)
	}

	benchDecision = d
}

func BenchmarkRateLimitingSampler(b *testing.B) {
	sampler, err := NewRateLimitingSampler(1000000)
	if err != nil {
		b.Fatal(err)
	}
	var d Decision

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		d = sampler.ShouldSample(benchCtx, benchParams)
	}

	benchDecision = d
}

func BenchmarkRateLimitingSamplerParallel(b *testing.B) {
	sampler, err := NewRateLimitingSampler(1000000)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		var d Decision
		for pb.Next() {
			d = sampler.ShouldSample(benchCtx, benchParams)
		}
		benchDecision = d
	})
}

func BenchmarkCompositeSamplerAND(b *testing.B) {
	ps, _ := NewProbabilitySampler(0.5)
	rs, _ := NewRateLimitingSampler(1000000)
	sampler, err := All(ps, rs)
	if err != nil {
		b.Fatal(err)
	}
	var d Decision

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		d = sampler.ShouldSample(benchCtx, benchParams)
	}

	benchDecision = d
}
