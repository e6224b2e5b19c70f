package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/tracekit/pkg/observability/xsampling"
)

// defaultSpanName 预演时的默认 Span 名称。
const defaultSpanName = "samplectl.check"

// usageError 表示参数错误，run 将其映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createCheckCommand(),
		createValidateCommand(),
	}
}

// createCheckCommand 创建 check 子命令（预演采样决策）。
func createCheckCommand() *cli.Command {
	return &cli.Command{
		Name:    "check",
		Aliases: []string{"k"},
		Usage:   "对给定或随机生成的 TraceID 预演采样决策",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "trace",
				Aliases: []string{"t"},
				Usage:   "TraceID（可重复指定）",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "随机生成 TraceID 的数量",
			},
			&cli.StringFlag{
				Name:  "span",
				Usage: "预演时使用的 Span 名称",
				Value: defaultSpanName,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdCheck(ctx, os.Stdout, checkParams{
				configPath: cmd.String("config"),
				traceIDs:   cmd.StringSlice("trace"),
				count:      cmd.Int("count"),
				spanName:   cmd.String("span"),
			})
		},
	}
}

// createValidateCommand 创建 validate 子命令。
func createValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "校验配置文件并打印解析结果",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdValidate(ctx, os.Stdout, cmd.String("config"))
		},
	}
}

// checkParams 是 check 命令的参数集合。
type checkParams struct {
	configPath string
	traceIDs   []string
	count      int
	spanName   string
}

// cmdCheck 加载配置并对每个 TraceID 输出采样决策与汇总统计。
func cmdCheck(ctx context.Context, out io.Writer, p checkParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.configPath == "" {
		return &usageError{msg: "check 命令需要通过 --config 指定配置文件"}
	}
	if p.count < 0 {
		return &usageError{msg: fmt.Sprintf("--count 不能为负数: %d", p.count)}
	}
	if len(p.traceIDs) == 0 && p.count == 0 {
		return &usageError{msg: "需要通过 --trace 指定 TraceID 或通过 --count 指定生成数量"}
	}

	cfg, err := xsampling.LoadConfig(p.configPath)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	sampler, err := xsampling.Resolve(cfg)
	if err != nil {
		return fmt.Errorf("构建采样器失败: %w", err)
	}

	traceIDs := p.traceIDs
	for i := 0; i < p.count; i++ {
		traceIDs = append(traceIDs, randomTraceID())
	}

	kept := 0
	for _, traceID := range traceIDs {
		decision := sampler.ShouldSample(ctx, xsampling.Params{
			TraceID:  traceID,
			SpanName: p.spanName,
		})
		if decision.Sampled() {
			kept++
		}
		fmt.Fprintf(out, "%-4s  %s\n", decision, traceID)
	}

	total := len(traceIDs)
	fmt.Fprintf(out, "\n采样: %d/%d (%.2f%%)\n", kept, total, float64(kept)/float64(total)*100)
	return nil
}

// cmdValidate 校验配置文件并打印解析结果。
func cmdValidate(ctx context.Context, out io.Writer, configPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if configPath == "" {
		return &usageError{msg: "validate 命令需要通过 --config 指定配置文件"}
	}

	cfg, err := xsampling.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("配置无效: %w", err)
	}
	// 同时验证配置能构建出采样器
	if _, err := xsampling.Resolve(cfg); err != nil {
		return fmt.Errorf("构建采样器失败: %w", err)
	}

	fmt.Fprintf(out, "配置有效: %s\n", configPath)
	fmt.Fprintf(out, "  enabled:           %v\n", cfg.Enabled)
	if cfg.Probability != nil {
		fmt.Fprintf(out, "  probability:       %g\n", *cfg.Probability)
	} else {
		fmt.Fprintf(out, "  probability:       (未设置)\n")
	}
	if cfg.TracesPerSecond != nil {
		fmt.Fprintf(out, "  traces_per_second: %d\n", *cfg.TracesPerSecond)
	} else {
		fmt.Fprintf(out, "  traces_per_second: (未设置)\n")
	}
	if cfg.Burst != nil {
		fmt.Fprintf(out, "  burst:             %d\n", *cfg.Burst)
	}
	strategy := cfg.CombineStrategy
	if strategy == "" {
		strategy = "AND"
	}
	fmt.Fprintf(out, "  combine_strategy:  %s\n", strategy)
	return nil
}

// randomTraceID 生成 32 位十六进制的随机 TraceID。
func randomTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel() // 第一次信号: 优雅取消

		<-sigCh
		signal.Stop(sigCh) // 回收订阅
		os.Exit(130) // 第二次信号: 强制退出
	}()
}
