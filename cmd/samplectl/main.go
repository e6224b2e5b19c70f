// samplectl 是采样配置的命令行检查工具。
//
// 用法:
//
//	samplectl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config   采样配置文件路径 (YAML 或 JSON)
//
// 命令:
//
//	check          对给定或随机生成的 TraceID 预演采样决策
//	validate       校验配置文件并打印解析结果
//	help           显示帮助信息
//
// check 命令说明:
//
//	-t, --trace 可重复指定 TraceID；未指定时用 -n, --count 随机生成。
//	同一 TraceID 在同一配置下的概率采样决策是确定的，可用于上线前
//	预演"这条链路会不会被采"。注意限速采样有内部状态，预演消耗的
//	令牌与线上实例无关。
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（配置加载/校验失败等）
//	2: 参数错误（缺少配置路径、无效计数等）
//
// 示例:
//
//	samplectl -c sampling.yaml validate
//	samplectl -c sampling.yaml check -t 4bf92f3577b34da6a3ce929d0e0e4736
//	samplectl -c sampling.yaml check -n 1000          # 随机预演 1000 条
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "samplectl",
		Usage:   "采样配置检查工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "采样配置文件路径 (YAML 或 JSON)",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		Authors: []any{
			"TraceKit Team",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		Description: `samplectl 在不启动应用的前提下加载采样配置，
对 TraceID 预演采样决策，用于排查"为什么这条链路没被采到"。

主要命令:
  check               预演采样决策
    --trace, -t       指定 TraceID（可重复）
    --count, -n       随机生成 TraceID 的数量
    --span            预演时使用的 Span 名称
  validate            校验配置文件并打印解析结果`,
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
