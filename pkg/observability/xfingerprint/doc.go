// Package xfingerprint 提供确定性的错误分组指纹生成。
//
// 错误追踪后端（如 Sentry）按指纹把相关错误归并为同一个告警组。
// 默认按消息分组会因为消息里的实例数据（ID、数字、UUID）把同一类
// 错误打散成无数组；xfingerprint 通过消息规范化与结构化分量解决
// 这个问题。
//
// # 消息规范化
//
// Normalize 把自由文本消息重写为稳定模式：UUID → {uuid}、
// 数字 → {number}、引号串 → {string}，并截断到 100 字符。
// "Account 123 not found" 与 "Account 456 not found" 归一为同一模式。
//
// # 指纹生成
//
// Generator.Generate 按固定顺序构建分组令牌：
//
//	[错误类型短名, 类别标记, 聚合类型, 规范化消息, 栈顶帧]
//
// 最终列表去重保序。错误类型短名恒为首位，是主分组键：
// 相同消息、不同类型的两个错误拥有不同指纹。
//
// # 错误类别
//
// CQRS 消息总线侧的失败用 CommandExecutionError / EventProcessingError /
// QueryExecutionError 包装，沿 errors.As 链识别，对应的类别标记
// 进入指纹。命令失败还会携带聚合类型，同一聚合的命令失败聚到一组。
//
// # 降级保证
//
// Generate 绝不向外抛出任何失败：内部异常回退到仅含类型名的
// 最小指纹，可通过 WithLogger 观察降级事件。残缺的指纹好过
// 中断错误上报。
package xfingerprint
