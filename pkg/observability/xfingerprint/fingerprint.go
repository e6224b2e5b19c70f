package xfingerprint

import (
	stderrors "errors"
	"log/slog"
	"reflect"
	"runtime"
	"strings"

	"github.com/cespare/xxhash/v2"
	pkgerrors "github.com/pkg/errors"
)

// fallbackTypeName nil 错误的占位类型名
const fallbackTypeName = "unknown"

// Fingerprint 错误分组指纹
//
// 有序、去重的分组令牌列表，每次生成都是全新的值，由调用方持有。
// 错误追踪后端（如 Sentry）用它将相关错误归并到同一个告警组。
type Fingerprint []string

// Hash 返回指纹的稳定 64 位摘要
//
// 使用 xxhash 对各分量（带分隔符）求哈希，同一指纹在所有进程中
// 产生相同摘要，可用于指标标签或日志关联。
func (f Fingerprint) Hash() uint64 {
	d := xxhash.New()
	for _, component := range f {
		_, _ = d.WriteString(component)
		_, _ = d.Write([]byte{0}) // 分隔符，避免 ["ab","c"] 与 ["a","bc"] 同值
	}
	return d.Sum64()
}

// String 返回指纹的可读表示
func (f Fingerprint) String() string {
	return strings.Join(f, " | ")
}

// Option 配置 Generator 的可选参数
type Option func(*Generator)

// WithLogger 设置降级日志记录器
//
// 指纹提取内部失败时（反射或堆栈访问异常）会回退到仅含类型名的
// 最小指纹，并通过该记录器以 Warn 级别记录——降级对调用方静默，
// 但不应对运维静默。默认丢弃日志。
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator 错误指纹生成器
//
// 从错误的类型、类别标记、聚合上下文、规范化消息和栈顶帧构建
// 有序去重的分组令牌列表。纯函数式：不持有状态，并发安全。
type Generator struct {
	logger *slog.Logger
}

// NewGenerator 创建指纹生成器
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Generate 为错误生成分组指纹
//
// aggregateType/aggregateID 是调用方补充的聚合上下文，可为空。
// aggregateID 仅为调用点对称而保留，刻意不参与指纹——按实例身份
// 分组会把同一类错误打散。
//
// 分量顺序：
//  1. 错误的具体类型短名（恒为首位，主分组键）
//  2. 类别标记（命令失败时紧跟聚合类型）
//  3. 聚合类型（非命令失败时，避免与上一步重复）
//  4. 规范化后的非空消息
//  5. 栈顶帧的 "包.函数"（错误链携带堆栈时）
//
// 任何内部失败都不会向外传播：回退到仅含类型名的单元素指纹。
// 残缺的指纹好过中断错误上报。
func (g *Generator) Generate(err error, aggregateType, aggregateID string) (fp Fingerprint) {
	_ = aggregateID

	typeName := errorTypeName(err)

	defer func() {
		if r := recover(); r != nil {
			g.logger.Warn("fingerprint generation degraded",
				slog.String("type", typeName),
				slog.Any("panic", r))
			fp = Fingerprint{typeName}
		}
	}()

	if err == nil {
		return Fingerprint{typeName}
	}

	components := []string{typeName}

	cls := classify(err)
	if cls.marker != "" {
		components = append(components, cls.marker)
	}

	// 调用方提供的聚合类型优先，错误自身携带的作为回退。
	// 命令失败时聚合类型紧跟类别标记；其他情况紧跟在已有分量之后，
	// 两种路径只追加一次，避免重复。
	effectiveAggregate := aggregateType
	if effectiveAggregate == "" {
		effectiveAggregate = cls.aggregateType
	}
	if effectiveAggregate != "" {
		components = append(components, effectiveAggregate)
	}

	if msg := err.Error(); msg != "" {
		if normalized := Normalize(msg); normalized != "" {
			components = append(components, normalized)
		}
	}

	if frame := topFrame(err); frame != "" {
		components = append(components, frame)
	}

	return dedupe(components)
}

// errorTypeName 返回错误的具体类型短名
//
// 解引用指针取元素类型，如 *CommandExecutionError → "CommandExecutionError"，
// errors.New 的结果 → "errorString"。nil 错误返回占位名。
func errorTypeName(err error) string {
	if err == nil {
		return fallbackTypeName
	}

	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	// 匿名类型没有短名，退而求其次用完整表示
	return t.String()
}

// stackTracer pkg/errors 风格的堆栈携带者
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// topFrame 提取错误链上最外层堆栈的栈顶帧
//
// 从外向内沿 Unwrap 链找到第一个携带堆栈的错误，取其最近一帧，
// 格式化为 "包.函数"（完整导入路径裁剪到最后一段）。
// 链上没有堆栈时返回空串——Go 错误默认不携带堆栈，这是常态而非异常。
func topFrame(err error) string {
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		st, ok := e.(stackTracer)
		if !ok {
			continue
		}
		frames := st.StackTrace()
		if len(frames) == 0 {
			continue
		}

		// Frame 记录的是返回地址，减一落回调用指令
		fn := runtime.FuncForPC(uintptr(frames[0]) - 1)
		if fn == nil {
			continue
		}
		full := fn.Name()
		if idx := strings.LastIndex(full, "/"); idx >= 0 {
			return full[idx+1:]
		}
		return full
	}
	return ""
}

// dedupe 去重并保序（保留首次出现）
func dedupe(components []string) Fingerprint {
	seen := make(map[string]struct{}, len(components))
	result := make(Fingerprint, 0, len(components))
	for _, c := range components {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		result = append(result, c)
	}
	return result
}
