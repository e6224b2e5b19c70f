package xfingerprint

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// customError 测试用的自定义错误类型
type customError struct {
	msg string
}

func (e *customError) Error() string { return e.msg }

// emptyMessageError 消息为空的错误
type emptyMessageError struct{}

func (e *emptyMessageError) Error() string { return "" }

func TestGenerateTypeNameFirst(t *testing.T) {
	gen := NewGenerator()

	fp := gen.Generate(&customError{msg: "boom"}, "", "")
	require.NotEmpty(t, fp)
	assert.Equal(t, "customError", fp[0], "type short name must be the first component")
}

func TestGenerateNormalizationCollapsesInstances(t *testing.T) {
	gen := NewGenerator()

	a := gen.Generate(&customError{msg: "Account 123 not found"}, "", "")
	b := gen.Generate(&customError{msg: "Account 456 not found"}, "", "")
	assert.Equal(t, a, b, "messages differing only in numbers must produce identical fingerprints")
}

func TestGenerateTypeDistinguishes(t *testing.T) {
	gen := NewGenerator()

	a := gen.Generate(&customError{msg: "same message"}, "", "")
	b := gen.Generate(stderrors.New("same message"), "", "")
	assert.NotEqual(t, a, b, "different error types with the same message must produce different fingerprints")
	assert.Equal(t, "customError", a[0])
	assert.Equal(t, "errorString", b[0])
}

func TestGenerateCommandExecution(t *testing.T) {
	gen := NewGenerator()

	err := NewCommandExecutionError("Order", "order-42", stderrors.New("version conflict"))
	fp := gen.Generate(err, "", "")

	require.GreaterOrEqual(t, len(fp), 3)
	assert.Equal(t, "CommandExecutionError", fp[0])
	assert.Equal(t, "CommandExecution", fp[1])
	assert.Equal(t, "Order", fp[2], "aggregate type from the error itself should follow the marker")

	// 聚合 ID 不参与指纹：不同实例的同类失败归入同一组
	other := gen.Generate(NewCommandExecutionError("Order", "order-99", stderrors.New("version conflict")), "", "")
	assert.Equal(t, fp, other)
}

func TestGenerateCallerAggregateTypeWins(t *testing.T) {
	gen := NewGenerator()

	err := NewCommandExecutionError("", "id-1", stderrors.New("rejected"))
	fp := gen.Generate(err, "Payment", "id-1")
	assert.Contains(t, []string(fp), "Payment")
}

func TestGenerateAggregateTypeWithoutCommand(t *testing.T) {
	gen := NewGenerator()

	fp := gen.Generate(&customError{msg: "oops"}, "Inventory", "sku-1")
	require.GreaterOrEqual(t, len(fp), 2)
	assert.Equal(t, "customError", fp[0])
	assert.Equal(t, "Inventory", fp[1], "aggregate type should follow the type name when no category marker applies")
}

func TestGenerateEventAndQueryMarkers(t *testing.T) {
	gen := NewGenerator()

	evt := gen.Generate(NewEventProcessingError("projection", stderrors.New("gap detected")), "", "")
	assert.Contains(t, []string(evt), "EventProcessing")

	qry := gen.Generate(NewQueryExecutionError(stderrors.New("no handler")), "", "")
	assert.Contains(t, []string(qry), "QueryExecution")
}

func TestGenerateWrappedCategoryDetected(t *testing.T) {
	// 类别识别必须穿透 fmt.Errorf 包装链
	gen := NewGenerator()

	inner := NewCommandExecutionError("Order", "o-1", stderrors.New("conflict"))
	wrapped := fmt.Errorf("dispatch failed: %w", inner)

	fp := gen.Generate(wrapped, "", "")
	assert.Contains(t, []string(fp), "CommandExecution")
	assert.Contains(t, []string(fp), "Order")
}

func TestGenerateStackFrame(t *testing.T) {
	gen := NewGenerator()

	err := pkgerrors.New("with stack")
	fp := gen.Generate(err, "", "")

	// 栈顶帧格式为 "包.函数"，此处应落在本测试函数内
	var frame string
	for _, c := range fp {
		if strings.HasPrefix(c, "xfingerprint.") || strings.HasPrefix(c, "xfingerprint_test.") {
			frame = c
			break
		}
	}
	require.NotEmpty(t, frame, "fingerprint %v should contain a pkg.Function frame", fp)
	assert.Contains(t, frame, "TestGenerateStackFrame")
}

func TestGenerateNoStackNoFrame(t *testing.T) {
	gen := NewGenerator()

	fp := gen.Generate(stderrors.New("plain"), "", "")
	for _, c := range fp {
		assert.NotContains(t, c, "xfingerprint.", "plain errors carry no stack, no frame component expected")
	}
}

func TestGenerateNeverPanics(t *testing.T) {
	gen := NewGenerator()

	t.Run("nil error", func(t *testing.T) {
		fp := gen.Generate(nil, "", "")
		require.NotEmpty(t, fp)
		assert.Equal(t, Fingerprint{"unknown"}, fp)
	})

	t.Run("empty message empty stack", func(t *testing.T) {
		fp := gen.Generate(&emptyMessageError{}, "", "")
		require.NotEmpty(t, fp)
		assert.Equal(t, "emptyMessageError", fp[0])
	})
}

func TestGenerateDeduplicates(t *testing.T) {
	gen := NewGenerator()

	// 消息恰好等于聚合类型：去重后只保留首次出现
	fp := gen.Generate(&customError{msg: "Inventory"}, "Inventory", "")
	counts := map[string]int{}
	for _, c := range fp {
		counts[c]++
	}
	for c, n := range counts {
		assert.Equal(t, 1, n, "component %q appears %d times", c, n)
	}
}

func TestFingerprintHash(t *testing.T) {
	a := Fingerprint{"customError", "Account {number} not found"}
	b := Fingerprint{"customError", "Account {number} not found"}
	c := Fingerprint{"otherError", "Account {number} not found"}

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())

	// 分隔符防止分量移位产生同值
	shifted := Fingerprint{"customErrorAccount", " {number} not found"}
	assert.NotEqual(t, a.Hash(), shifted.Hash())
}

func TestFingerprintString(t *testing.T) {
	fp := Fingerprint{"customError", "CommandExecution", "Order"}
	assert.Equal(t, "customError | CommandExecution | Order", fp.String())
}

func TestWithLogger(t *testing.T) {
	// nil logger 被忽略，不得导致 panic
	gen := NewGenerator(WithLogger(nil))
	fp := gen.Generate(stderrors.New("x"), "", "")
	assert.NotEmpty(t, fp)

	gen = NewGenerator(WithLogger(slog.New(slog.DiscardHandler)))
	fp = gen.Generate(stderrors.New("x"), "", "")
	assert.NotEmpty(t, fp)
}
