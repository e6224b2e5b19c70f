package xfingerprint

import "errors"

// 分组标记常量
//
// 消息总线侧的失败按处理阶段归类，标记作为指纹的第二分组键：
// 同一聚合的命令失败聚到一起，而不是散落在各种底层异常类型下。
const (
	markerCommandExecution = "CommandExecution"
	markerEventProcessing  = "EventProcessing"
	markerQueryExecution   = "QueryExecution"
)

// CommandExecutionError 命令执行失败
//
// 包装命令处理过程中抛出的底层错误，并携带聚合上下文。
// AggregateID 仅用于日志与上报展示，指纹生成会刻意忽略它——
// 按实例身份分组会把同一类错误打散成无数个告警组。
type CommandExecutionError struct {
	AggregateType string
	AggregateID   string
	Err           error
}

// NewCommandExecutionError 创建命令执行失败错误
func NewCommandExecutionError(aggregateType, aggregateID string, err error) *CommandExecutionError {
	return &CommandExecutionError{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Err:           err,
	}
}

func (e *CommandExecutionError) Error() string {
	if e.Err != nil {
		return "command execution failed: " + e.Err.Error()
	}
	return "command execution failed"
}

// Unwrap 返回底层错误
func (e *CommandExecutionError) Unwrap() error {
	return e.Err
}

// EventProcessingError 事件处理失败
type EventProcessingError struct {
	Processor string // 事件处理器名称，可为空
	Err       error
}

// NewEventProcessingError 创建事件处理失败错误
func NewEventProcessingError(processor string, err error) *EventProcessingError {
	return &EventProcessingError{Processor: processor, Err: err}
}

func (e *EventProcessingError) Error() string {
	if e.Err != nil {
		return "event processing failed: " + e.Err.Error()
	}
	return "event processing failed"
}

// Unwrap 返回底层错误
func (e *EventProcessingError) Unwrap() error {
	return e.Err
}

// QueryExecutionError 查询执行失败
type QueryExecutionError struct {
	Err error
}

// NewQueryExecutionError 创建查询执行失败错误
func NewQueryExecutionError(err error) *QueryExecutionError {
	return &QueryExecutionError{Err: err}
}

func (e *QueryExecutionError) Error() string {
	if e.Err != nil {
		return "query execution failed: " + e.Err.Error()
	}
	return "query execution failed"
}

// Unwrap 返回底层错误
func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// classification 错误分类结果
type classification struct {
	marker        string // 分组标记，未命中任何类别时为空
	aggregateType string // 错误自身携带的聚合类型，可为空
}

// classify 沿错误包装链识别失败类别
//
// 命令类别优先：一条链上同时出现多种包装时（罕见），
// 以最外层命中的为准，errors.As 天然如此。
func classify(err error) classification {
	var cmdErr *CommandExecutionError
	if errors.As(err, &cmdErr) {
		return classification{
			marker:        markerCommandExecution,
			aggregateType: cmdErr.AggregateType,
		}
	}

	var evtErr *EventProcessingError
	if errors.As(err, &evtErr) {
		return classification{marker: markerEventProcessing}
	}

	var qryErr *QueryExecutionError
	if errors.As(err, &qryErr) {
		return classification{marker: markerQueryExecution}
	}

	return classification{}
}
