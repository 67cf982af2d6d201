package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

const metricsNamespace = "exclusionlist"

func (f *Fetcher) observeOperation(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	if f == nil {
		return
	}
	operation = normalizeOperation(operation)
	if operation == "" {
		operation = "unknown"
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	elapsed := time.Since(startedAt)

	contextFields := cloneFields(fields)
	contextFields["event_type"] = operation
	contextFields["status"] = status
	contextFields["duration_ms"] = elapsed.Milliseconds()
	if err != nil {
		contextFields["error"] = err.Error()
		if retrieval, ok := AsRetrievalError(err); ok {
			contextFields["cause"] = string(retrieval.Cause)
		}
	}

	tags := map[string]string{
		"operation": operation,
		"status":    status,
	}
	if value := strings.TrimSpace(fmt.Sprint(contextFields["cause"])); value != "" && value != "<nil>" {
		tags["cause"] = value
	}

	f.recordCounter(ctx, metricsNamespace+"."+operation+".total", 1, tags)
	f.recordHistogram(ctx, metricsNamespace+"."+operation+".duration_ms", float64(elapsed.Milliseconds()), tags)

	if err != nil {
		f.logError(ctx, operation+" failed", contextFields)
		return
	}
	f.logDebug(ctx, operation+" succeeded", contextFields)
}

func (f *Fetcher) logDebug(ctx context.Context, message string, fields map[string]any) {
	f.logWithLevel(ctx, "debug", message, fields)
}

func (f *Fetcher) logError(ctx context.Context, message string, fields map[string]any) {
	f.logWithLevel(ctx, "error", message, fields)
}

func (f *Fetcher) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if f == nil || f.logger == nil {
		return
	}
	fields = RedactSensitiveMap(fields)
	logger := f.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.Error(message, args...)
	case "debug":
		logger.Debug(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (f *Fetcher) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if f == nil || f.metricsRecorder == nil {
		return
	}
	f.metricsRecorder.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (f *Fetcher) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if f == nil || f.metricsRecorder == nil {
		return
	}
	f.metricsRecorder.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func normalizeOperation(operation string) string {
	operation = strings.TrimSpace(strings.ToLower(operation))
	operation = strings.ReplaceAll(operation, " ", "_")
	operation = strings.ReplaceAll(operation, "-", "_")
	return operation
}
