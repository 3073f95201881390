package main

import (
	"context"
	"fmt"
	"io"

	"decaf/internal/trace"
)

// setupTracing builds the tracer described by ts and attaches it to ctx.
// The returned cleanup flushes and closes it.
func setupTracing(ctx context.Context, ts traceSettings, errOut io.Writer) (context.Context, func(), error) {
	level, err := trace.ParseLevel(ts.level)
	if err != nil {
		return ctx, nil, fmt.Errorf("invalid trace level: %w", err)
	}

	// Если уровень off и вывод не задан, трассировка не нужна
	if level == trace.LevelOff && ts.output == "" {
		return trace.WithTracer(ctx, trace.Nop), func() {}, nil
	}
	if level == trace.LevelOff {
		level = trace.LevelPhase
	}

	mode, err := trace.ParseMode(ts.mode)
	if err != nil {
		return ctx, nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     trace.FormatAuto,
		OutputPath: ts.output,
		RingSize:   ts.ringSize,
	})
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: close error: %v\n", err)
		}
	}
	return trace.WithTracer(ctx, tracer), cleanup, nil
}
