package main

import (
	"context"

	"github.com/abstractparser/pegc/internal/logx"
)

type loggerKey struct{}

func withLogger(ctx context.Context, l *logx.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFrom(ctx context.Context) *logx.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*logx.Logger); ok {
		return l
	}
	return logx.New(false)
}
