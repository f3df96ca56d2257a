package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// multiHandler отправляет запись в консоль и в файл, каждый со своим уровнем.
type multiHandler struct {
	console slog.Handler
	file    slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.file.Enabled(ctx, r.Level) {
		if err := h.file.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	if h.console.Enabled(ctx, r.Level) {
		if err := h.console.Handle(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &multiHandler{
		console: h.console.WithAttrs(attrs),
		file:    h.file.WithAttrs(attrs),
	}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	return &multiHandler{
		console: h.console.WithGroup(name),
		file:    h.file.WithGroup(name),
	}
}

// Init ставит slog по умолчанию: текст в stdout с уровнем level и JSON-файл
// уровня debug с ротацией. Возвращает функцию закрытия файла.
func Init(dir, level string) (func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "editor.log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		LocalTime:  true,
	}

	multi := &multiHandler{
		console: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)}),
		file:    slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}),
	}
	slog.SetDefault(slog.New(multi))

	return func() {
		if err := lj.Close(); err != nil {
			slog.Error("[LOG] close log file", "error", err)
		}
	}, nil
}

// ParseLevel понимает debug/info/warn/error, остальное: info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
