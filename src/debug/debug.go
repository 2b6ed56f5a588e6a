package debug

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Init installs a text handler on stderr at the given level as the default logger.
func Init(level string) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: getLogLevel(level)})
	slog.SetDefault(slog.New(h))
}

// RuntimeAttr groups msg with the calling function and its file:line, so
// error logs from shared helpers still point at the handler that failed.
func RuntimeAttr(msg string) slog.Attr {
	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		return slog.String("msg", msg)
	}
	attrs := []any{
		slog.String("file", filepath.Base(file)),
		slog.Int("line", line),
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		name := fn.Name()
		attrs = append(attrs, slog.String("func", name[strings.LastIndex(name, "/")+1:]))
	}
	attrs = append(attrs, slog.String("msg", msg))
	return slog.Group("runtime", attrs...)
}

// getLogLevel accepts any case; anything slog cannot parse falls back to WARN.
func getLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(level)))); err != nil {
		return slog.LevelWarn
	}
	return l
}
