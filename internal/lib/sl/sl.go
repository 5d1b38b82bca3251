package sl

import (
	"fmt"
	"log/slog"
)

func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Secret logs a credential under key as its 4 character prefix and its
// length, e.g. "AIza…(39)". Short values are fully masked.
func Secret(key, value string) slog.Attr {
	masked := "unset"
	switch {
	case len(value) > 8:
		masked = fmt.Sprintf("%s…(%d)", value[:4], len(value))
	case value != "":
		masked = fmt.Sprintf("…(%d)", len(value))
	}
	return slog.String(key, masked)
}

func Module(mod string) slog.Attr {
	return slog.String("mod", mod)
}
