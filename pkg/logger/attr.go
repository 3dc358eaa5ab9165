package logger

import "log/slog"

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Field records a form field name under "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Filename records a client-supplied file name under "filename".
func Filename(name string) slog.Attr {
	return slog.String("filename", name)
}

// Bytes records a byte count under key.
func Bytes(key string, n int64) slog.Attr {
	return slog.Int64(key, n)
}
