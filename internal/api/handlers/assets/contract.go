package assets

import (
	"context"
	"io"

	"github.com/whalechillz/mas-win-sub025/internal/integrations/objectstorage"
)

type Storage interface {
	List(ctx context.Context, prefix string, limit, offset int) ([]objectstorage.Object, error)
	Upload(ctx context.Context, objectPath, contentType string, body io.Reader) error
	Move(ctx context.Context, from, to string) error
	Remove(ctx context.Context, paths []string) error
	PublicURL(objectPath string) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
