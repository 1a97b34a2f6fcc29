package auth

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/infra/storage/adminuser"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*adminuser.User, error)
}

type TokenIssuer interface {
	Issue(userID int64, email, role string) (string, time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
