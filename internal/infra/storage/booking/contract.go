package booking

import (
	"github.com/whalechillz/mas-win-sub025/pkg/dbmetrics"
)

// Reuse the dbmetrics executor so repositories run inside a context-carried tx
type DBExecutor = dbmetrics.DBExecutor
