package link_gateway_groups

import (
	"context"

	linkGatewayGroups "github.com/whalechillz/mas-win-sub025/internal/usecase/link_gateway_groups"
)

type LinkGatewayGroupsUseCase interface {
	Execute(ctx context.Context, req *linkGatewayGroups.Request) (*linkGatewayGroups.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
