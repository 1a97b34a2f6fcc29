package link_gateway_groups

import "errors"

var (
	ErrInvalidInput       = errors.New("link_gateway_groups: invalid input data")
	ErrGatewayUnavailable = errors.New("link_gateway_groups: gateway unavailable")
	ErrInternal           = errors.New("link_gateway_groups: internal error")
)
