package misc

import "context"

type healthChecker interface {
	Health(ctx context.Context) map[string]any
}

type Service struct {
	rdb healthChecker
}

func New(rdb healthChecker) *Service {
	return &Service{rdb: rdb}
}
