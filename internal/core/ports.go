package core

import (
	"context"
	"encoding/json"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name Pinger . Pinger
type Pinger interface {
	Ping(ctx context.Context) (json.RawMessage, error)
}
