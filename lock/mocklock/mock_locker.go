package mocklock

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Locker struct {
	mock.Mock
}

func (l *Locker) Lock(ctx context.Context, leagueID string) (func(), error) {
	args := l.Called(ctx, leagueID)

	var unlock func()
	if args.Get(0) != nil {
		unlock = args.Get(0).(func())
	}
	return unlock, args.Error(1)
}
