package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type seederFunc func(ctx context.Context) error

func (f seederFunc) Seed(ctx context.Context) error { return f(ctx) }

func TestSeed(t *testing.T) {
	calls := 0
	svc := NewSeedService(seederFunc(func(context.Context) error {
		calls++
		return nil
	}))

	assert.NoError(t, svc.Seed(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestSeed_WrapsError(t *testing.T) {
	svc := NewSeedService(seederFunc(func(context.Context) error { return errBoom }))

	err := svc.Seed(context.Background())

	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "seed sample data")
}
