package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	addr := s.Addr()
	client, err := NewRedisClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	s.Close()
	_, err = NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}

func TestNewPoolRejectsBadDSN(t *testing.T) {
	_, err := NewPool(context.Background(), "not a dsn ::")
	assert.Error(t, err)
}
