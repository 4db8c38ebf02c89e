package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongoInvalidURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "not-a-uri", time.Second)
	require.ErrorContains(t, err, "mongo connect")
}

func TestConnectMongoRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectMongoRetry(ctx, "not-a-uri", time.Second, 3, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}

func TestConnectMongoRetryGivesUp(t *testing.T) {
	_, err := ConnectMongoRetry(context.Background(), "not-a-uri", time.Second, 2, time.Millisecond)
	require.ErrorContains(t, err, "giving up after 2 attempts")
}
