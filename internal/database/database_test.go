package database

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectMemoryRequiresName(t *testing.T) {
	_, err := ConnectMemory("  ")
	require.Error(t, err)

	db, err := ConnectMemory("database_test")
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)
}

func TestConnectRedis(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client, err := ConnectRedis(context.Background(), "redis://"+server.Addr(), time.Second)
	require.NoError(t, err)
	defer client.Close()

	_, err = ConnectRedis(context.Background(), "", time.Second)
	require.Error(t, err)

	_, err = ConnectRedis(context.Background(), "not a url", time.Second)
	require.Error(t, err)
}

func TestConnectNATSRequiresURL(t *testing.T) {
	_, err := ConnectNATS("", "edgylearn-test")
	require.Error(t, err)
}
