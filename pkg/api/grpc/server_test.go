package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestServer_Health(t *testing.T) {
	s, err := NewServer(&Config{Addr: ":0", Logger: zap.NewNop()})
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	_, port, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)

	conn, err := grpc.NewClient("127.0.0.1:"+port, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := healthpb.NewHealthClient(conn)
	for _, service := range []string{"", ServiceName} {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	}

	require.NoError(t, s.Shutdown(ctx))
	require.NoError(t, <-errCh)
}
