package daemon

import (
	"context"
	"time"

	"go.trai.ch/dexopt/internal/adapters/binderrpc"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ ports.DaemonClient = (*Client)(nil)

// Client implements ports.DaemonClient.
type Client struct {
	conn     *grpc.ClientConn
	services *binderrpc.ServiceManager
}

// Dial connects to the daemon listening on socketPath.
// grpc.NewClient returns immediately; the connection is made on the first RPC.
func Dial(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient("unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "daemon client creation failed")
	}

	return &Client{
		conn:     conn,
		services: binderrpc.NewServiceManager(conn),
	}, nil
}

// Ping implements ports.DaemonClient.
func (c *Client) Ping(ctx context.Context) error {
	return c.conn.Invoke(ctx, pingMethod, &emptypb.Empty{}, new(emptypb.Empty))
}

// Status implements ports.DaemonClient.
func (c *Client) Status(ctx context.Context) (*ports.DaemonStatus, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, statusMethod, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}

	fields := out.GetFields()
	number := func(key string) float64 {
		return fields[key].GetNumberValue()
	}
	return &ports.DaemonStatus{
		Running:       true,
		PID:           int(number(fieldPID)),
		Uptime:        seconds(number(fieldUptime)),
		LastActivity:  time.Unix(int64(number(fieldLastActivity)), 0),
		IdleRemaining: seconds(number(fieldIdleRemaining)),
		Transactions:  int64(number(fieldTransactions)),
		Modules:       int(number(fieldModules)),
	}, nil
}

// Shutdown implements ports.DaemonClient.
func (c *Client) Shutdown(ctx context.Context) error {
	return c.conn.Invoke(ctx, shutdownMethod, &emptypb.Empty{}, new(emptypb.Empty))
}

// ServiceManager implements ports.DaemonClient.
func (c *Client) ServiceManager() ports.ServiceManager {
	return c.services
}

// Close implements ports.DaemonClient.
func (c *Client) Close() error {
	return c.conn.Close()
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Truncate(time.Second)
}
