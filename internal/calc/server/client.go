package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/msto63/exact/internal/calc/service"
	coreGrpc "github.com/msto63/exact/pkg/core/grpc"
)

// Client calls a remote calc server
type Client struct {
	conn  *grpc.ClientConn
	owned bool
}

// NewClient wraps an existing connection. Close leaves conn open.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Dial connects to the calc server at target
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	conn, err := coreGrpc.Dial(coreGrpc.DefaultClientConfig(target), opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, owned: true}, nil
}

// Evaluate runs a calculation remotely. Failed calls return structured
// errors carrying the server's error code.
func (c *Client) Evaluate(ctx context.Context, req service.Request) (*service.Response, error) {
	in, err := RequestToStruct(req)
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	var trailer metadata.MD
	if err := c.conn.Invoke(ctx, EvaluateMethod, in, out, grpc.Trailer(&trailer)); err != nil {
		return nil, coreGrpc.ErrorFromStatus(err, trailer)
	}
	return StructToResponse(out), nil
}

// ListOperations fetches the operations the server evaluates
func (c *Client) ListOperations(ctx context.Context) ([]service.OperationInfo, error) {
	out := new(structpb.Struct)
	var trailer metadata.MD
	if err := c.conn.Invoke(ctx, ListOperationsMethod, &emptypb.Empty{}, out, grpc.Trailer(&trailer)); err != nil {
		return nil, coreGrpc.ErrorFromStatus(err, trailer)
	}
	return StructToOperations(out), nil
}

// Close closes the connection if the client opened it
func (c *Client) Close() error {
	if !c.owned {
		return nil
	}
	return c.conn.Close()
}
