package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// gRPC names of the calc service
const (
	CalcServiceName      = "exact.v1.CalcService"
	EvaluateMethod       = "/" + CalcServiceName + "/Evaluate"
	ListOperationsMethod = "/" + CalcServiceName + "/ListOperations"
)

// CalcServer is the server API of exact.v1.CalcService. Messages are
// google.protobuf.Struct values shaped like the JSON API.
type CalcServer interface {
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListOperations(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// Ensure Server implements CalcServer
var _ CalcServer = (*Server)(nil)

// CalcServiceDesc describes exact.v1.CalcService for grpc.Server
var CalcServiceDesc = grpc.ServiceDesc{
	ServiceName: CalcServiceName,
	HandlerType: (*CalcServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
		{MethodName: "ListOperations", Handler: listOperationsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "exact/v1/calc.proto",
}

// RegisterCalcServer registers srv on s
func RegisterCalcServer(s grpc.ServiceRegistrar, srv CalcServer) {
	s.RegisterService(&CalcServiceDesc, srv)
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalcServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EvaluateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalcServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listOperationsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalcServer).ListOperations(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListOperationsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalcServer).ListOperations(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Evaluate implements CalcServer.Evaluate
func (s *Server) Evaluate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := StructToRequest(in)
	if err != nil {
		return nil, err
	}

	resp, err := s.service.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	return ResponseToStruct(resp), nil
}

// ListOperations implements CalcServer.ListOperations
func (s *Server) ListOperations(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return OperationsToStruct(s.service.Operations()), nil
}
