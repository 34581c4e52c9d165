// Package turbine_service describes the agnivolt.TurbineService gRPC API.
//
// Messages are protobuf well-known types so the service needs no generated
// message code: device ids travel as StringValue, structured payloads as
// Struct and empty results as Empty.
package turbine_service

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
	emptypb "google.golang.org/protobuf/types/known/emptypb"
	structpb "google.golang.org/protobuf/types/known/structpb"
	wrapperspb "google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "agnivolt.TurbineService"

const (
	TurbineService_ListDevices_FullMethodName    = "/agnivolt.TurbineService/ListDevices"
	TurbineService_RegisterDevice_FullMethodName = "/agnivolt.TurbineService/RegisterDevice"
	TurbineService_RemoveDevice_FullMethodName   = "/agnivolt.TurbineService/RemoveDevice"
	TurbineService_GetLive_FullMethodName        = "/agnivolt.TurbineService/GetLive"
	TurbineService_GetHistory_FullMethodName     = "/agnivolt.TurbineService/GetHistory"
	TurbineService_SetLimiter_FullMethodName     = "/agnivolt.TurbineService/SetLimiter"
	TurbineService_WatchLive_FullMethodName      = "/agnivolt.TurbineService/WatchLive"
)

// TurbineServiceClient is the client API for TurbineService.
type TurbineServiceClient interface {
	ListDevices(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	RegisterDevice(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	RemoveDevice(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetLive(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetHistory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	WatchLive(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (TurbineService_WatchLiveClient, error)
}

type turbineServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTurbineServiceClient(cc grpc.ClientConnInterface) TurbineServiceClient {
	return &turbineServiceClient{cc}
}

func (c *turbineServiceClient) ListDevices(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TurbineService_ListDevices_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *turbineServiceClient) RegisterDevice(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TurbineService_RegisterDevice_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *turbineServiceClient) RemoveDevice(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, TurbineService_RemoveDevice_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *turbineServiceClient) GetLive(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TurbineService_GetLive_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *turbineServiceClient) GetHistory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TurbineService_GetHistory_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *turbineServiceClient) SetLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, TurbineService_SetLimiter_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *turbineServiceClient) WatchLive(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (TurbineService_WatchLiveClient, error) {
	stream, err := c.cc.NewStream(ctx, &TurbineService_ServiceDesc.Streams[0], TurbineService_WatchLive_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &turbineServiceWatchLiveClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type TurbineService_WatchLiveClient interface {
	Recv() (*structpb.Struct, error)
	grpc.ClientStream
}

type turbineServiceWatchLiveClient struct {
	grpc.ClientStream
}

func (x *turbineServiceWatchLiveClient) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// TurbineServiceServer is the server API for TurbineService.
// Implementations must embed UnimplementedTurbineServiceServer.
type TurbineServiceServer interface {
	ListDevices(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	RegisterDevice(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	RemoveDevice(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	GetLive(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetLimiter(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	WatchLive(*wrapperspb.StringValue, TurbineService_WatchLiveServer) error
	mustEmbedUnimplementedTurbineServiceServer()
}

type UnimplementedTurbineServiceServer struct{}

func (UnimplementedTurbineServiceServer) ListDevices(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListDevices not implemented")
}
func (UnimplementedTurbineServiceServer) RegisterDevice(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterDevice not implemented")
}
func (UnimplementedTurbineServiceServer) RemoveDevice(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RemoveDevice not implemented")
}
func (UnimplementedTurbineServiceServer) GetLive(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLive not implemented")
}
func (UnimplementedTurbineServiceServer) GetHistory(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetHistory not implemented")
}
func (UnimplementedTurbineServiceServer) SetLimiter(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetLimiter not implemented")
}
func (UnimplementedTurbineServiceServer) WatchLive(*wrapperspb.StringValue, TurbineService_WatchLiveServer) error {
	return status.Errorf(codes.Unimplemented, "method WatchLive not implemented")
}
func (UnimplementedTurbineServiceServer) mustEmbedUnimplementedTurbineServiceServer() {}

func RegisterTurbineServiceServer(s grpc.ServiceRegistrar, srv TurbineServiceServer) {
	s.RegisterService(&TurbineService_ServiceDesc, srv)
}

func _TurbineService_ListDevices_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TurbineServiceServer).ListDevices(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TurbineService_ListDevices_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TurbineServiceServer).ListDevices(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _TurbineService_RegisterDevice_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TurbineServiceServer).RegisterDevice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TurbineService_RegisterDevice_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TurbineServiceServer).RegisterDevice(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _TurbineService_RemoveDevice_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TurbineServiceServer).RemoveDevice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TurbineService_RemoveDevice_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TurbineServiceServer).RemoveDevice(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _TurbineService_GetLive_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TurbineServiceServer).GetLive(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TurbineService_GetLive_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TurbineServiceServer).GetLive(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _TurbineService_GetHistory_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TurbineServiceServer).GetHistory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TurbineService_GetHistory_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TurbineServiceServer).GetHistory(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _TurbineService_SetLimiter_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TurbineServiceServer).SetLimiter(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TurbineService_SetLimiter_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TurbineServiceServer).SetLimiter(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _TurbineService_WatchLive_Handler(srv any, stream grpc.ServerStream) error {
	m := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(TurbineServiceServer).WatchLive(m, &turbineServiceWatchLiveServer{stream})
}

type TurbineService_WatchLiveServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type turbineServiceWatchLiveServer struct {
	grpc.ServerStream
}

func (x *turbineServiceWatchLiveServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

// TurbineService_ServiceDesc is the grpc.ServiceDesc for TurbineService.
var TurbineService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TurbineServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListDevices", Handler: _TurbineService_ListDevices_Handler},
		{MethodName: "RegisterDevice", Handler: _TurbineService_RegisterDevice_Handler},
		{MethodName: "RemoveDevice", Handler: _TurbineService_RemoveDevice_Handler},
		{MethodName: "GetLive", Handler: _TurbineService_GetLive_Handler},
		{MethodName: "GetHistory", Handler: _TurbineService_GetHistory_Handler},
		{MethodName: "SetLimiter", Handler: _TurbineService_SetLimiter_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchLive",
			Handler:       _TurbineService_WatchLive_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "agnivolt/turbine_service.proto",
}
