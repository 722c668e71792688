package grpc

import (
	"context"

	"google.golang.org/grpc"

	"liyu1981.xyz/dialog-service/pkg/api"
	"liyu1981.xyz/dialog-service/pkg/condition"
	"liyu1981.xyz/dialog-service/pkg/glucose"
)

const ServiceName = "dialog.DialogService"

const (
	MethodSubmitConditions = "/" + ServiceName + "/SubmitConditions"
	MethodAlertDoctor      = "/" + ServiceName + "/AlertDoctor"
	MethodEvaluateReading  = "/" + ServiceName + "/EvaluateReading"
	MethodGetConditions    = "/" + ServiceName + "/GetConditions"
)

type EvaluateReadingRequest struct {
	UserID     string             `json:"userId"`
	Value      string             `json:"value"`
	MealTiming glucose.MealTiming `json:"mealTiming"`
}

type EvaluateReadingResponse struct {
	glucose.Evaluation
	ProfileRangeIgnored bool `json:"profileRangeIgnored"`
}

type GetConditionsRequest struct {
	UserID string `json:"userId"`
}

type GetConditionsResponse struct {
	Conditions []condition.Condition `json:"conditions"`
}

type DialogServiceServer interface {
	SubmitConditions(context.Context, *condition.Batch) (*api.SubmitConditionsResponse, error)
	AlertDoctor(context.Context, *api.AlertDoctorRequest) (*api.AlertDoctorResponse, error)
	EvaluateReading(context.Context, *EvaluateReadingRequest) (*EvaluateReadingResponse, error)
	GetConditions(context.Context, *GetConditionsRequest) (*GetConditionsResponse, error)
}

func unaryHandler[Req, Resp any](fullMethod string, call func(DialogServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DialogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DialogServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var DialogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DialogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SubmitConditions", Handler: unaryHandler(MethodSubmitConditions, DialogServiceServer.SubmitConditions)},
		{MethodName: "AlertDoctor", Handler: unaryHandler(MethodAlertDoctor, DialogServiceServer.AlertDoctor)},
		{MethodName: "EvaluateReading", Handler: unaryHandler(MethodEvaluateReading, DialogServiceServer.EvaluateReading)},
		{MethodName: "GetConditions", Handler: unaryHandler(MethodGetConditions, DialogServiceServer.GetConditions)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dialog_service",
}

func RegisterDialogServiceServer(s grpc.ServiceRegistrar, srv DialogServiceServer) {
	s.RegisterService(&DialogServiceDesc, srv)
}

// Client calls DialogService with the JSON codec. It satisfies api.Port, so
// the app core can talk to the backend over gRPC instead of HTTP.
type Client struct {
	cc grpc.ClientConnInterface
}

var _ api.Port = (*Client)(nil)

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitConditions(ctx context.Context, batch condition.Batch) (*api.SubmitConditionsResponse, error) {
	return invoke[api.SubmitConditionsResponse](ctx, c.cc, MethodSubmitConditions, &batch, nil)
}

func (c *Client) AlertDoctor(ctx context.Context, req api.AlertDoctorRequest) (*api.AlertDoctorResponse, error) {
	return invoke[api.AlertDoctorResponse](ctx, c.cc, MethodAlertDoctor, &req, nil)
}

func (c *Client) EvaluateReading(ctx context.Context, req *EvaluateReadingRequest, opts ...grpc.CallOption) (*EvaluateReadingResponse, error) {
	return invoke[EvaluateReadingResponse](ctx, c.cc, MethodEvaluateReading, req, opts)
}

func (c *Client) GetConditions(ctx context.Context, req *GetConditionsRequest, opts ...grpc.CallOption) (*GetConditionsResponse, error) {
	return invoke[GetConditionsResponse](ctx, c.cc, MethodGetConditions, req, opts)
}
