package handler

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/rl1809/cafe/internal/core/domain"
	"github.com/rl1809/cafe/internal/core/service"
	"github.com/rl1809/cafe/internal/port"
)

const orderServiceName = "cafe.v1.OrderService"

const (
	placeOrderMethod        = "/" + orderServiceName + "/PlaceOrder"
	listOrdersMethod        = "/" + orderServiceName + "/ListOrders"
	updateOrderStatusMethod = "/" + orderServiceName + "/UpdateOrderStatus"
	deleteOrderMethod       = "/" + orderServiceName + "/DeleteOrder"
)

// idempotencyMetadataKey carries the same value as the HTTP Idempotency-Key header.
const idempotencyMetadataKey = "idempotency-key"

type ListOrdersRequest struct{}

type ListOrdersReply struct {
	Orders []OrderMessage `json:"orders"`
}

type OrderReply struct {
	Order OrderMessage `json:"order"`
}

type DeleteOrderRequest struct {
	ID string `json:"_id"`
}

type DeleteOrderReply struct{}

type OrderServiceServer interface {
	PlaceOrder(context.Context, *PlaceOrderRequest) (*OrderReply, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersReply, error)
	UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*OrderReply, error)
	DeleteOrder(context.Context, *DeleteOrderRequest) (*DeleteOrderReply, error)
}

type GRPCHandler struct {
	orderService *service.OrderService
	idempotency  port.IdempotencyStore
	logger       *zap.Logger
}

func NewGRPCHandler(orderService *service.OrderService, idempotency port.IdempotencyStore, logger *zap.Logger) *GRPCHandler {
	return &GRPCHandler{
		orderService: orderService,
		idempotency:  idempotency,
		logger:       logger,
	}
}

func (h *GRPCHandler) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*OrderReply, error) {
	var key string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(idempotencyMetadataKey); len(v) > 0 {
			key = v[0]
		}
	}

	order, err := placeOnce(ctx, h.idempotency, key, h.logger, func() (*domain.Order, error) {
		return h.orderService.PlaceOrder(ctx, req.toDomain())
	})
	if err != nil {
		return nil, h.toStatus(err)
	}

	return &OrderReply{Order: newOrderMessage(*order)}, nil
}

func (h *GRPCHandler) ListOrders(ctx context.Context, _ *ListOrdersRequest) (*ListOrdersReply, error) {
	views, err := h.orderService.ListOrders(ctx)
	if err != nil {
		return nil, h.toStatus(err)
	}

	reply := &ListOrdersReply{Orders: make([]OrderMessage, 0, len(views))}
	for _, v := range views {
		reply.Orders = append(reply.Orders, newOrderViewMessage(v))
	}
	return reply, nil
}

func (h *GRPCHandler) UpdateOrderStatus(ctx context.Context, req *UpdateOrderStatusRequest) (*OrderReply, error) {
	order, err := h.orderService.UpdateStatus(ctx, req.ID, domain.OrderStatus(req.Status))
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &OrderReply{Order: newOrderMessage(*order)}, nil
}

func (h *GRPCHandler) DeleteOrder(ctx context.Context, req *DeleteOrderRequest) (*DeleteOrderReply, error) {
	if err := h.orderService.DeleteOrder(ctx, req.ID); err != nil {
		return nil, h.toStatus(err)
	}
	return &DeleteOrderReply{}, nil
}

func (h *GRPCHandler) toStatus(err error) error {
	var verr *domain.ValidationError
	var nf *domain.NotFoundError

	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Message)
	case errors.As(err, &nf):
		return status.Error(codes.NotFound, nf.Error())
	case errors.Is(err, ErrDuplicateRequest):
		return status.Error(codes.AlreadyExists, "duplicate request")
	default:
		h.logger.Error("rpc failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}

// AdminAuthInterceptor guards every method except PlaceOrder with the admin
// session token from the "authorization: Bearer <token>" metadata.
func AdminAuthInterceptor(auth *service.AuthService) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if info.FullMethod == placeOrderMethod {
			return handler(ctx, req)
		}

		var token string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("authorization"); len(v) > 0 {
				token = strings.TrimPrefix(v[0], "Bearer ")
			}
		}

		if _, err := auth.Authenticate(token); err != nil {
			return nil, status.Error(codes.Unauthenticated, "Unauthorized")
		}
		return handler(ctx, req)
	}
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&orderServiceDesc, srv)
}

var orderServiceDesc = grpc.ServiceDesc{
	ServiceName: orderServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PlaceOrder", Handler: placeOrderHandler},
		{MethodName: "ListOrders", Handler: listOrdersHandler},
		{MethodName: "UpdateOrderStatus", Handler: updateOrderStatusHandler},
		{MethodName: "DeleteOrder", Handler: deleteOrderHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cafe/v1/order_service",
}

func placeOrderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PlaceOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).PlaceOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: placeOrderMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(OrderServiceServer).PlaceOrder(ctx, req.(*PlaceOrderRequest))
	})
}

func listOrdersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListOrdersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).ListOrders(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listOrdersMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(OrderServiceServer).ListOrders(ctx, req.(*ListOrdersRequest))
	})
}

func updateOrderStatusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateOrderStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).UpdateOrderStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: updateOrderStatusMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(OrderServiceServer).UpdateOrderStatus(ctx, req.(*UpdateOrderStatusRequest))
	})
}

func deleteOrderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).DeleteOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: deleteOrderMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(OrderServiceServer).DeleteOrder(ctx, req.(*DeleteOrderRequest))
	})
}
