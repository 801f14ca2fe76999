package handler

import (
	"context"

	"github.com/fashionnova610-sys/Minerhaolan/internal/category"
	"github.com/fashionnova610-sys/Minerhaolan/internal/category/dto"
	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "minerhaolan.catalog.v1.CategoryService"

type CategoryServer interface {
	ListCategories(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetCategory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

func unary(method string, call func(CategoryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return rpc.Method(ServiceName, method, func(srv interface{}, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
		return call(srv.(CategoryServer), ctx, in)
	})
}

var CategoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CategoryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListCategories", CategoryServer.ListCategories),
		unary("GetCategory", CategoryServer.GetCategory),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCategoryServiceServer(s grpc.ServiceRegistrar, srv CategoryServer) {
	s.RegisterService(&CategoryServiceDesc, srv)
}

var _ CategoryServer = (*CategoryHandler)(nil)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) ListCategories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	filters := &dto.CategoryFilters{
		Prefix:   rpc.String(req, "prefix"),
		InStock:  rpc.OptionalBool(req, "in_stock"),
		Page:     int(rpc.Int(req, "page")),
		PageSize: int(rpc.Int(req, "page_size")),
	}

	facets, total, err := h.uc.ListCategories(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return structpb.NewStruct(map[string]interface{}{
		"categories": rpc.List(facets, mapFacet),
		"total":      total,
	})
}

func (h *CategoryHandler) GetCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	tag := rpc.String(req, "tag")
	if tag == "" {
		return nil, status.Error(codes.InvalidArgument, "tag is required")
	}

	facet, err := h.uc.GetCategory(ctx, tag)
	if err != nil {
		h.logger.Error("failed to get category", zap.String("tag", tag), zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}
	if facet == nil {
		return nil, status.Error(codes.NotFound, "category not found")
	}

	return structpb.NewStruct(map[string]interface{}{
		"category": mapFacet(*facet),
	})
}

func mapFacet(f model.CategoryFacet) interface{} {
	return map[string]interface{}{
		"tag":   f.Tag,
		"count": f.Count,
	}
}
