package handler

import (
	"context"
	"errors"
	"time"

	"github.com/fashionnova610-sys/Minerhaolan/internal/auth"
	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
	"github.com/fashionnova610-sys/Minerhaolan/internal/product"
	"github.com/fashionnova610-sys/Minerhaolan/internal/product/dto"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "minerhaolan.catalog.v1.CatalogService"

// CatalogServer is the read side of the storefront plus the admin writes.
type CatalogServer interface {
	ListProducts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetRelatedProducts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CreateProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	UpdateProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	DeleteProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

func unary(method string, call func(CatalogServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return rpc.Method(ServiceName, method, func(srv interface{}, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
		return call(srv.(CatalogServer), ctx, in)
	})
}

var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListProducts", CatalogServer.ListProducts),
		unary("GetProduct", CatalogServer.GetProduct),
		unary("GetRelatedProducts", CatalogServer.GetRelatedProducts),
		unary("CreateProduct", CatalogServer.CreateProduct),
		unary("UpdateProduct", CatalogServer.UpdateProduct),
		unary("DeleteProduct", CatalogServer.DeleteProduct),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

// CatalogClient calls CatalogService methods by name.
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func (c *CatalogClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return rpc.Invoke(ctx, c.cc, ServiceName, method, in, opts...)
}

type ProductHandler struct {
	uc         product.UseCase
	adminToken string
	logger     logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, adminToken string, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:         uc,
		adminToken: adminToken,
		logger:     log,
	}
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	page := int(rpc.Int(req, "page"))
	if page < 1 {
		page = 1
	}
	pageSize := int(rpc.Int(req, "page_size"))
	if pageSize <= 0 {
		pageSize = 20
	}

	filters := &dto.ProductFilters{
		Category:     rpc.String(req, "category"),
		Manufacturer: rpc.String(req, "manufacturer"),
		Condition:    rpc.String(req, "condition"),
		Featured:     rpc.OptionalBool(req, "featured"),
		InStock:      rpc.OptionalBool(req, "in_stock"),
		SearchQuery:  rpc.String(req, "q"),
		SortBy:       rpc.String(req, "sort_by"),
		SortOrder:    rpc.String(req, "sort_order"),
		Page:         page,
		PageSize:     pageSize,
	}

	products, count, err := h.uc.ListProducts(ctx, filters)
	if err != nil {
		return nil, h.toStatus("list products", err)
	}

	return structpb.NewStruct(map[string]interface{}{
		"products":  productList(products),
		"total":     count,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	slug := rpc.String(req, "slug")
	if slug == "" {
		return nil, status.Error(codes.InvalidArgument, "slug is required")
	}

	p, err := h.uc.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, h.toStatus("get product", err)
	}
	if p == nil {
		return nil, status.Error(codes.NotFound, "product not found")
	}
	return productResponse(p)
}

func (h *ProductHandler) GetRelatedProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	category := rpc.String(req, "category")
	if category == "" {
		return nil, status.Error(codes.InvalidArgument, "category is required")
	}

	products, err := h.uc.GetRelatedProducts(ctx, category, rpc.String(req, "slug"))
	if err != nil {
		return nil, h.toStatus("get related products", err)
	}
	return structpb.NewStruct(map[string]interface{}{
		"products": productList(products),
	})
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := auth.RequireAdmin(ctx, h.adminToken); err != nil {
		return nil, err
	}

	input := &dto.CreateProductInput{
		Slug:         rpc.String(req, "slug"),
		Name:         rpc.String(req, "name"),
		Manufacturer: rpc.String(req, "manufacturer"),
		Model:        rpc.String(req, "model"),
		Algorithm:    rpc.String(req, "algorithm"),
		Hashrate:     rpc.String(req, "hashrate"),
		Power:        int(rpc.Int(req, "power")),
		Efficiency:   rpc.String(req, "efficiency"),
		Price:        rpc.Int(req, "price"),
		Currency:     rpc.String(req, "currency"),
		Condition:    rpc.String(req, "condition"),
		Cooling:      rpc.String(req, "cooling"),
		Category:     rpc.String(req, "category"),
		Tags:         rpc.Strings(req, "tags"),
		ImageURL:     rpc.String(req, "image_url"),
		Description:  rpc.String(req, "description"),
		InStock:      rpc.OptionalBool(req, "in_stock"),
		Featured:     rpc.Bool(req, "featured"),
	}

	p, err := h.uc.CreateProduct(ctx, input)
	if err != nil {
		return nil, h.toStatus("create product", err)
	}
	return productResponse(p)
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := auth.RequireAdmin(ctx, h.adminToken); err != nil {
		return nil, err
	}

	input := &dto.UpdateProductInput{
		ID:       rpc.Int(req, "id"),
		Name:     rpc.OptionalString(req, "name"),
		Price:    rpc.OptionalInt(req, "price"),
		InStock:  rpc.OptionalBool(req, "in_stock"),
		Featured: rpc.OptionalBool(req, "featured"),
	}
	if input.ID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	p, err := h.uc.UpdateProduct(ctx, input)
	if err != nil {
		return nil, h.toStatus("update product", err)
	}
	return productResponse(p)
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := auth.RequireAdmin(ctx, h.adminToken); err != nil {
		return nil, err
	}

	id := rpc.Int(req, "id")
	if id <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	if err := h.uc.DeleteProduct(ctx, id); err != nil {
		return nil, h.toStatus("delete product", err)
	}
	return &structpb.Struct{}, nil
}

func (h *ProductHandler) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, product.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, product.ErrSlugExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, product.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	h.logger.Error("failed to "+op, zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

func productResponse(p *model.Product) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"product": productToMap(p),
	})
}

func productList(products []model.Product) []interface{} {
	return rpc.List(products, func(p model.Product) interface{} {
		return productToMap(&p)
	})
}

// Helper
func productToMap(m *model.Product) map[string]interface{} {
	imgURL := ""
	if m.ImageURL != nil {
		imgURL = *m.ImageURL
	}

	desc := ""
	if m.Description != nil {
		desc = *m.Description
	}

	return map[string]interface{}{
		"id":           m.ID,
		"slug":         m.Slug,
		"name":         m.Name,
		"manufacturer": m.Manufacturer,
		"model":        m.Model,
		"algorithm":    m.Algorithm,
		"hashrate":     m.Hashrate,
		"power":        m.Power,
		"efficiency":   m.Efficiency,
		"price":        m.Price,
		"currency":     m.Currency,
		"condition":    m.Condition,
		"cooling":      m.Cooling,
		"category":     m.Category,
		"image_url":    imgURL,
		"description":  desc,
		"specifications": map[string]interface{}{
			"category":   rpc.List(m.Specifications.Category, func(s string) interface{} { return s }),
			"hashrate":   m.Specifications.Hashrate,
			"power":      m.Specifications.Power,
			"efficiency": m.Specifications.Efficiency,
			"algorithm":  m.Specifications.Algorithm,
		},
		"in_stock":   m.InStock,
		"featured":   m.Featured,
		"created_at": m.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
