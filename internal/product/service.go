package product

import (
	"context"
	"strings"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	ListProducts(ctx context.Context, filter Filter, limit, page *int32) ([]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	SetHotDeal(ctx context.Context, id string, hot bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, filter Filter, limit, page *int32) ([]*Product, error) {
	return s.repo.ListProducts(ctx, filter, limit, page)
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("name_en", input.NameEn),
	)
	log.Info("CreateProduct started")

	if strings.TrimSpace(input.NameEn) == "" {
		log.Warn("CreateProduct validation failed: empty name")
		return nil, ErrNameRequired
	}
	if input.Price < 0 || (input.DiscountedPrice != nil && *input.DiscountedPrice < 0) {
		log.Warn("CreateProduct validation failed: negative price")
		return nil, ErrNegativePrice
	}

	p, err := s.repo.CreateProduct(ctx, input)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("CreateProduct success", zap.String("product_id", p.ID))
	return p, nil
}

// authorizeSupplierWrite gates catalog writes to the owning supplier. Admins
// may act on any product.
func (s *service) authorizeSupplierWrite(ctx context.Context, id string) error {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	switch utils.GetUserRoleFromContext(ctx) {
	case utils.RoleAdmin:
		return nil
	case utils.RoleSupplier:
		supplierID, ok := utils.GetSupplierIDFromContext(ctx)
		if ok && supplierID == p.SupplierID {
			return nil
		}
	}
	return ErrUnauthorized
}

func (s *service) SetAvailability(ctx context.Context, id string, available bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetAvailability"),
		zap.String("product_id", id),
	)

	if err := s.authorizeSupplierWrite(ctx, id); err != nil {
		log.Warn("SetAvailability rejected", zap.Error(err))
		return err
	}
	return s.repo.SetAvailability(ctx, id, available)
}

func (s *service) SetHotDeal(ctx context.Context, id string, hot bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetHotDeal"),
		zap.String("product_id", id),
		zap.Bool("hot", hot),
	)

	if err := s.authorizeSupplierWrite(ctx, id); err != nil {
		log.Warn("SetHotDeal rejected", zap.Error(err))
		return err
	}

	if err := s.repo.SetHotDeal(ctx, id, hot); err != nil {
		log.Error("failed to set hot deal", zap.Error(err))
		return err
	}

	log.Info("SetHotDeal success")
	return nil
}
