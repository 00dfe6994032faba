package supplier

import (
	"context"
	"strings"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"go.uber.org/zap"
)

// Notifier tells the supplier's owner about an approval decision. Dispatch is
// secondary: a failed notification never rolls back the decision.
type Notifier interface {
	SupplierApproved(ctx context.Context, s *Supplier) error
	SupplierRejected(ctx context.Context, s *Supplier) error
}

type Service interface {
	// Apply registers a new supplier application in pending state.
	Apply(ctx context.Context, input ApplyInput) (*Supplier, error)
	GetSupplier(ctx context.Context, id string) (*Supplier, error)
	// ListSuppliers returns all suppliers for admins and only approved ones
	// for everybody else.
	ListSuppliers(ctx context.Context, filter Filter, limit, page *int32) ([]*Supplier, error)
	Approve(ctx context.Context, id string) (*Supplier, error)
	Reject(ctx context.Context, id string, reason *string) (*Supplier, error)
}

type service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) Apply(ctx context.Context, input ApplyInput) (*Supplier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Apply"),
		zap.String("user_id", input.UserID),
	)
	log.Info("supplier application started")

	if strings.TrimSpace(input.NameEn) == "" {
		return nil, ErrNameRequired
	}

	sup, err := s.repo.CreateSupplier(ctx, input)
	if err != nil {
		log.Error("failed to create supplier", zap.Error(err))
		return nil, err
	}

	log.Info("supplier application success", zap.String("supplier_id", sup.ID))
	return sup, nil
}

func (s *service) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

func (s *service) ListSuppliers(ctx context.Context, filter Filter, limit, page *int32) ([]*Supplier, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		approved := ApprovalApproved
		filter.Status = &approved
	}
	return s.repo.ListSuppliers(ctx, filter, limit, page)
}

func (s *service) Approve(ctx context.Context, id string) (*Supplier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Approve"),
		zap.String("supplier_id", id),
	)
	log.Info("Approve started")

	sup, err := s.repo.SetApproval(ctx, id, ApprovalApproved, nil)
	if err != nil {
		log.Error("failed to approve supplier", zap.Error(err))
		return nil, err
	}

	if err := s.notifier.SupplierApproved(ctx, sup); err != nil {
		log.Warn("approval notification failed", zap.Error(err))
	}

	log.Info("Approve success")
	return sup, nil
}

func (s *service) Reject(ctx context.Context, id string, reason *string) (*Supplier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Reject"),
		zap.String("supplier_id", id),
	)
	log.Info("Reject started")

	sup, err := s.repo.SetApproval(ctx, id, ApprovalRejected, reason)
	if err != nil {
		log.Error("failed to reject supplier", zap.Error(err))
		return nil, err
	}

	if err := s.notifier.SupplierRejected(ctx, sup); err != nil {
		log.Warn("rejection notification failed", zap.Error(err))
	}

	log.Info("Reject success")
	return sup, nil
}
