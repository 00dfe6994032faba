package category

import (
	"context"
	"strings"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"go.uber.org/zap"
)

// Service defines the business logic for the category tree.
type Service interface {
	GetTree(ctx context.Context, query *string, includeInactive bool) ([]*Category, error)
	GetParentOptions(ctx context.Context, excludeID *string) ([]*Category, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error)
	SetActive(ctx context.Context, id string, active bool) error
	DeleteCategory(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetTree returns the category forest for display, optionally filtered by a
// case-insensitive search over names and description.
func (s *service) GetTree(ctx context.Context, query *string, includeInactive bool) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetTree"),
		zap.String("query", utils.PtrString(query)),
	)
	log.Info("GetTree started")

	flat, err := s.repo.GetCategories(ctx, includeInactive)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	SortForTree(flat)
	tree := BuildTree(flat)

	if query != nil && strings.TrimSpace(*query) != "" {
		tree = FilterTree(tree, *query)
	}

	log.Info("GetTree success", zap.Int("roots", len(tree)))
	return tree, nil
}

// GetParentOptions returns the indented flat list for the parent-picker
// dropdown. Inactive categories are excluded from selection; when excludeID is
// given, that category and its subtree are omitted so it cannot be picked as
// its own ancestor.
func (s *service) GetParentOptions(ctx context.Context, excludeID *string) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetParentOptions"),
		zap.String("exclude_id", utils.PtrString(excludeID)),
	)

	flat, err := s.repo.GetCategories(ctx, false)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	SortForTree(flat)
	tree := BuildTree(flat)

	options := FlattenForSelect(tree, utils.PtrString(excludeID))
	log.Info("GetParentOptions success", zap.Int("count", len(options)))
	return options, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateCategory"),
		zap.String("name_en", input.NameEn),
	)
	log.Info("CreateCategory started")

	if strings.TrimSpace(input.NameEn) == "" {
		log.Warn("CreateCategory validation failed: empty name")
		return nil, ErrNameRequired
	}

	// A brand-new category has no descendants, so a cycle is impossible here.
	// The parent only needs to exist.
	if input.ParentCategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *input.ParentCategoryID); err != nil {
			if err == ErrCategoryNotFound {
				log.Warn("CreateCategory parent not found", zap.String("parent_id", *input.ParentCategoryID))
				return nil, ErrParentNotFound
			}
			log.Error("failed to load parent category", zap.Error(err))
			return nil, err
		}
	}

	c, err := s.repo.CreateCategory(ctx, input)
	if err != nil {
		log.Error("failed to create category", zap.Error(err))
		return nil, err
	}

	log.Info("CreateCategory success", zap.String("category_id", c.ID))
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateCategory"),
		zap.String("category_id", id),
	)
	log.Info("UpdateCategory started")

	if input.NameEn != nil && strings.TrimSpace(*input.NameEn) == "" {
		log.Warn("UpdateCategory validation failed: empty name")
		return nil, ErrNameRequired
	}

	if input.ParentCategoryID != nil && !input.ClearParent {
		if err := s.guardParentAssignment(ctx, id, *input.ParentCategoryID); err != nil {
			return nil, err
		}
	}

	c, err := s.repo.UpdateCategory(ctx, id, input)
	if err != nil {
		log.Error("failed to update category", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateCategory success")
	return c, nil
}

// guardParentAssignment rejects a parent assignment that would make the
// category its own ancestor. The in-memory walk over a fresh snapshot and the
// recursive SQL check are independent defenses; the write is blocked if either
// reports a cycle.
func (s *service) guardParentAssignment(ctx context.Context, id, parentID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "guardParentAssignment"),
		zap.String("category_id", id),
		zap.String("parent_id", parentID),
	)

	all, err := s.repo.GetCategories(ctx, true)
	if err != nil {
		log.Error("failed to load categories for cycle check", zap.Error(err))
		return err
	}

	parentExists := false
	for _, c := range all {
		if c.ID == parentID {
			parentExists = true
			break
		}
	}
	if !parentExists {
		log.Warn("parent category not found")
		return ErrParentNotFound
	}

	localCycle := WouldCreateCycle(id, parentID, all)

	storeCycle, err := s.repo.CheckCircularReference(ctx, id, parentID)
	if err != nil {
		log.Error("server-side circular reference check failed", zap.Error(err))
		return err
	}

	if localCycle != storeCycle {
		// Should never happen; the snapshot may be stale under concurrent edits.
		log.Warn("cycle checks disagree",
			zap.Bool("local", localCycle),
			zap.Bool("store", storeCycle),
		)
	}

	if localCycle || storeCycle {
		log.Warn("parent assignment rejected: circular reference")
		return ErrCyclicReference
	}
	return nil
}

func (s *service) SetActive(ctx context.Context, id string, active bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetActive"),
		zap.String("category_id", id),
		zap.Bool("active", active),
	)

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		log.Error("failed to set category active flag", zap.Error(err))
		return err
	}

	log.Info("SetActive success")
	return nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteCategory"),
		zap.String("category_id", id),
	)

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		log.Error("failed to delete category", zap.Error(err))
		return err
	}

	log.Info("DeleteCategory success")
	return nil
}
