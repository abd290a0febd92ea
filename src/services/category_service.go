package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"caudal-server/src/db"
	"caudal-server/src/models"
	"caudal-server/src/util"

	"github.com/google/uuid"
)

type systemCategory struct {
	icon  string
	color string
}

var systemCategories = map[string]systemCategory{
	models.SystemCategoryAdjustment:  {icon: "⚖️", color: "#64748B"},
	models.SystemCategoryTransfer:    {icon: "↔️", color: "#6366F1"},
	models.SystemCategoryDebtPayment: {icon: "🤝", color: "#6366F1"},
}

type CategoryInput struct {
	Name     string      `json:"name"`
	Icon     string      `json:"icon"`
	Color    string      `json:"color"`
	Kind     models.Kind `json:"kind"`
	ParentID *uuid.UUID  `json:"parent_id"`
}

type CategoryService struct {
	repo  CategoryRepository
	cache *db.Cache
}

func NewCategoryService(repo CategoryRepository, cache *db.Cache) *CategoryService {
	return &CategoryService{repo: repo, cache: cache}
}

// List returns the user's categories ordered by name, optionally narrowed
// to one kind. The full list is cached per user.
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID, kind models.Kind) ([]models.Category, error) {
	all, err := s.all(ctx, userID)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return all, nil
	}
	out := make([]models.Category, 0, len(all))
	for _, c := range all {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CategoryService) all(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	key := db.Key(db.CategoryCacheGroup, userID)
	if cached, ok := s.cache.Get(key); ok {
		if cats, ok := cached.([]models.Category); ok {
			return cats, nil
		}
	}
	cats, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(db.CategoryCacheGroup, key, cats)
	return cats, nil
}

func (s *CategoryService) invalidate(userID uuid.UUID) {
	s.cache.Del(db.CategoryCacheGroup, db.Key(db.CategoryCacheGroup, userID))
}

func (s *CategoryService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Category, error) {
	return s.repo.GetCategory(ctx, userID, id)
}

func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, in CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if !util.ValidateName(in.Name, 60) {
		return nil, invalid("name", "is required and must be at most 60 characters")
	}
	if in.Color == "" {
		in.Color = "#64748B"
	}
	if !util.ValidateColor(in.Color) {
		return nil, invalid("color", "must be a hex color")
	}

	if in.ParentID != nil {
		parent, err := s.repo.GetCategory(ctx, userID, *in.ParentID)
		if errors.Is(err, models.ErrNotFound) {
			return nil, invalid("parent_id", "parent category does not exist")
		}
		if err != nil {
			return nil, err
		}
		if parent.ParentID != nil {
			return nil, invalid("parent_id", "subcategories cannot have subcategories")
		}
		// a subcategory always shares its parent's kind
		in.Kind = parent.Kind
	}
	if !in.Kind.Valid() {
		return nil, invalid("kind", "must be expense or income")
	}

	created, err := s.repo.CreateCategory(ctx, &models.Category{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     in.Name,
		Icon:     in.Icon,
		Color:    in.Color,
		Kind:     in.Kind,
		ParentID: in.ParentID,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return created, nil
}

// Update changes presentation fields only; kind and parent are fixed once
// transactions may reference the category.
func (s *CategoryService) Update(ctx context.Context, userID, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	existing, err := s.repo.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if existing.IsSystem {
		return nil, ErrSystemCategory
	}
	in.Name = strings.TrimSpace(in.Name)
	if !util.ValidateName(in.Name, 60) {
		return nil, invalid("name", "is required and must be at most 60 characters")
	}
	if in.Color == "" {
		in.Color = existing.Color
	}
	if !util.ValidateColor(in.Color) {
		return nil, invalid("color", "must be a hex color")
	}
	existing.Name, existing.Icon, existing.Color = in.Name, in.Icon, in.Color

	updated, err := s.repo.UpdateCategory(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	existing, err := s.repo.GetCategory(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return ErrSystemCategory
	}
	children, err := s.repo.CountChildCategories(ctx, userID, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrCategoryHasChildren
	}
	if err := s.repo.DeleteCategory(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// HasChildren reports whether any category hangs below id.
func (s *CategoryService) HasChildren(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	n, err := s.repo.CountChildCategories(ctx, userID, id)
	return n > 0, err
}

// EnsureSystem returns the named system category of the given kind,
// creating it on first use.
func (s *CategoryService) EnsureSystem(ctx context.Context, userID uuid.UUID, name string, kind models.Kind) (*models.Category, error) {
	found, err := s.repo.FindSystemCategory(ctx, userID, name, kind)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	style := systemCategories[name]
	created, err := s.repo.CreateCategory(ctx, &models.Category{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Icon:     style.icon,
		Color:    style.color,
		Kind:     kind,
		IsSystem: true,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Created system category %q (%s) for user %s", name, kind, userID)
	s.invalidate(userID)
	return created, nil
}
