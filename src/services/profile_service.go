package services

import (
	"context"
	"errors"
	"strings"

	"caudal-server/src/db"
	"caudal-server/src/models"
	"caudal-server/src/session"
	"caudal-server/src/util"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ProfileInput struct {
	Name            string `json:"name"`
	DefaultCurrency string `json:"default_currency"`
}

type ProfileService struct {
	repo  ProfileRepository
	cache *db.Cache
}

func NewProfileService(repo ProfileRepository, cache *db.Cache) *ProfileService {
	return &ProfileService{repo: repo, cache: cache}
}

// Get returns the caller's profile, creating it on first access.
func (s *ProfileService) Get(ctx context.Context, sess session.Session) (*models.Profile, error) {
	key := db.Key(db.ProfileCacheGroup, sess.UserID)
	if cached, ok := s.cache.Get(key); ok {
		if p, ok := cached.(models.Profile); ok {
			return &p, nil
		}
	}

	p, err := s.repo.GetProfile(ctx, sess.UserID)
	if errors.Is(err, models.ErrNotFound) {
		p, err = s.repo.CreateProfile(ctx, &models.Profile{
			ID:              sess.UserID,
			Name:            sess.DisplayName(),
			DefaultCurrency: models.DefaultCurrency,
		})
	}
	if err != nil {
		return nil, err
	}
	s.cache.Set(db.ProfileCacheGroup, key, *p)
	return p, nil
}

func (s *ProfileService) Update(ctx context.Context, sess session.Session, in ProfileInput) (*models.Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	if !util.ValidateName(in.Name, 80) {
		return nil, invalid("name", "is required and must be at most 80 characters")
	}
	in.DefaultCurrency = strings.ToUpper(strings.TrimSpace(in.DefaultCurrency))
	if in.DefaultCurrency == "" {
		in.DefaultCurrency = models.DefaultCurrency
	}
	if !util.ValidateCurrency(in.DefaultCurrency) {
		return nil, invalid("default_currency", "must be a three letter code")
	}
	existing, err := s.Get(ctx, sess)
	if err != nil {
		return nil, err
	}
	existing.Name, existing.DefaultCurrency = in.Name, in.DefaultCurrency
	return s.save(ctx, existing)
}

func (s *ProfileService) CompleteOnboarding(ctx context.Context, sess session.Session) (*models.Profile, error) {
	existing, err := s.Get(ctx, sess)
	if err != nil {
		return nil, err
	}
	existing.OnboardingCompleted = true
	return s.save(ctx, existing)
}

// Stats counts what the user has recorded so far.
func (s *ProfileService) Stats(ctx context.Context, userID uuid.UUID) (*models.ProfileStats, error) {
	var stats models.ProfileStats
	targets := []struct {
		set models.RecordSet
		dst *int
	}{
		{models.RecordTransactions, &stats.Transactions},
		{models.RecordActiveWallets, &stats.Wallets},
		{models.RecordCategories, &stats.Categories},
		{models.RecordBudgets, &stats.Budgets},
		{models.RecordDebts, &stats.Debts},
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			n, err := s.repo.CountRecords(gctx, userID, target.set)
			if err != nil {
				return err
			}
			*target.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *ProfileService) save(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	updated, err := s.repo.UpdateProfile(ctx, p)
	s.invalidate(p.ID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProfileService) invalidate(userID uuid.UUID) {
	s.cache.Del(db.ProfileCacheGroup, db.Key(db.ProfileCacheGroup, userID))
}
