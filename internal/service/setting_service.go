package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freightdesk/internal/cache"
	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/model"
	"freightdesk/internal/repository"
)

const settingCacheTTL = 5 * time.Minute

// SettingService handles the admin key/value settings store. Reads go
// through the cache; the cache client is fail-safe so a Redis outage only
// costs the read-through.
type SettingService interface {
	List(ctx context.Context) ([]model.Setting, error)
	Get(ctx context.Context, key string) (*model.Setting, error)
	Put(ctx context.Context, key, value string) (*model.Setting, error)
}

type settingService struct {
	settingRepo repository.SettingRepository
	cache       *cache.Client
}

// NewSettingService creates a new setting service.
func NewSettingService(settingRepo repository.SettingRepository, cache *cache.Client) SettingService {
	return &settingService{settingRepo: settingRepo, cache: cache}
}

func (s *settingService) cacheKey(key string) string {
	return "setting:" + key
}

// List lists all settings.
func (s *settingService) List(ctx context.Context) ([]model.Setting, error) {
	return s.settingRepo.List(ctx)
}

// Get returns one setting by key, trying the cache first.
func (s *settingService) Get(ctx context.Context, key string) (*model.Setting, error) {
	if raw, _ := s.cache.Get(ctx, s.cacheKey(key)); raw != nil {
		var setting model.Setting
		if err := json.Unmarshal(raw, &setting); err == nil {
			return &setting, nil
		}
	}

	setting, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		return nil, asNotFound(err)
	}

	if raw, err := json.Marshal(setting); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(key), raw, settingCacheTTL)
	}
	return setting, nil
}

// Put creates or replaces a setting and invalidates its cache entry.
func (s *settingService) Put(ctx context.Context, key, value string) (*model.Setting, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: setting key is required", apperrors.ErrValidation)
	}
	setting, err := s.settingRepo.Upsert(ctx, key, value)
	if err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(key))
	return setting, nil
}
