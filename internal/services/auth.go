package services

import (
	"errors"
	"sync"
	"time"

	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"github.com/racs-hpc/hpcadmin-server/internal/utils"
	"github.com/racs-hpc/hpcadmin-server/pkg/logger"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
	"gorm.io/gorm"
)

// roleUnknown caches negative lookups so a flood of bad keys does not
// hammer the database.
const roleUnknown = "unknown"

const cacheTTL = 5 * time.Minute

type cachedRole struct {
	role     string
	cachedAt time.Time
}

// AuthService resolves API keys to roles, caching results with a TTL,
// and exchanges valid keys for short-lived bearer tokens.
type AuthService struct {
	db              *gorm.DB
	tokenExpireHour int

	mu    sync.Mutex
	cache map[string]cachedRole
}

func NewAuthService(db *gorm.DB, tokenExpireHour int) *AuthService {
	if tokenExpireHour <= 0 {
		tokenExpireHour = 24
	}
	return &AuthService{
		db:              db,
		tokenExpireHour: tokenExpireHour,
		cache:           make(map[string]cachedRole),
	}
}

// ResolveKey returns the role associated with the API key, or an
// unauthorized error when the key is unknown.
func (s *AuthService) ResolveKey(key string) (string, error) {
	if role, ok := s.lookupCache(key); ok {
		if role == roleUnknown {
			return "", response.NewUnauthorized("invalid API key")
		}
		return role, nil
	}

	var entry models.APIKey
	err := s.db.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.cacheRole(key, roleUnknown)
		return "", response.NewUnauthorized("invalid API key")
	}
	if err != nil {
		return "", err
	}

	s.cacheRole(key, entry.Role)
	return entry.Role, nil
}

// IssueToken exchanges a valid API key for a signed bearer token.
func (s *AuthService) IssueToken(key string) (string, error) {
	var entry models.APIKey
	err := s.db.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", response.NewUnauthorized("invalid API key")
	}
	if err != nil {
		return "", err
	}
	return utils.GenerateToken(entry.ID, entry.Role, s.tokenExpireHour)
}

func (s *AuthService) lookupCache(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[key]
	if !ok {
		return "", false
	}
	if time.Since(entry.cachedAt) > cacheTTL {
		delete(s.cache, key)
		return "", false
	}
	return entry.role, true
}

func (s *AuthService) cacheRole(key, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cachedRole{role: role, cachedAt: time.Now()}
}

// SweepCache drops expired cache entries and returns how many were
// removed.
func (s *AuthService) SweepCache() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, entry := range s.cache {
		if time.Since(entry.cachedAt) > cacheTTL {
			delete(s.cache, key)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug().Int("removed", removed).Msg("swept auth cache")
	}
	return removed
}
