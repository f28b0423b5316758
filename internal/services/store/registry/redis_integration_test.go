//go:build integration

package registry_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"selfservice/internal/services/models"
	"selfservice/internal/services/store/registry"
	id "selfservice/pkg/domain"
	"selfservice/pkg/platform/sentinel"
	"selfservice/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *registry.Redis
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = registry.NewRedis(s.redis.Client, time.Hour)
}

func (s *RedisStoreSuite) TearDownSuite() {
	s.redis.Terminate(context.Background())
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) newService(name string) *models.Service {
	svc, err := models.NewService(id.NewServiceID(), name, time.Now().UTC().Truncate(time.Second))
	s.Require().NoError(err)
	return svc
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	sessionID := id.NewSessionID()
	svc := s.newService("Acme")
	s.Require().NoError(svc.Integration.Set(models.FieldRedirectURIs, "a\nb"))

	s.Require().NoError(s.store.Update(ctx, sessionID, func(r *models.Registry) error {
		r.Add(svc)
		return nil
	}))

	reg, err := s.store.Load(ctx, sessionID)
	s.Require().NoError(err)
	got, ok := reg.Find(svc.ID)
	s.Require().True(ok)
	s.Equal("Acme", got.Name)
	s.Equal([]string{"a", "b"}, got.Integration.RedirectURIs)
	s.True(svc.CreatedAt.Equal(got.CreatedAt))
}

func (s *RedisStoreSuite) TestMissingSession() {
	_, err := s.store.Load(context.Background(), id.NewSessionID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestKeyExpiresWithSession() {
	ctx := context.Background()
	sessionID := id.NewSessionID()
	s.Require().NoError(s.store.Update(ctx, sessionID, func(r *models.Registry) error {
		r.Add(s.newService("Acme"))
		return nil
	}))

	ttl, err := s.redis.Client.TTL(ctx, "selfservice:registry:"+sessionID.String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Hour)
}

// TestWATCHConflictDetection verifies concurrent writers either commit or
// get ErrConflict, and nothing else.
func (s *RedisStoreSuite) TestWATCHConflictDetection() {
	ctx := context.Background()
	sessionID := id.NewSessionID()

	const goroutines = 20
	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32
	var otherErrors atomic.Int32

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc, err := models.NewService(id.NewServiceID(), "svc", time.Now())
			if err != nil {
				otherErrors.Add(1)
				return
			}
			err = s.store.Update(ctx, sessionID, func(r *models.Registry) error {
				r.Add(svc)
				return nil
			})
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflictCount.Add(1)
			default:
				otherErrors.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(0), otherErrors.Load())
	s.Equal(int32(goroutines), successCount.Load()+conflictCount.Load())

	reg, err := s.store.Load(ctx, sessionID)
	s.Require().NoError(err)
	s.Equal(int(successCount.Load()), reg.Len())
}
