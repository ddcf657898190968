package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/codinghaytam/medical-registry-api/internal/models"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCacheHelper_RoundTrip(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(testRedis(t), UserCacheConfig.Prefix)

	user := &models.User{ID: "u-1", Username: "hamid", Email: "h@clinic.ma", Role: models.RoleMedecin}
	if err := helper.Set(ctx, "u-1", user, UserCacheConfig.TTL); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got models.User
	if err := helper.Get(ctx, "u-1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != "u-1" || got.Role != models.RoleMedecin {
		t.Errorf("Unexpected cached user %+v", got)
	}

	if err := helper.Get(ctx, "missing", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	helper := NewCacheHelper(client, ExistsCacheConfig.Prefix)
	if err := helper.SetString(ctx, "patient:p-1", "1", ExistsCacheConfig.TTL); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	if _, err := helper.GetString(ctx, "patient:p-1"); err != nil {
		t.Fatalf("GetString failed: %v", err)
	}

	server.FastForward(ExistsCacheConfig.TTL + time.Second)

	if _, err := helper.GetString(ctx, "patient:p-1"); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Expected the entry to expire, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(testRedis(t), MedecinCacheConfig.Prefix)

	for _, key := range []string{"m-1", "m-2", "m-3"} {
		if err := helper.SetString(ctx, key, "cached", MedecinCacheConfig.TTL); err != nil {
			t.Fatalf("SetString failed: %v", err)
		}
	}

	if err := helper.Delete(ctx, "m-1", "m-2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := helper.GetString(ctx, "m-1"); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Expected m-1 gone, got %v", err)
	}
	if _, err := helper.GetString(ctx, "m-3"); err != nil {
		t.Errorf("Expected m-3 untouched, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(testRedis(t), MedecinCacheConfig.Prefix)

	if err := helper.SetString(ctx, "profession:PARODONTAIRE", "list", MedecinCacheConfig.TTL); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	if err := helper.SetString(ctx, "profession:ORTHODONTAIRE", "list", MedecinCacheConfig.TTL); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	if err := helper.SetString(ctx, "id:m-1", "doctor", MedecinCacheConfig.TTL); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	if err := helper.InvalidatePattern(ctx, "profession:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	for _, key := range []string{"profession:PARODONTAIRE", "profession:ORTHODONTAIRE"} {
		if _, err := helper.GetString(ctx, key); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("Expected %s invalidated, got %v", key, err)
		}
	}
	if _, err := helper.GetString(ctx, "id:m-1"); err != nil {
		t.Errorf("Expected id:m-1 to survive, got %v", err)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(nil, UserCacheConfig.Prefix)

	if err := helper.Set(ctx, "u-1", "value", UserCacheConfig.TTL); err != nil {
		t.Errorf("Set must be a no-op without a client, got %v", err)
	}
	if err := helper.Get(ctx, "u-1", new(string)); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}
	if err := helper.Delete(ctx, "u-1"); err != nil {
		t.Errorf("Delete must be a no-op without a client, got %v", err)
	}
}
