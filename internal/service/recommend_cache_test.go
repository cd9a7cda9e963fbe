package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"movierec/internal/cache"
	"movierec/internal/config"
	"movierec/internal/metrics"
	"movierec/internal/models"
	"movierec/internal/recommend"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func withRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.InitRedis(&config.Config{RedisAddr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })
	return mr
}

func cacheCounters() (hits, misses float64) {
	return testutil.ToFloat64(metrics.CacheHits), testutil.ToFloat64(metrics.CacheMisses)
}

func TestRecommendService_CacheMissThenHit(t *testing.T) {
	mr := withRedis(t)
	svc := NewRecommendService(testIndex(t), nil, time.Minute)
	ctx := context.Background()

	hits0, misses0 := cacheCounters()

	first, err := svc.Recommend(ctx, RecRequest{Query: "Avatr", K: 2})
	if err != nil {
		t.Fatal(err)
	}
	if hits, misses := cacheCounters(); hits != hits0 || misses != misses0+1 {
		t.Errorf("after first call hits=%v misses=%v, want %v/%v", hits, misses, hits0, misses0+1)
	}

	key := svc.cacheKey("Avatr", 2)
	if !mr.Exists(key) {
		t.Fatalf("key %q not stored, have %v", key, mr.Keys())
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	second, err := svc.Recommend(ctx, RecRequest{Query: "Avatr", K: 2})
	if err != nil {
		t.Fatal(err)
	}
	if hits, misses := cacheCounters(); hits != hits0+1 || misses != misses0+1 {
		t.Errorf("after second call hits=%v misses=%v, want %v/%v", hits, misses, hits0+1, misses0+1)
	}
	if second.Match != first.Match || len(second.Items) != len(first.Items) || second.Items[0] != first.Items[0] {
		t.Errorf("cached result %+v differs from computed %+v", second, first)
	}
}

func TestRecommendService_RefreshSkipsCacheRead(t *testing.T) {
	mr := withRedis(t)
	svc := NewRecommendService(testIndex(t), nil, time.Minute)
	ctx := context.Background()

	key := svc.cacheKey("Avatar", 0)
	mr.Set(key, `{"match":"Stale","matchIndex":3,"items":[]}`)

	res, err := svc.Recommend(ctx, RecRequest{Query: "Avatar"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Match != "Stale" {
		t.Fatalf("Match = %q, want the cached entry", res.Match)
	}

	hits0, misses0 := cacheCounters()
	res, err = svc.Recommend(ctx, RecRequest{Query: "Avatar", Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Match != "Avatar" {
		t.Errorf("Match = %q, want Avatar", res.Match)
	}
	if hits, misses := cacheCounters(); hits != hits0 || misses != misses0 {
		t.Errorf("refresh touched counters: hits %v->%v misses %v->%v", hits0, hits, misses0, misses)
	}

	// the fresh result replaces the stale entry
	stored, _ := mr.Get(key)
	if !strings.Contains(stored, `"match":"Avatar"`) {
		t.Errorf("stored = %s", stored)
	}
}

func TestRecommendService_CacheKeyedByCatalog(t *testing.T) {
	mr := withRedis(t)
	ctx := context.Background()

	other, err := recommend.Build([]models.Movie{
		{Title: "Avatar", Genres: "Animation", Keywords: "airbender", Director: "Dave Filoni"},
		{Title: "Heat", Genres: "Crime", Keywords: "heist", Director: "Michael Mann"},
	}, recommend.Options{})
	if err != nil {
		t.Fatal(err)
	}

	a := NewRecommendService(testIndex(t), nil, time.Minute)
	b := NewRecommendService(other, nil, time.Minute)

	if a.cacheKey("Avatar", 0) == b.cacheKey("Avatar", 0) {
		t.Fatal("different catalogs share a cache key")
	}

	resA, err := a.Recommend(ctx, RecRequest{Query: "Avatar"})
	if err != nil {
		t.Fatal(err)
	}
	hits0, _ := cacheCounters()
	resB, err := b.Recommend(ctx, RecRequest{Query: "Avatar"})
	if err != nil {
		t.Fatal(err)
	}

	if hits, _ := cacheCounters(); hits != hits0 {
		t.Error("second catalog was served the first catalog's entry")
	}
	if len(mr.Keys()) != 2 {
		t.Errorf("keys = %v, want one per catalog", mr.Keys())
	}
	if len(resA.Items) != 3 || len(resB.Items) != 1 || resB.Items[0].Title != "Heat" {
		t.Errorf("items A=%+v B=%+v", resA.Items, resB.Items)
	}
}
