package services

import (
	"context"
	"testing"

	"github.com/gastromap/catalog/cache"
	"github.com/gastromap/catalog/errs"
	"github.com/gastromap/catalog/model"
)

func newCultureEntity(t *testing.T, invalidate Invalidator) (*Entity[model.Culture], *mockStore[model.Culture]) {
	t.Helper()
	store := newMockStore(
		func(c *model.Culture) string { return c.ID },
		func(c *model.Culture, id string) { c.ID = id },
	)
	svc := NewEntity(store, newTestCache(t), cache.NewKeyRegistry(), invalidate, CultureKind())
	return svc, store
}

func TestCreateAssignsID(t *testing.T) {
	svc, _ := newCultureEntity(t, nil)

	culture, err := svc.Create(context.Background(), &model.Culture{Name: "Oaxacan", Description: "Southern Mexico"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if culture.ID == "" {
		t.Error("Create did not assign an id")
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc, store := newCultureEntity(t, nil)

	_, err := svc.Create(context.Background(), &model.Culture{Description: "nameless"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if store.callCount("Save") != 0 {
		t.Error("invalid record reached the store")
	}
}

func TestFindOneMissing(t *testing.T) {
	svc, _ := newCultureEntity(t, nil)

	_, err := svc.FindOne(context.Background(), "cu-missing")
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateMergesOntoPersisted(t *testing.T) {
	svc, store := newCultureEntity(t, nil)
	store.put(&model.Culture{ID: "cu-1", Name: "Oaxacan", Description: "Southern Mexico"})

	updated, err := svc.Update(context.Background(), "cu-1", &model.Culture{Name: "Oaxaqueña"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Oaxaqueña" {
		t.Errorf("Update did not apply the patch: %+v", updated)
	}
	if updated.Description != "Southern Mexico" {
		t.Errorf("Update dropped an untouched field: %+v", updated)
	}
}

func TestUpdateMissing(t *testing.T) {
	svc, _ := newCultureEntity(t, nil)

	_, err := svc.Update(context.Background(), "cu-missing", &model.Culture{Name: "x"})
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	svc, _ := newCultureEntity(t, nil)

	err := svc.Delete(context.Background(), "cu-missing")
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindAllServedFromCacheAcrossWrites(t *testing.T) {
	svc, store := newCultureEntity(t, nil)
	store.put(&model.Culture{ID: "cu-1", Name: "Oaxacan", Description: "Southern Mexico"})

	if _, err := svc.FindAll(context.Background()); err != nil {
		t.Fatalf("first FindAll failed: %v", err)
	}
	lists := store.callCount("FindAll")

	if _, err := svc.Create(context.Background(), &model.Culture{Name: "Basque", Description: "Northern Spain"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cultures, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("second FindAll failed: %v", err)
	}
	if got := store.callCount("FindAll"); got != lists {
		t.Errorf("second FindAll hit the store: %d -> %d", lists, got)
	}
	if len(cultures) != 1 {
		t.Errorf("expected stale single-culture listing, got %d", len(cultures))
	}
}

func TestFindAllRefreshesWithInvalidator(t *testing.T) {
	store := newMockStore(
		func(c *model.Culture) string { return c.ID },
		func(c *model.Culture, id string) { c.ID = id },
	)
	cacheService := newTestCache(t)
	registry := cache.NewKeyRegistry()
	svc := NewEntity(store, cacheService, registry, NewCacheInvalidator(cacheService, registry), CultureKind())
	ctx := context.Background()

	store.put(&model.Culture{ID: "cu-1", Name: "Oaxacan", Description: "Southern Mexico"})
	if _, err := svc.FindAll(ctx); err != nil {
		t.Fatalf("first FindAll failed: %v", err)
	}

	if _, err := svc.Create(ctx, &model.Culture{Name: "Basque", Description: "Northern Spain"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cultures, err := svc.FindAll(ctx)
	if err != nil {
		t.Fatalf("second FindAll failed: %v", err)
	}
	if len(cultures) != 2 {
		t.Errorf("expected refreshed listing with 2 cultures, got %d", len(cultures))
	}
}

// Mutating a result served from cache must not corrupt the cached copy.
func TestCachedListingIsDetached(t *testing.T) {
	svc, store := newCultureEntity(t, nil)
	store.put(&model.Culture{ID: "cu-1", Name: "Oaxacan", Description: "Southern Mexico"})

	first, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("first FindAll failed: %v", err)
	}
	first[0].Name = "mutated"

	second, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("second FindAll failed: %v", err)
	}
	if second[0].Name != "Oaxacan" {
		t.Errorf("cached copy was corrupted by caller mutation: %+v", second[0])
	}
}

func TestDeleteLeavesListingStale(t *testing.T) {
	svc, store := newCultureEntity(t, nil)
	store.put(&model.Culture{ID: "cu-1", Name: "Oaxacan", Description: "Southern Mexico"})

	if _, err := svc.FindAll(context.Background()); err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "cu-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	cultures, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll after Delete failed: %v", err)
	}
	if len(cultures) != 1 {
		t.Errorf("expected the deleted culture to linger in the listing, got %d entries", len(cultures))
	}
}
