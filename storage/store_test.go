package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/gastromap/catalog/model"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := Open(Config{
		Driver: DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, ResetSchema(context.Background(), db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAssignsIDAndRoundTrips(t *testing.T) {
	db := newTestDB(t)
	cultures := Cultures(db)
	ctx := context.Background()

	saved, err := cultures.Save(ctx, &model.Culture{Name: "Oaxacan", Description: "Southern Mexico"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	found, err := cultures.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Oaxacan", found.Name)
}

func TestFindByIDAbsentReturnsNil(t *testing.T) {
	db := newTestDB(t)
	cultures := Cultures(db)

	found, err := cultures.FindByID(context.Background(), "cu-missing")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSaveUpdatesExistingRow(t *testing.T) {
	db := newTestDB(t)
	countries := Countries(db)
	ctx := context.Background()

	saved, err := countries.Save(ctx, &model.Country{Name: "Mexco"})
	require.NoError(t, err)

	saved.Name = "Mexico"
	_, err = countries.Save(ctx, saved)
	require.NoError(t, err)

	found, err := countries.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mexico", found.Name)

	all, err := countries.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestJoinEdgesAttachIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	cultures := Cultures(db)
	countries := Countries(db)
	edges := CultureCountryEdges(db)
	ctx := context.Background()

	culture, err := cultures.Save(ctx, &model.Culture{Name: "Oaxacan", Description: "Southern Mexico"})
	require.NoError(t, err)
	country, err := countries.Save(ctx, &model.Country{Name: "Mexico"})
	require.NoError(t, err)

	require.NoError(t, edges.Attach(ctx, culture.ID, country.ID))
	require.NoError(t, edges.Attach(ctx, culture.ID, country.ID))

	loaded, err := cultures.FindByID(ctx, culture.ID, WithRelations("Countries"))
	require.NoError(t, err)
	assert.Len(t, loaded.Countries, 1)
}

func TestJoinEdgesDetach(t *testing.T) {
	db := newTestDB(t)
	cultures := Cultures(db)
	countries := Countries(db)
	edges := CultureCountryEdges(db)
	ctx := context.Background()

	culture, err := cultures.Save(ctx, &model.Culture{Name: "Basque", Description: "Northern Spain"})
	require.NoError(t, err)
	country, err := countries.Save(ctx, &model.Country{Name: "Spain"})
	require.NoError(t, err)

	require.NoError(t, edges.Attach(ctx, culture.ID, country.ID))
	require.NoError(t, edges.Detach(ctx, culture.ID, country.ID))

	loaded, err := cultures.FindByID(ctx, culture.ID, WithRelations("Countries"))
	require.NoError(t, err)
	assert.Empty(t, loaded.Countries)
}

func TestJoinEdgesSharedBetweenViews(t *testing.T) {
	db := newTestDB(t)
	cultures := Cultures(db)
	countries := Countries(db)
	ctx := context.Background()

	culture, err := cultures.Save(ctx, &model.Culture{Name: "Oaxacan", Description: "Southern Mexico"})
	require.NoError(t, err)
	country, err := countries.Save(ctx, &model.Country{Name: "Mexico"})
	require.NoError(t, err)

	// Attach through the culture view, read through the country view.
	require.NoError(t, CultureCountryEdges(db).Attach(ctx, culture.ID, country.ID))

	loaded, err := countries.FindByID(ctx, country.ID, WithRelations("Cultures"))
	require.NoError(t, err)
	require.Len(t, loaded.Cultures, 1)
	assert.Equal(t, culture.ID, loaded.Cultures[0].ID)

	// Detach through the country view; the culture view sees it gone.
	require.NoError(t, CountryCultureEdges(db).Detach(ctx, country.ID, culture.ID))
	reloaded, err := cultures.FindByID(ctx, culture.ID, WithRelations("Countries"))
	require.NoError(t, err)
	assert.Empty(t, reloaded.Countries)
}

func TestFKEdgesAttachAndDetach(t *testing.T) {
	db := newTestDB(t)
	cultures := Cultures(db)
	products := Products(db)
	edges := CultureProductEdges(db)
	ctx := context.Background()

	culture, err := cultures.Save(ctx, &model.Culture{Name: "Oaxacan", Description: "Southern Mexico"})
	require.NoError(t, err)
	product, err := products.Save(ctx, &model.Product{Name: "Mole", Description: "Sauce", History: "Pre-hispanic"})
	require.NoError(t, err)

	require.NoError(t, edges.Attach(ctx, culture.ID, product.ID))

	loaded, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.CultureID)
	assert.Equal(t, culture.ID, *loaded.CultureID)

	require.NoError(t, edges.Detach(ctx, culture.ID, product.ID))
	reloaded, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CultureID)
}

func TestFKEdgesDetachIgnoresOtherParent(t *testing.T) {
	db := newTestDB(t)
	cultures := Cultures(db)
	products := Products(db)
	edges := CultureProductEdges(db)
	ctx := context.Background()

	first, err := cultures.Save(ctx, &model.Culture{Name: "Oaxacan", Description: "Southern Mexico"})
	require.NoError(t, err)
	second, err := cultures.Save(ctx, &model.Culture{Name: "Basque", Description: "Northern Spain"})
	require.NoError(t, err)
	product, err := products.Save(ctx, &model.Product{Name: "Mole", Description: "Sauce", History: "Pre-hispanic"})
	require.NoError(t, err)

	require.NoError(t, edges.Attach(ctx, first.ID, product.ID))
	// Detaching from a culture the product does not belong to is a no-op.
	require.NoError(t, edges.Detach(ctx, second.ID, product.ID))

	loaded, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.CultureID)
	assert.Equal(t, first.ID, *loaded.CultureID)
}

func TestRemoveDoesNotCascade(t *testing.T) {
	db := newTestDB(t)
	cultures := Cultures(db)
	products := Products(db)
	edges := CultureProductEdges(db)
	ctx := context.Background()

	culture, err := cultures.Save(ctx, &model.Culture{Name: "Oaxacan", Description: "Southern Mexico"})
	require.NoError(t, err)
	product, err := products.Save(ctx, &model.Product{Name: "Mole", Description: "Sauce", History: "Pre-hispanic"})
	require.NoError(t, err)
	require.NoError(t, edges.Attach(ctx, culture.ID, product.ID))

	require.NoError(t, cultures.Remove(ctx, culture))

	// The product row survives, still pointing at the removed culture.
	loaded, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.CultureID)
	assert.Equal(t, culture.ID, *loaded.CultureID)
}

func TestWithRelationsLoadsOnlyRequested(t *testing.T) {
	db := newTestDB(t)
	cultures := Cultures(db)
	countries := Countries(db)
	products := Products(db)
	ctx := context.Background()

	culture, err := cultures.Save(ctx, &model.Culture{Name: "Oaxacan", Description: "Southern Mexico"})
	require.NoError(t, err)
	country, err := countries.Save(ctx, &model.Country{Name: "Mexico"})
	require.NoError(t, err)
	product, err := products.Save(ctx, &model.Product{Name: "Mole", Description: "Sauce", History: "Pre-hispanic"})
	require.NoError(t, err)

	require.NoError(t, CultureCountryEdges(db).Attach(ctx, culture.ID, country.ID))
	require.NoError(t, CultureProductEdges(db).Attach(ctx, culture.ID, product.ID))

	loaded, err := cultures.FindByID(ctx, culture.ID, WithRelations("Countries"))
	require.NoError(t, err)
	assert.Len(t, loaded.Countries, 1)
	assert.Empty(t, loaded.Products)

	full, err := cultures.FindByID(ctx, culture.ID, WithRelations("Countries", "Products"))
	require.NoError(t, err)
	assert.Len(t, full.Countries, 1)
	assert.Len(t, full.Products, 1)
}
