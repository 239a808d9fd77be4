package service

import (
	"context"
	"errors"
	"testing"

	"storefront-service/config"
	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogStore struct {
	products   []models.Product
	count      int64
	listErr    error
	lastFilter catalog.Filter
}

func (s *stubCatalogStore) ListProducts(ctx context.Context, filter catalog.Filter) ([]models.Product, int64, error) {
	s.lastFilter = filter
	return s.products, s.count, s.listErr
}

func (s *stubCatalogStore) GetProductBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Product, error) {
	return nil, nil
}

func (s *stubCatalogStore) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return nil, nil
}

func testStoreConfig() config.StoreConfig {
	return config.StoreConfig{
		Name:             "Sneaker Store",
		CatalogPageSize:  12,
		AdminPageSize:    20,
		HomepagePageSize: 8,
	}
}

func newStubbedCatalogService(st *stubCatalogStore) *CatalogService {
	return &CatalogService{
		store:  st,
		cfg:    testStoreConfig(),
		logger: util.GetLogger(),
	}
}

func TestListCatalogForcesPublishedOnly(t *testing.T) {
	st := &stubCatalogStore{count: 1, products: []models.Product{{ID: 1}}}
	cs := newStubbedCatalogService(st)

	page := cs.ListCatalog(context.Background(), catalog.Filter{IncludeAllStatuses: true})
	require.NotNil(t, page)
	assert.False(t, st.lastFilter.IncludeAllStatuses)
	assert.Equal(t, 12, st.lastFilter.PageSize)
}

func TestListCatalogDegradesToEmptyPage(t *testing.T) {
	st := &stubCatalogStore{listErr: errors.New("connection refused")}
	cs := newStubbedCatalogService(st)

	page := cs.ListCatalog(context.Background(), catalog.Filter{})
	require.NotNil(t, page)
	assert.Empty(t, page.Products)
	assert.Equal(t, int64(0), page.Count)
	assert.Equal(t, 1, page.Page)
}

func TestListFeaturedUsesHomepagePageSize(t *testing.T) {
	st := &stubCatalogStore{}
	cs := newStubbedCatalogService(st)

	page := cs.ListFeatured(context.Background())
	require.NotNil(t, page)
	assert.Equal(t, 8, st.lastFilter.PageSize)
	require.NotNil(t, st.lastFilter.Featured)
	assert.True(t, *st.lastFilter.Featured)
	assert.False(t, st.lastFilter.IncludeAllStatuses)
}
