package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealscope/server/config"
	"dealscope/server/internal/deepseek"
	"dealscope/server/internal/market"
	"dealscope/server/internal/models"
	"dealscope/server/internal/queue"
	"dealscope/server/internal/rentcast"
	"dealscope/server/internal/state"
	"dealscope/server/internal/store"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*Provider, *state.Container, *queue.ListingQueue) {
	t.Helper()

	cfg := &config.Config{}
	cfg.DefaultCity = "Austin"
	cfg.DefaultState = "TX"
	cfg.RentCast.TimeoutS = 5
	cfg.RentCast.MaxLimit = 500
	cfg.RentCast.SearchLim = 50
	cfg.DeepSeek.TimeoutS = 5
	cfg.DeepSeek.BaseURL = "http://localhost:0"

	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		cfg.RentCast.APIKey = "test-key"
		cfg.RentCast.BaseURL = server.URL
	} else {
		cfg.RentCast.BaseURL = "http://localhost:0"
	}

	logger := logrus.New()
	st, err := store.NewStore()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	container := state.NewContainer()
	q := queue.NewListingQueue(8, logger)
	t.Cleanup(func() { q.Close() })

	rc := rentcast.NewClient(cfg, logger)
	mk := market.NewService(st, rc, deepseek.NewClient(cfg, logger), container, cfg.DefaultCity, logger)

	return New(cfg, rc, container, q, mk, logger), container, q
}

func TestInitializeWithoutAPIKeyLoadsDemoData(t *testing.T) {
	p, container, q := newTestProvider(t, nil)

	p.Initialize(context.Background())

	assert.Equal(t, state.SourceDemo, container.DataSource())
	assert.Len(t, container.Properties(), 5)
	assert.Len(t, container.Leads(), 3)
	assert.Equal(t, 1, q.Len(), "demo collection is enqueued for the snapshot store")
	assert.Equal(t, market.FallbackMarketData(), container.MarketData())
	assert.False(t, container.Loading())
}

func TestCollectionChangesAreEnqueued(t *testing.T) {
	_, container, q := newTestProvider(t, nil)

	// any collection replacement reaches the ingest queue through the
	// provider's subscription, not just the provider's own load paths
	container.SetProperties([]models.Property{{ID: "prop-1"}})
	require.Equal(t, 1, q.Len())

	container.SetProperties([]models.Property{{ID: "prop-2"}, {ID: "prop-3"}})
	assert.Equal(t, 2, q.Len())
}

func TestInitializeLoadsLiveListings(t *testing.T) {
	p, container, q := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/listings/sale":
			w.Write([]byte(`[{"id": "live-1", "price": 400000}, {"id": "live-2", "price": 500000}]`))
		case "/markets/summary":
			w.Write([]byte(`{"averagePrice": 512000}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	p.Initialize(context.Background())

	assert.Equal(t, state.SourceLive, container.DataSource())
	assert.Len(t, container.Properties(), 2)
	assert.Equal(t, 512000.0, container.MarketData().AveragePrice)
	assert.GreaterOrEqual(t, q.Len(), 1)
}

func TestInitializeEmptyLiveResultFallsBackToDemo(t *testing.T) {
	p, container, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/listings/sale":
			w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	p.Initialize(context.Background())

	assert.Equal(t, state.SourceDemo, container.DataSource())
	assert.Len(t, container.Properties(), 5)
}

func TestSearchDemoDataFiltersLocally(t *testing.T) {
	p, container, _ := newTestProvider(t, nil)
	p.Initialize(context.Background())

	filters := models.DefaultFilters()
	filters.PropertyType = models.TypeCondo

	got := p.Search(context.Background(), filters)
	require.Len(t, got, 2)
	assert.Equal(t, "456 Oak Avenue", got[0].Address)
	assert.Equal(t, "321 Cedar Lane", got[1].Address)
	assert.Equal(t, filters, container.Filters())
}

func TestSearchLiveQueriesProvider(t *testing.T) {
	calls := 0
	p, container, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/listings/sale":
			calls++
			w.Write([]byte(`[{"id": "live-1", "price": 400000, "bedrooms": 3}]`))
		default:
			w.Write([]byte(`{}`))
		}
	})
	p.Initialize(context.Background())
	require.Equal(t, state.SourceLive, container.DataSource())

	filters := models.DefaultFilters()
	got := p.Search(context.Background(), filters)

	assert.GreaterOrEqual(t, calls, 2, "search hits the provider again")
	require.Len(t, got, 1)
	assert.Equal(t, "live-1", got[0].ID)
}

func TestSearchAppliesLocalCriteriaToLiveResults(t *testing.T) {
	p, _, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/listings/sale":
			w.Write([]byte(`[
				{"id": "cheap", "price": 200000},
				{"id": "pricey", "price": 900000}
			]`))
		default:
			w.Write([]byte(`{}`))
		}
	})
	p.Initialize(context.Background())

	filters := models.DefaultFilters()
	filters.PriceRange = [2]float64{0, 500000}

	got := p.Search(context.Background(), filters)
	require.Len(t, got, 1)
	assert.Equal(t, "cheap", got[0].ID)
}

func TestStatus(t *testing.T) {
	p, _, _ := newTestProvider(t, nil)
	p.Initialize(context.Background())

	status := p.Status()
	assert.Equal(t, state.SourceDemo, status.Source)
	assert.Equal(t, 5, status.Properties)
	assert.Equal(t, 3, status.Leads)
	assert.False(t, status.RentCast)
	assert.False(t, status.Loading)
	assert.Equal(t, 1, status.IngestQueue, "demo snapshot still queued, no processor running")
}
