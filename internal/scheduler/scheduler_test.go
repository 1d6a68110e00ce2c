package scheduler

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealscope/server/config"
	"dealscope/server/internal/deepseek"
	"dealscope/server/internal/market"
	"dealscope/server/internal/rentcast"
	"dealscope/server/internal/state"
	"dealscope/server/internal/store"
)

func newTestScheduler(t *testing.T, handler http.HandlerFunc) (*Scheduler, *state.Container) {
	t.Helper()

	cfg := &config.Config{}
	cfg.RentCast.TimeoutS = 1
	cfg.RentCast.MaxLimit = 500
	cfg.DeepSeek.BaseURL = "http://localhost:0"
	cfg.DeepSeek.TimeoutS = 1
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
	mk := market.NewService(st, rentcast.NewClient(cfg, logger), deepseek.NewClient(cfg, logger), container, "Austin", logger)

	return NewScheduler(mk, logger, 60, config.SupportedMarkets), container
}

func TestSchedulerStartupRefresh(t *testing.T) {
	s, container := newTestScheduler(t, nil)

	s.Start()
	defer s.Stop()

	// the startup job runs the refresh and caches the fallback summary
	assert.Eventually(t, func() bool {
		return container.MarketData().AveragePrice > 0
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, market.FallbackMarketData(), container.MarketData())
}

func TestSchedulerKeepsDefaultMarketSummary(t *testing.T) {
	var secondarySeen atomic.Bool
	s, container := newTestScheduler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("city") == "Austin" {
			w.Write([]byte(`{"averagePrice": 100000}`))
			return
		}
		secondarySeen.Store(true)
		w.Write([]byte(`{"averagePrice": 900000}`))
	})

	s.Start()
	defer s.Stop()

	// wait until the startup job has reached the last supported market
	assert.Eventually(t, secondarySeen.Load, 2*time.Second, 20*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	// every supported market is refreshed, but the dashboard summary
	// stays pinned to the default city rather than whichever market the
	// loop visited last
	assert.Equal(t, 100000.0, container.MarketData().AveragePrice)
}

func TestSchedulerStop(t *testing.T) {
	s, _ := newTestScheduler(t, nil)
	s.Start()
	s.Stop()
}

func TestNewSchedulerNilLogger(t *testing.T) {
	s := NewScheduler(nil, nil, 0, nil)
	assert.NotNil(t, s.logger)
	assert.Equal(t, time.Hour, s.interval)
}
