// Package provider orchestrates where listing data comes from: the RentCast
// API when a key is configured and reachable, the built-in demo set
// otherwise. The provider subscribes to container collection changes and
// forwards every new snapshot onto the ingest queue, keeping the snapshot
// store in sync with whatever the dashboard currently shows.
package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"dealscope/server/config"
	"dealscope/server/internal/filter"
	"dealscope/server/internal/market"
	"dealscope/server/internal/models"
	"dealscope/server/internal/queue"
	"dealscope/server/internal/rentcast"
	"dealscope/server/internal/state"
)

type Provider struct {
	cfg       *config.Config
	rentcast  *rentcast.Client
	container *state.Container
	queue     *queue.ListingQueue
	market    *market.Service
	logger    *logrus.Logger
}

func New(cfg *config.Config, rc *rentcast.Client, container *state.Container, q *queue.ListingQueue, mk *market.Service, logger *logrus.Logger) *Provider {
	p := &Provider{
		cfg:       cfg,
		rentcast:  rc,
		container: container,
		queue:     q,
		market:    mk,
		logger:    logger,
	}

	container.Subscribe(func(snapshot []models.Property) {
		if err := p.queue.Push(snapshot); err != nil {
			p.logger.WithError(err).Warn("Failed to enqueue listing batch")
		}
	})

	return p
}

// Initialize probes the provider and loads the starting collection: live
// listings when the probe succeeds and returns data, the demo set otherwise.
// The market summary is refreshed either way.
func (p *Provider) Initialize(ctx context.Context) {
	p.container.SetLoading(true)
	defer p.container.SetLoading(false)

	status := p.rentcast.TestConnection(ctx)
	if !status.Success {
		p.logger.WithField("error", status.Error).Info("RentCast unavailable, loading demo data")
		p.loadDemoData()
		p.market.Refresh(ctx, p.cfg.DefaultCity, p.cfg.DefaultState)
		return
	}

	p.logger.Info("RentCast API connected successfully")

	properties, err := p.rentcast.SearchProperties(ctx, rentcast.SearchParams{
		City:  p.cfg.DefaultCity,
		State: p.cfg.DefaultState,
		Limit: p.cfg.RentCast.SearchLim,
	})
	if err != nil || len(properties) == 0 {
		if err != nil {
			p.logger.WithError(err).Warn("Initial listing load failed, using demo data")
		} else {
			p.logger.Warn("No listings returned, using demo data")
		}
		p.loadDemoData()
		p.market.Refresh(ctx, p.cfg.DefaultCity, p.cfg.DefaultState)
		return
	}

	p.logger.WithField("count", len(properties)).Info("Loaded listings from RentCast")
	p.setCollection(properties, state.SourceLive)
	p.container.SetLeads(DemoLeads())
	p.market.Refresh(ctx, p.cfg.DefaultCity, p.cfg.DefaultState)
}

func (p *Provider) loadDemoData() {
	p.setCollection(DemoProperties(), state.SourceDemo)
	p.container.SetLeads(DemoLeads())
}

// setCollection records the data source and installs the new collection;
// the collection subscription takes care of enqueueing the snapshot.
func (p *Provider) setCollection(properties []models.Property, source string) {
	p.container.SetDataSource(source)
	p.container.SetProperties(properties)
}

// Search applies the given filters. When live data is active the provider is
// queried first and its results become the new collection; the remaining
// local-only criteria are then applied in memory. Provider failures degrade
// to filtering the current collection.
func (p *Provider) Search(ctx context.Context, filters models.SearchFilters) []models.Property {
	p.container.SetFilters(filters)

	if p.container.DataSource() == state.SourceLive {
		properties, err := p.rentcast.SearchProperties(ctx, rentcast.SearchParams{
			City:         p.cfg.DefaultCity,
			State:        p.cfg.DefaultState,
			Bedrooms:     filters.Bedrooms,
			Bathrooms:    filters.Bathrooms,
			PropertyType: filters.PropertyType,
			Limit:        p.cfg.RentCast.SearchLim,
		})
		if err != nil {
			p.logger.WithError(err).Warn("Live search failed, filtering cached collection")
		} else {
			p.setCollection(properties, state.SourceLive)
		}
	}

	return filter.Apply(p.container.Properties(), filters)
}

// Status reports the current data source, loading state and ingest backlog.
type Status struct {
	Source      string `json:"source"`
	Loading     bool   `json:"loading"`
	Properties  int    `json:"properties"`
	Leads       int    `json:"leads"`
	RentCast    bool   `json:"rentcast_configured"`
	IngestQueue int    `json:"ingest_queue"`
}

func (p *Provider) Status() Status {
	return Status{
		Source:      p.container.DataSource(),
		Loading:     p.container.Loading(),
		Properties:  len(p.container.Properties()),
		Leads:       len(p.container.Leads()),
		RentCast:    p.rentcast.Configured(),
		IngestQueue: p.queue.Len(),
	}
}
