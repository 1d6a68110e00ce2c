package state

import (
	"sync"

	"dealscope/server/internal/models"
)

// Container holds the live dashboard state: the current property collection,
// the active search filters, the selected property, the lead book, and the
// latest market data. All access is mutex-guarded; snapshots returned to
// callers are copies, so holders cannot mutate shared state.
type Container struct {
	mu         sync.RWMutex
	properties []models.Property
	filters    models.SearchFilters
	selectedID string
	leads      []models.Lead
	market     models.MarketData
	loading    bool
	dataSource string

	subscribers []func([]models.Property)
}

// Data source labels reported by /api/status.
const (
	SourceLive = "live"
	SourceDemo = "demo"
)

func NewContainer() *Container {
	return &Container{
		filters:    models.DefaultFilters(),
		dataSource: SourceDemo,
	}
}

// Subscribe registers a callback invoked with each new collection after it
// replaces the old one. Callbacks run synchronously outside the lock and
// receive their own copy of the snapshot.
func (c *Container) Subscribe(fn func([]models.Property)) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.mu.Unlock()
}

func (c *Container) notify(snapshot []models.Property) {
	c.mu.RLock()
	subs := c.subscribers
	c.mu.RUnlock()
	for _, fn := range subs {
		fn(append([]models.Property(nil), snapshot...))
	}
}

// SetProperties replaces the property collection wholesale and clears any
// selection that no longer resolves.
func (c *Container) SetProperties(properties []models.Property) {
	c.mu.Lock()
	c.properties = append([]models.Property(nil), properties...)
	if c.selectedID != "" {
		found := false
		for _, p := range c.properties {
			if p.ID == c.selectedID {
				found = true
				break
			}
		}
		if !found {
			c.selectedID = ""
		}
	}
	snapshot := c.properties
	c.mu.Unlock()
	c.notify(snapshot)
}

// Properties returns a copy of the current collection in its stored order.
func (c *Container) Properties() []models.Property {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Property(nil), c.properties...)
}

// PropertyByID looks up a single property by id.
func (c *Container) PropertyByID(id string) (models.Property, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.findLocked(id)
}

// SetFilters replaces the active search filters.
func (c *Container) SetFilters(f models.SearchFilters) {
	c.mu.Lock()
	c.filters = f
	c.mu.Unlock()
}

// ResetFilters restores every filter field to its no-constraint sentinel.
func (c *Container) ResetFilters() {
	c.SetFilters(models.DefaultFilters())
}

func (c *Container) Filters() models.SearchFilters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filters
}

// Select marks a property as selected. Selecting an unknown id clears the
// selection.
func (c *Container) Select(id string) {
	c.mu.Lock()
	if _, ok := c.findLocked(id); ok {
		c.selectedID = id
	} else {
		c.selectedID = ""
	}
	c.mu.Unlock()
}

func (c *Container) findLocked(id string) (models.Property, bool) {
	for _, p := range c.properties {
		if p.ID == id {
			return p, true
		}
	}
	return models.Property{}, false
}

// Selected returns the currently selected property, if any.
func (c *Container) Selected() (models.Property, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selectedID == "" {
		return models.Property{}, false
	}
	return c.findLocked(c.selectedID)
}

// SetLeads replaces the lead book.
func (c *Container) SetLeads(leads []models.Lead) {
	c.mu.Lock()
	c.leads = append([]models.Lead(nil), leads...)
	c.mu.Unlock()
}

func (c *Container) Leads() []models.Lead {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Lead(nil), c.leads...)
}

// LeadByID looks up a single lead by id.
func (c *Container) LeadByID(id string) (models.Lead, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, l := range c.leads {
		if l.ID == id {
			return l, true
		}
	}
	return models.Lead{}, false
}

// SetMarketData replaces the cached market summary.
func (c *Container) SetMarketData(m models.MarketData) {
	c.mu.Lock()
	c.market = m
	c.mu.Unlock()
}

func (c *Container) MarketData() models.MarketData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.market
}

// SetLoading flips the loading indicator surfaced by /api/status.
func (c *Container) SetLoading(loading bool) {
	c.mu.Lock()
	c.loading = loading
	c.mu.Unlock()
}

func (c *Container) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// SetDataSource records whether the collection came from the live provider
// or the built-in demo set.
func (c *Container) SetDataSource(source string) {
	c.mu.Lock()
	c.dataSource = source
	c.mu.Unlock()
}

func (c *Container) DataSource() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dataSource
}
