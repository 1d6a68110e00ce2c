package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealscope/server/internal/models"
)

func sampleProperties() []models.Property {
	return []models.Property{
		{ID: "prop-1", Address: "1234 Maple Street", Price: 450000},
		{ID: "prop-2", Address: "5678 Oak Avenue", Price: 325000},
	}
}

func TestNewContainerDefaults(t *testing.T) {
	c := NewContainer()

	assert.Empty(t, c.Properties())
	assert.Equal(t, models.DefaultFilters(), c.Filters())
	assert.Equal(t, SourceDemo, c.DataSource())
	assert.False(t, c.Loading())

	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestSetPropertiesCopies(t *testing.T) {
	c := NewContainer()
	input := sampleProperties()
	c.SetProperties(input)

	// mutating the caller's slice must not leak into the container
	input[0].Address = "mutated"

	got := c.Properties()
	require.Len(t, got, 2)
	assert.Equal(t, "1234 Maple Street", got[0].Address)

	// nor should mutating a returned snapshot
	got[1].Address = "also mutated"
	assert.Equal(t, "5678 Oak Avenue", c.Properties()[1].Address)
}

func TestPropertyByID(t *testing.T) {
	c := NewContainer()
	c.SetProperties(sampleProperties())

	p, ok := c.PropertyByID("prop-2")
	assert.True(t, ok)
	assert.Equal(t, "5678 Oak Avenue", p.Address)

	_, ok = c.PropertyByID("missing")
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	c := NewContainer()
	c.SetProperties(sampleProperties())

	c.Select("prop-1")
	sel, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "prop-1", sel.ID)

	// selecting an unknown id clears the selection
	c.Select("missing")
	_, ok = c.Selected()
	assert.False(t, ok)
}

func TestSetPropertiesClearsStaleSelection(t *testing.T) {
	c := NewContainer()
	c.SetProperties(sampleProperties())
	c.Select("prop-2")

	c.SetProperties([]models.Property{{ID: "prop-9"}})

	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestSetPropertiesKeepsSurvivingSelection(t *testing.T) {
	c := NewContainer()
	c.SetProperties(sampleProperties())
	c.Select("prop-1")

	c.SetProperties(sampleProperties())

	sel, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "prop-1", sel.ID)
}

func TestResetFilters(t *testing.T) {
	c := NewContainer()
	c.SetFilters(models.SearchFilters{
		Location:     "austin",
		PriceRange:   [2]float64{100000, 200000},
		PropertyType: models.TypeCondo,
		Bedrooms:     "3",
		Bathrooms:    "2",
		YearBuilt:    "2020",
		LotSize:      "0.5",
	})

	c.ResetFilters()
	assert.Equal(t, models.DefaultFilters(), c.Filters())
}

func TestLeads(t *testing.T) {
	c := NewContainer()
	c.SetLeads([]models.Lead{
		{ID: "lead-1", Name: "Jennifer Martinez"},
		{ID: "lead-2", Name: "Robert Chen"},
	})

	assert.Len(t, c.Leads(), 2)

	l, ok := c.LeadByID("lead-2")
	assert.True(t, ok)
	assert.Equal(t, "Robert Chen", l.Name)

	_, ok = c.LeadByID("missing")
	assert.False(t, ok)
}

func TestMarketData(t *testing.T) {
	c := NewContainer()
	c.SetMarketData(models.MarketData{AveragePrice: 483000, Inventory: 245})

	m := c.MarketData()
	assert.Equal(t, 483000.0, m.AveragePrice)
	assert.Equal(t, 245, m.Inventory)
}

func TestSubscribeNotifications(t *testing.T) {
	c := NewContainer()

	var snapshots [][]models.Property
	c.Subscribe(func(snapshot []models.Property) {
		snapshots = append(snapshots, snapshot)
	})

	c.SetProperties(sampleProperties())

	// only collection replacements notify
	c.SetFilters(models.DefaultFilters())
	c.Select("prop-1")
	c.SetLeads(nil)
	c.SetMarketData(models.MarketData{})

	require.Len(t, snapshots, 1)
	assert.Len(t, snapshots[0], len(sampleProperties()))
	assert.Equal(t, "prop-1", snapshots[0][0].ID)

	// subscribers get their own copy
	snapshots[0][0].ID = "mutated"
	got, ok := c.PropertyByID("prop-1")
	require.True(t, ok)
	assert.Equal(t, "prop-1", got.ID)
}
