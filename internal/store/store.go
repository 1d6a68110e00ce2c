package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"dealscope/server/internal/models"
)

// Store holds the last-known-good listing snapshot in an in-memory SQLite
// database. Nothing is written to disk; the snapshot is lost on restart by
// design. The collection is replaced wholesale, never mutated record by
// record.
type Store struct {
	db *sql.DB
}

func NewStore() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}

	// A :memory: database exists per connection; pooling would silently
	// split the snapshot across empty databases.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			position INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			address TEXT,
			city TEXT,
			state TEXT,
			zip_code TEXT,
			price REAL NOT NULL,
			estimated_value REAL,
			bedrooms INTEGER,
			bathrooms REAL,
			sqft INTEGER,
			lot_size REAL,
			year_built INTEGER,
			property_type TEXT,
			status TEXT,
			days_on_market INTEGER,
			latitude REAL,
			longitude REAL,
			rent_estimate REAL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create listings table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_zip ON listings(zip_code);
	`)
	return err
}

// ReplaceProperties swaps the entire snapshot for a new collection in one
// transaction. Insertion order is preserved so GetProperties can return the
// collection in its original order.
func (s *Store) ReplaceProperties(properties []models.Property) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("failed to clear listings: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO listings
		(id, address, city, state, zip_code, price, estimated_value, bedrooms,
		 bathrooms, sqft, lot_size, year_built, property_type, status,
		 days_on_market, latitude, longitude, rent_estimate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range properties {
		_, err = stmt.Exec(
			p.ID, p.Address, p.City, p.State, p.ZipCode, p.Price,
			p.EstimatedValue, p.Bedrooms, p.Bathrooms, p.Sqft, p.LotSize,
			p.YearBuilt, p.PropertyType, p.Status, p.DaysOnMarket,
			p.Latitude, p.Longitude, p.RentEstimate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert listing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetProperties returns the snapshot in its original insertion order.
func (s *Store) GetProperties() ([]models.Property, error) {
	rows, err := s.db.Query(`
		SELECT id, address, city, state, zip_code, price, estimated_value,
		       bedrooms, bathrooms, sqft, lot_size, year_built, property_type,
		       status, days_on_market, latitude, longitude, rent_estimate
		FROM listings
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		var latitude, longitude sql.NullFloat64

		err := rows.Scan(
			&p.ID, &p.Address, &p.City, &p.State, &p.ZipCode, &p.Price,
			&p.EstimatedValue, &p.Bedrooms, &p.Bathrooms, &p.Sqft, &p.LotSize,
			&p.YearBuilt, &p.PropertyType, &p.Status, &p.DaysOnMarket,
			&latitude, &longitude, &p.RentEstimate,
		)
		if err != nil {
			return nil, err
		}

		if latitude.Valid {
			lat := latitude.Float64
			p.Latitude = &lat
		}
		if longitude.Valid {
			lon := longitude.Float64
			p.Longitude = &lon
		}

		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// MarketStats aggregates the snapshot into the dashboard summary numbers.
// Median price uses the standard two-middle average for even counts.
func (s *Store) MarketStats() (models.MarketStats, error) {
	query := `
        WITH priced AS (
            SELECT price, sqft, status, days_on_market
            FROM listings
            WHERE price > 0
        ),
        ordered AS (
            SELECT price, ROW_NUMBER() OVER (ORDER BY price) AS rn,
                   COUNT(*) OVER () AS total
            FROM priced
        ),
        median AS (
            SELECT COALESCE(AVG(price), 0) AS median_price
            FROM ordered
            WHERE rn IN ((total + 1) / 2, (total + 2) / 2)
        )
        SELECT
            (SELECT COUNT(*) FROM priced),
            (SELECT COUNT(*) FROM priced WHERE status = ?),
            (SELECT COUNT(*) FROM priced WHERE status = ?),
            (SELECT COALESCE(AVG(price), 0) FROM priced),
            (SELECT median_price FROM median),
            (SELECT COALESCE(AVG(price / NULLIF(CAST(sqft AS FLOAT), 0)), 0) FROM priced),
            (SELECT COALESCE(AVG(days_on_market), 0) FROM priced)
    `

	var stats models.MarketStats
	err := s.db.QueryRow(query, models.StatusForSale, models.StatusRecentlySold).Scan(
		&stats.TotalProperties,
		&stats.TotalForSale,
		&stats.TotalSold,
		&stats.AveragePrice,
		&stats.MedianPrice,
		&stats.PricePerSqft,
		&stats.AvgDaysOnMarket,
	)
	return stats, err
}

// NeighborhoodStats groups the snapshot by zip code.
func (s *Store) NeighborhoodStats() ([]models.NeighborhoodStats, error) {
	rows, err := s.db.Query(`
		SELECT zip_code,
		       COUNT(*) AS property_count,
		       AVG(price) AS average_price,
		       COALESCE(AVG(price / NULLIF(CAST(sqft AS FLOAT), 0)), 0) AS price_per_sqft
		FROM listings
		WHERE price > 0
		GROUP BY zip_code
		ORDER BY zip_code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.NeighborhoodStats
	for rows.Next() {
		var n models.NeighborhoodStats
		if err := rows.Scan(&n.ZipCode, &n.PropertyCount, &n.AveragePrice, &n.PricePerSqft); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// TypeDistribution returns the share of each property type among priced
// listings.
func (s *Store) TypeDistribution() ([]models.TypeShare, error) {
	rows, err := s.db.Query(`
		SELECT property_type,
		       COUNT(*) AS cnt,
		       100.0 * COUNT(*) / (SELECT COUNT(*) FROM listings WHERE price > 0) AS pct
		FROM listings
		WHERE price > 0
		GROUP BY property_type
		ORDER BY cnt DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TypeShare
	for rows.Next() {
		var t models.TypeShare
		if err := rows.Scan(&t.PropertyType, &t.Count, &t.Percent); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
