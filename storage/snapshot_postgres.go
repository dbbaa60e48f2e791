package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/bhorvath/domain-scraper/models"
)

// PostgresArchiver appends each cycle's raw observed snapshot to PostgreSQL.
// The archive is an audit trail only; the sync engine never reads it.
type PostgresArchiver struct {
	db *sql.DB
}

// NewPostgresArchiver opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use archiver.
func NewPostgresArchiver(dsn string) (*PostgresArchiver, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pa := &PostgresArchiver{db: db}
	if err := pa.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pa, nil
}

func (pa *PostgresArchiver) migrate() error {
	_, err := pa.db.Exec(`
		CREATE TABLE IF NOT EXISTS shortlist_snapshots (
			id            SERIAL PRIMARY KEY,
			listing_id    BIGINT       NOT NULL,
			address       TEXT         NOT NULL,
			suburb        TEXT         NOT NULL DEFAULT '',
			beds          INT          NOT NULL DEFAULT 0,
			baths         INT          NOT NULL DEFAULT 0,
			price         NUMERIC(12,2) NOT NULL DEFAULT 0,
			display_price TEXT         NOT NULL DEFAULT '',
			status        VARCHAR(32)  NOT NULL,
			url           TEXT         NOT NULL DEFAULT '',
			observed_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_listing_id ON shortlist_snapshots(listing_id);
		CREATE INDEX IF NOT EXISTS idx_snapshots_observed_at ON shortlist_snapshots(observed_at);
	`)
	return err
}

// Archive batch-inserts the observed listings. The table is append-only:
// every cycle adds one row per listing observed.
func (pa *PostgresArchiver) Archive(listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pa.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pa *PostgresArchiver) insertBatch(batch []*models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*9)

	for idx, l := range batch {
		base := idx * 9
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		valueArgs = append(valueArgs,
			l.ID, l.Address.Street, l.Address.Suburb,
			l.Features.Beds, l.Features.Baths,
			l.Price, l.DisplayPrice, string(l.Status), l.URL)
	}

	query := fmt.Sprintf(`
		INSERT INTO shortlist_snapshots
			(listing_id, address, suburb, beds, baths, price, display_price, status, url)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pa.db.Exec(query, valueArgs...)
	return err
}

func (pa *PostgresArchiver) Close() error {
	return pa.db.Close()
}
