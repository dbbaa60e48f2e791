package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bhorvath/domain-scraper/config"
	"github.com/bhorvath/domain-scraper/enrichment"
	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/scraper/domain"
	"github.com/bhorvath/domain-scraper/services"
	"github.com/bhorvath/domain-scraper/storage"
	"github.com/bhorvath/domain-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Domain Shortlist Sync starting ===")
	logger.Info("Config — workbook: %s | rate: %dms | retries: %d",
		cfg.WorkbookPath, cfg.RateLimitMs, cfg.MaxRetries)

	if cfg.AuthToken == "" {
		logger.Error("DOMAIN_AUTH_TOKEN is not set. The shortlist requires an authenticated session.")
		os.Exit(1)
	}

	workbook, err := storage.OpenWorkbook(cfg.WorkbookPath, logger)
	if err != nil {
		logger.Error("Failed to open workbook: %v", err)
		os.Exit(1)
	}
	defer workbook.Close()

	// The snapshot archive is best effort. A missing database must not
	// block the sync.
	archiver, err := storage.NewPostgresArchiver(cfg.DSN())
	if err != nil {
		logger.Warn("PostgreSQL unavailable, skipping snapshot archive: %v", err)
		archiver = nil
	} else {
		defer archiver.Close()
	}

	domainScraper := domain.New(cfg, logger)
	listings, err := domainScraper.FetchShortlist(cfg.AuthToken, cfg.Filter)
	if err != nil {
		logger.Error("Shortlist fetch failed: %v", err)
		os.Exit(1)
	}

	logger.Info("Fetched %d shortlisted listing(s)", len(listings))

	if archiver != nil {
		if err := archiver.Archive(listings); err != nil {
			logger.Warn("Snapshot archive failed: %v", err)
		}
	}

	enricher := services.NewEnricher(
		enrichment.NewDomainAPI(cfg.DomainAPIKey),
		enrichment.NewMapsAPI(cfg.MapsAPIKey, cfg.OriginAddress),
		models.GeoLocation{Latitude: cfg.OriginLat, Longitude: cfg.OriginLng},
		logger,
	)

	newHandler := services.NewNewListingHandler(
		workbook, enricher, utils.NewRateLimiter(cfg.RateLimitMs), logger)
	existingHandler := services.NewExistingListingHandler(
		workbook, services.NewDiffer(logger), logger)
	syncer := services.NewSyncer(workbook, newHandler, existingHandler, logger)

	if err := syncer.UpdateListings(context.Background(), listings); err != nil {
		logger.Error("Sync failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("  Done. Listings synced to %s\n\n", cfg.WorkbookPath)
}
