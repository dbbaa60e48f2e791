package services

import (
	"context"

	"github.com/bhorvath/domain-scraper/enrichment"
	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/utils"
)

// EnrichmentErrorSentinel is written in place of a derived field when its
// lookup fails. A failed lookup never blocks the listing from being written.
const EnrichmentErrorSentinel = "ERROR"

// PropertyAPI resolves property details by the portal's property identifier.
type PropertyAPI interface {
	LandSize(ctx context.Context, propertyID string) (string, error)
}

// RouteAPI resolves travel distance to a destination address.
type RouteAPI interface {
	Distance(ctx context.Context, destination string) (string, error)
}

// Enricher decorates observed listings with land size, travel distance and
// compass direction relative to a fixed origin.
type Enricher struct {
	property PropertyAPI
	routes   RouteAPI
	origin   models.GeoLocation
	logger   *utils.Logger
}

// NewEnricher creates an Enricher anchored at the given origin.
func NewEnricher(property PropertyAPI, routes RouteAPI, origin models.GeoLocation, logger *utils.Logger) *Enricher {
	return &Enricher{
		property: property,
		routes:   routes,
		origin:   origin,
		logger:   logger,
	}
}

// Enrich resolves the derived fields for a single listing. Each field fails
// independently: a lookup error downgrades that field to the sentinel and
// the rest proceed.
func (e *Enricher) Enrich(ctx context.Context, listing *models.Listing) *models.EnrichedListing {
	enriched := &models.EnrichedListing{Listing: *listing}

	land, err := e.property.LandSize(ctx, listing.PropertyID)
	if err != nil {
		e.logger.Warn("[enricher] Land size lookup failed for %s: %v", listing.Address.Display(), err)
		land = EnrichmentErrorSentinel
	}
	enriched.Land = land

	distance, err := e.routes.Distance(ctx, listing.Address.Display())
	if err != nil {
		e.logger.Warn("[enricher] Distance lookup failed for %s: %v", listing.Address.Display(), err)
		distance = EnrichmentErrorSentinel
	}
	enriched.Distance = distance

	// Direction is computed locally from coordinates and cannot fail.
	enriched.Direction = enrichment.Direction(
		e.origin.Latitude, e.origin.Longitude,
		listing.GeoLocation.Latitude, listing.GeoLocation.Longitude,
	)

	return enriched
}
