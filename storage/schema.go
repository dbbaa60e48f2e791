package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/utils"
)

// Column letters of the listing sheet. The differ addresses annotations and
// text formats through these; AddressColumn is the keyed column notes hang
// off.
const (
	AddressColumn         = "A"
	distanceColumn        = "B"
	landColumn            = "C"
	advertisedPriceColumn = "F"
	initialPriceColumn    = "G"
	dateListedColumn      = "H"
	soldPriceColumn       = "I"
	dateSoldColumn        = "J"
	lastSoldPriceColumn   = "P"
	lastSoldDateColumn    = "Q"
	estimatedPriceColumn  = "O"
	yearsSinceSoldColumn  = "S"
)

// 0-based cell indices of the write-side row schema.
const (
	colAddress = iota
	colDistance
	colLand
	colBeds
	colBaths
	colAdvertisedPrice
	colInitialPrice
	colDateListed
	colSoldPrice
	colDateSold
	colDiscounting
	colDiscountPct
	colDaysListed
	colURL
	colEstimatedPrice
	colLastSoldPrice
	colLastSoldDate
	colDifference
	colYearsSinceSold
	colCAGR
	colID
	colStatus
	colDirection
	colDisplayPrice
	colInspection
	colComments
	columnCount
)

// Header returns the first-run header row.
func Header() []any {
	return []any{
		"Address", "Distance", "Land", "Beds", "Baths",
		"Advertised Price", "Initial Price", "Date Listed", "Sold Price",
		"Date Sold", "Discounting", "Disc. %", "Days Listed", "URL",
		"Est. Price", "Last Sold Price", "Last Sold Date", "Difference",
		"Years Since Sold", "CAGR", "ID", "Status", "Direction",
		"Display Price", "Inspection", "Comments",
	}
}

// NewListingCells transforms an enriched listing into a write-side row.
// Formula cells are generated here, once, and are never rewritten afterwards.
func NewListingCells(l *models.EnrichedListing) []any {
	cells := make([]any, columnCount)
	cells[colAddress] = l.Address.Display()
	cells[colDistance] = l.Distance
	cells[colLand] = l.Land
	cells[colBeds] = l.Features.Beds
	cells[colBaths] = l.Features.Baths
	cells[colAdvertisedPrice] = l.Price
	cells[colInitialPrice] = ""
	cells[colDateListed] = l.DatePlaced.Format(utils.DateLayout)
	cells[colSoldPrice] = ""
	cells[colDateSold] = ""
	cells[colDiscounting] = discountingFormula()
	cells[colDiscountPct] = discountPctFormula()
	cells[colDaysListed] = daysListedFormula()
	cells[colURL] = l.URL
	cells[colEstimatedPrice] = estimatedPriceFormula()
	cells[colLastSoldPrice] = ""
	cells[colLastSoldDate] = ""
	cells[colDifference] = differenceFormula()
	cells[colYearsSinceSold] = yearsSinceSoldFormula()
	cells[colCAGR] = cagrFormula()
	cells[colID] = l.ID
	// The transient recentlyUpdated flag must never reach a persisted row,
	// even for a listing that skipped the scraper's cleanse step.
	cells[colStatus] = string(l.Status.Collapse())
	cells[colDirection] = l.Direction
	cells[colDisplayPrice] = l.DisplayPrice
	if l.Inspection != nil {
		cells[colInspection] = l.Inspection.OpenTime.Format(utils.InspectionLayout)
	} else {
		cells[colInspection] = ""
	}
	cells[colComments] = ""
	return cells
}

// UpdateCells translates a persisted row back into the row schema for a
// batched in-place update. Formula columns are nil so the store leaves them
// untouched.
func UpdateCells(r *models.ListingRow) []any {
	cells := make([]any, columnCount)
	cells[colAddress] = r.Address
	cells[colDistance] = r.Distance
	cells[colLand] = r.Land
	cells[colBeds] = r.Beds
	cells[colBaths] = r.Baths
	cells[colAdvertisedPrice] = r.AdvertisedPrice
	if r.HasInitialPrice() {
		cells[colInitialPrice] = r.InitialPrice
	} else {
		cells[colInitialPrice] = ""
	}
	cells[colDateListed] = r.DateListed
	cells[colSoldPrice] = r.SoldPrice
	cells[colDateSold] = r.DateSold
	cells[colURL] = r.URL
	cells[colLastSoldPrice] = r.LastSoldPrice
	cells[colLastSoldDate] = r.LastSoldDate
	cells[colID] = r.ID
	cells[colStatus] = string(r.Status)
	cells[colDirection] = r.Direction
	cells[colDisplayPrice] = r.DisplayPrice
	if !r.Inspection.IsZero() {
		cells[colInspection] = r.Inspection.Format(utils.InspectionLayout)
	} else {
		cells[colInspection] = ""
	}
	cells[colComments] = r.Comments
	return cells
}

// ParseRow reads a persisted grid row back into a ListingRow. slot is the
// row's 1-based sheet position. Short rows are tolerated: trailing cells the
// grid never materialized read as empty.
func ParseRow(slot int, cells []string) (*models.ListingRow, error) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	id, err := strconv.ParseInt(cell(colID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("schema: row %d: bad listing id %q: %w", slot, cell(colID), err)
	}

	row := &models.ListingRow{
		Slot:          slot,
		ID:            id,
		Address:       cell(colAddress),
		Distance:      cell(colDistance),
		Land:          cell(colLand),
		Beds:          parseIntCell(cell(colBeds)),
		Baths:         parseIntCell(cell(colBaths)),
		DateListed:    cell(colDateListed),
		SoldPrice:     cell(colSoldPrice),
		DateSold:      cell(colDateSold),
		URL:           cell(colURL),
		LastSoldPrice: cell(colLastSoldPrice),
		LastSoldDate:  cell(colLastSoldDate),
		Status:        models.ListingStatus(cell(colStatus)),
		Direction:     cell(colDirection),
		DisplayPrice:  cell(colDisplayPrice),
		Comments:      cell(colComments),
	}

	// A hand-edited price cell ("TBA") must not read as a zero price; that
	// would manufacture a phantom price change on the next diff.
	row.AdvertisedPrice, err = parsePriceCell(cell(colAdvertisedPrice))
	if err != nil {
		return nil, fmt.Errorf("schema: row %d: bad advertised price %q: %w", slot, cell(colAdvertisedPrice), err)
	}
	row.InitialPrice, err = parsePriceCell(cell(colInitialPrice))
	if err != nil {
		return nil, fmt.Errorf("schema: row %d: bad initial price %q: %w", slot, cell(colInitialPrice), err)
	}

	if raw := cell(colInspection); raw != "" {
		t, err := utils.ParseInspectionTime(raw)
		if err != nil {
			return nil, fmt.Errorf("schema: row %d: bad inspection time %q: %w", slot, raw, err)
		}
		row.Inspection = t
	}

	return row, nil
}

func parseIntCell(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// parsePriceCell tolerates currency formatting left over from manual edits.
// An empty cell is an unset price; anything else must parse.
func parsePriceCell(raw string) (float64, error) {
	raw = strings.NewReplacer("$", "", ",", "").Replace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func discountingFormula() string {
	initial := cellRef(initialPriceColumn)
	advertised := cellRef(advertisedPriceColumn)
	return formula(fnIf(fnIsBlank(initial), `""`, initial+"-"+advertised))
}

func discountPctFormula() string {
	initial := cellRef(initialPriceColumn)
	advertised := cellRef(advertisedPriceColumn)
	return formula(fnIf(fnIsBlank(initial), `""`,
		fmt.Sprintf("(%s-%s)/%s", initial, advertised, initial)))
}

func daysListedFormula() string {
	listed := cellRef(dateListedColumn)
	sold := cellRef(dateSoldColumn)
	return formula(fnDateDif(listed, fnIf(fnIsBlank(sold), fnToday(), sold), "D"))
}

func estimatedPriceFormula() string {
	soldPrice := cellRef(soldPriceColumn)
	advertised := cellRef(advertisedPriceColumn)
	return formula(fnIf(fnIsBlank(soldPrice), advertised, soldPrice))
}

func differenceFormula() string {
	estimated := cellRef(estimatedPriceColumn)
	lastSold := cellRef(lastSoldPriceColumn)
	return formula(fnIf(fnIsNumber(lastSold), estimated+"-"+lastSold, `""`))
}

func yearsSinceSoldFormula() string {
	lastSoldDate := cellRef(lastSoldDateColumn)
	return formula(fnIf(fnIsBlank(lastSoldDate), `""`,
		fnDateDif(lastSoldDate, fnToday(), "Y")))
}

func cagrFormula() string {
	estimated := cellRef(estimatedPriceColumn)
	lastSold := cellRef(lastSoldPriceColumn)
	years := cellRef(yearsSinceSoldColumn)
	return formula(fnIf(fnAnd(fnIsNumber(lastSold), fnIsNumber(years)),
		fmt.Sprintf("(%s/%s)^(1/%s)-1", estimated, lastSold, years), `""`))
}
