package domain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/bhorvath/domain-scraper/config"
	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/utils"
)

const (
	shortlistURL = "https://www.domain.com.au/user/shortlist"
	authCookie   = "DOMAIN.ASPXFORMSAUTH"
	cookieDomain = ".domain.com.au"
)

// Scraper fetches the user's shortlisted listings from the portal. The
// shortlist page ships its data as a JSON island inside the rendered page, so
// the scraper drives a headless browser with the auth cookie installed and
// lifts the payload out of the DOM.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a ready-to-use shortlist Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			MaxDelay:    30 * time.Second,
			Logger:      logger,
		},
	}
}

// FetchShortlist retrieves, filters and cleanses the current shortlist
// snapshot. A nil criteria matches every listing.
func (s *Scraper) FetchShortlist(authToken string, criteria *models.FilterCriteria) ([]*models.Listing, error) {
	raw, err := s.fetchPayload(authToken)
	if err != nil {
		return nil, err
	}

	listings, err := decodeShortlist(raw)
	if err != nil {
		return nil, err
	}
	s.logger.Info("[domain] Shortlist payload carried %d listings", len(listings))

	filtered := filter(listings, criteria)
	if criteria != nil {
		s.logger.Info("[domain] %d listings match filter criteria", len(filtered))
	}

	return s.cleanse(filtered), nil
}

// fetchPayload loads the shortlist page in a headless browser and returns the
// raw __NEXT_DATA__ JSON.
func (s *Scraper) fetchPayload(authToken string) (string, error) {
	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Debug("[domain] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()
	allocCtx = silentCtx

	var raw string
	err := s.retry.Do("fetch-shortlist", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		var payload string
		err := chromedp.Run(ctx,
			chromedp.ActionFunc(func(ctx context.Context) error {
				return network.SetCookie(authCookie, authToken).
					WithDomain(cookieDomain).
					WithPath("/").
					WithHTTPOnly(true).
					WithSecure(true).
					Do(ctx)
			}),
			chromedp.Navigate(shortlistURL),
			chromedp.Sleep(3*time.Second),
			chromedp.Evaluate(`
				(function() {
					var el = document.querySelector('#__NEXT_DATA__');
					return el ? el.textContent : '';
				})()
			`, &payload),
		)
		if err != nil {
			return fmt.Errorf("chromedp shortlist fetch: %w", err)
		}
		if payload == "" {
			return fmt.Errorf("shortlist page carried no data payload — auth token may have expired")
		}

		raw = payload
		return nil
	})

	return raw, err
}

// cleanse drops duplicate identifiers and collapses transient statuses so the
// snapshot the engine sees is internally consistent.
func (s *Scraper) cleanse(listings []*models.Listing) []*models.Listing {
	seen := utils.NewIDSet()
	result := make([]*models.Listing, 0, len(listings))

	for _, l := range listings {
		if !seen.Add(l.ID) {
			s.logger.Debug("[domain] Skipping duplicate listing id %d", l.ID)
			continue
		}
		l.Status = l.Status.Collapse()
		result = append(result, l)
	}

	return result
}

// findChromeBinary locates a Chrome/Chromium binary. An explicitly
// configured path wins over discovery.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
