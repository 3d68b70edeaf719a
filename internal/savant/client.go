// Package savant downloads Statcast search results from Baseball Savant.
package savant

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	baseURL    = "https://baseballsavant.mlb.com/statcast_search/csv"
	dateLayout = "2006-01-02"
)

// Client fetches Statcast search CSVs for one batter at a time. Requests
// are rate limited and run behind a circuit breaker so a long backfill
// fails fast when the endpoint is down instead of hammering it.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewClient builds a client that issues at most perSec requests per second
// and opens its breaker after failures consecutive errors.
func NewClient(perSec float64, failures int) *Client {
	st := gobreaker.Settings{Name: "savant"}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= uint32(failures)
	}
	return &Client{
		http:    &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(perSec), 1),
		breaker: gobreaker.NewCircuitBreaker(st),
	}
}

// Chunks splits the inclusive [start, end] date range into windows of at
// most days days. The search endpoint silently truncates large result
// sets, so backfills must stay chunked.
func Chunks(start, end time.Time, days int) [][2]time.Time {
	var out [][2]time.Time
	for cur := start; !cur.After(end); {
		stop := cur.AddDate(0, 0, days-1)
		if stop.After(end) {
			stop = end
		}
		out = append(out, [2]time.Time{cur, stop})
		cur = stop.AddDate(0, 0, 1)
	}
	return out
}

// FetchCSV downloads the raw search CSV for one batter and date window.
func (c *Client) FetchCSV(ctx context.Context, batter int64, from, to time.Time) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.download(ctx, batter, from, to)
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (c *Client) download(ctx context.Context, batter int64, from, to time.Time) ([]byte, error) {
	q := url.Values{}
	q.Set("all", "true")
	q.Set("type", "details")
	q.Set("player_type", "batter")
	q.Set("game_date_gt", from.Format(dateLayout))
	q.Set("game_date_lt", to.Format(dateLayout))
	q.Set("batters_lookup[]", strconv.FormatInt(batter, 10))
	q.Set("min_pitches", "0")
	q.Set("sort_col", "pitches")
	q.Set("sort_order", "desc")

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET statcast_search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET statcast_search: HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
