// Package seed generates reproducible puzzle boards from a seed string,
// and fetches the seed published for a given day.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/herohde/former/pkg/grid"
	"github.com/seekerror/logw"
)

// ErrSeedFetchFailed wraps any failure to retrieve or parse today's seed.
var ErrSeedFetchFailed = errors.New("seed fetch failed")

// lut maps an Alea draw in [0,4) to a cell color, in the order the
// original board generator assigns them.
var lut = [4]grid.Cell{grid.Orange, grid.Pink, grid.Green, grid.Blue}

// GenerateBoard deterministically builds a grid.Grid from seedStr: the
// same seed always produces the same board.
func GenerateBoard(seedStr string) grid.Grid {
	rng := newAlea(seedStr)

	var g grid.Grid
	for r := 0; r < grid.Height; r++ {
		for c := 0; c < grid.Width; c++ {
			idx := int(rng.next() * 4.0)
			if idx > 3 {
				idx = 3 // guards the vanishing-probability case next() rounds to exactly 1.0
			}
			g.Set(r, c, lut[idx])
		}
	}
	return g
}

const seedEndpoint = "https://www.nrk.no/konkurranse/api/v1/minispill/former/seed"

type seedResponse struct {
	Seed struct {
		Value string `json:"value"`
	} `json:"seed"`
}

// FetchTodaySeed retrieves the seed value published for today's puzzle.
func FetchTodaySeed(ctx context.Context) (string, error) {
	client := &http.Client{Timeout: 6 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, seedEndpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrSeedFetchFailed, err)
	}
	req.Header.Set("User-Agent", "former-seed-fetch/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch seed: %v", ErrSeedFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %v", ErrSeedFetchFailed, resp.StatusCode)
	}

	var body seedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode seed response: %v", ErrSeedFetchFailed, err)
	}
	if body.Seed.Value == "" {
		return "", fmt.Errorf("%w: response missing value", ErrSeedFetchFailed)
	}

	logw.Debugf(ctx, "Fetched today's seed: %v", body.Seed.Value)
	return body.Seed.Value, nil
}
