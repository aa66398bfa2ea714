// Package artwork downloads SteamGridDB images for a shortcut and places
// them in the user's grid directory under Steam's naming convention.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/lobinuxsoft/nonsteam/pkg/steam"
	"github.com/lobinuxsoft/nonsteam/pkg/steamgriddb"
)

// iconSize is the edge length Steam expects for shortcut icons.
const iconSize = 64

// Skip records one artwork kind that could not be applied and why.
type Skip struct {
	Type   string
	Reason string
}

// Result summarizes one fetch run. A run never fails as a whole: each kind
// succeeds or lands in Skipped independently.
type Result struct {
	Applied []string
	Skipped []Skip
	// IconPath is the local path of the written icon, for the shortcut's
	// icon field. Empty when the icon was skipped.
	IconPath string
}

// Fetcher downloads artwork for shortcuts.
type Fetcher struct {
	client  *steamgriddb.Client
	paths   *steam.Paths
	filters *steamgriddb.ImageFilters
}

// NewFetcher creates an artwork fetcher.
func NewFetcher(client *steamgriddb.Client, paths *steam.Paths, filters *steamgriddb.ImageFilters) *Fetcher {
	return &Fetcher{client: client, paths: paths, filters: filters}
}

// FetchAll downloads the five artwork kinds for one shortcut concurrently,
// each writing its own grid file. Failures are per-kind: an auth rejection
// or a missing hero image never blocks the remaining kinds.
func (f *Fetcher) FetchAll(ctx context.Context, userID string, appID uint32, gameID int) *Result {
	result := &Result{}

	if err := f.paths.EnsureGridDir(userID); err != nil {
		for _, artType := range steam.AllArtworkTypes() {
			result.Skipped = append(result.Skipped, Skip{Type: artType.String(), Reason: err.Error()})
		}
		return result
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, artType := range steam.AllArtworkTypes() {
		wg.Add(1)
		go func(artType steam.ArtworkType) {
			defer wg.Done()

			path, err := f.fetchOne(ctx, userID, appID, gameID, artType)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[artwork] %s skipped: %v", artType, err)
				result.Skipped = append(result.Skipped, Skip{Type: artType.String(), Reason: reason(err)})
				return
			}
			result.Applied = append(result.Applied, artType.String())
			if artType == steam.ArtworkIcon {
				result.IconPath = path
			}
		}(artType)
	}
	wg.Wait()

	sort.Strings(result.Applied)
	sort.Slice(result.Skipped, func(i, j int) bool { return result.Skipped[i].Type < result.Skipped[j].Type })
	return result
}

// fetchOne picks the best candidate for one artwork kind, downloads it and
// writes the grid file. Returns the written path.
func (f *Fetcher) fetchOne(ctx context.Context, userID string, appID uint32, gameID int, artType steam.ArtworkType) (string, error) {
	candidates, err := f.candidates(ctx, gameID, artType)
	if err != nil {
		return "", err
	}

	// Results are score-ranked; the first candidate is the best one.
	data, contentType, err := f.client.Download(ctx, candidates[0].URL)
	if err != nil {
		return "", err
	}

	ext := steamgriddb.ExtFromContentType(contentType)
	if ext == "" {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	if artType == steam.ArtworkIcon {
		if data, err = steamgriddb.SquareIcon(data, iconSize); err != nil {
			return "", err
		}
		ext = "png"
	}

	f.paths.RemoveArtwork(userID, appID, artType)

	path := f.paths.ArtworkPath(userID, appID, artType, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artwork: %w", err)
	}
	return path, nil
}

// candidates queries the endpoint matching the artwork kind. Portrait and
// wide grids share the grids endpoint, narrowed by dimensions.
func (f *Fetcher) candidates(ctx context.Context, gameID int, artType steam.ArtworkType) ([]steamgriddb.ImageData, error) {
	switch artType {
	case steam.ArtworkPortrait:
		return f.client.Grids(ctx, gameID, f.withDimensions("600x900"))
	case steam.ArtworkWide:
		return f.client.Grids(ctx, gameID, f.withDimensions("920x430"))
	case steam.ArtworkHero:
		return f.client.Heroes(ctx, gameID, f.filters)
	case steam.ArtworkLogo:
		return f.client.Logos(ctx, gameID, f.filters)
	case steam.ArtworkIcon:
		return f.client.Icons(ctx, gameID, f.filters)
	default:
		return nil, fmt.Errorf("unknown artwork type %d", artType)
	}
}

func (f *Fetcher) withDimensions(dims string) *steamgriddb.ImageFilters {
	filters := steamgriddb.ImageFilters{Dimensions: dims}
	if f.filters != nil {
		filters.ShowNsfw = f.filters.ShowNsfw
		filters.ShowHumor = f.filters.ShowHumor
	}
	return &filters
}

// reason maps a fetch error to the short form shown in the run summary.
func reason(err error) string {
	switch {
	case errors.Is(err, steamgriddb.ErrUnauthorized):
		return "api key rejected"
	case errors.Is(err, steamgriddb.ErrNotFound):
		return "no image available"
	default:
		return err.Error()
	}
}
