package seasondata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileSource reads per-season JSON files named <year>.json from a data
// directory.
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Season loads and validates one season file.
func (f *FileSource) Season(_ context.Context, year int) (SeasonData, error) {
	path := filepath.Join(f.dir, fmt.Sprintf("%d.json", year))
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return SeasonData{}, fmt.Errorf("season %d: %w", year, ErrSeasonNotFound)
		}
		return SeasonData{}, fmt.Errorf("read season %d: %w", year, err)
	}

	var data SeasonData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SeasonData{}, fmt.Errorf("season %d: %w: %v", year, ErrBadSeasonFile, err)
	}
	if data.Season == 0 {
		data.Season = year
	}
	if data.CurrentWeek == 0 {
		data.CurrentWeek = latestDecidedWeek(data)
	}
	return data, nil
}

// latestDecidedWeek is the highest week holding a decided result, the
// natural "current week" for a season file that does not state one.
func latestDecidedWeek(data SeasonData) int {
	week := 1
	for _, g := range data.Games {
		if g.Result.Decided && g.Week > week {
			week = g.Week
		}
	}
	return week
}

// CachedSource memoizes seasons loaded from an inner Source. Season files
// are finalized historical data, so entries never invalidate within a
// process lifetime.
type CachedSource struct {
	inner Source

	mu      sync.RWMutex
	seasons map[int]SeasonData
}

// NewCachedSource wraps a Source with an in-memory season cache.
func NewCachedSource(inner Source) *CachedSource {
	return &CachedSource{
		inner:   inner,
		seasons: make(map[int]SeasonData),
	}
}

// Season returns the cached season, loading through on first use.
func (c *CachedSource) Season(ctx context.Context, year int) (SeasonData, error) {
	c.mu.RLock()
	data, ok := c.seasons[year]
	c.mu.RUnlock()
	if ok {
		return data, nil
	}

	data, err := c.inner.Season(ctx, year)
	if err != nil {
		return SeasonData{}, err
	}

	c.mu.Lock()
	c.seasons[year] = data
	c.mu.Unlock()
	return data, nil
}

// Count returns the number of cached seasons.
func (c *CachedSource) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.seasons)
}
