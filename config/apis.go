package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"patriot-buddy/internal/domain"
)

const DefaultAPIsFile = "patriot_buddy_config.json"

// APIDocument is the on-disk shape of the API configuration.
type APIDocument struct {
	APIs map[string]domain.APISettings `json:"apis"`
}

// DefaultAPIDocument lists every provider the settings screen knows about.
// Only weather and stocks are wired to handlers; the rest are kept so a
// saved document round-trips.
func DefaultAPIDocument(weatherKey string) APIDocument {
	return APIDocument{APIs: map[string]domain.APISettings{
		domain.APIWeather: {Enabled: true, Name: "Weather", Provider: "OpenWeatherMap", Key: weatherKey, DefaultLocation: "Manassas,VA,US"},
		domain.APIStocks:  {Enabled: true, Name: "Stocks", Provider: "Alpha Vantage", Key: "default_key", DefaultSymbol: "AAPL"},
		"news":            {Name: "News", Provider: "NewsAPI", Key: "default_key", Topics: "technology"},
		"sports":          {Name: "Sports Scores", Provider: "ESPN", Key: "default_key", Teams: "Washington"},
		"crypto":          {Name: "Cryptocurrency", Provider: "CoinGecko", Key: "default_key", DefaultCoin: "bitcoin"},
		"traffic":         {Name: "Traffic", Provider: "MapQuest", Key: "default_key", Route: "home_to_work"},
		"calendar":        {Name: "Calendar", Provider: "Google Calendar", Key: "default_key", CalendarID: "primary"},
		"reminders":       {Name: "Reminders", Provider: "Local Reminders", Storage: "reminders.json"},
	}}
}

// APIStore serves the API document to handlers and persists edits. Reads
// are safe from any goroutine; an edit is visible to the next request.
type APIStore struct {
	path     string
	defaults APIDocument

	mu  sync.RWMutex
	doc APIDocument
}

// LoadAPIs reads path, falling back to the defaults when the file is
// missing. A malformed file is an error.
func LoadAPIs(path, weatherKey string) (*APIStore, error) {
	s := &APIStore{path: path, defaults: DefaultAPIDocument(weatherKey)}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *APIStore) Reload() error {
	doc, err := readAPIDocument(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		doc = cloneDocument(s.defaults)
	case err != nil:
		return err
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

func (s *APIStore) API(id string) (domain.APISettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.doc.APIs[id]
	return a, ok
}

func (s *APIStore) All() map[string]domain.APISettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDocument(s.doc).APIs
}

// Update applies patch to one entry and saves the whole document.
func (s *APIStore) Update(id string, patch domain.APIPatch) (domain.APISettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.doc.APIs[id]
	if !ok {
		return domain.APISettings{}, fmt.Errorf("%w: %s", domain.ErrUnknownAPI, id)
	}

	next := cloneDocument(s.doc)
	next.APIs[id] = patch.Apply(current)
	if err := writeAPIDocument(s.path, next); err != nil {
		return domain.APISettings{}, err
	}

	s.doc = next
	return next.APIs[id], nil
}

// Save writes the current document.
func (s *APIStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return writeAPIDocument(s.path, s.doc)
}

// InitAPIs writes the default document to path. An existing file is kept
// unless overwrite is set.
func InitAPIs(path, weatherKey string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	return writeAPIDocument(path, DefaultAPIDocument(weatherKey))
}

func readAPIDocument(path string) (APIDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return APIDocument{}, fmt.Errorf("reading api config: %w", err)
	}

	var doc APIDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return APIDocument{}, fmt.Errorf("parsing api config %s: %w", path, err)
	}
	if doc.APIs == nil {
		doc.APIs = map[string]domain.APISettings{}
	}
	return doc, nil
}

// writeAPIDocument replaces path atomically.
func writeAPIDocument(path string, doc APIDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding api config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".apis-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing api config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing api config: %w", err)
	}
	return nil
}

func cloneDocument(doc APIDocument) APIDocument {
	out := APIDocument{APIs: make(map[string]domain.APISettings, len(doc.APIs))}
	for k, v := range doc.APIs {
		out.APIs[k] = v
	}
	return out
}
