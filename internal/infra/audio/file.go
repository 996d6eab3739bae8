package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"patriot-buddy/internal/domain"
)

var audioExtensions = map[string]bool{".wav": true, ".mp3": true, ".m4a": true, ".webm": true}

const processedSuffix = ".processed"

// FileSource watches a drop directory and consumes files oldest first.
// Audio files are transcribed; .txt files are routed as typed text.
// Consumed files are renamed with a .processed suffix.
type FileSource struct {
	dir      string
	interval time.Duration
	// skip remembers files that could not be renamed so they are not replayed.
	skip map[string]bool
	mu   sync.Mutex
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{
		dir:      dir,
		interval: 500 * time.Millisecond,
		skip:     make(map[string]bool),
	}
}

func (f *FileSource) Name() string {
	return "file"
}

func (f *FileSource) Start(_ context.Context) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating drop dir: %w", err)
	}
	return nil
}

func (f *FileSource) Stop() error {
	return nil
}

func (f *FileSource) NextCommand(ctx context.Context) ([]byte, error) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			data, err := f.checkForNewFile()
			if err != nil {
				return nil, err
			}
			if data != nil {
				return data, nil
			}
		}
	}
}

// checkForNewFile consumes the oldest pending drop file.
func (f *FileSource) checkForNewFile() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pending, err := f.pending()
	if err != nil {
		return nil, err
	}

	for _, p := range pending {
		data, err := os.ReadFile(p.path)
		if err != nil {
			return nil, fmt.Errorf("reading drop file %s: %w", p.path, err)
		}

		if err := os.Rename(p.path, p.path+processedSuffix); err != nil {
			f.skip[p.path] = true
		}

		if p.text {
			text := strings.TrimSpace(string(data))
			if text == "" {
				continue
			}
			return []byte(domain.TextCommandPrefix + text), nil
		}
		return data, nil
	}

	return nil, nil
}

type dropFile struct {
	path    string
	text    bool
	modTime time.Time
}

func (f *FileSource) pending() ([]dropFile, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("reading drop dir: %w", err)
	}

	var files []dropFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !audioExtensions[ext] && ext != ".txt" {
			continue
		}
		path := filepath.Join(f.dir, entry.Name())
		if f.skip[path] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, dropFile{path: path, text: ext == ".txt", modTime: info.ModTime()})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})
	return files, nil
}
