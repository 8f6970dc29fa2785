package record

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Store keeps recordings under a base directory, one directory per
// recording holding metadata.json and the exported files.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Preset    string    `json:"preset"`
	Timestamp time.Time `json:"timestamp"`
	Frames    int       `json:"frames"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Glyph     bool      `json:"glyph"`
	Files     []string  `json:"files"`
}

// Create makes a fresh recording directory and returns its metadata with a
// new id. Write files into Dir(meta.ID) and then call Commit.
func (s *Store) Create(kind, preset string) (*Metadata, error) {
	meta := &Metadata{
		ID:        uuid.NewString(),
		Kind:      kind,
		Preset:    preset,
		Timestamp: time.Now().UTC(),
	}
	if err := os.MkdirAll(s.Dir(meta.ID), 0755); err != nil {
		return nil, err
	}
	return meta, nil
}

func (s *Store) Dir(id string) string { return filepath.Join(s.baseDir, id) }

// Path returns the location of a named file inside a recording.
func (s *Store) Path(id, name string) string { return filepath.Join(s.baseDir, id, name) }

// Commit writes metadata.json.
func (s *Store) Commit(meta *Metadata) error {
	f, err := os.Create(s.Path(meta.ID, "metadata.json"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable recording, newest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	out := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		out = append(out, *meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(s.Path(id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// SaveGIF writes a finished recording as animation.gif in a new recording
// directory and commits its metadata.
func (s *Store) SaveGIF(g *GIF, preset string, glyphMode bool) (*Metadata, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	meta, err := s.Create("gif", preset)
	if err != nil {
		return nil, err
	}
	const name = "animation.gif"
	if err := g.Save(s.Path(meta.ID, name)); err != nil {
		return nil, err
	}
	meta.Frames = g.Len()
	meta.Width, meta.Height = g.Size()
	meta.Glyph = glyphMode
	meta.Files = []string{name}
	return meta, s.Commit(meta)
}
