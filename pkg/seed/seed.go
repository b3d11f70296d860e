// Package seed loads the initial hero roster for the mock API from YAML or JSON files.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/hero-data-service/internal/domain"
	"gopkg.in/yaml.v3"
)

type roster struct {
	Heroes []domain.Hero `json:"heroes" yaml:"heroes"`
}

type unmarshalFn func([]byte, any) error

// LoadHeroes reads the hero roster at path.
func LoadHeroes(path string) ([]domain.Hero, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("seed file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	return ParseHeroes(raw, filepath.Ext(path))
}

// ParseHeroes decodes a roster; ext selects the format, empty tries YAML then JSON.
func ParseHeroes(data []byte, ext string) ([]domain.Hero, error) {
	r, err := parseRoster(data, ext)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(r.Heroes))
	out := make([]domain.Hero, 0, len(r.Heroes))
	for i, h := range r.Heroes {
		h.Name = strings.TrimSpace(h.Name)
		if h.Name == "" {
			return nil, fmt.Errorf("heroes[%d]: name is required", i)
		}
		if h.ID < 0 {
			return nil, fmt.Errorf("heroes[%d]: id must not be negative", i)
		}
		if h.ID != 0 {
			if _, dup := seen[h.ID]; dup {
				return nil, fmt.Errorf("duplicate hero id %d", h.ID)
			}
			seen[h.ID] = struct{}{}
		}
		out = append(out, h)
	}
	return out, nil
}

func parseRoster(data []byte, ext string) (roster, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var r roster
		err := d.fn(data, &r)
		if err == nil {
			return r, nil
		}
		if ext != "" {
			return roster{}, fmt.Errorf("decode %s seed: %w", d.name, err)
		}
	}

	return roster{}, errors.New("seed file format not recognized (expected YAML or JSON)")
}
