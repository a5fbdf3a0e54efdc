// Package dashboard loads the static page content: layout chrome, login
// copy, home stat cards and the state map styling.
package dashboard

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/mehtaruchit28/ips-ui/backend/models"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// LoginPage is the copy shown above the login form
type LoginPage struct {
	Heading    string `json:"heading" yaml:"heading"`
	Subheading string `json:"subheading" yaml:"subheading"`
}

// HomePage is the landing dashboard
type HomePage struct {
	Heading    string            `json:"heading" yaml:"heading"`
	Subheading string            `json:"subheading" yaml:"subheading"`
	Stats      []models.StatCard `json:"stats" yaml:"stats"`
}

// Content is everything the pages render that is not user data
type Content struct {
	Layout   models.Layout   `yaml:"layout"`
	Login    LoginPage       `yaml:"login"`
	Home     HomePage        `yaml:"home"`
	StateMap models.StateMap `yaml:"state_map"`
}

// Default returns the built-in content
func Default() (*Content, error) {
	return Parse(defaultContent)
}

// Load reads content from path, or the built-in content when path is empty
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML content. Sections missing from data keep their built-in values.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(defaultContent, &c); err != nil {
		return nil, fmt.Errorf("parse default content: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) validate() error {
	if c.Layout.Title == "" {
		return fmt.Errorf("content: layout title is required")
	}
	for _, s := range c.Home.Stats {
		if s.Trend != models.TrendIncrease && s.Trend != models.TrendDecrease {
			return fmt.Errorf("content: stat %q has unknown trend %q", s.Label, s.Trend)
		}
	}
	if c.StateMap.DefaultColor == "" {
		return fmt.Errorf("content: state map default color is required")
	}
	return nil
}
