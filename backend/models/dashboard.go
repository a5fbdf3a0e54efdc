package models

// Trend is the direction of a stat card's change indicator
type Trend string

const (
	TrendIncrease Trend = "increase"
	TrendDecrease Trend = "decrease"
)

// StatCard is one summary statistic on the home dashboard
type StatCard struct {
	Label  string `json:"label" yaml:"label"`
	Value  string `json:"value" yaml:"value"`
	Change string `json:"change" yaml:"change"`
	Trend  Trend  `json:"trend" yaml:"trend"`
	Icon   string `json:"icon" yaml:"icon"`
	Accent string `json:"accent" yaml:"accent"`
}

// StateColor assigns a fill color to a state on the geographic page
type StateColor struct {
	State string `json:"state" yaml:"state"`
	Color string `json:"color" yaml:"color"`
}

// StateMap describes the geographic visualization page
type StateMap struct {
	Title        string       `json:"title" yaml:"title"`
	GeographyURL string       `json:"geography_url" yaml:"geography_url"`
	Projection   string       `json:"projection" yaml:"projection"`
	Width        int          `json:"width" yaml:"width"`
	Height       int          `json:"height" yaml:"height"`
	DefaultColor string       `json:"default_color" yaml:"default_color"`
	HoverColor   string       `json:"hover_color" yaml:"hover_color"`
	StrokeColor  string       `json:"stroke_color" yaml:"stroke_color"`
	States       []StateColor `json:"states" yaml:"states"`
}

// ColorFor returns the configured fill for a state, or the default fill
func (m *StateMap) ColorFor(state string) string {
	for _, s := range m.States {
		if s.State == state {
			return s.Color
		}
	}
	return m.DefaultColor
}

// NavItem is a sidebar link
type NavItem struct {
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
	Icon  string `json:"icon,omitempty" yaml:"icon"`
}

// NavSection groups sidebar links under a collapsible heading
type NavSection struct {
	Title string    `json:"title" yaml:"title"`
	Icon  string    `json:"icon,omitempty" yaml:"icon"`
	Items []NavItem `json:"items" yaml:"items"`
}

// Layout holds the shared chrome around every protected page
type Layout struct {
	Title      string       `json:"title" yaml:"title"`
	Version    string       `json:"version" yaml:"version"`
	Footer     string       `json:"footer" yaml:"footer"`
	Navigation []NavSection `json:"navigation" yaml:"navigation"`
	UserMenu   []NavItem    `json:"user_menu" yaml:"user_menu"`
}
