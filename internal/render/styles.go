package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode decides when escape sequences are written.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "yes", "force":
		return ColorAlways, nil
	case "never", "no", "none":
		return ColorNever, nil
	}
	return 0, fmt.Errorf("invalid color mode: %q", s)
}

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// NewLipglossRenderer returns a lipgloss renderer for w whose color profile
// follows mode. In auto mode the profile is detected from w and the
// environment.
func NewLipglossRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		profile := termenv.NewOutput(w).EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI
		}
		r.SetColorProfile(profile)
	}
	return r
}

type Styles struct {
	Normal     lipgloss.Style
	Header     lipgloss.Style
	Weekday    lipgloss.Style
	Today      lipgloss.Style
	Selected   lipgloss.Style
	Weekend    lipgloss.Style
	WeekNumber lipgloss.Style
	Help       lipgloss.Style
	Status     lipgloss.Style
}

// DefaultStyles are used when no color lines are configured.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Normal:     r.NewStyle(),
		Header:     r.NewStyle().Bold(true),
		Weekday:    r.NewStyle().Bold(true),
		Today:      r.NewStyle().Reverse(true),
		Selected:   r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
		Weekend:    r.NewStyle().Foreground(lipgloss.Color("4")),
		WeekNumber: r.NewStyle().Foreground(lipgloss.Color("6")),
		Help:       r.NewStyle().Foreground(lipgloss.Color("8")),
		Status:     r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// StylesFromConfig builds styles from "color ELEMENT SPEC" settings keyed
// by element name. Unknown elements are ignored.
func StylesFromConfig(r *lipgloss.Renderer, colors map[string]string) (Styles, error) {
	s := DefaultStyles(r)
	targets := map[string]*lipgloss.Style{
		"normal":      &s.Normal,
		"header":      &s.Header,
		"weekday":     &s.Weekday,
		"today":       &s.Today,
		"selected":    &s.Selected,
		"weekend":     &s.Weekend,
		"week_number": &s.WeekNumber,
		"help":        &s.Help,
		"status":      &s.Status,
	}
	for name, spec := range colors {
		target, ok := targets[name]
		if !ok {
			continue
		}
		style, err := StyleFromSpec(r, spec)
		if err != nil {
			return Styles{}, fmt.Errorf("color %s: %w", name, err)
		}
		*target = style
	}
	return s, nil
}

var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
}

// StyleFromSpec parses a color spec such as "bold yellow", "reverse",
// "214 on 235" or "#ffaa00". Words before "on" set the foreground and
// attributes, the word after it sets the background.
func StyleFromSpec(r *lipgloss.Renderer, spec string) (lipgloss.Style, error) {
	style := r.NewStyle()
	background := false
	for _, word := range strings.Fields(strings.ToLower(spec)) {
		switch word {
		case "default", "normal", "none":
			continue
		case "on":
			background = true
			continue
		case "bold":
			style = style.Bold(true)
			continue
		case "underline":
			style = style.Underline(true)
			continue
		case "reverse":
			style = style.Reverse(true)
			continue
		case "italic":
			style = style.Italic(true)
			continue
		case "faint", "dim":
			style = style.Faint(true)
			continue
		}

		color, err := parseColor(word)
		if err != nil {
			return lipgloss.Style{}, err
		}
		if background {
			style = style.Background(color)
		} else {
			style = style.Foreground(color)
		}
	}
	return style, nil
}

func parseColor(word string) (lipgloss.Color, error) {
	bright := strings.HasPrefix(word, "bright")
	name := strings.TrimPrefix(strings.TrimPrefix(word, "bright"), "_")
	if code, ok := namedColors[name]; ok {
		if bright {
			n, _ := strconv.Atoi(code)
			code = strconv.Itoa(n + 8)
		}
		return lipgloss.Color(code), nil
	}
	if strings.HasPrefix(word, "#") && (len(word) == 7 || len(word) == 4) {
		return lipgloss.Color(word), nil
	}
	if n, err := strconv.Atoi(word); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(word), nil
	}
	return "", fmt.Errorf("unknown color %q", word)
}
