// Package render composes the styled symbol line shown in the host's
// tabline. Breadcrumbs are first turned into a structured segment list
// and only then serialized into the host's display syntax, keeping the
// click-token encoding testable on its own.
package render

import (
	"symline/internal/config"
	"symline/internal/symbol"
)

// Highlight groups the host is expected to define.
const (
	GroupBase      = "SymLine"
	GroupSeparator = "SymLineSep"
	GroupLabel     = "SymLineLabel"
)

// fallbackFileGlyph labels the empty-breadcrumb placeholder when the
// configuration has no "file" label.
const fallbackFileGlyph = "F"

// SegmentKind classifies a display segment.
type SegmentKind int

const (
	// SegmentText is a breadcrumb name; it carries a click token.
	SegmentText SegmentKind = iota
	// SegmentLabel is a kind icon/label preceding a breadcrumb name.
	SegmentLabel
	// SegmentSeparator sits between breadcrumb entries.
	SegmentSeparator
	// SegmentDefault is the whole-line placeholder for an empty
	// breadcrumb; its text passes to the host unescaped so statusline
	// items like the file-name placeholder keep their meaning.
	SegmentDefault
)

// Segment is one styled piece of the symbol line.
type Segment struct {
	Kind  SegmentKind
	Group string
	Text  string
	Token ClickToken // zero when the segment is not clickable
}

// BuildSegments turns a breadcrumb chain into the segment list for a
// buffer. An empty chain produces the configured default text: the file
// sentinel renders a file label plus the file-name placeholder, other
// non-empty text renders as-is in the base group, and empty text
// renders nothing.
func BuildSegments(crumbs []symbol.Info, cfg *config.Config, bufnr int) []Segment {
	if len(crumbs) == 0 {
		return defaultSegments(cfg)
	}

	segments := make([]Segment, 0, 3*len(crumbs))
	for i, crumb := range crumbs {
		if i > 0 {
			segments = append(segments, Segment{
				Kind:  SegmentSeparator,
				Group: GroupSeparator,
				Text:  cfg.Separator,
			})
		}
		if cfg.ShowIcons {
			segments = append(segments, Segment{
				Kind:  SegmentLabel,
				Group: GroupLabel,
				Text:  cfg.Label(string(crumb.Kind)) + " ",
			})
		}
		seg := Segment{
			Kind:  SegmentText,
			Group: GroupBase,
			Text:  crumb.Name,
		}
		if token, err := EncodeToken(bufnr, i); err == nil {
			seg.Token = token
		}
		segments = append(segments, seg)
	}
	return segments
}

func defaultSegments(cfg *config.Config) []Segment {
	switch cfg.DefaultText {
	case "":
		return nil
	case config.FileSentinel:
		glyph := cfg.KindLabels["file"]
		if glyph == "" {
			glyph = fallbackFileGlyph
		}
		return []Segment{{
			Kind:  SegmentDefault,
			Group: GroupBase,
			Text:  glyph + " " + config.FileSentinel,
		}}
	default:
		return []Segment{{
			Kind:  SegmentDefault,
			Group: GroupBase,
			Text:  cfg.DefaultText,
		}}
	}
}
