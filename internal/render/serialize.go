package render

import (
	"fmt"
	"strings"
)

// ClickHandler is the host-side function click regions dispatch to.
const ClickHandler = "SymlineClick"

// Serialize turns a segment list into the host's statusline syntax:
// `%#Group#` switches the highlight group, `%<token>@Handler@ ... %X`
// brackets a click region. Breadcrumb text is escaped so a literal `%`
// in a symbol name cannot be misread as a statusline item; default
// segments pass through raw.
func Serialize(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Group != "" {
			fmt.Fprintf(&b, "%%#%s#", seg.Group)
		}
		switch {
		case seg.Kind == SegmentDefault:
			b.WriteString(seg.Text)
		case seg.Token != 0:
			fmt.Fprintf(&b, "%%%d@%s@%s%%X", int(seg.Token), ClickHandler, escape(seg.Text))
		default:
			b.WriteString(escape(seg.Text))
		}
	}
	return b.String()
}

func escape(text string) string {
	return strings.ReplaceAll(text, "%", "%%")
}
