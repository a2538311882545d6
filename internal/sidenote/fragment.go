package sidenote

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// The emitted markup is a published contract: site stylesheets and scripts
// key off these ids, classes, and the data attribute. Changing any of them is
// a breaking change for every deployed theme.
const (
	// ClassNote marks the note body span.
	ClassNote = "sidenote"
	// ClassNumber marks both the visible note number and the reference marker.
	ClassNumber = "sidenote-number"
	// ClassBack marks the back-link from the note body to its reference.
	ClassBack = "sidenote-back"
	// ClassMargin marks unnumbered margin notes.
	ClassMargin = "marginnote"
	// DataNumberAttr carries the note number on the note body span.
	DataNumberAttr = "data-sidenote-number"
)

// NoteID returns the anchor id of note n ("sn-<n>").
func NoteID(n int) string {
	return "sn-" + strconv.Itoa(n)
}

// RefID returns the anchor id of note n's reference marker ("sn-ref-<n>").
func RefID(n int) string {
	return "sn-ref-" + strconv.Itoa(n)
}

// Fragment renders the two cross-linked anchors for note n: the note body
// (addressable as sn-n, back-linking to sn-ref-n) immediately followed by the
// reference marker (addressable as sn-ref-n, linking forward to sn-n). The
// two top-level elements are concatenated with no whitespace between them.
//
// text must already be encoded for HTML interpolation; see EscapeText and
// the RawInner handling in the directive definitions.
func Fragment(n int, text string) string {
	num := strconv.Itoa(n)
	var b strings.Builder
	b.Grow(len(text) + 256)

	b.WriteString(`<span id="`)
	b.WriteString(NoteID(n))
	b.WriteString(`" class="`)
	b.WriteString(ClassNote)
	b.WriteString(`" `)
	b.WriteString(DataNumberAttr)
	b.WriteString(`="`)
	b.WriteString(num)
	b.WriteString("\">\n  <sup class=\"")
	b.WriteString(ClassNumber)
	b.WriteString(`">`)
	b.WriteString(num)
	b.WriteString(`</sup>&nbsp;`)
	b.WriteString(text)
	b.WriteString("\n  <a class=\"")
	b.WriteString(ClassBack)
	b.WriteString(`" href="#`)
	b.WriteString(RefID(n))
	b.WriteString("\">↩</a>\n</span>")

	b.WriteString(`<sup class="`)
	b.WriteString(ClassNumber)
	b.WriteString(`" id="`)
	b.WriteString(RefID(n))
	b.WriteString("\">\n  <a href=\"#")
	b.WriteString(NoteID(n))
	b.WriteString(`">`)
	b.WriteString(num)
	b.WriteString("</a>\n</sup>")

	return b.String()
}

// MarginFragment renders an unnumbered margin note span.
func MarginFragment(text string) string {
	return fmt.Sprintf(`<span class="%s">%s</span>`, ClassMargin, text)
}

// EscapeText encodes author text for safe interpolation into the fragment
// markup. HTML special characters arrive entity-encoded in the output.
func EscapeText(text string) string {
	return html.EscapeString(text)
}
