package usfm

// markerSet is an immutable set of marker names.
type markerSet map[string]struct{}

func newMarkerSet(names ...string) markerSet {
	s := make(markerSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s markerSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s markerSet) names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return out
}

// Paragraph markers start a block-level element.
var paragraphMarkers = newMarkerSet(
	// identification
	"id", "usfm", "ide", "sts", "rem", "h", "toc", "toca",
	// introductions
	"imt", "is", "ip", "ipi", "im", "imi", "ipq", "imq", "ipr", "iq", "ib",
	"ili", "iot", "io", "iex", "imte", "ie",
	// titles, headings and labels
	"mt", "mte", "ms", "mr", "s", "sr", "r", "d", "sp", "sd",
	// chapters and verses
	"c", "cl", "cp", "cd",
	// paragraphs
	"p", "m", "po", "pr", "cls", "pmo", "pm", "pmc", "pmr", "pi", "mi", "nb",
	"pc", "ph", "b",
	// poetry
	"q", "qr", "qc", "qa", "qm", "qd",
	// lists
	"lh", "li", "lf", "lim",
	// tables
	"tr",
	// cross references
	"x",
	// spacing and breaks
	"pb",
	// special features
	"fig",
)

// Inline markers carry sub-content parsed until their closing marker.
var inlineMarkers = newMarkerSet(
	// introductions
	"ior", "iqt",
	// chapters and verses
	"ca", "va", "vp",
	// poetry
	"qs", "qac",
	// lists
	"litl", "lik", "liv",
	// footnotes
	"f", "fe", "fv", "fdc", "fm",
	// cross references
	"x", "xop", "xot", "xnt", "xdc", "rq",
	// words and characters
	"add", "bk", "dc", "k", "nd", "ord", "pn", "png", "addpn", "qt", "sig",
	"sls", "tl", "wj",
	// character styling
	"em", "bd", "it", "bdit", "no", "sc", "sup",
	// special features
	"fig", "ndx", "rb", "pro", "w", "wg", "wh", "wa",
	// linking
	"jmp",
	// extended study content
	"ef", "ex", "cat",
)

// Heading markers are paragraph markers whose text is a title or label.
var headingMarkers = newMarkerSet(
	"h", "mt", "mte", "toc", "ms", "mr", "s", "sr", "r", "d", "sp", "sd",
)

// attributeSpec lists the attribute keys a marker accepts and the key a
// bare value is assigned to.
type attributeSpec struct {
	keys       []string
	defaultKey string
}

var attributeSpecs = map[string]attributeSpec{
	"w":   {keys: []string{"lemma", "strong", "srcloc"}, defaultKey: "lemma"},
	"rb":  {keys: []string{"gloss"}, defaultKey: "gloss"},
	"xt":  {keys: []string{"link-href"}, defaultKey: "link-href"},
	"fig": {keys: []string{"alt", "src", "size", "loc", "copy", "ref"}},
}

// ParagraphMarkers returns the names of all paragraph markers.
func ParagraphMarkers() []string { return paragraphMarkers.names() }

// InlineMarkers returns the names of all inline markers.
func InlineMarkers() []string { return inlineMarkers.names() }

// HeadingMarkers returns the names of all heading markers.
func HeadingMarkers() []string { return headingMarkers.names() }

// AttributeSpec returns the attribute keys the named marker accepts and its
// default key, if it has one. ok is false for markers without attributes.
func AttributeSpec(name string) (keys []string, defaultKey string, ok bool) {
	spec, ok := attributeSpecs[name]
	if !ok {
		return nil, "", false
	}
	return append([]string(nil), spec.keys...), spec.defaultKey, true
}
