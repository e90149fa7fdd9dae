package title

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// AppName is the title used when sharing a result.
	AppName = "さしずめ俺はジェネレーター"
	// DefaultKeyword is generated for when a user submits an empty keyword.
	DefaultKeyword = "なんでも"
	// InitialKeyword is shown before the user has entered anything.
	InitialKeyword = "コーヒー"
	// MaxRandomVariant bounds the variants handed out by RandomVariant.
	MaxRandomVariant = 99999

	intentBaseURL = "https://twitter.com/intent/tweet"
)

// ExampleKeywords are the suggestions offered next to the keyword input.
var ExampleKeywords = []string{"コーヒー", "寝坊", "筋トレ", "推し", "写真", "旅", "ラーメン", "AI"}

// Reference is the state carried by a permalink: the title as displayed, the
// keyword it was generated from, and the variant.
type Reference struct {
	Title   string `json:"t"`
	Keyword string `json:"k"`
	Variant int    `json:"v"`
}

// ReferenceOf returns the permalink state of r.
func ReferenceOf(r Result) Reference {
	return Reference{Title: r.Full, Keyword: r.Keyword, Variant: r.Variant}
}

// RandomVariant returns a variant in [0, MaxRandomVariant) for "regenerate".
func RandomVariant() int {
	return rand.IntN(MaxRandomVariant)
}

var componentEscapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeParam percent-encodes s the way encodeURIComponent does: letters,
// digits and -_.!~*'() are kept, everything else becomes %XX of its UTF-8 bytes.
func EncodeParam(s string) string {
	// QueryEscape writes spaces as '+' and escapes a literal '+' as %2B, so
	// every '+' in its output stands for a space.
	return componentEscapes.Replace(url.QueryEscape(s))
}

// DecodeParam reverses EncodeParam. '+' is not treated as a space. When s is
// not a valid encoding, including escapes that decode to invalid UTF-8, s is
// returned unchanged.
func DecodeParam(s string) string {
	out, err := url.PathUnescape(s)
	if err != nil || !utf8.ValidString(out) {
		return s
	}
	return out
}

// Permalink returns base with t, k and v set for ref. Existing query
// parameters on base are kept. Values are EncodeParam-encoded before the query
// string is built, so they end up encoded twice; ParseReference undoes both.
func Permalink(base string, ref Reference) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	q := u.Query()
	q.Set("t", EncodeParam(ref.Title))
	q.Set("k", EncodeParam(ref.Keyword))
	q.Set("v", strconv.Itoa(ref.Variant))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseVariant reads the leading integer of s the way links in circulation
// were parsed: leading whitespace is skipped, an optional sign is accepted and
// parsing stops at the first non-digit, so "12abc" is 12 and "1.5" is 1.
// Input with no leading digits, or out of int range, reads as 0.
func ParseVariant(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

// ParseReference reads a Reference from permalink query parameters.
// ok is false when there is no title to restore. The variant is read with
// ParseVariant.
func ParseReference(q url.Values) (ref Reference, ok bool) {
	t := q.Get("t")
	if t == "" {
		return Reference{}, false
	}
	return Reference{
		Title:   DecodeParam(t),
		Keyword: DecodeParam(q.Get("k")),
		Variant: ParseVariant(q.Get("v")),
	}, true
}

// Hydrate rebuilds a displayable Result from a permalink without re-running
// generation: the shared title is shown as-is, the palette follows the variant
// and the caption is always the first caption variant.
func Hydrate(ref Reference) Result {
	n := len(palettes)
	palette := palettes[(ref.Variant%n+n)%n]

	tags := []string{fixedTags[0], fixedTags[1]}
	if ref.Keyword != "" {
		tags = append(tags, keywordTag(ref.Keyword))
	}

	return Result{
		Full:     ref.Title,
		Palette:  palette,
		Caption:  captions(ref.Title)[0],
		Tags:     tags,
		Keyword:  ref.Keyword,
		Variant:  ref.Variant,
		Category: Classify(ref.Keyword),
	}
}

// ShareText is the text handed to a native share sheet.
func ShareText(r Result) string {
	return r.Full + "\n" + r.Caption
}

// CopyText is the text copied by "copy result".
func CopyText(r Result, permalink string) string {
	return r.Full + "\n" + permalink
}

// IntentURL returns an X (Twitter) post intent for r linking to permalink.
func IntentURL(r Result, permalink string) string {
	hashtags := make([]string, len(r.Tags))
	for i, tag := range r.Tags {
		hashtags[i] = strings.Replace(tag, "#", "", 1)
	}
	return intentBaseURL +
		"?text=" + EncodeParam(ShareText(r)) +
		"&url=" + EncodeParam(permalink) +
		"&hashtags=" + EncodeParam(strings.Join(hashtags, ","))
}
