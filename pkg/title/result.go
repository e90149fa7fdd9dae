package title

import (
	"context"
	"strconv"
	"strings"
)

// seedSeparator joins keyword and variant before hashing.
const seedSeparator = "::"

var fixedTags = []string{"#さしずめ俺は", "#診断メーカー", "#称号"}

// Result is everything a card displays for one (keyword, variant) pair.
// Keyword, Variant and Category describe how the result was produced and play
// no part in the random draws.
type Result struct {
	Full     string   `json:"full"`
	Palette  Palette  `json:"palette"`
	Caption  string   `json:"caption"`
	Tags     []string `json:"tags"`
	Keyword  string   `json:"keyword"`
	Variant  int      `json:"variant"`
	Category Category `json:"category"`
}

// captions lists the caption variants for full, in catalog order.
func captions(full string) []string {
	return []string{
		"さしずめ俺は…『" + full + "』でした。あなたは？",
		"診断結果：" + full + "\n当たってる？#さしずめ俺は",
		full + " だった件。#称号 #診断 #さしずめ俺は",
	}
}

func keywordTag(keyword string) string {
	return "#" + keyword
}

// Seed returns the RNG seed Build uses for keyword and variant.
func Seed(keyword string, variant int) uint32 {
	return SeedFromString(keyword + seedSeparator + strconv.Itoa(variant))
}

// Build deterministically generates the result for keyword and variant.
// Any keyword is accepted, including the empty string.
//
// A single RNG is consumed in a fixed order: template, the template's own
// fragments, emoji, palette, caption. Changing that order changes every result.
func Build(keyword string, variant int) Result {
	rng := NewRNG(Seed(keyword, variant))

	t := Pick(templates, rng)(keyword, rng)
	category := Classify(keyword)
	emojis := PickMany(emojiBanks[category], emojisPerTitle, rng)
	full := t + " " + strings.Join(emojis, "")
	palette := Pick(palettes, rng)
	caption := Pick(captions(full), rng)

	tags := make([]string, 0, len(fixedTags)+1)
	tags = append(tags, fixedTags...)
	tags = append(tags, keywordTag(keyword))

	return Result{
		Full:     full,
		Palette:  palette,
		Caption:  caption,
		Tags:     tags,
		Keyword:  keyword,
		Variant:  variant,
		Category: category,
	}
}

// Generator produces results. It exists so that instrumentation can wrap
// generation without touching Build.
type Generator interface {
	Generate(ctx context.Context, keyword string, variant int) (Result, error)
}

// DefaultGenerator generates results with Build.
type DefaultGenerator struct{}

// Compile-time check: DefaultGenerator implements Generator.
var _ Generator = DefaultGenerator{}

// Generate returns Build(keyword, variant). It only fails if ctx is already done.
func (DefaultGenerator) Generate(ctx context.Context, keyword string, variant int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Build(keyword, variant), nil
}
