package title

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category names a topic whose emoji bank decorates a title.
type Category string

const (
	CategoryCoffee Category = "coffee"
	CategorySleep  Category = "sleep"
	CategorySport  Category = "sport"
	CategoryLove   Category = "love"
	CategoryArt    Category = "art"
	CategoryMoney  Category = "money"
	CategoryTech   Category = "tech"
	CategoryFood   Category = "food"
	CategoryChaos  Category = "chaos"
)

// emojisPerTitle is the number of distinct emoji appended to a title.
const emojisPerTitle = 2

var emojiBanks = map[Category][]string{
	CategoryFood:   {"🍔", "🍣", "🍜", "🍛", "🍫", "🍿", "🍩", "🍵", "☕️", "🧃", "🥤", "🍙", "🥟", "🍕"},
	CategorySport:  {"💪", "🏃", "🏀", "⚽️", "🏋️", "⛳️", "🏸", "🎾", "🥇"},
	CategoryLove:   {"❤️", "💕", "💘", "💖", "💗", "💞", "💓"},
	CategoryTech:   {"💻", "🖱️", "⌨️", "🧠", "🤖", "🔧", "🧪"},
	CategoryArt:    {"🎨", "🖌️", "📸", "🎭", "🎵", "🎬"},
	CategorySleep:  {"😴", "🛌", "🌙", "💤"},
	CategoryMoney:  {"💰", "🪙", "💴", "📈"},
	CategoryCoffee: {"☕️", "🫘", "🥐", "🍪"},
	CategoryChaos:  {"✨", "⚡️", "🔥", "🌈", "🌀", "🌟", "🫨"},
}

type categoryRule struct {
	category Category
	terms    []string
}

// categoryRules is checked in order; the first rule with a term contained in
// the lowered keyword wins. Terms are compared exactly as written, so the
// upper-case ones (IT, AI, PC) never match.
var categoryRules = []categoryRule{
	{CategoryCoffee, []string{"珈ーヒ", "コーヒ", "こーヒ", "coffee"}},
	{CategorySleep, []string{"寝", "睡眠", "zzz", "sleep"}},
	{CategorySport, []string{"筋", "ジム", "workout", "fit", "筋トレ"}},
	{CategoryLove, []string{"愛", "like", "恋", "推し"}},
	{CategoryArt, []string{"アート", "絵", "写真", "カメラ", "paint", "art"}},
	{CategoryMoney, []string{"お金", "money", "投資", "株", "稼"}},
	{CategoryTech, []string{"IT", "AI", "tech", "ガジェ", "PC", "プログ"}},
	{CategoryFood, []string{"寿司", "ラーメン", "ピザ", "食", "グルメ", "飯", "food", "sweet"}},
}

// Classify returns the category whose emoji bank decorates titles for keyword.
func Classify(keyword string) Category {
	// A Caser keeps state between calls, so each lookup gets its own.
	kw := cases.Lower(language.Und).String(keyword)
	for _, rule := range categoryRules {
		for _, term := range rule.terms {
			if strings.Contains(kw, term) {
				return rule.category
			}
		}
	}
	return CategoryChaos
}

// GuessEmojis returns two distinct emoji from the bank of keyword's category.
func GuessEmojis(keyword string, rng *RNG) []string {
	return PickMany(emojiBanks[Classify(keyword)], emojisPerTitle, rng)
}

// Emojis returns a copy of the emoji bank for c, or nil for an unknown category.
func Emojis(c Category) []string {
	bank, ok := emojiBanks[c]
	if !ok {
		return nil
	}
	out := make([]string, len(bank))
	copy(out, bank)
	return out
}
