package title

// The tables in this file are versioned data. Every index is reachable from a
// seed, so reordering, inserting or removing an entry changes every result
// that was ever shared. Append-only changes are breaking changes too.

// Prefix opens every generated title.
const Prefix = "さしずめ俺は"

// Template renders a title for keyword, drawing any fragments it needs from rng.
// The number and order of draws a template makes are part of its identity.
type Template func(keyword string, rng *RNG) string

var peopleTitles = []string{
	"覇者", "番長", "親方", "貴公子", "王", "帝王", "女王", "覇王", "仙人", "神", "妖精",
	"職人", "ソムリエ", "錬金術師", "伝道師", "革命家", "先駆者", "参謀", "エバンジェリスト",
	"監督", "司令塔", "魔術師", "守護神", "勇者", "哲学者", "賢者", "プロデューサー", "大臣", "CEO",
}

var qualifiers = []string{
	"非公式", "自称", "初代", "令和", "元祖", "純正", "真打", "公認(自分調べ)", "気まぐれ",
	"スピード違反級", "偏愛", "ガチ勢", "界隈最速", "全天候型", "24時間稼働", "兼業", "常設",
}

var connectors = []string{"界の", "の", "担当の", "方面の", "担当", "係"}

// templates is the ordered title catalog.
var templates = []Template{
	func(kw string, rng *RNG) string {
		return Prefix + kw + Pick(connectors, rng) + Pick(peopleTitles, rng)
	},
	func(kw string, rng *RNG) string {
		q := Pick(qualifiers, rng)
		return Prefix + q + kw + Pick(connectors, rng) + Pick(peopleTitles, rng)
	},
	func(kw string, _ *RNG) string { return Prefix + "人間" + kw + "（の化身）" },
	func(kw string, _ *RNG) string { return Prefix + kw + "界の風雲児" },
	func(kw string, _ *RNG) string { return Prefix + kw + "アンバサダー" },
	func(kw string, _ *RNG) string { return Prefix + kw + "の申し子" },
	func(kw string, _ *RNG) string { return Prefix + kw + "請負人" },
	func(kw string, _ *RNG) string { return Prefix + kw + "の守護神" },
	func(kw string, _ *RNG) string { return Prefix + kw + "の伝道師" },
}

// Palette is a named gradient applied to a rendered card. From and To are
// Tailwind gradient stop classes.
type Palette struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

var palettes = []Palette{
	{Name: "Neo Pop", From: "from-fuchsia-500", To: "to-amber-400"},
	{Name: "Cyber Mint", From: "from-emerald-400", To: "to-cyan-500"},
	{Name: "Soda Blue", From: "from-sky-400", To: "to-indigo-500"},
	{Name: "Sunset", From: "from-rose-500", To: "to-orange-400"},
	{Name: "Grape", From: "from-violet-500", To: "to-pink-400"},
	{Name: "Matcha", From: "from-lime-400", To: "to-emerald-500"},
}

// Palettes returns a copy of the palette list in catalog order.
func Palettes() []Palette {
	out := make([]Palette, len(palettes))
	copy(out, palettes)
	return out
}

// TemplateCount returns the number of title templates in the catalog.
func TemplateCount() int {
	return len(templates)
}
