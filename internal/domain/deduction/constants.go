package deduction

type Category string

const (
	CategoryCredit    Category = "credit"
	CategoryCheck     Category = "check"
	CategoryCash      Category = "cash"
	CategoryMarket    Category = "market"
	CategoryTransport Category = "transport"
	CategoryCulture   Category = "culture"
)

type Group string

const (
	GroupBasic Group = "basic"
	GroupExtra Group = "extra"
)

type Bracket string

const (
	BracketLow  Bracket = "low"
	BracketHigh Bracket = "high"
)

// MaxAmount is the largest accepted currency value. Anything above it is
// treated as malformed input and normalized to zero.
const MaxAmount int64 = 1_000_000_000_000_000

// basicOrder is the order in which the threshold is consumed.
var basicOrder = []Category{CategoryCredit, CategoryCheck, CategoryCash}

var extraOrder = []Category{CategoryMarket, CategoryTransport, CategoryCulture}

type categoryInfo struct {
	group Group
	label string
	title string
}

var categories = map[Category]categoryInfo{
	CategoryCredit:    {group: GroupBasic, label: "신용카드 일반", title: "Credit card"},
	CategoryCheck:     {group: GroupBasic, label: "체크카드 일반", title: "Check card"},
	CategoryCash:      {group: GroupBasic, label: "현금영수증 일반", title: "Cash receipt"},
	CategoryMarket:    {group: GroupExtra, label: "전통시장", title: "Traditional market"},
	CategoryTransport: {group: GroupExtra, label: "대중교통", title: "Public transport"},
	CategoryCulture:   {group: GroupExtra, label: "문화비", title: "Culture"},
}

// Categories returns all categories in breakdown order.
func Categories() []Category {
	out := make([]Category, 0, len(basicOrder)+len(extraOrder))
	out = append(out, basicOrder...)
	return append(out, extraOrder...)
}

func (c Category) Group() Group {
	return categories[c].group
}

// Label is the display label shown next to a breakdown row.
func (c Category) Label() string {
	return categories[c].label
}

// Title is an ASCII name for renderers without Hangul glyphs.
func (c Category) Title() string {
	return categories[c].title
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}
