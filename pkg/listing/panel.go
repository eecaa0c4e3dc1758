package listing

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/mrops-br/saree-catalog-api/pkg/catalogclient"
)

const (
	// DefaultMaxPrice is the upper price bound when no product costs more
	DefaultMaxPrice = 2000
	// PriceStep is the slider granularity
	PriceStep = 50
)

type PanelState int

const (
	Closed PanelState = iota
	Open
)

func (s PanelState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Selection is what the filter panel holds: a price range plus the chosen
// materials and colors.
type Selection struct {
	Price     PriceRange
	Materials []string
	Colors    []string
}

func (s Selection) clone() Selection {
	return Selection{
		Price:     s.Price,
		Materials: slices.Clone(s.Materials),
		Colors:    slices.Clone(s.Colors),
	}
}

// FilterPanel edits a pending Selection while open. Apply commits it and
// closes; Close discards it.
type FilterPanel struct {
	state     PanelState
	maxPrice  float64
	pending   Selection
	applied   Selection
	materials []string
	colors    []string
}

// NewFilterPanel builds a closed panel for products. The price ceiling is
// DefaultMaxPrice or the highest price rounded up to PriceStep, whichever
// is larger, so the default range hides nothing.
func NewFilterPanel(products []catalogclient.Product) *FilterPanel {
	maxPrice := float64(DefaultMaxPrice)
	materials := map[string]struct{}{}
	colors := map[string]struct{}{}

	for _, p := range products {
		maxPrice = max(maxPrice, math.Ceil(p.Price/PriceStep)*PriceStep)
		if p.Material != "" {
			materials[p.Material] = struct{}{}
		}
		for _, c := range p.Colors {
			if c != "" {
				colors[c] = struct{}{}
			}
		}
	}

	f := &FilterPanel{
		maxPrice:  maxPrice,
		materials: sortedKeys(materials),
		colors:    sortedKeys(colors),
	}
	f.pending = f.defaults()
	f.applied = f.defaults()
	return f
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (f *FilterPanel) defaults() Selection {
	return Selection{Price: PriceRange{Min: 0, Max: f.maxPrice}}
}

func (f *FilterPanel) State() PanelState { return f.state }
func (f *FilterPanel) MaxPrice() float64 { return f.maxPrice }

// AvailableMaterials lists the distinct materials of the product set
func (f *FilterPanel) AvailableMaterials() []string { return slices.Clone(f.materials) }

// AvailableColors lists the distinct colors of the product set
func (f *FilterPanel) AvailableColors() []string { return slices.Clone(f.colors) }

// Open starts editing from the applied selection
func (f *FilterPanel) Open() {
	if f.state == Open {
		return
	}
	f.pending = f.applied.clone()
	f.state = Open
}

// Close leaves the panel without committing pending edits
func (f *FilterPanel) Close() {
	f.state = Closed
}

func (f *FilterPanel) Toggle() {
	if f.state == Open {
		f.Close()
		return
	}
	f.Open()
}

// Apply commits the pending selection and closes the panel
func (f *FilterPanel) Apply() {
	f.applied = f.pending.clone()
	f.state = Closed
}

// Clear resets the pending selection to the full price range with no
// materials or colors. It does not close the panel.
func (f *FilterPanel) Clear() {
	f.pending = f.defaults()
}

// Pending returns the selection being edited
func (f *FilterPanel) Pending() Selection { return f.pending.clone() }

// Applied returns the committed selection
func (f *FilterPanel) Applied() Selection { return f.applied.clone() }

// Active reports whether the pending selection differs from the defaults
func (f *FilterPanel) Active() bool {
	s := f.pending
	return len(s.Materials) > 0 ||
		len(s.Colors) > 0 ||
		s.Price.Min > 0 ||
		s.Price.Max < f.maxPrice
}

func (f *FilterPanel) clamp(v float64) float64 {
	return min(max(v, 0), f.maxPrice)
}

// SetPriceRange sets both bounds, clamped to [0, MaxPrice]
func (f *FilterPanel) SetPriceRange(lo, hi float64) {
	f.pending.Price = PriceRange{Min: f.clamp(lo), Max: f.clamp(hi)}
}

// SlidePriceRange sets both bounds from a slider, snapping to PriceStep
func (f *FilterPanel) SlidePriceRange(lo, hi float64) {
	snap := func(v float64) float64 { return math.Round(v/PriceStep) * PriceStep }
	f.SetPriceRange(snap(lo), snap(hi))
}

// SetMinPriceInput and SetMaxPriceInput take free text from a number box.
// Unparseable input counts as 0.
func (f *FilterPanel) SetMinPriceInput(raw string) {
	f.pending.Price.Min = f.clamp(float64(leadingInt(raw)))
}

func (f *FilterPanel) SetMaxPriceInput(raw string) {
	f.pending.Price.Max = f.clamp(float64(leadingInt(raw)))
}

// leadingInt parses an optional sign and the digits that follow it,
// ignoring anything after them.
func leadingInt(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func (f *FilterPanel) ToggleMaterial(material string) {
	f.pending.Materials = toggle(f.pending.Materials, material)
}

func (f *FilterPanel) ToggleColor(color string) {
	f.pending.Colors = toggle(f.pending.Colors, color)
}

func toggle(set []string, v string) []string {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}

// SortPanel picks one SortOption; choosing closes the panel
type SortPanel struct {
	state    PanelState
	selected SortOption
}

func NewSortPanel() *SortPanel {
	return &SortPanel{selected: DefaultSortOption}
}

func (s *SortPanel) State() PanelState    { return s.state }
func (s *SortPanel) Selected() SortOption { return s.selected }
func (s *SortPanel) Open()                { s.state = Open }
func (s *SortPanel) Close()               { s.state = Closed }

func (s *SortPanel) Toggle() {
	if s.state == Open {
		s.state = Closed
		return
	}
	s.state = Open
}

// Select sets the option and closes the panel
func (s *SortPanel) Select(opt SortOption) {
	s.selected = opt
	s.state = Closed
}
