// Package elements holds the static element dataset the quiz draws from.
package elements

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/valenz/internal/quiz"
)

// Group is the element category. It drives question styling.
type Group string

const (
	GroupAlkaliMetal         Group = "alkali-metal"
	GroupAlkalineEarthMetal  Group = "alkaline-earth-metal"
	GroupTransitionMetal     Group = "transition-metal"
	GroupPostTransitionMetal Group = "post-transition-metal"
	GroupMetalloid           Group = "metalloid"
	GroupNonmetal            Group = "nonmetal"
	GroupHalogen             Group = "halogen"
	GroupNobleGas            Group = "noble-gas"
)

// AllGroups lists groups in periodic-table reading order.
var AllGroups = []Group{
	GroupAlkaliMetal,
	GroupAlkalineEarthMetal,
	GroupTransitionMetal,
	GroupPostTransitionMetal,
	GroupMetalloid,
	GroupNonmetal,
	GroupHalogen,
	GroupNobleGas,
}

// DisplayName returns the human label for a group.
func (g Group) DisplayName() string {
	switch g {
	case GroupAlkaliMetal:
		return "Alkali metal"
	case GroupAlkalineEarthMetal:
		return "Alkaline earth metal"
	case GroupTransitionMetal:
		return "Transition metal"
	case GroupPostTransitionMetal:
		return "Post-transition metal"
	case GroupMetalloid:
		return "Metalloid"
	case GroupNonmetal:
		return "Nonmetal"
	case GroupHalogen:
		return "Halogen"
	case GroupNobleGas:
		return "Noble gas"
	}
	return string(g)
}

// Element is one dataset entry.
type Element struct {
	Atomic        int      `yaml:"atomic"`
	Symbol        string   `yaml:"symbol"`
	Name          string   `yaml:"name"`
	Group         Group    `yaml:"group"`
	Valency       string   `yaml:"valency"`
	WrongValences []string `yaml:"wrong"`
}

// Item converts the element to the quiz's view of it. The symbol is both the
// id and the prompt.
func (e Element) Item() quiz.Item {
	return quiz.Item{
		ID:      e.Symbol,
		Prompt:  e.Symbol,
		Group:   string(e.Group),
		Correct: e.Valency,
		Wrong:   append([]string(nil), e.WrongValences...),
	}
}

//go:embed elements.yaml
var elementsYAML []byte

// Dataset is a read-only, atomic-number-ordered element collection.
type Dataset struct {
	elements []Element
	bySymbol map[string]int
}

// Parse decodes and validates a YAML element list.
func Parse(data []byte) (*Dataset, error) {
	var list []Element
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse elements: %w", err)
	}
	return New(list)
}

// New builds a dataset from elements, validating that symbols are unique and
// every element has a valency.
func New(list []Element) (*Dataset, error) {
	sorted := append([]Element(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Atomic < sorted[j].Atomic
	})

	d := &Dataset{
		elements: sorted,
		bySymbol: make(map[string]int, len(sorted)),
	}
	for i, e := range sorted {
		if e.Symbol == "" {
			return nil, fmt.Errorf("element %d: missing symbol", e.Atomic)
		}
		if e.Valency == "" {
			return nil, fmt.Errorf("element %s: missing valency", e.Symbol)
		}
		if _, dup := d.bySymbol[e.Symbol]; dup {
			return nil, fmt.Errorf("element %s: duplicate symbol", e.Symbol)
		}
		for _, w := range e.WrongValences {
			if w == e.Valency {
				return nil, fmt.Errorf("element %s: wrong valence %q equals the right one", e.Symbol, w)
			}
		}
		d.bySymbol[e.Symbol] = i
	}
	return d, nil
}

var (
	defaultOnce sync.Once
	defaultSet  *Dataset
)

// Default returns the embedded dataset. It panics if the embedded file is
// invalid, which the package tests rule out.
func Default() *Dataset {
	defaultOnce.Do(func() {
		d, err := Parse(elementsYAML)
		if err != nil {
			panic(err)
		}
		defaultSet = d
	})
	return defaultSet
}

// Get returns the element with the given symbol.
func (d *Dataset) Get(symbol string) (Element, bool) {
	i, ok := d.bySymbol[symbol]
	if !ok {
		return Element{}, false
	}
	return d.elements[i], true
}

// Lookup implements quiz.Dataset.
func (d *Dataset) Lookup(id string) (quiz.Item, bool) {
	e, ok := d.Get(id)
	if !ok {
		return quiz.Item{}, false
	}
	return e.Item(), true
}

// All returns the elements ordered by atomic number.
func (d *Dataset) All() []Element {
	return append([]Element(nil), d.elements...)
}

// IDs returns the element symbols ordered by atomic number.
func (d *Dataset) IDs() []string {
	ids := make([]string, len(d.elements))
	for i, e := range d.elements {
		ids[i] = e.Symbol
	}
	return ids
}

// Len returns the number of elements.
func (d *Dataset) Len() int { return len(d.elements) }
