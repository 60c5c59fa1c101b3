package names

import (
	"github.com/gameontext/gameon-player/internal/dependencies/random"
)

// SuggestionCount is how many suggestions each call returns
const SuggestionCount = 10

var (
	sizes        = []string{"Tiny", "Small", "Large", "Gigantic", "Enormous"}
	compositions = []string{"Chocolate", "Fruit", "GlutenFree", "Sticky"}
	extras       = []string{"Iced", "Frosted", "CreamFilled", "JamFilled", "MapleSyrupSoaked", "SprinkleCovered"}
	forms        = []string{"FairyCake", "CupCake", "Muffin", "PastrySlice", "Doughnut"}

	colorPrefixes = []string{"Light", "Dark", "Faded", "Vivid", "Intense"}
	colors        = []string{"Pink", "Purple", "Violet", "Orchid", "Mauve", "Rose", "Fuschia", "Cerise", "Lavender", "Magenta", "Lilac"}
)

// Generator produces random display name and favorite color suggestions
type Generator struct {
	random random.Random
}

// New creates a new Generator
func New(random random.Random) *Generator {
	return &Generator{random: random}
}

// Names returns up to SuggestionCount distinct player names
func (g *Generator) Names() []string {
	return g.distinct(g.name)
}

// Colors returns up to SuggestionCount distinct favorite colors
func (g *Generator) Colors() []string {
	return g.distinct(g.color)
}

func (g *Generator) name() string {
	switch g.random.Intn(6) {
	case 0:
		return g.pick(sizes) + g.pick(compositions) + g.pick(forms)
	case 1:
		return g.pick(compositions) + g.pick(extras) + g.pick(forms)
	case 2:
		return g.pick(sizes) + g.pick(extras) + g.pick(forms)
	case 3:
		return g.pick(extras) + g.pick(forms)
	case 4:
		return g.pick(sizes) + g.pick(forms)
	default:
		return g.pick(compositions) + g.pick(forms)
	}
}

func (g *Generator) color() string {
	if g.random.Intn(2) == 0 {
		return g.pick(colors)
	}
	return g.pick(colorPrefixes) + g.pick(colors)
}

func (g *Generator) pick(options []string) string {
	return options[g.random.Intn(len(options))]
}

// distinct calls gen until it has SuggestionCount unique values or runs out
// of attempts
func (g *Generator) distinct(gen func() string) []string {
	seen := make(map[string]struct{}, SuggestionCount)
	out := make([]string, 0, SuggestionCount)
	for attempts := 0; len(out) < SuggestionCount && attempts < SuggestionCount*50; attempts++ {
		v := gen()
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
