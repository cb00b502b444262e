// Package synonym expands query tokens through a bilingual synonym table,
// so English and Indonesian phrasings of the same goods find each other.
package synonym

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table maps a term to its equivalents in both languages, with a reverse
// index so a lookup by any synonym also reaches the key and its siblings.
type Table struct {
	direct  map[string][]string
	reverse map[string][]string
}

// defaultSynonyms is the built-in bilingual table covering the goods domains
// the catalog spans. A supplement file can extend or override keys.
var defaultSynonyms = map[string][]string{
	// Technology and electronics
	"computer":   {"komputer", "pc", "laptop", "notebook", "desktop", "workstation"},
	"laptop":     {"notebook", "portable computer", "komputer portabel"},
	"phone":      {"telephone", "telepon", "handphone", "hp", "smartphone", "mobile"},
	"smartphone": {"hp", "handphone", "telepon pintar", "mobile phone"},
	"printer":    {"mesin cetak", "pencetak", "printing machine"},
	"monitor":    {"layar", "display", "screen", "tampilan"},

	// Textiles and clothing
	"textile":  {"tekstil", "kain", "fabric", "cloth"},
	"clothing": {"pakaian", "garment", "apparel", "busana"},
	"shirt":    {"kemeja", "baju", "kaos", "blouse"},
	"pants":    {"celana", "trousers", "slacks"},
	"shoes":    {"sepatu", "footwear", "alas kaki"},

	// Food and agriculture
	"rice":   {"beras", "padi", "gabah", "nasi"},
	"coffee": {"kopi", "beans", "biji kopi"},
	"sugar":  {"gula", "sweetener", "pemanis"},
	"meat":   {"daging", "flesh", "protein hewani"},
	"fish":   {"ikan", "seafood", "hasil laut"},

	// Animals and live products
	"horse":   {"kuda", "equine"},
	"cattle":  {"sapi", "ternak", "livestock"},
	"pig":     {"babi", "swine", "pork"},
	"chicken": {"ayam", "poultry", "unggas"},

	// Machinery and industrial
	"machine": {"mesin", "machinery", "peralatan"},
	"engine":  {"motor", "mesin penggerak"},
	"pump":    {"pompa", "pemompa"},
	"tool":    {"alat", "perkakas", "equipment"},

	// Chemicals and materials
	"chemical": {"kimia", "bahan kimia", "zat kimia"},
	"plastic":  {"plastik", "polymer", "polimer"},
	"metal":    {"logam", "metallic", "besi"},
	"steel":    {"baja", "iron", "besi"},

	// Common qualifiers
	"live":      {"hidup", "living", "vital"},
	"fresh":     {"segar", "baru", "new"},
	"frozen":    {"beku", "dingin", "cold"},
	"processed": {"olahan", "refined", "treated"},
}

// NewTable builds a table from the built-in synonyms.
func NewTable() *Table {
	return buildTable(defaultSynonyms, nil)
}

// LoadTable builds a table from the built-in synonyms merged with a YAML
// supplement file of the form `term: [synonym, ...]`. Supplement keys
// override built-in keys of the same name. A missing file is not an error;
// the built-in table is used alone.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return NewTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTable(), nil
		}
		return nil, fmt.Errorf("failed to read synonym file: %w", err)
	}

	var supplement map[string][]string
	if err := yaml.Unmarshal(data, &supplement); err != nil {
		return nil, fmt.Errorf("failed to parse synonym file: %w", err)
	}
	return buildTable(defaultSynonyms, supplement), nil
}

func buildTable(base, supplement map[string][]string) *Table {
	direct := make(map[string][]string, len(base)+len(supplement))
	for key, syns := range base {
		direct[normalizeTerm(key)] = normalizeTerms(syns)
	}
	for key, syns := range supplement {
		direct[normalizeTerm(key)] = normalizeTerms(syns)
	}

	reverse := make(map[string][]string)
	for key, syns := range direct {
		for _, s := range syns {
			reverse[s] = append(reverse[s], key)
		}
	}
	for s := range reverse {
		sort.Strings(reverse[s])
	}
	return &Table{direct: direct, reverse: reverse}
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := normalizeTerm(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Synonyms returns the direct synonyms for term, or nil.
func (t *Table) Synonyms(term string) []string {
	return t.direct[term]
}

// Keys returns the table keys that list term as a synonym, or nil.
func (t *Table) Keys(term string) []string {
	return t.reverse[term]
}

// Len reports the number of direct entries.
func (t *Table) Len() int {
	return len(t.direct)
}
