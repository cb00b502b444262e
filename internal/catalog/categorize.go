package catalog

import "strings"

// Category keys form a closed enumeration assigned by rule-based
// classification over the English description at import time.
const (
	CategoryElectronics = "electronics"
	CategoryTextiles    = "textiles"
	CategoryMachinery   = "machinery"
	CategoryChemicals   = "chemicals"
	CategoryFood        = "food"
	CategoryTransport   = "transport"
	CategoryAnimals     = "animals"
	CategoryPlants      = "plants"
	CategoryMetals      = "metals"
	CategoryEnergy      = "energy"
	CategoryOthers      = "others"
)

// categoryRules maps each category to its trigger words, checked in order.
// The first category with any matching word wins.
var categoryRules = []struct {
	key   string
	words []string
}{
	{CategoryElectronics, []string{
		"electronic", "computer", "telephone", "digital", "software", "electric",
		"mobile", "phone", "radio", "television", "camera", "semiconductor",
	}},
	{CategoryTextiles, []string{
		"textile", "clothing", "cotton", "wool", "fabric", "garment",
		"apparel", "shirt", "trouser", "dress", "hat", "shoe",
	}},
	{CategoryMachinery, []string{
		"machine", "equipment", "motor", "engine", "apparatus", "tool",
		"instrument", "mechanical", "pump", "compressor",
	}},
	{CategoryChemicals, []string{
		"chemical", "pharmaceutical", "medicine", "drug", "acid", "alcohol",
		"organic", "inorganic", "compound", "preparation",
	}},
	{CategoryFood, []string{
		"food", "beverage", "grain", "meat", "fish", "fruit", "vegetable",
		"milk", "cheese", "bread", "sugar", "coffee", "tea",
	}},
	{CategoryTransport, []string{
		"vehicle", "car", "truck", "ship", "aircraft", "boat", "motorcycle",
		"bicycle", "transport", "railway",
	}},
	{CategoryAnimals, []string{
		"animal", "live", "cattle", "horse", "pig", "sheep", "poultry", "breeding",
	}},
	{CategoryPlants, []string{
		"plant", "flower", "tree", "seed", "agricultural", "forestry",
	}},
	{CategoryMetals, []string{
		"metal", "iron", "steel", "aluminum", "copper", "zinc", "mineral",
		"stone", "cement", "ceramic",
	}},
	{CategoryEnergy, []string{
		"fuel", "oil", "gas", "petroleum", "energy", "coal", "electricity",
	}},
}

// categoryNames maps category keys to Indonesian display names, matching the
// upstream dataset UI.
var categoryNames = map[string]string{
	CategoryElectronics: "Elektronik",
	CategoryTextiles:    "Tekstil",
	CategoryMachinery:   "Mesin",
	CategoryChemicals:   "Kimia",
	CategoryFood:        "Makanan",
	CategoryTransport:   "Transport",
	CategoryAnimals:     "Hewan",
	CategoryPlants:      "Tanaman",
	CategoryMetals:      "Logam",
	CategoryEnergy:      "Energi",
	CategoryOthers:      "Lainnya",
}

// CategoryKeys returns the closed category enumeration in rule order,
// ending with "others".
func CategoryKeys() []string {
	keys := make([]string, 0, len(categoryRules)+1)
	for _, r := range categoryRules {
		keys = append(keys, r.key)
	}
	return append(keys, CategoryOthers)
}

// CategoryName returns the display name for a category key, falling back to
// the key itself for unknown values.
func CategoryName(key string) string {
	if name, ok := categoryNames[key]; ok {
		return name
	}
	return key
}

// Categorize assigns a category to an entry from its English description.
func Categorize(description string) string {
	desc := strings.ToLower(description)
	if strings.TrimSpace(desc) == "" {
		return CategoryOthers
	}
	for _, rule := range categoryRules {
		for _, w := range rule.words {
			if strings.Contains(desc, w) {
				return rule.key
			}
		}
	}
	return CategoryOthers
}
