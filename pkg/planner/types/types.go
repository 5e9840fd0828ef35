package types

import (
	"strings"
	"time"
	"unicode"

	"olivia/entities"
	"olivia/pkg/climate"
)

type Category string

const (
	Tops        Category = "tops"
	Bottoms     Category = "bottoms"
	Shoes       Category = "shoes"
	Accessories Category = "accessories"
)

// Categories lists buckets in match priority order.
var Categories = []Category{Tops, Bottoms, Shoes, Accessories}

var keywords = map[Category][]string{
	Tops:        {"shirt", "blouse", "top", "tee", "t-shirt", "sweater", "jumper", "cardigan", "hoodie", "jacket", "coat", "blazer", "dress"},
	Bottoms:     {"pants", "trousers", "jeans", "skirt", "shorts", "leggings"},
	Shoes:       {"shoe", "sneaker", "boot", "sandal", "heel", "loafer", "flat"},
	Accessories: {"bag", "hat", "cap", "scarf", "belt", "jewelry", "necklace", "earring", "bracelet", "watch", "sunglasses"},
}

// Categorize matches a free-form type token against the keyword lists; ok is
// false when nothing matches. See MatchKeyword for the order.
func Categorize(itemType string) (Category, bool) {
	_, c, ok := MatchKeyword(itemType)
	return c, ok
}

// MatchKeyword is Categorize that also returns the keyword that hit.
//
// Words are tried last to first, since the garment noun ends the phrase
// ("laptop bag", "flat cap", "dress shoes"); a keyword hits a word it starts
// ("boots", "t-shirts"). Within a word the first bucket in Categories order
// wins. Only when no word hits does a plain substring match apply
// ("sweatshirt", "handbag").
func MatchKeyword(text string) (string, Category, bool) {
	t := strings.ToLower(text)
	if t == "" {
		return "", "", false
	}
	words := strings.FieldsFunc(t, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	for i := len(words) - 1; i >= 0; i-- {
		if kw, c, ok := firstHit(words[i], strings.HasPrefix); ok {
			return kw, c, true
		}
	}
	return firstHit(t, strings.Contains)
}

func firstHit(s string, match func(s, kw string) bool) (string, Category, bool) {
	for _, c := range Categories {
		for _, kw := range keywords[c] {
			if match(s, kw) {
				return kw, c, true
			}
		}
	}
	return "", "", false
}

// Partition splits a wardrobe into buckets keeping input order. Items that
// match no bucket are dropped.
func Partition(items []entities.ClothingItem) map[Category][]entities.ClothingItem {
	out := make(map[Category][]entities.ClothingItem, len(Categories))
	for _, it := range items {
		if c, ok := Categorize(it.Type); ok {
			out[c] = append(out[c], it)
		}
	}
	return out
}

// SeasonFor maps a calendar month to a northern-hemisphere season tag.
func SeasonFor(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "autumn"
	default:
		return "winter"
	}
}

func OccasionFor(t time.Time) string {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return "casual"
	}
	return "work"
}

type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Picks are the wardrobe items behind a day's outfit. Accessory may be nil.
type Picks struct {
	Top       *entities.ClothingItem `json:"top"`
	Bottom    *entities.ClothingItem `json:"bottom"`
	Shoes     *entities.ClothingItem `json:"shoes"`
	Accessory *entities.ClothingItem `json:"accessory,omitempty"`
}

type DayPlan struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Weather climate.Weather `json:"weather"`
	Outfit  entities.Outfit `json:"outfit"`
	Picks   Picks           `json:"picks"`
}

// SaveResult reports one draft save; OutfitID is nil when the insert failed.
type SaveResult struct {
	Date     string  `json:"date,omitempty"`
	OutfitID *string `json:"outfit_id"`
}
