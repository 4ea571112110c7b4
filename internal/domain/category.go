package domain

import (
	"strings"
)

// Category is an editorial category tag shown on feed cards.
type Category string

const (
	CategoryBreaking      Category = "ÚLTIMO MOMENTO"
	CategoryMilei         Category = "MILEI"
	CategoryElections     Category = "ELECCIONES2025"
	CategoryEconomy       Category = "ECONOMÍA"
	CategoryTech          Category = "TECNOLOGÍA"
	CategorySports        Category = "DEPORTES"
	CategoryInternational Category = "INTERNACIONAL"
	CategoryCrypto        Category = "CRIPTO"
	CategoryPolitics      Category = "POLÍTICA"
)

// Category priority scores. Higher scores sort earlier in the feed;
// anything not matching a scored category gets scoreDefault.
const (
	scoreBreaking      = 1000
	scoreMilei         = 900
	scoreElections     = 850
	scoreEconomy       = 800
	scoreTech          = 700
	scoreSports        = 650
	scoreInternational = 600
	scoreCrypto        = 550
	scoreDefault       = 400
)

// categoryKeywords is the single keyword table consumed by both the
// priority scorer and the category filter. Keeping one table avoids the
// two lists drifting apart.
var categoryKeywords = map[Category][]string{
	CategoryBreaking: {"último momento", "ultimo momento", "breaking", "urgente"},
	CategoryMilei:    {"milei", "javier milei", "presidente"},
	CategoryElections: {
		"elecciones", "elecciones 2025", "elecciones2025", "octubre 2025",
		"campaña electoral", "candidatos", "ballotage", "primarias",
	},
	CategoryEconomy: {
		"economía", "economia", "economic", "inflacion", "inflación", "dolar",
		"dólar", "peso", "mercado", "banco central", "fmi",
	},
	CategoryTech: {
		"tecnología", "tecnologia", "tech", "ia", "inteligencia artificial",
		"apple", "google", "meta", "microsoft", "tesla", "openai",
	},
	CategorySports: {
		"deportes", "deporte", "futbol", "fútbol", "messi", "boca", "river",
		"racing", "independiente", "selección argentina", "afa", "copa américa",
		"mundial",
	},
	CategoryInternational: {
		"internacional", "mundo", "eeuu", "europa", "china", "brasil", "trump",
		"biden", "putin", "ucrania", "israel", "palestina",
	},
	CategoryCrypto: {
		"cripto", "crypto", "bitcoin", "ethereum", "blockchain", "binance",
		"coinbase", "nft",
	},
	CategoryPolitics: {
		"política", "politica", "congreso", "senado", "diputados", "gobernador",
		"intendente", "la politica online",
	},
}

// scoredCategories lists the categories that carry a priority score,
// in strictly descending priority order. Classification walks this list
// and the first match wins, so ordering here is a correctness invariant.
var scoredCategories = []struct {
	category     Category
	score        int
	matchTitle   bool
	matchCat     bool
	matchContent bool
}{
	{CategoryBreaking, scoreBreaking, true, true, true},
	{CategoryMilei, scoreMilei, true, false, true},
	{CategoryElections, scoreElections, true, false, true},
	{CategoryEconomy, scoreEconomy, true, true, true},
	{CategoryTech, scoreTech, true, true, true},
	{CategorySports, scoreSports, true, true, true},
	{CategoryInternational, scoreInternational, true, true, true},
	{CategoryCrypto, scoreCrypto, true, true, true},
}

// categoryFieldLabels maps substrings of the raw category field to labels,
// used when no keyword category matched. Checked in order.
var categoryFieldLabels = []struct {
	substrings []string
	label      string
}{
	{[]string{"cultura", "entretenimiento"}, "CULTURA"},
	{[]string{"salud"}, "SALUD"},
	{[]string{"espectáculos", "espectaculos"}, "ESPECTÁCULOS"},
	{[]string{"sociedad"}, "SOCIEDAD"},
	{[]string{"seguridad"}, "SEGURIDAD"},
}

// PriorityScore computes the editorial priority of an article.
// The is_breaking flag forces the breaking score regardless of text.
func PriorityScore(a RawArticle) int {
	if a.IsBreaking {
		return scoreBreaking
	}

	title := strings.ToLower(a.Title)
	category := strings.ToLower(a.Category)
	content := strings.ToLower(firstNonEmpty(a.Description, a.Content))

	for _, sc := range scoredCategories {
		if matchesAny(categoryKeywords[sc.category], title, category, content, sc.matchTitle, sc.matchCat, sc.matchContent) {
			return sc.score
		}
	}
	return scoreDefault
}

// CategoryLabel derives the display label for an article. The label is
// always a member of the fixed tag set or the raw category uppercased.
func CategoryLabel(a RawArticle) string {
	if a.IsBreaking {
		return string(CategoryBreaking)
	}

	title := strings.ToLower(a.Title)
	category := strings.ToLower(a.Category)
	content := strings.ToLower(firstNonEmpty(a.Description, a.Content))

	if matchesAny(categoryKeywords[CategoryMilei], title, category, content, true, false, true) {
		return string(CategoryMilei)
	}
	if matchesAny(categoryKeywords[CategoryElections], title, category, content, true, false, true) {
		return string(CategoryElections)
	}
	if containsAny(category, "política", "politica", "la politica online") {
		return string(CategoryPolitics)
	}

	for _, sc := range scoredCategories[3:] { // economy onwards
		if matchesAny(categoryKeywords[sc.category], title, category, content, true, true, true) {
			return string(sc.category)
		}
	}

	for _, fl := range categoryFieldLabels {
		if containsAny(category, fl.substrings...) {
			return fl.label
		}
	}

	return strings.ToUpper(a.Category)
}

// MatchesCategory reports whether a formatted feed article matches one of
// the selected category names, using the same keyword table as the scorer.
// Selection names are matched case-insensitively against the label first,
// then the category's keywords against label, title and snippet content.
func MatchesCategory(art FeedArticle, selected string) bool {
	sel := strings.ToLower(strings.TrimSpace(selected))
	if sel == "" {
		return false
	}

	label := strings.ToLower(art.Label)
	title := strings.ToLower(art.Title)
	content := strings.ToLower(art.Content)

	if strings.Contains(label, sel) {
		return true
	}

	keywords, ok := keywordsForSelection(sel)
	if !ok {
		return strings.Contains(title, sel) || strings.Contains(content, sel)
	}

	for _, kw := range keywords {
		if strings.Contains(label, kw) || strings.Contains(title, kw) || strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

// MatchesAnyCategory reports whether the article matches at least one of
// the selected categories. An empty selection matches everything.
func MatchesAnyCategory(art FeedArticle, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, sel := range selected {
		if MatchesCategory(art, sel) {
			return true
		}
	}
	return false
}

func keywordsForSelection(sel string) ([]string, bool) {
	// A politics selection also matches Milei coverage, so it cannot go
	// through the plain map lookup.
	if sel == "política" || sel == "politica" {
		keywords := append([]string(nil), categoryKeywords[CategoryPolitics]...)
		return append(keywords, categoryKeywords[CategoryMilei]...), true
	}
	for cat, keywords := range categoryKeywords {
		if strings.ToLower(string(cat)) == sel {
			return keywords, true
		}
	}
	return nil, false
}

func matchesAny(keywords []string, title, category, content string, inTitle, inCat, inContent bool) bool {
	for _, kw := range keywords {
		if inTitle && strings.Contains(title, kw) {
			return true
		}
		if inCat && strings.Contains(category, kw) {
			return true
		}
		if inContent && strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
