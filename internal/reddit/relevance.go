package reddit

import "strings"

// Keyword groups and their relevance weights. Company mentions carry
// the most signal, stock and tariff terms less, bare country mentions
// the least.
var (
	companyKeywords = []string{
		"jfc", "urc", "cnpf", "gsmi", "monde",
		"jollibee", "universal robina", "century pacific",
		"ginebra san miguel", "monde nissin",
	}
	stockKeywords = []string{
		"stock", "shares", "pse", "psei", "price", "trading",
		"market cap", "investor", "earnings", "revenue",
	}
	tariffKeywords = []string{
		"tariff", "trump tariff", "20% tariff", "17% tariff",
		"trade war", "export", "import", "duty", "reciprocal",
	}
	philippinesKeywords = []string{
		"philippines", "philippine", "filipino", "manila",
	}
)

// Per-match weights.
const (
	companyWeight     = 3
	stockWeight       = 2
	tariffWeight      = 2
	philippinesWeight = 1
)

// MinRelevance is the score below which a search hit is discarded.
const MinRelevance = 3

// RelevanceScore sums keyword-group weights over the text. Each
// keyword counts once no matter how often it appears.
func RelevanceScore(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range companyKeywords {
		if strings.Contains(lower, kw) {
			score += companyWeight
		}
	}
	for _, kw := range stockKeywords {
		if strings.Contains(lower, kw) {
			score += stockWeight
		}
	}
	for _, kw := range tariffKeywords {
		if strings.Contains(lower, kw) {
			score += tariffWeight
		}
	}
	for _, kw := range philippinesKeywords {
		if strings.Contains(lower, kw) {
			score += philippinesWeight
		}
	}
	return score
}

// RelevantSearchHit decides whether a search result belongs in the
// corpus: it must pair tariff context with either Philippines context
// or a company mention, and clear the minimum relevance score.
func RelevantSearchHit(text string) bool {
	lower := strings.ToLower(text)

	hasTariff := containsAny(lower, tariffKeywords)
	if !hasTariff {
		return false
	}
	if !containsAny(lower, philippinesKeywords) && !containsAny(lower, companyKeywords) {
		return false
	}
	return RelevanceScore(text) >= MinRelevance
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
