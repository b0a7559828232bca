package keypoints

import (
	"strings"

	"github.com/spacesedan/reviewpulse/internal/models"
)

// vocabulary drives the rule-based extractor for one language. The
// polarity lists are deliberately larger than the classifier override
// lists: extraction needs product-aspect nouns, not just polarity words.
type vocabulary struct {
	positive       []string
	negative       []string
	aspects        []aspect
	recommendation []string
	emphatic       string

	aspectTemplate        string
	emphaticBullet        string
	satisfactionBullet    string
	dissatisfactionBullet string
	recommendationBullet  string
	genericBullet         string
}

type aspect struct {
	keyword string // matched against the lowercased review
	display string // name used in the emitted bullet
}

var vocabularies = map[models.Language]vocabulary{
	models.LanguageIndonesian: {
		positive: []string{
			"bagus", "puas", "suka", "mantap", "bagus sekali", "tidak menyesal",
			"rekomendasi", "keren", "awet", "murah", "cepat", "berkualitas",
			"memuaskan", "terbaik", "nyaman",
		},
		negative: []string{
			"buruk", "kecewa", "menyesal", "tidak puas", "jelek", "rusak",
			"lambat", "mahal", "lemot", "mengecewakan",
		},
		aspects: []aspect{
			{keyword: "kualitas", display: "Kualitas"},
			{keyword: "desain", display: "Desain"},
			{keyword: "performa", display: "Performa"},
			{keyword: "harga", display: "Harga"},
			{keyword: "fitur", display: "Fitur"},
			{keyword: "baterai", display: "Baterai"},
			{keyword: "layar", display: "Layar"},
			{keyword: "prosesor", display: "Prosesor"},
		},
		recommendation:        []string{"rekomendasi", "merekomendasikan", "disarankan"},
		emphatic:              "tidak menyesal",
		aspectTemplate:        "%s produk ini bagus",
		emphaticBullet:        "Pembeli sangat puas dan tidak menyesal membeli produk ini",
		satisfactionBullet:    "Pembeli puas dengan produk ini",
		dissatisfactionBullet: "Pembeli kurang puas dengan produk ini",
		recommendationBullet:  "Produk ini direkomendasikan untuk dibeli",
		genericBullet:         "Produk ini layak dipertimbangkan",
	},
	models.LanguageEnglish: {
		positive: []string{
			"good", "great", "satisfied", "happy", "recommend", "excellent",
			"love", "amazing", "awesome", "durable", "fast", "comfortable",
			"worth", "best", "don't regret",
		},
		negative: []string{
			"bad", "poor", "disappointed", "regret", "not satisfied", "broken",
			"slow", "expensive", "terrible", "awful", "waste",
		},
		aspects: []aspect{
			{keyword: "quality", display: "Quality"},
			{keyword: "design", display: "Design"},
			{keyword: "performance", display: "Performance"},
			{keyword: "price", display: "Price"},
			{keyword: "features", display: "Features"},
			{keyword: "battery", display: "Battery"},
			{keyword: "display", display: "Display"},
			{keyword: "processor", display: "Processor"},
		},
		recommendation:        []string{"recommend", "recommended", "recommendation"},
		emphatic:              "don't regret",
		aspectTemplate:        "%s is of good quality",
		emphaticBullet:        "Buyer is very satisfied and doesn't regret the purchase",
		satisfactionBullet:    "Buyer is satisfied with this product",
		dissatisfactionBullet: "Buyer is not satisfied with this product",
		recommendationBullet:  "This product is recommended",
		genericBullet:         "This product is worth considering",
	},
}

func vocabularyFor(lang models.Language) vocabulary {
	if voc, ok := vocabularies[lang]; ok {
		return voc
	}
	return vocabularies[models.LanguageIndonesian]
}

func countHits(lowered string, words []string) int {
	hits := 0
	for _, w := range words {
		if strings.Contains(lowered, w) {
			hits++
		}
	}
	return hits
}

func containsAny(lowered string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
