package keypoints

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewpulse/internal/models"
)

func bulletLines(t *testing.T, output string) []string {
	t.Helper()
	require.NotEmpty(t, output)
	lines := strings.Split(output, "\n")
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "- "), "line %q is not a bullet", line)
	}
	return lines
}

func TestExtractFallbackEmphaticIndonesian(t *testing.T) {
	output := ExtractFallback("Produk ini sangat bagus, saya puas dan tidak menyesal membeli.", models.LanguageIndonesian)

	lines := bulletLines(t, output)
	assert.Contains(t, lines, "- Pembeli sangat puas dan tidak menyesal membeli produk ini")
}

func TestExtractFallbackAspectBullets(t *testing.T) {
	output := ExtractFallback("Kualitas bagus, baterai awet, dan layar memuaskan.", models.LanguageIndonesian)

	lines := bulletLines(t, output)
	assert.Contains(t, lines, "- Kualitas produk ini bagus")
	assert.Contains(t, lines, "- Baterai produk ini bagus")
	assert.Contains(t, lines, "- Layar produk ini bagus")
}

// Aspect bullets are positive-only: a negative-dominant review mentioning
// aspects yields just the dissatisfaction bullet.
func TestExtractFallbackNoAspectBulletsOnNegative(t *testing.T) {
	output := ExtractFallback("Kualitas jelek, baterai rusak, saya kecewa.", models.LanguageIndonesian)

	lines := bulletLines(t, output)
	require.Len(t, lines, 1)
	assert.Equal(t, "- Pembeli kurang puas dengan produk ini", lines[0])
}

func TestExtractFallbackRecommendationIndependentOfTally(t *testing.T) {
	output := ExtractFallback("Saya kecewa dan menyesal, tapi teman saya bilang ini rekomendasi dia.", models.LanguageIndonesian)

	lines := bulletLines(t, output)
	assert.Contains(t, lines, "- Produk ini direkomendasikan untuk dibeli")
}

func TestExtractFallbackCapsAtFiveBullets(t *testing.T) {
	text := "Kualitas bagus, desain keren, performa cepat, harga murah, fitur lengkap, baterai awet, layar bagus, prosesor mantap, rekomendasi!"
	output := ExtractFallback(text, models.LanguageIndonesian)

	lines := bulletLines(t, output)
	assert.Len(t, lines, 5)
}

func TestExtractFallbackDeterministic(t *testing.T) {
	text := "Battery is great, quality is good, I recommend it."
	first := ExtractFallback(text, models.LanguageEnglish)
	second := ExtractFallback(text, models.LanguageEnglish)
	assert.Equal(t, first, second)
}

func TestExtractFallbackUniqueBullets(t *testing.T) {
	texts := []string{
		"bagus bagus bagus, puas puas, rekomendasi rekomendasi",
		"quality quality good good recommend recommend",
		"jelek jelek kecewa kecewa",
	}
	langs := []models.Language{models.LanguageIndonesian, models.LanguageEnglish, models.LanguageIndonesian}

	for i, text := range texts {
		lines := bulletLines(t, ExtractFallback(text, langs[i]))
		seen := make(map[string]bool)
		for _, line := range lines {
			assert.False(t, seen[line], "duplicate bullet %q", line)
			seen[line] = true
		}
	}
}

func TestExtractFallbackFirstSentenceWhenNoKeywords(t *testing.T) {
	output := ExtractFallback("Barang sampai kemarin sore. Kurirnya ramah sekali.", models.LanguageIndonesian)
	assert.Equal(t, "- Barang sampai kemarin sore", output)
}

func TestExtractFallbackGenericBulletWhenNothingMatches(t *testing.T) {
	assert.Equal(t, "- Produk ini layak dipertimbangkan", ExtractFallback("", models.LanguageIndonesian))
	assert.Equal(t, "- This product is worth considering", ExtractFallback("   ", models.LanguageEnglish))
}

func TestExtractFallbackNeverEmpty(t *testing.T) {
	inputs := []string{
		"x",
		"?????",
		"bagus",
		"terrible product",
		strings.Repeat("lorem ipsum ", 200),
	}
	for _, in := range inputs {
		assert.NotEmpty(t, ExtractFallback(in, models.LanguageIndonesian))
		assert.NotEmpty(t, ExtractFallback(in, models.LanguageEnglish))
	}
}
