package keypoints

import (
	"fmt"

	"github.com/spacesedan/reviewpulse/internal/models"
)

// Prompt templates for the generative extractor. The review text is
// embedded verbatim.
const (
	promptEnglish = `Analyze this product review and extract 3-5 key points in bullet points.
Be concise and focus on the most important aspects mentioned.

Review: %s

Format your response as bullet points (use - for bullets).`

	promptIndonesian = `Analisis ulasan produk ini dan ekstrak 3-5 poin penting dalam bentuk poin-poin.
Buat ringkas dan fokus pada aspek terpenting yang disebutkan.

Ulasan: %s

Format jawaban sebagai poin-poin (gunakan - untuk setiap poin).`
)

func buildPrompt(text string, lang models.Language) string {
	if lang == models.LanguageEnglish {
		return fmt.Sprintf(promptEnglish, text)
	}
	return fmt.Sprintf(promptIndonesian, text)
}
