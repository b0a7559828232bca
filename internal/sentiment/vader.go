package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var advisoryAnalyzer = govader.NewSentimentIntensityAnalyzer()

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func removeLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1") // keep only the link text
	return urlPattern.ReplaceAllString(input, "")
}

// plainText renders any markdown in the review to text so link syntax and
// emphasis markers do not skew the lexicon scores.
func plainText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	return removeLinks(strings.Join(strings.Fields(string(output)), " "))
}

// AdvisoryScore computes a local VADER compound score for English reviews.
// It is logged next to degraded classifications so operators can judge the
// quality loss; it never feeds back into the returned result.
func AdvisoryScore(text string) (float64, string) {
	scores := advisoryAnalyzer.PolarityScores(plainText(text))
	compound := scores.Compound

	label := "neutral"
	if compound >= 0.20 {
		label = "positive"
	} else if compound <= -0.20 {
		label = "negative"
	}

	return compound, label
}
