package creator

import (
	"regexp"
	"time"

	"github.com/glisdarx/beee-media/internal/domain"
)

var (
	// URL run stops at any whitespace, including Unicode separators and BOM.
	bioLinkPattern = regexp.MustCompile(`https?://[^\s\v\p{Z}\x{feff}]+`)
	emailPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
)

const millisPerDay = 24 * 60 * 60 * 1000

// ExtractBioLink returns the first http(s) URL in text, or "".
func ExtractBioLink(text string) string {
	if text == "" {
		return ""
	}
	return bioLinkPattern.FindString(text)
}

// ExtractEmail returns the first email-like token in text, or "".
func ExtractEmail(text string) string {
	if text == "" {
		return ""
	}
	return emailPattern.FindString(text)
}

// DetectLanguage is a binary zh/en heuristic: CJK ideographs against ASCII
// letters. Empty text counts as Chinese.
func DetectLanguage(text string) string {
	if text == "" {
		return domain.LanguageChinese
	}

	var cjk, latin int
	for _, r := range text {
		switch {
		case r >= 0x4E00 && r <= 0x9FFF:
			cjk++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			latin++
		}
	}

	if cjk > latin {
		return domain.LanguageChinese
	}
	return domain.LanguageEnglish
}

// DaysSinceLastVideo returns whole days elapsed since createTime (unix seconds).
// A zero timestamp yields 0. Future timestamps give negative values.
func DaysSinceLastVideo(createTime int64, now time.Time) int64 {
	if createTime == 0 {
		return 0
	}
	return floorDiv(now.UnixMilli()-createTime*1000, millisPerDay)
}

// ExpectedPrice estimates a collaboration price from reach. Never below 100.
func ExpectedPrice(followers, likes int64) int64 {
	base := floorDiv(followers, 1000) * 10
	bonus := floorDiv(likes, 10000) * 5
	return max(100, base+bonus)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
