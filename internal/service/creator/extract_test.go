package creator

import (
	"testing"
	"time"

	"github.com/glisdarx/beee-media/internal/domain"
)

func TestExtractBioLink(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no url", "just a bio", ""},
		{"first of two", "shop https://a.example/x and http://b.example", "https://a.example/x"},
		{"stops at newline", "link:https://linktr.ee/me\nmore", "https://linktr.ee/me"},
		{"stops at ideographic space", "官网 https://shop.cn/a\u3000联系", "https://shop.cn/a"},
		{"stops at no-break space", "https://x.io/p\u00a0tail", "https://x.io/p"},
		{"keeps trailing punctuation", "see https://x.io/p).", "https://x.io/p)."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractBioLink(tc.in); got != tc.want {
				t.Fatalf("ExtractBioLink(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"合作请联系 biz.team+tt@brand-mail.com 谢谢", "biz.team+tt@brand-mail.com"},
		{"first a@b.io then c@d.io", "a@b.io"},
		{"not an email @handle", ""},
		{"short tld x@y.z", ""},
	}

	for _, tc := range cases {
		if got := ExtractEmail(tc.in); got != tc.want {
			t.Fatalf("ExtractEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", domain.LanguageChinese},
		{"美妆博主", domain.LanguageChinese},
		{"beauty creator", domain.LanguageEnglish},
		{"ab美", domain.LanguageEnglish},
		{"a美妆", domain.LanguageChinese},
		{"ab美妆", domain.LanguageEnglish},
		{"12345 !!", domain.LanguageEnglish},
		{"ビューティー", domain.LanguageEnglish},
	}

	for _, tc := range cases {
		if got := DetectLanguage(tc.in); got != tc.want {
			t.Fatalf("DetectLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDaysSinceLastVideo(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := DaysSinceLastVideo(0, now); got != 0 {
		t.Fatalf("expected 0 for missing timestamp, got %d", got)
	}

	threeDaysAgo := now.Add(-72*time.Hour - time.Minute).Unix()
	if got := DaysSinceLastVideo(threeDaysAgo, now); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}

	almostOneDay := now.Add(-23 * time.Hour).Unix()
	if got := DaysSinceLastVideo(almostOneDay, now); got != 0 {
		t.Fatalf("expected 0 days, got %d", got)
	}

	// Future timestamps floor toward negative infinity.
	inOneHour := now.Add(time.Hour).Unix()
	if got := DaysSinceLastVideo(inOneHour, now); got != -1 {
		t.Fatalf("expected -1 for future timestamp, got %d", got)
	}
}

func TestExpectedPrice(t *testing.T) {
	cases := []struct {
		followers, likes int64
		want             int64
	}{
		{0, 0, 100},
		{50_000, 200_000, 600},
		{9_999, 99_999, 135},
		{12_345, 0, 120},
		{1_000_000, 10_000_000, 15_000},
	}

	for _, tc := range cases {
		if got := ExpectedPrice(tc.followers, tc.likes); got != tc.want {
			t.Fatalf("ExpectedPrice(%d, %d) = %d, want %d", tc.followers, tc.likes, got, tc.want)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	if got := floorDiv(-1, 1000); got != -1 {
		t.Fatalf("floorDiv(-1, 1000) = %d", got)
	}
	if got := floorDiv(-1000, 1000); got != -1 {
		t.Fatalf("floorDiv(-1000, 1000) = %d", got)
	}
	if got := floorDiv(1999, 1000); got != 1 {
		t.Fatalf("floorDiv(1999, 1000) = %d", got)
	}
}
