package email

import (
	"strings"

	"golang.org/x/text/language"
)

// Locales the acknowledgment email is written in. Hebrew is the default.
var supportedLocales = []language.Tag{
	language.Hebrew,
	language.English,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// MatchLocale picks the acknowledgment locale from an Accept-Language header.
func MatchLocale(acceptLanguage string) language.Tag {
	if strings.TrimSpace(acceptLanguage) == "" {
		return language.Hebrew
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.Hebrew
	}

	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return language.Hebrew
	}
	return supportedLocales[index]
}

// LocaleCode returns the two-letter code stored in submission metadata.
func LocaleCode(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// ParseLocale is the inverse of LocaleCode; unknown codes map to Hebrew.
func ParseLocale(code string) language.Tag {
	if strings.EqualFold(code, "en") {
		return language.English
	}
	return language.Hebrew
}
