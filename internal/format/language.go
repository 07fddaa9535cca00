// Package format renders ride calculations for people: currency amounts,
// distances and the shareable summary message.
package format

import "golang.org/x/text/language"

// Language selects number formatting and message labels.
type Language string

const (
	PortugueseBR Language = "pt-BR"
	EnglishUS    Language = "en-US"

	DefaultLanguage = PortugueseBR
)

var (
	supported = []Language{PortugueseBR, EnglishUS}
	matcher   = language.NewMatcher([]language.Tag{
		language.BrazilianPortuguese,
		language.AmericanEnglish,
	})
)

// ParseLanguage maps a BCP 47 tag (e.g. "en", "pt-BR", "en-GB") to the
// closest supported Language, or DefaultLanguage when nothing matches.
func ParseLanguage(s string) Language {
	if s == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLanguage
	}
	_, i, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLanguage
	}
	return supported[i]
}

// Tag returns the CLDR tag used for number formatting.
func (l Language) Tag() language.Tag {
	if l == EnglishUS {
		return language.AmericanEnglish
	}
	return language.BrazilianPortuguese
}

// Labels are the translated fixed strings of the share message.
type Labels struct {
	Title       string
	Outbound    string
	Return      string
	TotalValue  string
	Distance    string
	HowMuchEach string
	Settlement  string
	MustPay     string
	To          string
	Tagline     string
}

var labels = map[Language]Labels{
	PortugueseBR: {
		Title:       "🚗 *Divisão da Corrida*",
		Outbound:    "📍 *Ida*",
		Return:      "📍 *Volta*",
		TotalValue:  "💰 Valor",
		Distance:    "📍 Distância",
		HowMuchEach: "*Quanto cada um deveria pagar:*",
		Settlement:  "💸 *Acerto Final:*",
		MustPay:     "deve pagar",
		To:          "para",
		Tagline:     "_Calculado com RideSplit_ ✨",
	},
	EnglishUS: {
		Title:       "🚗 *Ride Split*",
		Outbound:    "📍 *Outbound*",
		Return:      "📍 *Return*",
		TotalValue:  "💰 Total",
		Distance:    "📍 Distance",
		HowMuchEach: "*How much each should pay:*",
		Settlement:  "💸 *Final Settlement:*",
		MustPay:     "must pay",
		To:          "to",
		Tagline:     "_Calculated with RideSplit_ ✨",
	},
}

// LabelsFor returns the labels of l, falling back to DefaultLanguage.
func LabelsFor(l Language) Labels {
	if lb, ok := labels[l]; ok {
		return lb
	}
	return labels[DefaultLanguage]
}
