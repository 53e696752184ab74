package types

import "strings"

// Localized holds a translatable string. Only English is stored today; the
// json shape ({"en": "..."}) leaves room for more languages.
type Localized struct {
	EN string `gorm:"column:en" json:"en"`
}

func NewLocalized(en string) Localized {
	return Localized{EN: en}
}

func (l Localized) Trimmed() Localized {
	return Localized{EN: strings.TrimSpace(l.EN)}
}

func (l Localized) IsZero() bool {
	return strings.TrimSpace(l.EN) == ""
}
