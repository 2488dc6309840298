package domain

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category описывает категорию товаров
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Icon        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewCategory(name, description, icon string) *Category {
	return &Category{
		Name:        name,
		Slug:        Slugify(name),
		Description: description,
		Icon:        icon,
	}
}

// Slugify приводит имя к нижнему регистру ASCII и заменяет каждую серию
// прочих символов одним дефисом. Диакритика снимается ("Café" -> "cafe"),
// дефисы по краям отбрасываются.
func Slugify(name string) string {
	folded, _, err := transform.String(foldDiacritics(), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))

	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// foldDiacritics раскладывает символы и выбрасывает комбинируемые знаки.
// transform.Transformer хранит состояние, поэтому на каждый вызов новый.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
