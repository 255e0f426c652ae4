package country

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customer-registry/internal/model"
)

// Lookup answers country questions customer rules depend on.
// Provider outages are indistinguishable from unknown countries for callers.
type Lookup interface {
	IsValidCountryCode(context.Context, int16) bool
	IsPhonePrefixForCountry(context.Context, int16, string) bool
	Demonym(context.Context, int16) (string, error)
}

type lookup struct {
	source Source
}

// NewLookup builds Lookup on top of provided source
func NewLookup(source Source) Lookup {
	return &lookup{source: source}
}

func (l *lookup) IsValidCountryCode(ctx context.Context, code int16) bool {
	_, ok := l.fetch(ctx, code)
	return ok
}

func (l *lookup) IsPhonePrefixForCountry(ctx context.Context, code int16, phone string) bool {
	c, ok := l.fetch(ctx, code)
	if !ok {
		return false
	}
	return PhoneMatchesCountry(c, phone)
}

func (l *lookup) Demonym(ctx context.Context, code int16) (string, error) {
	c, ok := l.fetch(ctx, code)
	if !ok || c.Demonym == "" {
		return "", ErrCountryNotFound
	}
	return c.Demonym, nil
}

func (l *lookup) fetch(ctx context.Context, code int16) (*model.Country, bool) {
	c, err := l.source.Fetch(ctx, code)
	if err != nil {
		if !errors.Is(err, ErrCountryNotFound) {
			logrus.WithField("country", code).Errorf("country lookup failed - %v", err)
		}
		return nil, false
	}
	return c, true
}

// PhoneMatchesCountry reports whether phone starts with one of country dialing prefixes.
// Both international (root + suffix, e.g. +1809...) and national (suffix only, e.g. 809...) forms are accepted.
func PhoneMatchesCountry(c *model.Country, phone string) bool {
	digits := phoneDigits(phone)
	if digits == "" || c.CallingRoot == "" {
		return false
	}

	root := phoneDigits(c.CallingRoot)
	if len(c.CallingSuffixes) == 0 {
		return strings.HasPrefix(digits, root)
	}

	for _, suffix := range c.CallingSuffixes {
		if suffix == "" {
			continue
		}

		if strings.HasPrefix(digits, root+suffix) || strings.HasPrefix(digits, suffix) {
			return true
		}
	}
	return false
}

func phoneDigits(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")
	if strings.HasPrefix(phone, "00") {
		phone = phone[2:]
	}

	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
