package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Price is a listing price normalized to an amount and a currency code.
// The human readable form ("KSh 120,000", "TSh 850M") is derived by String.
type Price struct {
	Amount   float64
	Currency string
	Period   string
}

const million = 1_000_000

// ParsePrice reads the display forms used by listing pages, e.g.
// "KSh 120,000", "TSh 850M", "RWF 1.2M", "KSh 150,000/Month" or "100".
func ParsePrice(s string) (Price, error) {
	var p Price
	raw := strings.TrimSpace(s)
	if raw == "" {
		return p, fmt.Errorf("%w: empty price", ErrValidation)
	}

	if i := strings.LastIndexByte(raw, '/'); i >= 0 {
		p.Period = strings.TrimSpace(raw[i+1:])
		raw = strings.TrimSpace(raw[:i])
	}

	start := strings.IndexFunc(raw, unicode.IsDigit)
	if start < 0 {
		return Price{}, fmt.Errorf("%w: no amount in price %q", ErrValidation, s)
	}
	p.Currency = strings.TrimSpace(raw[:start])

	num := strings.ReplaceAll(strings.TrimSpace(raw[start:]), ",", "")
	multiplier := 1.0
	if n := len(num); n > 0 {
		switch num[n-1] {
		case 'M', 'm':
			multiplier = million
			num = num[:n-1]
		case 'K', 'k':
			multiplier = 1_000
			num = num[:n-1]
		case 'B', 'b':
			multiplier = 1_000_000_000
			num = num[:n-1]
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Price{}, fmt.Errorf("%w: bad amount in price %q", ErrValidation, s)
	}
	p.Amount = v * multiplier
	return p, nil
}

// MustParsePrice is ParsePrice for literals known to be valid.
func MustParsePrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) String() string {
	var b strings.Builder
	if p.Currency != "" {
		b.WriteString(p.Currency)
		b.WriteByte(' ')
	}
	switch {
	case p.Amount >= million:
		b.WriteString(strconv.FormatFloat(p.Amount/million, 'f', -1, 64))
		b.WriteByte('M')
	case p.Amount == math.Trunc(p.Amount):
		b.WriteString(message.NewPrinter(language.English).Sprintf("%d", int64(p.Amount)))
	default:
		b.WriteString(message.NewPrinter(language.English).Sprintf("%.2f", p.Amount))
	}
	if p.Period != "" {
		b.WriteByte('/')
		b.WriteString(p.Period)
	}
	return b.String()
}

// Magnitude strips every non-digit from the display form and reads the rest
// as one integer, so "TSh 850M" is 850 and "RWF 1.2M" is 12. Currencies and
// unit suffixes are ignored. A price without digits has magnitude 0.
func (p Price) Magnitude() int64 {
	var digits strings.Builder
	for _, r := range p.String() {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

type priceJSON struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
	Period   string  `json:"period,omitempty"`
	Display  string  `json:"display"`
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(priceJSON{
		Amount:   p.Amount,
		Currency: p.Currency,
		Period:   p.Period,
		Display:  p.String(),
	})
}

// UnmarshalJSON accepts a bare number, a display string or the object form
// written by MarshalJSON.
func (p *Price) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case strings.HasPrefix(trimmed, "{"):
		var obj priceJSON
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*p = Price{Amount: obj.Amount, Currency: obj.Currency, Period: obj.Period}
		if obj.Amount == 0 && obj.Display != "" {
			parsed, err := ParsePrice(obj.Display)
			if err != nil {
				return err
			}
			*p = parsed
		}
		return nil
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%w: price must be a number, string or object", ErrValidation)
		}
		*p = Price{Amount: v}
		return nil
	}
}

// Area is a floor or plot size, e.g. 180 Sq Meters.
type Area struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// ParseArea reads "180 Sq Meters" or a bare "100". The unit is whatever
// follows the number.
func ParseArea(s string) (Area, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Area{}, nil
	}
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != ','
	})
	num := s
	unit := ""
	if end >= 0 {
		num = s[:end]
		unit = strings.TrimSpace(s[end:])
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil {
		return Area{}, fmt.Errorf("%w: bad area %q", ErrValidation, s)
	}
	return Area{Value: v, Unit: unit}, nil
}

func (a Area) String() string {
	v := strconv.FormatFloat(a.Value, 'f', -1, 64)
	if a.Unit == "" {
		return v
	}
	return v + " " + a.Unit
}
