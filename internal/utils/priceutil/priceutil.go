// Package priceutil renders prices in the German display form used on
// classified-ad listings.
package priceutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OnRequest is the marker used when no concrete price is known.
const OnRequest = "Preis auf Anfrage"

// Format renders a numeric price as "1.234,56 €". A nil price yields the
// OnRequest marker. Values that cannot be read as a number (including already
// formatted strings and the marker itself) pass through unchanged, which makes
// Format idempotent on its own output.
func Format(price any) string {
	if price == nil {
		return OnRequest
	}

	var num float64
	switch p := price.(type) {
	case float64:
		num = p
	case float32:
		num = float64(p)
	case int:
		num = float64(p)
	case int64:
		num = float64(p)
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return p.String()
		}
		num = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return p
		}
		num = f
	default:
		return fmt.Sprintf("%v", price)
	}

	return group(num) + " €"
}

// group formats with two decimals, a comma decimal separator and dots as
// thousands separators.
func group(num float64) string {
	s := strconv.FormatFloat(num, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, decPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	return sign + b.String() + "," + decPart
}
