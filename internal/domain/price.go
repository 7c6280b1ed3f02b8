package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxWholeDigits bounds the integer part so cents always fit an int64; storage caps prices far lower.
const maxWholeDigits = 11

// priceText is plain decimal notation: no exponent, hex or leading dot.
var priceText = regexp.MustCompile(`^(-?)(\d+)(?:\.(\d+))?$`)

// Price is a currency-agnostic amount held in hundredths.
type Price int64

// ParsePrice parses a decimal string such as "20", "20.5" or "20.00".
// The text is converted exactly; a third decimal of 5 or more rounds away from zero,
// as DECIMAL(10,2) does.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	m := priceText.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("price %q is not a number", s)
	}
	whole := strings.TrimLeft(m[2], "0")
	if len(whole) > maxWholeDigits {
		return 0, fmt.Errorf("price %q is out of range", s)
	}
	var units int64
	if whole != "" {
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("price %q is out of range", s)
		}
		units = v
	}
	frac := m[3] + "000"
	cents := units*100 + int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	if frac[2] >= '5' {
		cents++
	}
	if m[1] == "-" {
		cents = -cents
	}
	return Price(cents), nil
}

func (p Price) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON writes the price as a JSON number with two decimals.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (p *Price) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		*p = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	parsed, err := ParsePrice(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Scan implements sql.Scanner for DECIMAL columns.
func (p *Price) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		parsed, err := ParsePrice(string(v))
		if err != nil {
			return err
		}
		*p = parsed
	case string:
		parsed, err := ParsePrice(v)
		if err != nil {
			return err
		}
		*p = parsed
	case float64:
		*p = Price(math.Round(v * 100))
	case int64:
		*p = Price(v * 100)
	default:
		return fmt.Errorf("cannot scan %T into Price", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}
