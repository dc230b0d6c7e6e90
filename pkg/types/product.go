package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ProductId accepts both string and numeric ids in the dataset and keeps
// the decimal text.
type ProductId string

func (id *ProductId) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductId(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProductId(n.String())
	return nil
}

type Titles struct {
	Title      string `json:"title"`
	CoSubtitle string `json:"coSubtitle"`
}

type DecimalValue struct {
	DecimalValue string `json:"decimalValue"`
}

type Pricing struct {
	FinalPrice DecimalValue `json:"finalPrice"`
}

type ProductRecord struct {
	Id           ProductId `json:"id"`
	ProductBrand string    `json:"productBrand"`
	IdealFor     string    `json:"idealFor,omitempty"`
	Titles       Titles    `json:"titles"`
	Pricing      Pricing   `json:"pricing"`
}

// Price returns the parsed final price, see ParsePrice.
func (p *ProductRecord) Price() (int64, bool) {
	return ParsePrice(p.Pricing.FinalPrice.DecimalValue)
}

// Size returns the size label encoded in the subtitle, see SizeLabel.
func (p *ProductRecord) Size() (string, bool) {
	return SizeLabel(p.Titles.CoSubtitle)
}

// ParsePrice reads the leading integer of a decimal price string:
// optional leading whitespace, an optional sign, then digits up to the first
// non-digit ("1299.50" is 1299). Values outside int64 saturate.
// A string without a leading digit returns (0, false).
func ParsePrice(value string) (int64, bool) {
	s := strings.TrimLeft(value, " \t\n\r\v\f")
	negative := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}
	var n int64
	digits := 0
	for ; digits < len(s); digits++ {
		c := s[digits]
		if c < '0' || c > '9' {
			break
		}
		d := int64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			n = math.MaxInt64
			continue
		}
		n = n*10 + d
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		return -n, true
	}
	return n, true
}

// SizeLabel returns the second space separated token of a subtitle like
// "Sneaker M". The subtitle is split on single spaces, so "Sneaker  M" has an
// empty second token.
func SizeLabel(coSubtitle string) (string, bool) {
	parts := strings.SplitN(coSubtitle, " ", 3)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

func (p *ProductRecord) PriceString() string {
	if v, ok := p.Price(); ok {
		return strconv.FormatInt(v, 10)
	}
	return p.Pricing.FinalPrice.DecimalValue
}
