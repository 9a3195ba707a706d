// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wrgl/recon/pkg/dataset"
)

// GeneralizeColumn is the default column name generalizer: trim surrounding
// whitespace, lowercase, replace spaces and hyphens with underscores.
func GeneralizeColumn(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "-", "_")
}

// Lowercase lowercases string values. Non-string values pass through.
func Lowercase() Rule {
	return func(v dataset.Value) (dataset.Value, error) {
		if v.Kind() != dataset.KindString {
			return v, nil
		}
		return dataset.Str(strings.ToLower(v.Str())), nil
	}
}

// Uppercase uppercases string values. Non-string values pass through.
func Uppercase() Rule {
	return func(v dataset.Value) (dataset.Value, error) {
		if v.Kind() != dataset.KindString {
			return v, nil
		}
		return dataset.Str(strings.ToUpper(v.Str())), nil
	}
}

// TrimSpace trims surrounding whitespace from string values.
func TrimSpace() Rule {
	return func(v dataset.Value) (dataset.Value, error) {
		if v.Kind() != dataset.KindString {
			return v, nil
		}
		return dataset.Str(strings.TrimSpace(v.Str())), nil
	}
}

// CollapseWhitespace trims string values and replaces every run of
// whitespace with a single space.
func CollapseWhitespace() Rule {
	return func(v dataset.Value) (dataset.Value, error) {
		if v.Kind() != dataset.KindString {
			return v, nil
		}
		return dataset.Str(strings.Join(strings.Fields(v.Str()), " ")), nil
	}
}

var defaultDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// CanonicalDate parses string values with the given layouts (defaults cover
// ISO-8601, RFC 3339 and common US forms) and renders them as ISO-8601 date
// strings. Date values are rendered directly. A string that matches no
// layout is a caller error.
func CanonicalDate(layouts ...string) Rule {
	if len(layouts) == 0 {
		layouts = defaultDateLayouts
	}
	return func(v dataset.Value) (dataset.Value, error) {
		switch v.Kind() {
		case dataset.KindNull:
			return v, nil
		case dataset.KindDate:
			return dataset.Str(v.Time().Format("2006-01-02")), nil
		case dataset.KindString:
			s := strings.TrimSpace(v.Str())
			for _, layout := range layouts {
				if t, err := time.Parse(layout, s); err == nil {
					return dataset.Str(t.Format("2006-01-02")), nil
				}
			}
			return dataset.Null, fmt.Errorf("unrecognized date %q", s)
		}
		return dataset.Null, fmt.Errorf("cannot parse %s value as date", v.Kind())
	}
}

var numberReplacer = strings.NewReplacer(
	"$", "", "€", "", "£", "", "¥", "",
	",", "", " ", "", " ", "",
)

var numberPlaceholders = map[string]struct{}{
	"":     {},
	"n/a":  {},
	"na":   {},
	"null": {},
	"none": {},
	"-":    {},
}

// ParseNumber parses string values to floats after stripping currency
// symbols and thousands separators. A parenthesized amount is negative.
// Placeholder and unparsable tokens normalize to null rather than erroring.
// Numeric values pass through.
func ParseNumber() Rule {
	return func(v dataset.Value) (dataset.Value, error) {
		switch v.Kind() {
		case dataset.KindInt, dataset.KindFloat:
			return v, nil
		case dataset.KindString:
		default:
			return v, nil
		}
		s := strings.TrimSpace(v.Str())
		if _, ok := numberPlaceholders[strings.ToLower(s)]; ok {
			return dataset.Null, nil
		}
		neg := false
		if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
			neg = true
			s = s[1 : len(s)-1]
		}
		s = numberReplacer.Replace(s)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return dataset.Null, nil
		}
		if neg {
			f = -f
		}
		return dataset.Float(f), nil
	}
}
