// Package validate holds the pure field validators the resolver applies after
// a pattern match. Each validator takes a raw value and returns the normalized
// form or an invalid-parameter error naming the field and the violated
// constraint. Validators never perform I/O.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/openlegis/legis-gateway/internal/domain"
)

// Congress numbers below 93 predate the upstream dataset; numbers above 118
// are not yet published by it.
const (
	MinCongress = 93
	MaxCongress = 118
)

// MaxDistrict is the canonical upper bound for district numbers. The observed
// system validated 53 in most call sites and 60 in one; 53 is the largest
// delegation any state has seated, so that bound is used everywhere.
const MaxDistrict = 53

// stateCodes is the set of 56 recognized two-letter codes: the 50 states,
// DC, and the five territories.
var stateCodes = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {},
	"DE": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {},
	"IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {},
	"MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {},
	"NH": {}, "NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {},
	"OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {}, "SD": {}, "TN": {},
	"TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {},
	"WY": {}, "DC": {}, "AS": {}, "GU": {}, "MP": {}, "PR": {}, "VI": {},
}

var billTypes = map[string]struct{}{
	"hr": {}, "s": {}, "hjres": {}, "sjres": {},
	"hconres": {}, "sconres": {}, "hres": {}, "sres": {},
}

// amendmentTypes maps accepted spellings onto the two upstream codes.
var amendmentTypes = map[string]string{
	"hamdt":            "hamdt",
	"samdt":            "samdt",
	"house-amendment":  "hamdt",
	"senate-amendment": "samdt",
}

// lawTypes maps accepted spellings onto the upstream path codes.
var lawTypes = map[string]string{
	"public":  "pub",
	"pub":     "pub",
	"private": "priv",
	"priv":    "priv",
}

// communicationTypes lists the valid communication type codes per chamber.
var communicationTypes = map[string]map[string]struct{}{
	"house":  {"ec": {}, "ml": {}, "pm": {}, "pt": {}},
	"senate": {"ec": {}, "pm": {}, "pom": {}},
}

// Congress checks a congress number against the supported range. Both bounds
// are inclusive.
func Congress(n int) (int, error) {
	if n < MinCongress || n > MaxCongress {
		return 0, domain.ErrInvalidParameter("congress",
			fmt.Sprintf("%d is outside the supported range of %d and %d", n, MinCongress, MaxCongress))
	}
	return n, nil
}

// StateCode checks a two-letter state, territory, or DC code,
// case-insensitively, and normalizes it to uppercase.
func StateCode(raw string) (string, error) {
	code := strings.ToUpper(raw)
	if _, ok := stateCodes[code]; !ok {
		return "", domain.ErrInvalidParameter("state code",
			fmt.Sprintf("%q is not a recognized two-letter state or territory code", raw))
	}
	return code, nil
}

// District checks a congressional district number. Zero denotes an at-large
// district.
func District(n int) (int, error) {
	if n < 0 || n > MaxDistrict {
		return 0, domain.ErrInvalidParameter("district",
			fmt.Sprintf("%d is outside the range 0 to %d", n, MaxDistrict))
	}
	return n, nil
}

// Bioguide checks a bioguide-style person identifier: one letter followed by
// six digits. Input is case-insensitive; the result is uppercased.
func Bioguide(raw string) (string, error) {
	id := strings.ToUpper(raw)
	if len(id) != 7 || id[0] < 'A' || id[0] > 'Z' {
		return "", bioguideError(raw)
	}
	for _, c := range id[1:] {
		if c < '0' || c > '9' {
			return "", bioguideError(raw)
		}
	}
	return id, nil
}

func bioguideError(raw string) error {
	return domain.ErrInvalidParameter("bioguide id",
		fmt.Sprintf("%q must be one letter followed by six digits", raw))
}

// Chamber checks a chamber name, normalized to lowercase.
func Chamber(raw string) (string, error) {
	chamber := strings.ToLower(raw)
	if chamber != "house" && chamber != "senate" {
		return "", domain.ErrInvalidParameter("chamber",
			fmt.Sprintf("%q must be house or senate", raw))
	}
	return chamber, nil
}

// BillType checks one of the eight bill type codes, normalized to lowercase.
func BillType(raw string) (string, error) {
	bt := strings.ToLower(raw)
	if _, ok := billTypes[bt]; !ok {
		return "", domain.ErrInvalidParameter("bill type",
			fmt.Sprintf("%q must be one of hr, s, hjres, sjres, hconres, sconres, hres, sres", raw))
	}
	return bt, nil
}

// AmendmentType checks an amendment type code or its longhand alias and
// normalizes it to the upstream code.
func AmendmentType(raw string) (string, error) {
	at, ok := amendmentTypes[strings.ToLower(raw)]
	if !ok {
		return "", domain.ErrInvalidParameter("amendment type",
			fmt.Sprintf("%q must be hamdt or samdt", raw))
	}
	return at, nil
}

// LawType checks a law type or its abbreviation and normalizes it to the
// upstream path code (pub or priv).
func LawType(raw string) (string, error) {
	lt, ok := lawTypes[strings.ToLower(raw)]
	if !ok {
		return "", domain.ErrInvalidParameter("law type",
			fmt.Sprintf("%q must be public or private", raw))
	}
	return lt, nil
}

// CommunicationType checks a communication type code against the set valid
// for the given chamber. The chamber must already be validated.
func CommunicationType(chamber, raw string) (string, error) {
	ct := strings.ToLower(raw)
	valid, ok := communicationTypes[chamber]
	if !ok {
		return "", domain.ErrInvalidParameter("chamber",
			fmt.Sprintf("%q must be house or senate", chamber))
	}
	if _, ok := valid[ct]; !ok {
		return "", domain.ErrInvalidParameter("communication type",
			fmt.Sprintf("%q is not a valid %s communication type", raw, chamber))
	}
	return ct, nil
}

// CommitteeCode checks a committee system code: two to four letters followed
// by two digits, case-insensitive, normalized to lowercase.
func CommitteeCode(raw string) (string, error) {
	code := strings.ToLower(raw)
	n := len(code)
	if n < 4 || n > 6 {
		return "", committeeCodeError(raw)
	}
	for _, c := range code[:n-2] {
		if c < 'a' || c > 'z' {
			return "", committeeCodeError(raw)
		}
	}
	for _, c := range code[n-2:] {
		if c < '0' || c > '9' {
			return "", committeeCodeError(raw)
		}
	}
	return code, nil
}

func committeeCodeError(raw string) error {
	return domain.ErrInvalidParameter("committee code",
		fmt.Sprintf("%q must be two to four letters followed by two digits", raw))
}

// Date checks a year/month/day triple for range and calendar validity.
// Impossible dates such as February 30 are rejected by round-tripping the
// triple through calendar construction.
func Date(year, month, day int) (time.Time, error) {
	if year < 1900 || year > 2100 {
		return time.Time{}, domain.ErrInvalidParameter("year",
			fmt.Sprintf("%d is outside the range 1900 to 2100", year))
	}
	if month < 1 || month > 12 {
		return time.Time{}, domain.ErrInvalidParameter("month",
			fmt.Sprintf("%d is outside the range 1 to 12", month))
	}
	if day < 1 || day > 31 {
		return time.Time{}, domain.ErrInvalidParameter("day",
			fmt.Sprintf("%d is outside the range 1 to 31", day))
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, domain.ErrInvalidParameter("date",
			fmt.Sprintf("%04d-%02d-%02d is not a real calendar date", year, month, day))
	}
	return t, nil
}

// PositiveNumber checks that an ordinal, vote, or requirement number is a
// positive integer. The field name is used in the error message.
func PositiveNumber(field string, n int) (int, error) {
	if n <= 0 {
		return 0, domain.ErrInvalidParameter(field,
			fmt.Sprintf("%d must be a positive integer", n))
	}
	return n, nil
}
