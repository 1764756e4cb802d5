package resolve

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/openlegis/legis-gateway/internal/domain"
)

// Scheme is the identifier scheme the resolver accepts.
const Scheme = "congress-gov"

// errNoMatch signals a structural mismatch: the segments do not fit the
// pattern under trial. It never escapes the resolver; an identifier no
// pattern matches becomes an invalid-identifier error.
var errNoMatch = errors.New("no pattern matched")

// Descriptor is the parsed but not yet validated form of an identifier.
// It is immutable once parsed and discarded after dispatch.
type Descriptor struct {
	Collection string
	Segments   []string
	Query      url.Values
}

// Resolution is the outcome of a successful dispatch: the typed request plus
// the caller's passthrough query parameters.
type Resolution struct {
	Identifier string
	Request    Request
	Query      url.Values
}

// resolveFunc tries a collection's ordered patterns against the path
// segments. It returns errNoMatch on structural mismatch and an
// invalid-parameter error when the shape matched but a value failed
// validation.
type resolveFunc func(segs []string) (Request, error)

// Resolver dispatches identifiers through the per-collection pattern table.
// It is stateless and safe for concurrent use.
type Resolver struct {
	table map[string]resolveFunc
}

// NewResolver builds the dispatch table.
func NewResolver() *Resolver {
	return &Resolver{table: map[string]resolveFunc{
		"bill":                       resolveBill,
		"amendment":                  resolveAmendment,
		"summaries":                  resolveSummaries,
		"member":                     resolveMember,
		"committee":                  resolveCommittee,
		"committee-report":           resolveCommitteeReport,
		"committee-print":            resolveCommitteePrint,
		"committee-meeting":          resolveCommitteeMeeting,
		"hearing":                    resolveHearing,
		"congressional-record":       resolveCongressionalRecord,
		"daily-congressional-record": resolveDailyRecord,
		"bound-congressional-record": resolveBoundRecord,
		"house-communication":        resolveChamberCommunication("house"),
		"senate-communication":       resolveChamberCommunication("senate"),
		"house-requirement":          resolveHouseRequirement,
		"house-vote":                 resolveHouseVote,
		"nomination":                 resolveNomination,
		"treaty":                     resolveTreaty,
		"law":                        resolveLaw,
		"crsreport":                  resolveCRSReport,
	}}
}

// Resolve parses and dispatches an identifier. Resolving the same string
// twice yields structurally identical results.
func (r *Resolver) Resolve(identifier string) (*Resolution, error) {
	desc, err := ParseIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	fn, ok := r.table[desc.Collection]
	if !ok {
		return nil, domain.ErrInvalidIdentifier(identifier)
	}

	req, err := fn(desc.Segments)
	if err != nil {
		if errors.Is(err, errNoMatch) {
			return nil, domain.ErrInvalidIdentifier(identifier)
		}
		return nil, err
	}

	return &Resolution{Identifier: identifier, Request: req, Query: desc.Query}, nil
}

// ParseIdentifier splits an identifier into its descriptor without applying
// any field validation. The api_key query parameter is stripped so a caller
// can never smuggle a credential through the identifier.
func ParseIdentifier(identifier string) (*Descriptor, error) {
	rest, ok := strings.CutPrefix(identifier, Scheme+"://")
	if !ok {
		return nil, domain.ErrInvalidIdentifier(identifier)
	}

	rawPath := rest
	query := url.Values{}
	if idx := strings.IndexByte(rest, '?'); idx >= 0 {
		rawPath = rest[:idx]
		q, err := url.ParseQuery(rest[idx+1:])
		if err != nil {
			return nil, domain.ErrInvalidIdentifier(identifier)
		}
		q.Del("api_key")
		query = q
	}

	parts := strings.Split(rawPath, "/")
	for _, p := range parts {
		if p == "" {
			return nil, domain.ErrInvalidIdentifier(identifier)
		}
	}

	return &Descriptor{
		Collection: parts[0],
		Segments:   parts[1:],
		Query:      query,
	}, nil
}

// number parses a base-10 path segment. Any non-digit character means the
// segment is not a number and the pattern under trial does not match.
func number(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	for _, c := range seg {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return n, true
}
