// Package resolve parses opaque congress-gov:// identifiers into typed,
// validated upstream requests. Each collection owns an ordered list of
// explicit patterns; the first pattern that matches a parsed identifier wins.
package resolve

import (
	"fmt"
	"strconv"
	"strings"
)

// Request is a typed, fully validated upstream request. Every field of a
// Request value has passed its validator; no Request exists that violates its
// collection's constraints.
type Request interface {
	// Collection names the entity category the request targets.
	Collection() string

	// Path returns the upstream path template with all segments substituted,
	// relative to the API base path.
	Path() string
}

func joinPath(parts ...string) string {
	return "/" + strings.Join(parts, "/")
}

// Bill targets a single bill, optionally narrowed to a sub-resource.
type Bill struct {
	Congress int
	BillType string
	Number   int
	Sub      string
}

func (Bill) Collection() string { return "bill" }

func (r Bill) Path() string {
	p := joinPath("bill", itoa(r.Congress), r.BillType, itoa(r.Number))
	if r.Sub != "" {
		p += "/" + r.Sub
	}
	return p
}

// BillList targets the bill listing, optionally filtered by congress and
// bill type.
type BillList struct {
	Congress int    // zero means unfiltered
	BillType string // empty means unfiltered
}

func (BillList) Collection() string { return "bill" }

func (r BillList) Path() string {
	switch {
	case r.BillType != "":
		return joinPath("bill", itoa(r.Congress), r.BillType)
	case r.Congress != 0:
		return joinPath("bill", itoa(r.Congress))
	default:
		return "/bill"
	}
}

// Amendment targets a single amendment, optionally narrowed to a sub-resource.
type Amendment struct {
	Congress int
	Type     string
	Number   int
	Sub      string
}

func (Amendment) Collection() string { return "amendment" }

func (r Amendment) Path() string {
	p := joinPath("amendment", itoa(r.Congress), r.Type, itoa(r.Number))
	if r.Sub != "" {
		p += "/" + r.Sub
	}
	return p
}

// AmendmentList targets the amendment listing, optionally filtered.
type AmendmentList struct {
	Congress int
	Type     string
}

func (AmendmentList) Collection() string { return "amendment" }

func (r AmendmentList) Path() string {
	switch {
	case r.Type != "":
		return joinPath("amendment", itoa(r.Congress), r.Type)
	case r.Congress != 0:
		return joinPath("amendment", itoa(r.Congress))
	default:
		return "/amendment"
	}
}

// SummariesList targets the bill summaries listing, optionally filtered.
type SummariesList struct {
	Congress int
	BillType string
}

func (SummariesList) Collection() string { return "summaries" }

func (r SummariesList) Path() string {
	switch {
	case r.BillType != "":
		return joinPath("summaries", itoa(r.Congress), r.BillType)
	case r.Congress != 0:
		return joinPath("summaries", itoa(r.Congress))
	default:
		return "/summaries"
	}
}

// Member targets a single member by bioguide id, optionally narrowed to a
// sub-resource.
type Member struct {
	Bioguide string
	Sub      string
}

func (Member) Collection() string { return "member" }

func (r Member) Path() string {
	p := joinPath("member", r.Bioguide)
	if r.Sub != "" {
		p += "/" + r.Sub
	}
	return p
}

// MemberList targets the member listing, optionally filtered by congress,
// state, and district.
type MemberList struct {
	Congress    int
	HasCongress bool
	State       string
	District    int
	HasDistrict bool
}

func (MemberList) Collection() string { return "member" }

// Path drops the identifier grammar's literal state/district segments; the
// upstream service takes the filter values as bare path segments.
func (r MemberList) Path() string {
	parts := []string{"member"}
	if r.HasCongress {
		parts = append(parts, "congress", itoa(r.Congress))
	}
	if r.State != "" {
		parts = append(parts, r.State)
	}
	if r.HasDistrict {
		parts = append(parts, itoa(r.District))
	}
	return joinPath(parts...)
}

// Committee targets a single committee, optionally narrowed to a sub-resource.
type Committee struct {
	Chamber string
	Code    string
	Sub     string
}

func (Committee) Collection() string { return "committee" }

func (r Committee) Path() string {
	p := joinPath("committee", r.Chamber, r.Code)
	if r.Sub != "" {
		p += "/" + r.Sub
	}
	return p
}

// CommitteeList targets the committee listing, optionally filtered by chamber.
type CommitteeList struct {
	Chamber string
}

func (CommitteeList) Collection() string { return "committee" }

func (r CommitteeList) Path() string {
	if r.Chamber != "" {
		return joinPath("committee", r.Chamber)
	}
	return "/committee"
}

// CommitteeReport targets a committee report, optionally its text.
type CommitteeReport struct {
	Congress int
	Type     string
	Number   int
	Sub      string
}

func (CommitteeReport) Collection() string { return "committee-report" }

func (r CommitteeReport) Path() string {
	p := joinPath("committee-report", itoa(r.Congress), r.Type, itoa(r.Number))
	if r.Sub != "" {
		p += "/" + r.Sub
	}
	return p
}

// CommitteePrint targets a committee print by jacket number, optionally its
// text.
type CommitteePrint struct {
	Congress int
	Chamber  string
	Jacket   int
	Sub      string
}

func (CommitteePrint) Collection() string { return "committee-print" }

func (r CommitteePrint) Path() string {
	p := joinPath("committee-print", itoa(r.Congress), r.Chamber, itoa(r.Jacket))
	if r.Sub != "" {
		p += "/" + r.Sub
	}
	return p
}

// CommitteeMeeting targets a committee meeting by event id.
type CommitteeMeeting struct {
	Congress int
	Chamber  string
	EventID  int
}

func (CommitteeMeeting) Collection() string { return "committee-meeting" }

func (r CommitteeMeeting) Path() string {
	return joinPath("committee-meeting", itoa(r.Congress), r.Chamber, itoa(r.EventID))
}

// Hearing targets a hearing by jacket number.
type Hearing struct {
	Congress int
	Chamber  string
	Jacket   int
}

func (Hearing) Collection() string { return "hearing" }

func (r Hearing) Path() string {
	return joinPath("hearing", itoa(r.Congress), r.Chamber, itoa(r.Jacket))
}

// CongressionalRecordList targets the congressional record issue listing.
type CongressionalRecordList struct{}

func (CongressionalRecordList) Collection() string { return "congressional-record" }

func (CongressionalRecordList) Path() string { return "/congressional-record" }

// DailyRecord targets daily congressional record issues by volume and issue,
// optionally their articles.
type DailyRecord struct {
	Volume   int
	Issue    int
	HasIssue bool
	Articles bool
}

func (DailyRecord) Collection() string { return "daily-congressional-record" }

func (r DailyRecord) Path() string {
	p := joinPath("daily-congressional-record", itoa(r.Volume))
	if r.HasIssue {
		p += "/" + itoa(r.Issue)
	}
	if r.Articles {
		p += "/articles"
	}
	return p
}

// BoundRecord targets bound congressional record issues by date, at year,
// month, or day granularity.
type BoundRecord struct {
	Year     int
	Month    int
	HasMonth bool
	Day      int
	HasDay   bool
}

func (BoundRecord) Collection() string { return "bound-congressional-record" }

func (r BoundRecord) Path() string {
	p := joinPath("bound-congressional-record", itoa(r.Year))
	if r.HasMonth {
		p += "/" + fmt.Sprintf("%02d", r.Month)
	}
	if r.HasDay {
		p += "/" + fmt.Sprintf("%02d", r.Day)
	}
	return p
}

// Communication targets a house or senate communication.
type Communication struct {
	Chamber  string // house or senate
	Congress int
	Type     string
	Number   int
}

func (r Communication) Collection() string { return r.Chamber + "-communication" }

func (r Communication) Path() string {
	return joinPath(r.Chamber+"-communication", itoa(r.Congress), r.Type, itoa(r.Number))
}

// CommunicationList targets a chamber's communication listing.
type CommunicationList struct {
	Chamber  string
	Congress int
}

func (r CommunicationList) Collection() string { return r.Chamber + "-communication" }

func (r CommunicationList) Path() string {
	if r.Congress != 0 {
		return joinPath(r.Chamber+"-communication", itoa(r.Congress))
	}
	return "/" + r.Chamber + "-communication"
}

// HouseRequirement targets a house requirement, optionally its matching
// communications.
type HouseRequirement struct {
	Number int
	Sub    string
}

func (HouseRequirement) Collection() string { return "house-requirement" }

func (r HouseRequirement) Path() string {
	p := joinPath("house-requirement", itoa(r.Number))
	if r.Sub != "" {
		p += "/" + r.Sub
	}
	return p
}

// HouseRequirementList targets the house requirement listing.
type HouseRequirementList struct{}

func (HouseRequirementList) Collection() string { return "house-requirement" }

func (HouseRequirementList) Path() string { return "/house-requirement" }

// HouseVote targets a recorded house vote, optionally its member positions.
type HouseVote struct {
	Congress int
	Session  int
	Number   int
	Sub      string
}

func (HouseVote) Collection() string { return "house-vote" }

func (r HouseVote) Path() string {
	p := joinPath("house-vote", itoa(r.Congress), itoa(r.Session), itoa(r.Number))
	if r.Sub != "" {
		p += "/" + r.Sub
	}
	return p
}

// Nomination targets a nomination, optionally narrowed to a sub-resource or a
// single nominee position by ordinal.
type Nomination struct {
	Congress int
	Number   int
	Sub      string
	Ordinal  int // set only when Sub is "nominee"
}

func (Nomination) Collection() string { return "nomination" }

func (r Nomination) Path() string {
	p := joinPath("nomination", itoa(r.Congress), itoa(r.Number))
	switch r.Sub {
	case "":
	case "nominee":
		p += "/" + itoa(r.Ordinal)
	default:
		p += "/" + r.Sub
	}
	return p
}

// NominationList targets the nomination listing, optionally filtered by
// congress.
type NominationList struct {
	Congress int
}

func (NominationList) Collection() string { return "nomination" }

func (r NominationList) Path() string {
	if r.Congress != 0 {
		return joinPath("nomination", itoa(r.Congress))
	}
	return "/nomination"
}

// Treaty targets a treaty, optionally a lettered part, optionally narrowed to
// a sub-resource.
type Treaty struct {
	Congress int
	Number   int
	Suffix   string
	Sub      string
}

func (Treaty) Collection() string { return "treaty" }

func (r Treaty) Path() string {
	p := joinPath("treaty", itoa(r.Congress), itoa(r.Number))
	if r.Suffix != "" {
		p += "/" + r.Suffix
	}
	if r.Sub != "" {
		p += "/" + r.Sub
	}
	return p
}

// TreatyList targets the treaty listing, optionally filtered by congress.
type TreatyList struct {
	Congress int
}

func (TreatyList) Collection() string { return "treaty" }

func (r TreatyList) Path() string {
	if r.Congress != 0 {
		return joinPath("treaty", itoa(r.Congress))
	}
	return "/treaty"
}

// Law targets a single law.
type Law struct {
	Congress int
	Type     string
	Number   int
}

func (Law) Collection() string { return "law" }

func (r Law) Path() string {
	return joinPath("law", itoa(r.Congress), r.Type, itoa(r.Number))
}

// LawList targets the law listing for a congress, optionally filtered by law
// type.
type LawList struct {
	Congress int
	Type     string
}

func (LawList) Collection() string { return "law" }

func (r LawList) Path() string {
	if r.Type != "" {
		return joinPath("law", itoa(r.Congress), r.Type)
	}
	return joinPath("law", itoa(r.Congress))
}

// CRSReport targets a Congressional Research Service report.
type CRSReport struct {
	Number string
}

func (CRSReport) Collection() string { return "crsreport" }

func (r CRSReport) Path() string { return joinPath("crsreport", r.Number) }

// CRSReportList targets the CRS report listing.
type CRSReportList struct{}

func (CRSReportList) Collection() string { return "crsreport" }

func (CRSReportList) Path() string { return "/crsreport" }

func itoa(n int) string { return strconv.Itoa(n) }
