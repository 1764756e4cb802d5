package resolve

import (
	"reflect"
	"strings"
	"testing"

	"github.com/openlegis/legis-gateway/internal/domain"
)

func mustResolve(t *testing.T, identifier string) *Resolution {
	t.Helper()
	res, err := NewResolver().Resolve(identifier)
	if err != nil {
		t.Fatalf("resolve %s: unexpected error: %v", identifier, err)
	}
	return res
}

func resolveErr(t *testing.T, identifier string) *domain.ResolveError {
	t.Helper()
	_, err := NewResolver().Resolve(identifier)
	if err != nil {
		return domain.ToResolveError(err)
	}
	t.Fatalf("resolve %s: expected error", identifier)
	return nil
}

func TestResolveTypedRequests(t *testing.T) {
	cases := []struct {
		identifier string
		want       Request
		path       string
	}{
		{
			"congress-gov://bill/118/hr/1/actions",
			Bill{Congress: 118, BillType: "hr", Number: 1, Sub: "actions"},
			"/bill/118/hr/1/actions",
		},
		{
			"congress-gov://bill/118/HR/1",
			Bill{Congress: 118, BillType: "hr", Number: 1},
			"/bill/118/hr/1",
		},
		{
			"congress-gov://bill/118/hr",
			BillList{Congress: 118, BillType: "hr"},
			"/bill/118/hr",
		},
		{
			"congress-gov://bill",
			BillList{},
			"/bill",
		},
		{
			"congress-gov://amendment/117/samdt/2137/cosponsors",
			Amendment{Congress: 117, Type: "samdt", Number: 2137, Sub: "cosponsors"},
			"/amendment/117/samdt/2137/cosponsors",
		},
		{
			"congress-gov://amendment/117/senate-amendment/2137",
			Amendment{Congress: 117, Type: "samdt", Number: 2137},
			"/amendment/117/samdt/2137",
		},
		{
			"congress-gov://summaries/117/hr",
			SummariesList{Congress: 117, BillType: "hr"},
			"/summaries/117/hr",
		},
		{
			"congress-gov://member/p000197",
			Member{Bioguide: "P000197"},
			"/member/P000197",
		},
		{
			"congress-gov://member/P000197/sponsored-legislation",
			Member{Bioguide: "P000197", Sub: "sponsored-legislation"},
			"/member/P000197/sponsored-legislation",
		},
		{
			"congress-gov://member/state/ca",
			MemberList{State: "CA"},
			"/member/CA",
		},
		{
			"congress-gov://member/state/CA/district/12",
			MemberList{State: "CA", District: 12, HasDistrict: true},
			"/member/CA/12",
		},
		{
			"congress-gov://member/congress/118/state/ny/district/0",
			MemberList{Congress: 118, HasCongress: true, State: "NY", HasDistrict: true},
			"/member/congress/118/NY/0",
		},
		{
			"congress-gov://committee/house/hsju00/bills",
			Committee{Chamber: "house", Code: "hsju00", Sub: "bills"},
			"/committee/house/hsju00/bills",
		},
		{
			"congress-gov://committee/senate",
			CommitteeList{Chamber: "senate"},
			"/committee/senate",
		},
		{
			"congress-gov://committee-report/118/hrpt/100/text",
			CommitteeReport{Congress: 118, Type: "hrpt", Number: 100, Sub: "text"},
			"/committee-report/118/hrpt/100/text",
		},
		{
			"congress-gov://committee-print/117/house/48144",
			CommitteePrint{Congress: 117, Chamber: "house", Jacket: 48144},
			"/committee-print/117/house/48144",
		},
		{
			"congress-gov://committee-meeting/118/house/115538",
			CommitteeMeeting{Congress: 118, Chamber: "house", EventID: 115538},
			"/committee-meeting/118/house/115538",
		},
		{
			"congress-gov://hearing/116/house/41365",
			Hearing{Congress: 116, Chamber: "house", Jacket: 41365},
			"/hearing/116/house/41365",
		},
		{
			"congress-gov://congressional-record",
			CongressionalRecordList{},
			"/congressional-record",
		},
		{
			"congress-gov://daily-congressional-record/169/101/articles",
			DailyRecord{Volume: 169, Issue: 101, HasIssue: true, Articles: true},
			"/daily-congressional-record/169/101/articles",
		},
		{
			"congress-gov://bound-congressional-record/2023/6/1",
			BoundRecord{Year: 2023, Month: 6, HasMonth: true, Day: 1, HasDay: true},
			"/bound-congressional-record/2023/06/01",
		},
		{
			"congress-gov://house-communication/117/ec/3324",
			Communication{Chamber: "house", Congress: 117, Type: "ec", Number: 3324},
			"/house-communication/117/ec/3324",
		},
		{
			"congress-gov://senate-communication/117/pom/25",
			Communication{Chamber: "senate", Congress: 117, Type: "pom", Number: 25},
			"/senate-communication/117/pom/25",
		},
		{
			"congress-gov://house-requirement/8070/matching-communications",
			HouseRequirement{Number: 8070, Sub: "matching-communications"},
			"/house-requirement/8070/matching-communications",
		},
		{
			"congress-gov://house-vote/118/1/17/members",
			HouseVote{Congress: 118, Session: 1, Number: 17, Sub: "members"},
			"/house-vote/118/1/17/members",
		},
		{
			"congress-gov://nomination/117/2467",
			Nomination{Congress: 117, Number: 2467},
			"/nomination/117/2467",
		},
		{
			"congress-gov://nomination/117/2467/nominee/1",
			Nomination{Congress: 117, Number: 2467, Sub: "nominee", Ordinal: 1},
			"/nomination/117/2467/1",
		},
		{
			"congress-gov://treaty/117/3/A/actions",
			Treaty{Congress: 117, Number: 3, Suffix: "a", Sub: "actions"},
			"/treaty/117/3/a/actions",
		},
		{
			"congress-gov://law/118/public/108",
			Law{Congress: 118, Type: "pub", Number: 108},
			"/law/118/pub/108",
		},
		{
			"congress-gov://law/118/pub",
			LawList{Congress: 118, Type: "pub"},
			"/law/118/pub",
		},
		{
			"congress-gov://law/118",
			LawList{Congress: 118},
			"/law/118",
		},
		{
			"congress-gov://crsreport/R47670",
			CRSReport{Number: "R47670"},
			"/crsreport/R47670",
		},
	}

	for _, tc := range cases {
		t.Run(tc.identifier, func(t *testing.T) {
			res := mustResolve(t, tc.identifier)
			if !reflect.DeepEqual(res.Request, tc.want) {
				t.Fatalf("request mismatch:\n got %#v\nwant %#v", res.Request, tc.want)
			}
			if got := res.Request.Path(); got != tc.path {
				t.Fatalf("path mismatch: got %s, want %s", got, tc.path)
			}
		})
	}
}

func TestResolveInvalidIdentifier(t *testing.T) {
	cases := []string{
		"congress-gov://",
		"congress-gov://gazette/118",
		"https://bill/118/hr/1",
		"bill/118/hr/1",
		"congress-gov://bill/abc/hr/1",
		"congress-gov://bill/118/hr/1/sponsors",     // not on the bill whitelist
		"congress-gov://bill/118/hr/1/actions/more", // too deep
		"congress-gov://member/P000197/actions",     // not a member sub-resource
		"congress-gov://committee/house/hsju00/text",
		"congress-gov://nomination/117/2467/nominee/x",
		"congress-gov://house-vote/118/1",
		"congress-gov://law",
		"congress-gov://daily-congressional-record",
		"congress-gov://bound-congressional-record",
		"congress-gov://summaries/117/hr/1",
	}

	for _, identifier := range cases {
		t.Run(identifier, func(t *testing.T) {
			err := resolveErr(t, identifier)
			if err.Kind != domain.ErrorKindInvalidIdentifier {
				t.Fatalf("expected invalid_identifier, got %s (%s)", err.Kind, err.Message)
			}
		})
	}
}

func TestResolveInvalidParameter(t *testing.T) {
	cases := []struct {
		identifier string
		contains   []string
	}{
		{"congress-gov://nomination/50/1", []string{"50", "93 and 118"}},
		{"congress-gov://bill/119/hr/1", []string{"congress"}},
		{"congress-gov://bill/118/hb/1", []string{"bill type"}},
		{"congress-gov://member/state/XX", []string{"state code", "XX"}},
		{"congress-gov://member/state/CA/district/54", []string{"district"}},
		{"congress-gov://member/p00019", []string{"bioguide id"}},
		{"congress-gov://committee/floor", []string{"chamber"}},
		{"congress-gov://committee/house/h1/bills", []string{"committee code"}},
		{"congress-gov://committee-report/118/xrpt/100", []string{"report type"}},
		{"congress-gov://bound-congressional-record/2023/13/01", []string{"month", "13"}},
		{"congress-gov://bound-congressional-record/2023/2/30", []string{"date"}},
		{"congress-gov://house-communication/117/pom/25", []string{"communication type"}},
		{"congress-gov://senate-communication/117/ml/25", []string{"communication type"}},
		{"congress-gov://law/118/statute/1", []string{"law type"}},
	}

	for _, tc := range cases {
		t.Run(tc.identifier, func(t *testing.T) {
			err := resolveErr(t, tc.identifier)
			if err.Kind != domain.ErrorKindInvalidParameter {
				t.Fatalf("expected invalid_parameter, got %s (%s)", err.Kind, err.Message)
			}
			for _, want := range tc.contains {
				if !strings.Contains(err.Message, want) {
					t.Fatalf("message %q should contain %q", err.Message, want)
				}
			}
		})
	}
}

func TestResolveChamberServiceRule(t *testing.T) {
	// Matching chamber resolves.
	res := mustResolve(t, "congress-gov://committee/house/hsju00/house-communication")
	want := Committee{Chamber: "house", Code: "hsju00", Sub: "house-communication"}
	if !reflect.DeepEqual(res.Request, want) {
		t.Fatalf("unexpected request: %#v", res.Request)
	}

	// Mismatched chamber is a parameter error, not a pattern miss.
	err := resolveErr(t, "congress-gov://committee/senate/ssfr00/house-communication")
	if err.Kind != domain.ErrorKindInvalidParameter {
		t.Fatalf("expected invalid_parameter, got %s", err.Kind)
	}
	err = resolveErr(t, "congress-gov://committee/house/hsju00/senate-communication")
	if err.Kind != domain.ErrorKindInvalidParameter {
		t.Fatalf("expected invalid_parameter, got %s", err.Kind)
	}
}

func TestResolveDeterminism(t *testing.T) {
	identifiers := []string{
		"congress-gov://bill/118/hr/1/actions",
		"congress-gov://member/congress/118/state/ca/district/12",
		"congress-gov://treaty/117/3/A/committees",
	}
	r := NewResolver()
	for _, identifier := range identifiers {
		first, err := r.Resolve(identifier)
		if err != nil {
			t.Fatalf("%s: %v", identifier, err)
		}
		second, err := r.Resolve(identifier)
		if err != nil {
			t.Fatalf("%s: %v", identifier, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%s: resolution is not deterministic", identifier)
		}
	}
}

func TestResolveQueryPassthrough(t *testing.T) {
	res := mustResolve(t, "congress-gov://bill/118?limit=20&offset=40&api_key=sneaky")
	if got := res.Query.Get("limit"); got != "20" {
		t.Fatalf("limit not carried: %q", got)
	}
	if got := res.Query.Get("offset"); got != "40" {
		t.Fatalf("offset not carried: %q", got)
	}
	if res.Query.Has("api_key") {
		t.Fatal("api_key must be stripped from identifier queries")
	}
}

func TestParseIdentifier(t *testing.T) {
	desc, err := ParseIdentifier("congress-gov://bill/118/hr/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Collection != "bill" {
		t.Fatalf("unexpected collection: %s", desc.Collection)
	}
	if !reflect.DeepEqual(desc.Segments, []string{"118", "hr", "1"}) {
		t.Fatalf("unexpected segments: %v", desc.Segments)
	}

	for _, bad := range []string{"", "congress-gov://", "congress-gov:///bill", "congress-gov://bill//1"} {
		if _, err := ParseIdentifier(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}
