package resolve

import (
	"fmt"
	"strings"

	"github.com/openlegis/legis-gateway/internal/domain"
	"github.com/openlegis/legis-gateway/internal/validate"
)

// Sub-resource whitelists are explicit per collection. A trailing segment not
// on the collection's list is a structural mismatch, never an "unknown
// sub-resource" match.
var (
	billSubs = map[string]struct{}{
		"actions": {}, "amendments": {}, "committees": {}, "cosponsors": {},
		"relatedbills": {}, "subjects": {}, "summaries": {}, "text": {}, "titles": {},
	}
	amendmentSubs = map[string]struct{}{
		"actions": {}, "amendments": {}, "cosponsors": {}, "text": {},
	}
	memberSubs = map[string]struct{}{
		"sponsored-legislation": {}, "cosponsored-legislation": {},
	}
	committeeSubs = map[string]struct{}{
		"bills": {}, "reports": {}, "nominations": {},
		"house-communication": {}, "senate-communication": {},
	}
	nominationSubs = map[string]struct{}{
		"actions": {}, "committees": {}, "hearings": {},
	}
	treatySubs = map[string]struct{}{
		"actions": {}, "committees": {},
	}
	reportTypes = map[string]struct{}{
		"hrpt": {}, "srpt": {}, "erpt": {},
	}
)

func resolveBill(segs []string) (Request, error) {
	switch len(segs) {
	case 0:
		return BillList{}, nil
	case 1:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		return BillList{Congress: congress}, nil
	case 2:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		billType, err := validate.BillType(segs[1])
		if err != nil {
			return nil, err
		}
		return BillList{Congress: congress, BillType: billType}, nil
	case 3, 4:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		n, ok := number(segs[2])
		if !ok {
			return nil, errNoMatch
		}
		sub := ""
		if len(segs) == 4 {
			if _, ok := billSubs[segs[3]]; !ok {
				return nil, errNoMatch
			}
			sub = segs[3]
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		billType, err := validate.BillType(segs[1])
		if err != nil {
			return nil, err
		}
		num, err := validate.PositiveNumber("bill number", n)
		if err != nil {
			return nil, err
		}
		return Bill{Congress: congress, BillType: billType, Number: num, Sub: sub}, nil
	default:
		return nil, errNoMatch
	}
}

func resolveAmendment(segs []string) (Request, error) {
	switch len(segs) {
	case 0:
		return AmendmentList{}, nil
	case 1:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		return AmendmentList{Congress: congress}, nil
	case 2:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		amdtType, err := validate.AmendmentType(segs[1])
		if err != nil {
			return nil, err
		}
		return AmendmentList{Congress: congress, Type: amdtType}, nil
	case 3, 4:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		n, ok := number(segs[2])
		if !ok {
			return nil, errNoMatch
		}
		sub := ""
		if len(segs) == 4 {
			if _, ok := amendmentSubs[segs[3]]; !ok {
				return nil, errNoMatch
			}
			sub = segs[3]
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		amdtType, err := validate.AmendmentType(segs[1])
		if err != nil {
			return nil, err
		}
		num, err := validate.PositiveNumber("amendment number", n)
		if err != nil {
			return nil, err
		}
		return Amendment{Congress: congress, Type: amdtType, Number: num, Sub: sub}, nil
	default:
		return nil, errNoMatch
	}
}

func resolveSummaries(segs []string) (Request, error) {
	switch len(segs) {
	case 0:
		return SummariesList{}, nil
	case 1:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		return SummariesList{Congress: congress}, nil
	case 2:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		billType, err := validate.BillType(segs[1])
		if err != nil {
			return nil, err
		}
		return SummariesList{Congress: congress, BillType: billType}, nil
	default:
		return nil, errNoMatch
	}
}

// resolveMember tries the filter patterns (literal "congress"/"state"
// segments) ahead of the bioguide patterns. The literals can never collide
// with a bioguide id, but the order keeps the table most-specific-first.
func resolveMember(segs []string) (Request, error) {
	if len(segs) == 0 {
		return MemberList{}, nil
	}

	switch segs[0] {
	case "congress":
		switch len(segs) {
		case 2:
			c, ok := number(segs[1])
			if !ok {
				return nil, errNoMatch
			}
			congress, err := validate.Congress(c)
			if err != nil {
				return nil, err
			}
			return MemberList{Congress: congress, HasCongress: true}, nil
		case 6:
			if segs[2] != "state" || segs[4] != "district" {
				return nil, errNoMatch
			}
			c, ok := number(segs[1])
			if !ok {
				return nil, errNoMatch
			}
			d, ok := number(segs[5])
			if !ok {
				return nil, errNoMatch
			}
			congress, err := validate.Congress(c)
			if err != nil {
				return nil, err
			}
			state, err := validate.StateCode(segs[3])
			if err != nil {
				return nil, err
			}
			district, err := validate.District(d)
			if err != nil {
				return nil, err
			}
			return MemberList{
				Congress: congress, HasCongress: true,
				State:    state,
				District: district, HasDistrict: true,
			}, nil
		default:
			return nil, errNoMatch
		}

	case "state":
		switch len(segs) {
		case 2:
			state, err := validate.StateCode(segs[1])
			if err != nil {
				return nil, err
			}
			return MemberList{State: state}, nil
		case 4:
			if segs[2] != "district" {
				return nil, errNoMatch
			}
			d, ok := number(segs[3])
			if !ok {
				return nil, errNoMatch
			}
			state, err := validate.StateCode(segs[1])
			if err != nil {
				return nil, err
			}
			district, err := validate.District(d)
			if err != nil {
				return nil, err
			}
			return MemberList{State: state, District: district, HasDistrict: true}, nil
		default:
			return nil, errNoMatch
		}
	}

	switch len(segs) {
	case 1:
		bioguide, err := validate.Bioguide(segs[0])
		if err != nil {
			return nil, err
		}
		return Member{Bioguide: bioguide}, nil
	case 2:
		if _, ok := memberSubs[segs[1]]; !ok {
			return nil, errNoMatch
		}
		bioguide, err := validate.Bioguide(segs[0])
		if err != nil {
			return nil, err
		}
		return Member{Bioguide: bioguide, Sub: segs[1]}, nil
	default:
		return nil, errNoMatch
	}
}

// resolveCommittee applies the chamber-dependent service rule for the
// communication sub-resources: each is valid only for its own chamber.
func resolveCommittee(segs []string) (Request, error) {
	switch len(segs) {
	case 0:
		return CommitteeList{}, nil
	case 1:
		chamber, err := validate.Chamber(segs[0])
		if err != nil {
			return nil, err
		}
		return CommitteeList{Chamber: chamber}, nil
	case 2, 3:
		sub := ""
		if len(segs) == 3 {
			if _, ok := committeeSubs[segs[2]]; !ok {
				return nil, errNoMatch
			}
			sub = segs[2]
		}
		chamber, err := validate.Chamber(segs[0])
		if err != nil {
			return nil, err
		}
		code, err := validate.CommitteeCode(segs[1])
		if err != nil {
			return nil, err
		}
		if sub == "house-communication" && chamber != "house" {
			return nil, domain.ErrInvalidParameter("sub-resource",
				"house-communication is only available for house committees")
		}
		if sub == "senate-communication" && chamber != "senate" {
			return nil, domain.ErrInvalidParameter("sub-resource",
				"senate-communication is only available for senate committees")
		}
		return Committee{Chamber: chamber, Code: code, Sub: sub}, nil
	default:
		return nil, errNoMatch
	}
}

func resolveCommitteeReport(segs []string) (Request, error) {
	if len(segs) != 3 && len(segs) != 4 {
		return nil, errNoMatch
	}
	c, ok := number(segs[0])
	if !ok {
		return nil, errNoMatch
	}
	n, ok := number(segs[2])
	if !ok {
		return nil, errNoMatch
	}
	sub := ""
	if len(segs) == 4 {
		if segs[3] != "text" {
			return nil, errNoMatch
		}
		sub = "text"
	}
	congress, err := validate.Congress(c)
	if err != nil {
		return nil, err
	}
	reportType := strings.ToLower(segs[1])
	if _, ok := reportTypes[reportType]; !ok {
		return nil, domain.ErrInvalidParameter("report type",
			fmt.Sprintf("%q must be one of hrpt, srpt, erpt", segs[1]))
	}
	num, err := validate.PositiveNumber("report number", n)
	if err != nil {
		return nil, err
	}
	return CommitteeReport{Congress: congress, Type: reportType, Number: num, Sub: sub}, nil
}

func resolveCommitteePrint(segs []string) (Request, error) {
	if len(segs) != 3 && len(segs) != 4 {
		return nil, errNoMatch
	}
	c, ok := number(segs[0])
	if !ok {
		return nil, errNoMatch
	}
	j, ok := number(segs[2])
	if !ok {
		return nil, errNoMatch
	}
	sub := ""
	if len(segs) == 4 {
		if segs[3] != "text" {
			return nil, errNoMatch
		}
		sub = "text"
	}
	congress, err := validate.Congress(c)
	if err != nil {
		return nil, err
	}
	chamber, err := validate.Chamber(segs[1])
	if err != nil {
		return nil, err
	}
	jacket, err := validate.PositiveNumber("jacket number", j)
	if err != nil {
		return nil, err
	}
	return CommitteePrint{Congress: congress, Chamber: chamber, Jacket: jacket, Sub: sub}, nil
}

func resolveCommitteeMeeting(segs []string) (Request, error) {
	if len(segs) != 3 {
		return nil, errNoMatch
	}
	c, ok := number(segs[0])
	if !ok {
		return nil, errNoMatch
	}
	e, ok := number(segs[2])
	if !ok {
		return nil, errNoMatch
	}
	congress, err := validate.Congress(c)
	if err != nil {
		return nil, err
	}
	chamber, err := validate.Chamber(segs[1])
	if err != nil {
		return nil, err
	}
	eventID, err := validate.PositiveNumber("event id", e)
	if err != nil {
		return nil, err
	}
	return CommitteeMeeting{Congress: congress, Chamber: chamber, EventID: eventID}, nil
}

func resolveHearing(segs []string) (Request, error) {
	if len(segs) != 3 {
		return nil, errNoMatch
	}
	c, ok := number(segs[0])
	if !ok {
		return nil, errNoMatch
	}
	j, ok := number(segs[2])
	if !ok {
		return nil, errNoMatch
	}
	congress, err := validate.Congress(c)
	if err != nil {
		return nil, err
	}
	chamber, err := validate.Chamber(segs[1])
	if err != nil {
		return nil, err
	}
	jacket, err := validate.PositiveNumber("jacket number", j)
	if err != nil {
		return nil, err
	}
	return Hearing{Congress: congress, Chamber: chamber, Jacket: jacket}, nil
}

func resolveCongressionalRecord(segs []string) (Request, error) {
	if len(segs) != 0 {
		return nil, errNoMatch
	}
	return CongressionalRecordList{}, nil
}

func resolveDailyRecord(segs []string) (Request, error) {
	switch len(segs) {
	case 1:
		v, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		volume, err := validate.PositiveNumber("volume", v)
		if err != nil {
			return nil, err
		}
		return DailyRecord{Volume: volume}, nil
	case 2, 3:
		v, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		i, ok := number(segs[1])
		if !ok {
			return nil, errNoMatch
		}
		articles := false
		if len(segs) == 3 {
			if segs[2] != "articles" {
				return nil, errNoMatch
			}
			articles = true
		}
		volume, err := validate.PositiveNumber("volume", v)
		if err != nil {
			return nil, err
		}
		issue, err := validate.PositiveNumber("issue", i)
		if err != nil {
			return nil, err
		}
		return DailyRecord{Volume: volume, Issue: issue, HasIssue: true, Articles: articles}, nil
	default:
		return nil, errNoMatch
	}
}

func resolveBoundRecord(segs []string) (Request, error) {
	if len(segs) < 1 || len(segs) > 3 {
		return nil, errNoMatch
	}

	nums := make([]int, len(segs))
	for i, seg := range segs {
		n, ok := number(seg)
		if !ok {
			return nil, errNoMatch
		}
		nums[i] = n
	}

	// Missing month and day default to January 1 for validation only; the
	// upstream path carries exactly the segments the caller supplied.
	year, month, day := nums[0], 1, 1
	if len(nums) > 1 {
		month = nums[1]
	}
	if len(nums) > 2 {
		day = nums[2]
	}
	if _, err := validate.Date(year, month, day); err != nil {
		return nil, err
	}

	rec := BoundRecord{Year: year}
	if len(nums) > 1 {
		rec.Month = month
		rec.HasMonth = true
	}
	if len(nums) > 2 {
		rec.Day = day
		rec.HasDay = true
	}
	return rec, nil
}

// resolveChamberCommunication builds the resolver for one chamber's
// communication collection. The valid type codes differ between chambers.
func resolveChamberCommunication(chamber string) resolveFunc {
	return func(segs []string) (Request, error) {
		switch len(segs) {
		case 0:
			return CommunicationList{Chamber: chamber}, nil
		case 1:
			c, ok := number(segs[0])
			if !ok {
				return nil, errNoMatch
			}
			congress, err := validate.Congress(c)
			if err != nil {
				return nil, err
			}
			return CommunicationList{Chamber: chamber, Congress: congress}, nil
		case 3:
			c, ok := number(segs[0])
			if !ok {
				return nil, errNoMatch
			}
			n, ok := number(segs[2])
			if !ok {
				return nil, errNoMatch
			}
			congress, err := validate.Congress(c)
			if err != nil {
				return nil, err
			}
			commType, err := validate.CommunicationType(chamber, segs[1])
			if err != nil {
				return nil, err
			}
			num, err := validate.PositiveNumber("communication number", n)
			if err != nil {
				return nil, err
			}
			return Communication{Chamber: chamber, Congress: congress, Type: commType, Number: num}, nil
		default:
			return nil, errNoMatch
		}
	}
}

func resolveHouseRequirement(segs []string) (Request, error) {
	switch len(segs) {
	case 0:
		return HouseRequirementList{}, nil
	case 1, 2:
		n, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		sub := ""
		if len(segs) == 2 {
			if segs[1] != "matching-communications" {
				return nil, errNoMatch
			}
			sub = "matching-communications"
		}
		num, err := validate.PositiveNumber("requirement number", n)
		if err != nil {
			return nil, err
		}
		return HouseRequirement{Number: num, Sub: sub}, nil
	default:
		return nil, errNoMatch
	}
}

func resolveHouseVote(segs []string) (Request, error) {
	if len(segs) != 3 && len(segs) != 4 {
		return nil, errNoMatch
	}
	c, ok := number(segs[0])
	if !ok {
		return nil, errNoMatch
	}
	s, ok := number(segs[1])
	if !ok {
		return nil, errNoMatch
	}
	v, ok := number(segs[2])
	if !ok {
		return nil, errNoMatch
	}
	sub := ""
	if len(segs) == 4 {
		if segs[3] != "members" {
			return nil, errNoMatch
		}
		sub = "members"
	}
	congress, err := validate.Congress(c)
	if err != nil {
		return nil, err
	}
	session, err := validate.PositiveNumber("session", s)
	if err != nil {
		return nil, err
	}
	voteNumber, err := validate.PositiveNumber("vote number", v)
	if err != nil {
		return nil, err
	}
	return HouseVote{Congress: congress, Session: session, Number: voteNumber, Sub: sub}, nil
}

func resolveNomination(segs []string) (Request, error) {
	switch len(segs) {
	case 0:
		return NominationList{}, nil
	case 1:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		return NominationList{Congress: congress}, nil
	case 2, 3:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		n, ok := number(segs[1])
		if !ok {
			return nil, errNoMatch
		}
		sub := ""
		if len(segs) == 3 {
			if _, ok := nominationSubs[segs[2]]; !ok {
				return nil, errNoMatch
			}
			sub = segs[2]
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		num, err := validate.PositiveNumber("nomination number", n)
		if err != nil {
			return nil, err
		}
		return Nomination{Congress: congress, Number: num, Sub: sub}, nil
	case 4:
		if segs[2] != "nominee" {
			return nil, errNoMatch
		}
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		n, ok := number(segs[1])
		if !ok {
			return nil, errNoMatch
		}
		o, ok := number(segs[3])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		num, err := validate.PositiveNumber("nomination number", n)
		if err != nil {
			return nil, err
		}
		ordinal, err := validate.PositiveNumber("nominee ordinal", o)
		if err != nil {
			return nil, err
		}
		return Nomination{Congress: congress, Number: num, Sub: "nominee", Ordinal: ordinal}, nil
	default:
		return nil, errNoMatch
	}
}

// treatySuffix matches a single-letter treaty part, normalized to lowercase.
func treatySuffix(seg string) (string, bool) {
	if len(seg) != 1 {
		return "", false
	}
	c := seg[0]
	if c >= 'a' && c <= 'z' {
		return seg, true
	}
	if c >= 'A' && c <= 'Z' {
		return strings.ToLower(seg), true
	}
	return "", false
}

func resolveTreaty(segs []string) (Request, error) {
	switch len(segs) {
	case 0:
		return TreatyList{}, nil
	case 1:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		return TreatyList{Congress: congress}, nil
	case 2, 3, 4:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		n, ok := number(segs[1])
		if !ok {
			return nil, errNoMatch
		}

		suffix, sub := "", ""
		switch len(segs) {
		case 3:
			// Third segment is either a lettered part or a sub-resource.
			if s, ok := treatySuffix(segs[2]); ok {
				suffix = s
			} else if _, ok := treatySubs[segs[2]]; ok {
				sub = segs[2]
			} else {
				return nil, errNoMatch
			}
		case 4:
			s, ok := treatySuffix(segs[2])
			if !ok {
				return nil, errNoMatch
			}
			if _, ok := treatySubs[segs[3]]; !ok {
				return nil, errNoMatch
			}
			suffix, sub = s, segs[3]
		}

		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		num, err := validate.PositiveNumber("treaty number", n)
		if err != nil {
			return nil, err
		}
		return Treaty{Congress: congress, Number: num, Suffix: suffix, Sub: sub}, nil
	default:
		return nil, errNoMatch
	}
}

func resolveLaw(segs []string) (Request, error) {
	switch len(segs) {
	case 1:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		return LawList{Congress: congress}, nil
	case 2:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		lawType, err := validate.LawType(segs[1])
		if err != nil {
			return nil, err
		}
		return LawList{Congress: congress, Type: lawType}, nil
	case 3:
		c, ok := number(segs[0])
		if !ok {
			return nil, errNoMatch
		}
		n, ok := number(segs[2])
		if !ok {
			return nil, errNoMatch
		}
		congress, err := validate.Congress(c)
		if err != nil {
			return nil, err
		}
		lawType, err := validate.LawType(segs[1])
		if err != nil {
			return nil, err
		}
		num, err := validate.PositiveNumber("law number", n)
		if err != nil {
			return nil, err
		}
		return Law{Congress: congress, Type: lawType, Number: num}, nil
	default:
		return nil, errNoMatch
	}
}

func resolveCRSReport(segs []string) (Request, error) {
	switch len(segs) {
	case 0:
		return CRSReportList{}, nil
	case 1:
		num := strings.ToUpper(segs[0])
		for _, c := range num {
			if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '-' {
				return nil, domain.ErrInvalidParameter("report number",
					fmt.Sprintf("%q may only contain letters, digits, and dashes", segs[0]))
			}
		}
		return CRSReport{Number: num}, nil
	default:
		return nil, errNoMatch
	}
}
