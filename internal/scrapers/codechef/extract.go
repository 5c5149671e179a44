package codechef

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type pick int

const (
	// every matched element, text is concatenated
	PICK_ALL pick = iota
	PICK_FIRST
	PICK_LAST
	// the element sibling immediately after each match
	PICK_NEXT
)

type read int

const (
	READ_TEXT read = iota
	READ_ATTR
	// inner html of the first element
	READ_HTML
)

// rule is a single (selector, default) projection onto a string field of T. Every rule yields
// "" when its selector matches nothing.
type rule[T any] struct {
	name     string
	selector string
	// zero values are PICK_ALL and READ_TEXT
	pick     pick
	read     read
	attr     string
	trim     bool
	field    func(*T) *string
}

func (r rule[T]) value(root *goquery.Selection) string {
	sel := root.Find(r.selector)
	switch r.pick {
	case PICK_FIRST:
		sel = sel.First()
	case PICK_LAST:
		sel = sel.Last()
	case PICK_NEXT:
		sel = sel.Next()
	}

	var value string
	switch r.read {
	case READ_ATTR:
		value = sel.AttrOr(r.attr, "")
	case READ_HTML:
		html, err := sel.Html()
		if err != nil {
			return ""
		}
		value = html
	default:
		value = sel.Text()
	}

	if r.trim {
		value = strings.TrimSpace(value)
	}
	return value
}

// apply fills out with every rule and returns the names of the rules that came out empty.
func apply[T any](root *goquery.Selection, rules []rule[T], out *T) (missing []string) {
	for _, r := range rules {
		v := r.value(root)
		if v == "" {
			missing = append(missing, r.name)
		}
		*r.field(out) = v
	}
	return missing
}

// current rating is the first `.rating`, highest rating is the last `.rating-number`, this
// depends on the page layout and silently shifts if codechef reorders the rating widgets.
var profileRules = []rule[Profile]{
	{
		name:     "profilePicture",
		selector: ".profileImage",
		pick:     PICK_FIRST,
		read:     READ_ATTR,
		attr:     "src",
		field:    func(p *Profile) *string { return &p.ProfilePicture },
	},
	{
		name:     "username",
		selector: "h1.h2-style",
		trim:     true,
		field:    func(p *Profile) *string { return &p.Username },
	},
	{
		name:     "rating",
		selector: ".rating",
		pick:     PICK_FIRST,
		trim:     true,
		field:    func(p *Profile) *string { return &p.Rating },
	},
	{
		name:     "highestRating",
		selector: ".rating-number",
		pick:     PICK_LAST,
		trim:     true,
		field:    func(p *Profile) *string { return &p.HighestRating },
	},
	{
		name:     "problemsSolved",
		selector: ".problems-solved",
		pick:     PICK_NEXT,
		trim:     true,
		field:    func(p *Profile) *string { return &p.ProblemsSolved },
	},
	{
		name:     "country",
		selector: ".user-country-name",
		trim:     true,
		field:    func(p *Profile) *string { return &p.Country },
	},
	{
		name:     "studentOrProfessional",
		selector: `li:contains("Student/Professional:") span`,
		trim:     true,
		field:    func(p *Profile) *string { return &p.StudentOrProfessional },
	},
	{
		name:     "institution",
		selector: `li:contains("Institution:") span`,
		trim:     true,
		field:    func(p *Profile) *string { return &p.Institution },
	},
	{
		name:     "contestsParticipated",
		selector: ".contest-participated-count b",
		trim:     true,
		field:    func(p *Profile) *string { return &p.ContestsParticipated },
	},
	{
		name:     "ratingGraph",
		selector: "#cumulative-graph",
		pick:     PICK_FIRST,
		read:     READ_HTML,
		field:    func(p *Profile) *string { return &p.RatingGraph },
	},
}

const badgeSelector = ".widget.badges .badge"

var badgeRules = []rule[Badge]{
	{
		name:     "image",
		selector: ".badge__image img",
		pick:     PICK_FIRST,
		read:     READ_ATTR,
		attr:     "src",
		field:    func(b *Badge) *string { return &b.Image },
	},
	{
		name:     "title",
		selector: ".badge__title",
		field:    func(b *Badge) *string { return &b.Title },
	},
	{
		name:     "description",
		selector: ".badge__description",
		trim:     true,
		field:    func(b *Badge) *string { return &b.Description },
	},
}

// Extract builds a Profile out of a parsed codechef user page. It never fails, fields whose
// selector matches nothing are left as "".
func Extract(doc *goquery.Document) Profile {
	profile, _ := extract(doc)
	return profile
}

func extract(doc *goquery.Document) (Profile, []string) {
	profile := Profile{}
	missing := apply(doc.Selection, profileRules, &profile)

	badges := doc.Find(badgeSelector)
	profile.Badges = make([]Badge, 0, badges.Length())
	badges.Each(func(_ int, s *goquery.Selection) {
		badge := Badge{}
		apply(s, badgeRules, &badge)
		profile.Badges = append(profile.Badges, badge)
	})

	return profile, missing
}

// ExtractHTML parses r as html and calls Extract.
func ExtractHTML(r io.Reader) (Profile, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Profile{}, err
	}
	return Extract(doc), nil
}
