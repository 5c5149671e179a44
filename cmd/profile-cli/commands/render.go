package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"cpprofile-backend/internal/scrapers/codechef"
	"cpprofile-backend/internal/scrapers/codeforces"
	"cpprofile-backend/internal/scrapers/leetcode"
	"cpprofile-backend/internal/service"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	t.SetTitle(title)
	return t
}

func writeJson(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func renderCodeChef(out io.Writer, p codechef.Profile) {
	t := newTable(out, "CodeChef")
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"username", p.Username},
		{"rating", p.Rating},
		{"highestRating", p.HighestRating},
		{"problemsSolved", p.ProblemsSolved},
		{"contestsParticipated", p.ContestsParticipated},
		{"country", p.Country},
		{"studentOrProfessional", p.StudentOrProfessional},
		{"institution", p.Institution},
		{"profilePicture", p.ProfilePicture},
		{"ratingGraph", fmt.Sprintf("%d bytes of html", len(p.RatingGraph))},
	})
	t.Render()

	if len(p.Badges) == 0 {
		return
	}
	badges := newTable(out, "Badges")
	badges.AppendHeader(table.Row{"Title", "Description", "Image"})
	for _, b := range p.Badges {
		badges.AppendRow(table.Row{strings.TrimSpace(b.Title), b.Description, b.Image})
	}
	badges.Render()
}

func renderLeetCode(out io.Writer, p leetcode.Profile) error {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	t := newTable(out, "LeetCode")
	t.AppendHeader(table.Row{"Field", "Value"})
	for _, k := range keys {
		value, err := leetcodeValue(p[k])
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{k, value})
	}
	t.Render()
	return nil
}

// nested values are printed back as compact json
func leetcodeValue(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return fmt.Sprint(v), nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func renderCodeforces(out io.Writer, p codeforces.Profile) {
	t := newTable(out, "Codeforces")
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"username", p.Username},
		{"rating", p.Rating},
		{"maxRating", p.MaxRating},
		{"rank", p.Rank},
		{"maxRank", p.MaxRank},
		{"country", p.Country},
		{"organization", p.Organization},
		{"contribution", p.Contribution},
		{"avatar", p.Avatar},
	})
	t.Render()
}

func renderAggregate(out io.Writer, a service.Aggregate) error {
	if a.CodeChef != nil {
		renderCodeChef(out, *a.CodeChef)
	}
	if a.LeetCode != nil {
		err := renderLeetCode(out, *a.LeetCode)
		if err != nil {
			return err
		}
	}
	if a.Codeforces != nil {
		renderCodeforces(out, *a.Codeforces)
	}
	return nil
}
