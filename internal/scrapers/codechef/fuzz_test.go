package codechef

import (
	"strings"
	"testing"
)

func FuzzExtractHTML(f *testing.F) {
	f.Add(string(profilePageTest))
	f.Add("")
	f.Add(`<div class="widget badges"><div class="badge"><p class="badge__title">`)
	f.Add(`<li>Institution:<span>`)

	f.Fuzz(func(t *testing.T, page string) {
		result, err := ExtractHTML(strings.NewReader(page))
		if err != nil {
			return
		}
		if result.Badges == nil {
			t.Fatal("badges must never be nil")
		}
	})
}
