// Package profile contains what every platform scraper shares: the platform names and the
// error taxonomy for a failed profile fetch.
package profile

type Platform string

const (
	CodeChef   Platform = "codechef"
	LeetCode   Platform = "leetcode"
	Codeforces Platform = "codeforces"
)

// Platforms lists every supported platform in the order the aggregate route takes them.
var Platforms = []Platform{CodeChef, LeetCode, Codeforces}

// DisplayName returns the human name of the platform, ex. "CodeChef".
func (p Platform) DisplayName() string {
	switch p {
	case CodeChef:
		return "CodeChef"
	case LeetCode:
		return "LeetCode"
	case Codeforces:
		return "Codeforces"
	}
	return string(p)
}
