package codeforces

// Profile is the reshaped codeforces user. Country and Organization are "N/A" when
// codeforces has nothing for them.
type Profile struct {
	Username     string `json:"username"`
	Rating       int    `json:"rating"`
	MaxRating    int    `json:"maxRating"`
	Rank         string `json:"rank"`
	MaxRank      string `json:"maxRank"`
	Country      string `json:"country"`
	Organization string `json:"organization"`
	Avatar       string `json:"avatar"`
	Contribution int    `json:"contribution"`
}

// user is one element of the user.info result list, only the fields Profile uses.
type user struct {
	Handle       string `json:"handle"`
	Rating       int    `json:"rating"`
	MaxRating    int    `json:"maxRating"`
	Rank         string `json:"rank"`
	MaxRank      string `json:"maxRank"`
	Country      string `json:"country"`
	Organization string `json:"organization"`
	Avatar       string `json:"avatar"`
	Contribution int    `json:"contribution"`
}

type userInfoResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  []user `json:"result"`
}

const notAvailable = "N/A"

func orNotAvailable(value string) string {
	if value == "" {
		return notAvailable
	}
	return value
}

func reshape(u user, requested string) Profile {
	username := u.Handle
	if username == "" {
		username = requested
	}
	return Profile{
		Username:     username,
		Rating:       u.Rating,
		MaxRating:    u.MaxRating,
		Rank:         u.Rank,
		MaxRank:      u.MaxRank,
		Country:      orNotAvailable(u.Country),
		Organization: orNotAvailable(u.Organization),
		Avatar:       u.Avatar,
		Contribution: u.Contribution,
	}
}
