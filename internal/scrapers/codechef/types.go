package codechef

// Profile is the record scraped from a codechef user page, every text field is "" when the
// page does not have it.
type Profile struct {
	ProfilePicture        string  `json:"profilePicture"`
	Username              string  `json:"username"`
	Rating                string  `json:"rating"`
	HighestRating         string  `json:"highestRating"`
	Badges                []Badge `json:"badges"`
	ProblemsSolved        string  `json:"problemsSolved"`
	Country               string  `json:"country"`
	StudentOrProfessional string  `json:"studentOrProfessional"`
	Institution           string  `json:"institution"`
	ContestsParticipated  string  `json:"contestsParticipated"`
	RatingGraph           string  `json:"ratingGraph"`
}

// Badge is one entry of the badges widget, in page order.
type Badge struct {
	Image       string `json:"image"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
