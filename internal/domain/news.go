package domain

// NewsItem is one headline.
type NewsItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// MaxNews is the headline cap for a country view.
const MaxNews = 3
