package snapshot

// Post is the cached copy of a post, taken at submit/update time so the
// content can be recovered after the platform redacts it.
type Post struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}
