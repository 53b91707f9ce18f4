package constant

const (
	Name    = "itms"
	Version = "0.3.1"

	// UserAgent is what the store expects before it serves view-description
	// documents instead of redirecting to the web preview.
	UserAgent = "iTunes/4.7.1 (Macintosh; U; PPC Mac OS X 10.3)"
)
