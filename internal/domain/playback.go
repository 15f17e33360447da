package domain

// PlaybackTarget describes what to hand to an external player
type PlaybackTarget struct {
	URL         string // URL for media players (watch page)
	FallbackURL string // URL for the system handler (embed page carrying the audio state)
	Muted       bool
}

// PlayerSession is a running player instance
type PlayerSession interface {
	// Stop terminates the player if it is still running
	Stop() error
}
