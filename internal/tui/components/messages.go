package components

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

// RowMsg is implemented by messages addressed to a single row
type RowMsg interface {
	TargetRow() string
}

// RowLoadedMsg carries the result of a row fetch
type RowLoadedMsg struct {
	RowID string
	Token uint64
	Items []domain.MediaItem
	Err   error
}

func (m RowLoadedMsg) TargetRow() string { return m.RowID }

// RowSettledMsg asks a row to recompute its pages after layout settled
type RowSettledMsg struct {
	RowID string
	Token uint64
}

func (m RowSettledMsg) TargetRow() string { return m.RowID }

// RowFrameMsg advances a row's scroll animation by one frame
type RowFrameMsg struct {
	RowID string
	Token uint64
}

func (m RowFrameMsg) TargetRow() string { return m.RowID }

// BannerLoadedMsg carries the banner pick
type BannerLoadedMsg struct {
	Token uint64
	Item  domain.MediaItem
	OK    bool
	Err   error
}

// VideosLoadedMsg carries the trailer lookup for an entry
type VideosLoadedMsg struct {
	Token uint64
	Video domain.Video
	OK    bool
	Err   error
}

// PlayerStartedMsg reports a launched (or failed) player
type PlayerStartedMsg struct {
	Token   uint64
	Key     string
	Session domain.PlayerSession
	Err     error
}

// SearchResultsMsg carries one search page
type SearchResultsMsg struct {
	Request service.SearchRequest
	Page    domain.SearchPage
	Err     error
}

// ItemSelectedMsg asks for the details overlay of an item
type ItemSelectedMsg struct {
	Item domain.MediaItem
}

// DetailsClosedMsg signals the details overlay was dismissed
type DetailsClosedMsg struct{}

// TrailerClosedMsg signals the trailer player was dismissed
type TrailerClosedMsg struct{}

// MuteChangedMsg reports a new trailer audio preference
type MuteChangedMsg struct {
	Muted bool
}

// SearchSubmittedMsg asks for the search destination
type SearchSubmittedMsg struct {
	Query string
}

// SearchRecordedMsg reports a query that returned results
type SearchRecordedMsg struct {
	Query string
}
