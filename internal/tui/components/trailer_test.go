package components

import (
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testVideo = domain.Video{Key: "abc", Name: "Official Trailer", Site: domain.SiteYouTube, Type: domain.VideoTypeTrailer}

var testItem = domain.MediaItem{ID: 42, Title: "Dune", Kind: domain.KindMovie}

// startTrailer opens the player and feeds back the lookup and launch
func startTrailer(t *testing.T, p *fakePlayer, muted bool) Trailer {
	t.Helper()
	tr := NewTrailer(p, muted)

	videos, ok := find[VideosLoadedMsg](drain(tr.Open(testItem)))
	require.True(t, ok)
	assert.Equal(t, TrailerLoading, tr.State())

	tr, launch := tr.Update(videos)
	require.Equal(t, TrailerPlaying, tr.State())

	started, ok := find[PlayerStartedMsg](drain(launch))
	require.True(t, ok)
	tr, _ = tr.Update(started)
	return tr
}

func TestTrailerPlays(t *testing.T) {
	p := &fakePlayer{video: testVideo, ok: true}
	tr := startTrailer(t, p, true)

	require.Len(t, p.plays, 1)
	assert.True(t, p.plays[0].muted)
	assert.Equal(t, "abc-true", tr.RemountKey())
	assert.Contains(t, tr.View(60), "Official Trailer")
}

func TestTrailerNone(t *testing.T) {
	tests := []struct {
		name string
		p    *fakePlayer
	}{
		{"no trailer", &fakePlayer{}},
		{"lookup failed", &fakePlayer{findErr: errBoom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTrailer(tt.p, true)
			msg, _ := find[VideosLoadedMsg](drain(tr.Open(testItem)))
			tr, cmd := tr.Update(msg)

			assert.Nil(t, cmd)
			assert.Equal(t, TrailerNone, tr.State())
			assert.Contains(t, tr.View(60), NoTrailerText)
			assert.Empty(t, tt.p.plays)
		})
	}
}

func TestTrailerLaunchFailure(t *testing.T) {
	p := &fakePlayer{video: testVideo, ok: true, playErr: errBoom}
	tr := NewTrailer(p, true)

	msg, _ := find[VideosLoadedMsg](drain(tr.Open(testItem)))
	tr, cmd := tr.Update(msg)
	started, _ := find[PlayerStartedMsg](drain(cmd))
	tr, _ = tr.Update(started)

	assert.Equal(t, TrailerFailed, tr.State())
	assert.Contains(t, tr.View(60), "boom")
}

func TestTrailerMuteRemounts(t *testing.T) {
	p := &fakePlayer{video: testVideo, ok: true}
	tr := startTrailer(t, p, true)
	before := tr.RemountKey()

	msgs := drain(tr.ToggleMute())
	assert.False(t, tr.Muted())
	assert.NotEqual(t, before, tr.RemountKey())
	assert.Equal(t, "abc-false", tr.RemountKey())

	assert.True(t, p.plays[0].session.Stopped(), "previous player stopped")

	changed, ok := find[MuteChangedMsg](msgs)
	require.True(t, ok)
	assert.False(t, changed.Muted)

	started, ok := find[PlayerStartedMsg](msgs)
	require.True(t, ok)
	tr, _ = tr.Update(started)

	require.Len(t, p.plays, 2)
	assert.False(t, p.plays[1].muted)
	assert.False(t, p.plays[1].session.Stopped())
}

func TestTrailerStopsSupersededPlayer(t *testing.T) {
	p := &fakePlayer{video: testVideo, ok: true}
	tr := NewTrailer(p, true)

	msg, _ := find[VideosLoadedMsg](drain(tr.Open(testItem)))
	tr, launch := tr.Update(msg)

	// The first player starts, then mute flips before it reports in
	late, _ := find[PlayerStartedMsg](drain(launch))
	drain(tr.ToggleMute())
	require.Len(t, p.plays, 2)

	tr, cmd := tr.Update(late)
	drain(cmd)

	assert.True(t, p.plays[0].session.Stopped(), "player for the old key stopped")
	assert.False(t, p.plays[1].session.Stopped())
}

func TestTrailerClose(t *testing.T) {
	p := &fakePlayer{video: testVideo, ok: true}
	tr := startTrailer(t, p, true)

	msgs := drain(tr.Close())
	_, ok := find[TrailerClosedMsg](msgs)
	assert.True(t, ok)
	assert.False(t, tr.IsOpen())
	assert.True(t, p.plays[0].session.Stopped())
}

func TestTrailerIgnoresResultsAfterClose(t *testing.T) {
	p := &fakePlayer{video: testVideo, ok: true}
	tr := NewTrailer(p, true)

	msg, _ := find[VideosLoadedMsg](drain(tr.Open(testItem)))
	drain(tr.Close())

	tr, cmd := tr.Update(msg)
	assert.Nil(t, cmd)
	assert.Equal(t, TrailerClosed, tr.State())
}

func TestTrailerKeys(t *testing.T) {
	p := &fakePlayer{video: testVideo, ok: true}
	tr := startTrailer(t, p, true)

	tr, cmd := tr.Update(keyMsg("m"))
	drain(cmd)
	assert.False(t, tr.Muted())

	tr, cmd = tr.Update(keyMsg("esc"))
	_, ok := find[TrailerClosedMsg](drain(cmd))
	assert.True(t, ok)
	assert.False(t, tr.IsOpen())
}

func TestTrailerMuteWhileLoading(t *testing.T) {
	p := &fakePlayer{video: testVideo, ok: true}
	tr := NewTrailer(p, true)

	msg, _ := find[VideosLoadedMsg](drain(tr.Open(testItem)))
	msgs := drain(tr.ToggleMute())
	_, ok := find[PlayerStartedMsg](msgs)
	assert.False(t, ok, "nothing to remount yet")

	tr, launch := tr.Update(msg)
	drain(launch)
	require.Len(t, p.plays, 1)
	assert.False(t, p.plays[0].muted)
}
