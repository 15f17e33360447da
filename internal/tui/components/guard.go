package components

import "sync/atomic"

// generations is shared by every guard so a token is never reused,
// even by a component rebuilt under the same id.
var generations atomic.Uint64

// Guard issues liveness tokens for async results. A result is applied
// only if it carries the token of the latest request and the guard was
// not killed since.
type Guard struct {
	current uint64
	dead    bool
}

// Next starts a new request, invalidating every earlier token
func (g *Guard) Next() uint64 {
	g.current = generations.Add(1)
	g.dead = false
	return g.current
}

// Valid reports whether token belongs to the latest live request
func (g Guard) Valid(token uint64) bool {
	return !g.dead && token != 0 && token == g.current
}

// Kill invalidates every outstanding token until Next is called
func (g *Guard) Kill() {
	g.dead = true
	g.current = 0
}
