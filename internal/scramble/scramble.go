// Package scramble renders the character scramble shown while a form is
// being sent: the label starts as noise and resolves left to right.
package scramble

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	// Alphabet is the pool unresolved characters are drawn from
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@#$%&[]{}<>"

	// SendingLabel is the label animated while a submission is in flight
	SendingLabel = "SENDING..."

	DefaultDuration = 2 * time.Second
	DefaultInterval = 16 * time.Millisecond
)

// Frame returns target with the first share of characters resolved in
// proportion to elapsed/duration and the remainder drawn from Alphabet.
// Once elapsed reaches duration the target is returned unchanged.
func Frame(target string, elapsed, duration time.Duration, rnd *rand.Rand) string {
	if duration <= 0 || elapsed >= duration {
		return target
	}
	if elapsed < 0 {
		elapsed = 0
	}

	runes := []rune(target)
	solved := int(float64(len(runes)) * float64(elapsed) / float64(duration))

	var b strings.Builder
	b.Grow(len(target))
	for i, r := range runes {
		if i < solved {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(Alphabet[rnd.IntN(len(Alphabet))])
	}
	return b.String()
}

// Animate calls render with successive frames every interval until duration
// elapses or ctx is cancelled, then renders target one last time. It blocks
// until the animation ends.
func Animate(ctx context.Context, target string, duration, interval time.Duration, render func(string)) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	rnd := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))

	defer render(target)
	if duration <= 0 {
		return
	}

	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	render(Frame(target, 0, duration, rnd))
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(start)
			if elapsed >= duration {
				return
			}
			render(Frame(target, elapsed, duration, rnd))
		}
	}
}
