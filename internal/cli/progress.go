package cli

import (
	"context"
	"io"
	"time"

	"github.com/osa911/uplink/internal/scramble"

	"github.com/briandowns/spinner"
)

// Progress is the terminal indicator shown while a message is sent: a
// spinner whose label scrambles into SENDING...
type Progress struct {
	s      *spinner.Spinner
	cancel context.CancelFunc
	done   chan struct{}
}

// StartProgress starts the indicator on w. The label settles after
// duration.
func StartProgress(w io.Writer, duration time.Duration) *Progress {
	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + scramble.SendingLabel
	s.Start()

	ctx, cancel := context.WithCancel(context.Background())
	p := &Progress{s: s, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(p.done)
		scramble.Animate(ctx, scramble.SendingLabel, duration, scramble.DefaultInterval, p.setLabel)
	}()

	return p
}

func (p *Progress) setLabel(label string) {
	p.s.Lock()
	p.s.Suffix = " " + label
	p.s.Unlock()
}

// Label returns the text currently shown next to the spinner
func (p *Progress) Label() string {
	p.s.Lock()
	defer p.s.Unlock()
	return p.s.Suffix
}

// Stop ends the animation and clears the spinner line
func (p *Progress) Stop() {
	p.cancel()
	<-p.done
	p.s.Stop()
}
