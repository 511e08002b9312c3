package sound

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Notifier plays cues. Implementations own their output and release it in
// Close; Play after Close is a no-op.
type Notifier interface {
	Play(c Cue)
	Close() error
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue) {}

func (Nop) Close() error { return nil }

// DefaultMinGap is the shortest interval between two bells.
const DefaultMinGap = 80 * time.Millisecond

// bel is the terminal bell control character.
const bel = "\a"

// BellNotifier rings the terminal bell for cues loud enough for the
// configured volume. A cue is audible when its loudness is at least
// 1-volume, so volume 0 mutes everything and volume 1 plays every cue.
//
// BellNotifier is safe for concurrent use.
type BellNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	volume float64
	minGap time.Duration
	last   time.Time
	closed bool

	now    func() time.Time
	logger *log.Logger
}

// BellOption configures a BellNotifier.
type BellOption func(*BellNotifier)

// WithMinGap sets the rate limit between bells.
func WithMinGap(d time.Duration) BellOption {
	return func(b *BellNotifier) {
		b.minGap = d
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) BellOption {
	return func(b *BellNotifier) {
		b.now = now
	}
}

// WithLogger logs every cue at debug level, audible or not.
func WithLogger(l *log.Logger) BellOption {
	return func(b *BellNotifier) {
		b.logger = l
	}
}

// NewBell creates a notifier writing to out. The notifier takes ownership
// of out: if it implements io.Closer it is closed by Close.
func NewBell(out io.Writer, volume float64, opts ...BellOption) (*BellNotifier, error) {
	if out == nil {
		return nil, fmt.Errorf("sound: nil output")
	}
	if volume < 0 || volume > 1 {
		return nil, fmt.Errorf("sound: volume %.2f out of range [0, 1]", volume)
	}

	b := &BellNotifier{
		out:    out,
		volume: volume,
		minGap: DefaultMinGap,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Audible reports whether c would ring at the configured volume.
func (b *BellNotifier) Audible(c Cue) bool {
	if b.volume <= 0 {
		return false
	}
	return c.Loudness() >= 1-b.volume
}

// Play rings the bell for c unless it is too quiet or arrives within the
// rate limit of the previous bell.
func (b *BellNotifier) Play(c Cue) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	if b.logger != nil {
		b.logger.Debug("sound cue", "cue", c.String(), "audible", b.Audible(c))
	}
	if !b.Audible(c) {
		return
	}

	now := b.now()
	if !b.last.IsZero() && now.Sub(b.last) < b.minGap {
		return
	}
	if _, err := io.WriteString(b.out, bel); err != nil {
		if b.logger != nil {
			b.logger.Warn("sound: bell write failed", "err", err)
		}
		return
	}
	b.last = now
}

// Close releases the output. It is safe to call more than once.
func (b *BellNotifier) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	if c, ok := b.out.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("sound: close output: %w", err)
		}
	}
	return nil
}
