package testutil

import "sync"

// Sample is one scripted clipboard read. OK=false models an unavailable
// clipboard.
type Sample struct {
	Text string
	OK   bool
}

// Text returns a successful sample holding s.
func Text(s string) Sample {
	return Sample{Text: s, OK: true}
}

// Absent returns a failed sample.
func Absent() Sample {
	return Sample{}
}

// ScriptedClipboard replays a fixed sequence of clipboard reads.
//
// Once the script is exhausted the last sample repeats forever, which models
// a clipboard that stopped changing. Writes are recorded and become the
// value returned by subsequent reads.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ScriptedClipboard struct {
	mu      sync.Mutex
	samples []Sample
	idx     int
	reads   int
	writes  []string
}

// NewScriptedClipboard creates a clipboard that returns samples in order.
func NewScriptedClipboard(samples ...Sample) *ScriptedClipboard {
	return &ScriptedClipboard{samples: samples}
}

// ReadText returns the next scripted sample.
func (c *ScriptedClipboard) ReadText() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	if len(c.samples) == 0 {
		return "", false
	}
	s := c.samples[c.idx]
	if c.idx < len(c.samples)-1 {
		c.idx++
	}
	return s.Text, s.OK
}

// WriteText records a write and makes it the clipboard's current value.
func (c *ScriptedClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, text)
	c.samples = []Sample{Text(text)}
	c.idx = 0
	return nil
}

// Reads returns how many times ReadText was called.
func (c *ScriptedClipboard) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// Writes returns every value passed to WriteText, in order.
func (c *ScriptedClipboard) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.writes))
	copy(out, c.writes)
	return out
}
