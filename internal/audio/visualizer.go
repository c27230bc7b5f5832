package audio

import (
	"io"
	"math"
	"strings"
	"sync"
	"time"
)

// Visualizer paints an oscilloscope-style time-domain waveform of the live
// capture into a fixed-size character grid. The frame loop holds a liveness
// token and stops scheduling itself the moment the owning recording ends, so
// no frame ever touches a torn-down capture.
type Visualizer struct {
	width  int
	height int
	out    io.Writer

	mu      sync.Mutex
	samples []int16
	token   *livenessToken
}

type livenessToken struct {
	mu    sync.Mutex
	alive bool
}

func (t *livenessToken) invalidate() {
	t.mu.Lock()
	t.alive = false
	t.mu.Unlock()
}

func (t *livenessToken) isAlive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alive
}

func NewVisualizer(width, height int, out io.Writer) *Visualizer {
	return &Visualizer{
		width:  width,
		height: height,
		out:    out,
	}
}

// Feed stores the most recent sample window. Called from the capture tap.
func (v *Visualizer) Feed(samples []int16) {
	window := make([]int16, len(samples))
	copy(window, samples)

	v.mu.Lock()
	v.samples = window
	v.mu.Unlock()
}

// Start launches the frame loop. Each frame checks the liveness token before
// drawing; Stop invalidates the token and the loop halts on its own.
func (v *Visualizer) Start(interval time.Duration) {
	token := &livenessToken{alive: true}

	v.mu.Lock()
	if v.token != nil {
		v.token.invalidate()
	}
	v.token = token
	v.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if !token.isAlive() {
				return
			}
			io.WriteString(v.out, v.Frame())
		}
	}()
}

// Stop invalidates the current frame loop and clears the sample window.
func (v *Visualizer) Stop() {
	v.mu.Lock()
	if v.token != nil {
		v.token.invalidate()
		v.token = nil
	}
	v.samples = nil
	v.mu.Unlock()
}

// Frame renders the current window as a waveform polyline, one rune column
// per horizontal cell, terminated by a carriage return so successive frames
// overwrite in place on a terminal.
func (v *Visualizer) Frame() string {
	v.mu.Lock()
	samples := v.samples
	v.mu.Unlock()

	cols := make([]int, v.width)
	for i := range cols {
		cols[i] = v.height / 2
	}

	if len(samples) > 0 {
		step := float64(len(samples)) / float64(v.width)
		for x := 0; x < v.width; x++ {
			s := samples[int(float64(x)*step)]
			// Map [-32768, 32767] onto grid rows, row 0 at the top.
			norm := (float64(s) + 32768.0) / 65535.0
			row := int(math.Round((1 - norm) * float64(v.height-1)))
			cols[x] = row
		}
	}

	var b strings.Builder
	for y := 0; y < v.height; y++ {
		for x := 0; x < v.width; x++ {
			if cols[x] == y {
				b.WriteRune('█')
			} else if y == v.height/2 {
				b.WriteRune('─')
			} else {
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}

	return b.String()
}
