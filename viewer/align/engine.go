package align

import "sync"

// Result is everything a renderer needs to draw one alignment run.
type Result struct {
	Left       []Highlight `json:"left"`       // Highlights in the left document
	Right      []Highlight `json:"right"`      // Highlights in the right document
	Connectors []Connector `json:"connectors"` // Right-to-left connectors in diff order, then left-to-right ones

	LeftLines  int `json:"leftLines"`
	RightLines int `json:"rightLines"`
}

// Align aligns the diff ops between left and right. It's a pure function: the same inputs always
// produce the same result.
func Align(left, right string, ops []Op, opts Options) (*Result, error) {
	return align(IndexText(left), IndexText(right), ops, opts)
}

func align(left, right *Index, ops []Op, opts Options) (*Result, error) {
	c, err := Classify(ops, left, right, opts)
	if err != nil {
		return nil, err
	}
	conns := BuildConnectors(c.Pending, opts.MergeConnectors)
	lh, rh := insertHighlights(c.Pending, conns, left, opts)

	res := &Result{
		LeftLines:  left.Lines(),
		RightLines: right.Lines(),
	}
	for _, h := range c.Highlights {
		switch h.Side {
		case Left:
			res.Left = append(res.Left, h)
		case Right:
			res.Right = append(res.Right, h)
		}
	}
	res.Left = append(res.Left, lh...)
	res.Right = append(res.Right, rh...)
	res.Connectors = append(c.Connectors, conns...)
	return res, nil
}

// Handle identifies a marker added to a [MarkerSink].
type Handle int

// MarkerSink receives the highlights of a run, e.g. the editing surface displaying the documents.
type MarkerSink interface {
	// AddMarker draws a marker and returns a handle to remove it again.
	AddMarker(side Side, ext Extent, class string, format Format) Handle
	// RemoveMarker removes a marker previously added. Unknown handles are ignored.
	RemoveMarker(h Handle)
}

// Engine runs alignments for a pair of documents and keeps a marker sink up to date.
//
// Runs are serialized. A run either completes and replaces all markers of the previous run, or
// fails and leaves them untouched.
type Engine struct {
	mu          sync.Mutex
	opts        Options
	sink        MarkerSink // may be nil
	left, right *Index
	handles     []Handle
}

// NewEngine creates a new engine. The sink may be nil if only results are needed.
func NewEngine(opts Options, sink MarkerSink) *Engine {
	return &Engine{opts: opts, sink: sink}
}

// Options returns the options used by the next run.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// SetOptions replaces the options for all following runs.
func (e *Engine) SetOptions(opts Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts = opts
}

// Indexes returns the document indexes of the last successful run, or nil before the first one.
func (e *Engine) Indexes() (left, right *Index) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.left, e.right
}

// Run aligns ops between the texts left and right and replaces the markers in the sink.
func (e *Engine) Run(left, right string, ops []Op) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	li, ri := IndexText(left), IndexText(right)
	res, err := align(li, ri, ops, e.opts)
	if err != nil {
		return nil, err
	}

	e.left, e.right = li, ri
	e.clear()
	if e.sink != nil {
		for _, hs := range [][]Highlight{res.Left, res.Right} {
			for _, h := range hs {
				e.handles = append(e.handles, e.sink.AddMarker(h.Side, h.Extent, h.Class, h.Format))
			}
		}
	}
	return res, nil
}

// Diff computes the diff between left and right using diff and runs the alignment.
func (e *Engine) Diff(left, right string, diff Provider) (*Result, error) {
	return e.Run(left, right, diff(right, left))
}

// Clear removes all markers of the last run from the sink. It's safe to call if there are none.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clear()
}

func (e *Engine) clear() {
	if e.sink != nil {
		for _, h := range e.handles {
			e.sink.RemoveMarker(h)
		}
	}
	e.handles = e.handles[:0]
}
