package tracing

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/simulation"
)

// JSONTracer writes every finished run as one line of JSON.
type JSONTracer struct {
	w    io.Writer
	lock sync.Mutex
}

// NewJSONTracer creates a JSONTracer, injecting a writer as dependency.
func NewJSONTracer(w io.Writer) *JSONTracer {
	return &JSONTracer{w: w}
}

// Func writes the report of a finished run.
func (t *JSONTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != simulation.HookPosRunEnd {
		return
	}

	b, err := json.Marshal(ctx.Item.(*simulation.RunReport))
	if err != nil {
		panic(err)
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	_, err = t.w.Write(append(b, '\n'))
	if err != nil {
		panic(err)
	}
}
