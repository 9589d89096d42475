package simulation

import (
	"log/slog"

	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/sim"
)

// Builder can be used to build a Simulator.
type Builder struct {
	pageSize    vm.PageSize
	idGenerator sim.IDGenerator
	logger      *slog.Logger
}

// MakeBuilder creates a new builder with the default page size.
func MakeBuilder() Builder {
	return Builder{
		pageSize: vm.DefaultPageSize,
	}
}

// WithPageSize sets the page size the session starts with.
func (b Builder) WithPageSize(pageSize vm.PageSize) Builder {
	b.pageSize = pageSize
	return b
}

// WithIDGenerator sets the generator of run IDs. Runs are identified by xids
// if not set.
func (b Builder) WithIDGenerator(g sim.IDGenerator) Builder {
	b.idGenerator = g
	return b
}

// WithLogger sets the logger of the simulator.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if err := b.pageSize.Validate(); err != nil {
		panic(err)
	}
}

// Build builds the simulator.
func (b Builder) Build(name string) *Simulator {
	b.parametersMustBeValid()

	s := &Simulator{
		HookableBase: sim.NewHookableBase(),
		name:         name,
		pageSize:     b.pageSize,
		idGenerator:  b.idGenerator,
		logger:       b.logger,
	}

	if s.idGenerator == nil {
		s.idGenerator = sim.NewXIDGenerator()
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}
