package frontend

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/consensys/qnark/circuit"
	"github.com/consensys/qnark/debug"
	"github.com/consensys/qnark/logger"
)

// Compile generates a circuit.Circuit from the given circuit definition
//
// 1. it parses the compile options
//
// 2. it then calls circuit.Define(api) on a fresh builder to record the gate
// tape, the registers and the workspace accounting
//
// 3. finally, it seals the tape into the returned artifact. Define returning
// with workspace still acquired is an error wrapping [ErrWorkspaceLeak].
//
// Synthesis is single threaded and deterministic: compiling the same
// definition twice yields equal artifacts.
func Compile(c Circuit, opts ...CompileOption) (*circuit.Circuit, error) {
	log := logger.Logger()
	log.Info().Msg("compiling circuit")

	// parse options
	opt := defaultCompileConfig()
	for _, o := range opts {
		if err := o(&opt); err != nil {
			log.Err(err).Msg("applying compile option")
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	// instantiate new builder
	builder := newBuilder(opt)

	// call circuit.Define() to record the gate tape
	if err := buildCircuit(builder, c); err != nil {
		log.Err(err).Msg("building circuit")
		return nil, fmt.Errorf("build circuit: %w", err)
	}

	compiled, err := builder.compile()
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("nbGates", compiled.NbGates()).
		Int("nbAnds", compiled.NbAnds()).
		Int("nbQubits", compiled.NbQubits).
		Int("maxAncillas", compiled.MaxAncillas).
		Msg("compiled circuit")

	return compiled, nil
}

// buildCircuit runs c.Define against the builder. The profiler cuts recorded
// stacks at this function; the name is part of the profile contract.
func buildCircuit(builder *builder, c Circuit) (err error) {
	// ensure circuit.Define has pointer receiver
	if reflect.ValueOf(c).Kind() != reflect.Ptr {
		return errors.New("frontend.Circuit methods must be defined on pointer receiver")
	}

	// recover from panics to print user-friendlier messages
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v\n%s", r, debug.Stack())
		}
	}()

	if err = c.Define(builder); err != nil {
		return fmt.Errorf("define circuit: %w", err)
	}

	return
}

// CompileOption defines option for altering the behaviour of the Compile
// method. See the descriptions of the functions returning instances of this
// type for available options.
type CompileOption func(opt *CompileConfig) error

func defaultCompileConfig() CompileConfig {
	return CompileConfig{}
}

// CompileConfig carries the options applied before Define runs.
type CompileConfig struct {
	Capacity int
}

// WithCapacity is a compile option that specifies the estimated number of
// gates in the circuit, used to preallocate the tape. If not set, the tape
// starts empty and grows as needed.
func WithCapacity(capacity int) CompileOption {
	return func(opt *CompileConfig) error {
		opt.Capacity = capacity
		return nil
	}
}
