package profile

import (
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/google/pprof/profile"
)

// since we are assuming usage of this package from a single go routine, this channel only has
// one "producer", and one "consumer". it's purpose is to guarantee the order of execution of
// adding / removing a profiling session and sampling events, while enabling the caller
// (frontend.Compile) to sample the events asynchronously.
var chCommands = make(chan command, 100)
var onceInit sync.Once

type command struct {
	p      *Profile
	pc     []uintptr
	remove bool

	// and is set when the sampled gate is an And primitive.
	and bool
}

func worker() {
	for c := range chCommands {
		if c.p != nil {
			if c.remove {
				for i := 0; i < len(sessions); i++ {
					if sessions[i] == c.p {
						sessions[i] = sessions[len(sessions)-1]
						sessions = sessions[:len(sessions)-1]
						break
					}
				}
				close(c.p.chDone)

				// decrement active sessions
				atomic.AddUint32(&activeSessions, ^uint32(0))
			} else {
				sessions = append(sessions, c.p)
			}
			continue
		}

		// it's a sampling of event (gate)
		collectSample(c.pc, c.and)
	}

}

// collectSample must be called from the worker go routine
func collectSample(pc []uintptr, and bool) {
	// for each session we may have a distinct sample, since ids of functions and locations may mismatch
	samples := make([]*profile.Sample, len(sessions))
	var andValue int64
	if and {
		andValue = 1
	}
	for i := range samples {
		samples[i] = &profile.Sample{Value: []int64{1, andValue}}
	}

	frames := runtime.CallersFrames(pc)
	// Loop to get frames.
	// A fixed number of pcs can expand to an indefinite number of Frames.
	for {
		frame, more := frames.Next()

		if strings.Contains(frame.Function, "frontend.buildCircuit") {
			// we stop; previous frame was the .Define definition of the circuit
			break
		}

		if isAnonymousFunc(frame.Function) {
			// Within and Adjoint take closures; the closure frame carries no
			// information the enclosing function's frame doesn't.
			continue
		}

		// filter internal builder functions
		if filterBuilderPrivateFunc(frame.Function) {
			continue
		}

		// generics display poorly in pprof
		// https://github.com/golang/go/issues/54105
		frame.Function = strings.ReplaceAll(frame.Function, "[...]", "[T]")

		for i := range samples {
			samples[i].Location = append(samples[i].Location, sessions[i].getLocation(&frame))
		}

		if !more {
			break
		}
		if strings.HasSuffix(frame.Function, ".Define") {
			for i := range sessions {
				sessions[i].onceSetName.Do(func() {
					// once per profile session, we set the "name of the binary"
					// here we grep the struct name where "Define" exist: hopefully the circuit Name
					// note: this won't work well for nested Define calls.
					fe := strings.Split(frame.Function, "/")
					circuitName := strings.TrimSuffix(fe[len(fe)-1], ".Define")
					sessions[i].pprof.Mapping = []*profile.Mapping{
						{ID: 1, File: circuitName},
					}
				})
			}
			// no break --> we break when we hit frontend.buildCircuit; in case we have nested Define calls in the stack.
		}
	}

	for i := range sessions {
		sessions[i].pprof.Sample = append(sessions[i].pprof.Sample, samples[i])
	}
}

// isAnonymousFunc reports whether f names a function literal, i.e. ends in
// ".funcN" with possible ".N" suffixes for nested literals.
func isAnonymousFunc(f string) bool {
	i := strings.LastIndex(f, ".func")
	if i < 0 || i+len(".func") == len(f) {
		return false
	}
	for _, c := range f[i+len(".func"):] {
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}

func filterBuilderPrivateFunc(f string) bool {
	const builderPrefix = "github.com/consensys/qnark/frontend.(*builder)."
	if strings.HasPrefix(f, builderPrefix) && len(f) > len(builderPrefix) {
		// filter frontend private APIs from the trace.
		c := []rune(f)[len(builderPrefix)]
		if unicode.IsLower(c) {
			return true
		}
	}
	return false
}
