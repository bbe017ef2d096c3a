// Package pprof adds profiling support to the noviq program.
package pprof

import (
	"fmt"
	"os"
	"runtime/pprof"

	"src.noviq.dev/pkg/prog"
)

// Program adds support for the -cpuprofile and -allocsprofile flags. It always
// passes control to the next program, and writes the profiles when that
// program finishes.
type Program struct {
	cpuProfile    string
	allocsProfile string
}

func (p *Program) RegisterFlags(f *prog.FlagSet) {
	f.StringVar(&p.cpuProfile, "cpuprofile", "", "Write CPU profile of the interpreter to file")
	f.StringVar(&p.allocsProfile, "allocsprofile", "", "Write memory allocation profile of the interpreter to file")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	var cleanups []func([3]*os.File)
	if f := create(fds, p.cpuProfile, "CPU profile"); f != nil {
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot start CPU profile:", err)
			f.Close()
		} else {
			cleanups = append(cleanups, func([3]*os.File) {
				pprof.StopCPUProfile()
				f.Close()
			})
		}
	}
	if f := create(fds, p.allocsProfile, "memory allocation profile"); f != nil {
		cleanups = append(cleanups, func([3]*os.File) {
			pprof.Lookup("allocs").WriteTo(f, 0)
			f.Close()
		})
	}
	return prog.NextProgram(cleanups...)
}

// Creates the file for a profile. It returns nil if name is empty or the file
// can't be created.
func create(fds [3]*os.File, name, what string) *os.File {
	if name == "" {
		return nil
	}
	f, err := os.Create(name)
	if err != nil {
		fmt.Fprintf(fds[2], "Warning: cannot create %s: %v\n", what, err)
		fmt.Fprintf(fds[2], "Continuing without %s.\n", what)
		return nil
	}
	return f
}
