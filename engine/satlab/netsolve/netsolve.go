// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package netsolve is an engine/satlab backend that solves over a
// network connection using the compressed incremental SAT wire
// protocol (CRISP).
//
// Grounded on go-air-gini/crisp/doc.go's protocol description (hello
// handshake, <add>/<assume>/<solve>/<continue>/<end> flow, varuint32
// wire encoding, the model bitset layout) and go-air-gini/crisp/vu32io.go's
// varuint algorithm. The rest of the retrieved crisp package (handler.go,
// netsolve.go, server_test.go, vu32io.go) could not be adapted directly:
// its imports point at github.com/irifrance/g/..., a module distinct
// from even the teacher's own github.com/irifrance/gini, and the
// retrieved files never include the client-side Dial/Client type or the
// ProtoPoint/ProtoErr constant definitions those files depend on (only
// the server Handler, the test suite that exercises a Dial it never
// defines, and the io/version/addr helpers were retrieved). Lacking a
// working client to adapt, this file is a fresh implementation of the
// client half of the documented protocol, wired directly onto
// engine/satlab.Incremental instead of being restored to crisp's own
// gini-specific Handler/Gini types.
package netsolve

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/relfind/relfind/engine/satlab"
	"github.com/relfind/relfind/z"
)

type protoPoint uint32

// protoBase is the first of the 256 reserved code points, as specified
// in doc.go's "Protocol Points" section: any decoded uint32 >= protoBase
// is a protocol point rather than a literal.
const protoBase = protoPoint(0xffffffff - 256)

const (
	opError protoPoint = protoBase + iota
	opKey
	opAdd
	opAssume
	opSolve
	opContinue
	opEnd
	opModel
	opModelFor
	opFailed
	opFailedFor
	opSat
	opUnsat
	opUnknown
	opQuit
	opReset
	opExt
)

// version is protocol version 1.0: major in the bits from bit 23 up,
// minor in the lower 23, per version.go's Version type.
const version = uint32(1 << 23)

// NewFactory returns a satlab.Factory that dials addr fresh for every
// Solver it builds, for use as an Options.Solver choice. satlab.Factory
// has no error return, unlike Dial, since every other backend's
// construction cannot fail; a dial failure here panics rather than
// silently falling back to some other backend.
func NewFactory(addr string) satlab.Factory {
	return func() satlab.Solver {
		s, err := Dial(addr)
		if err != nil {
			panic(fmt.Sprintf("netsolve: dial %s: %s", addr, err))
		}
		return s
	}
}

// Dial connects to a CRISP server at addr and returns a Solver talking
// to it. addr is a bare host:port for a tcp connection, or "@path" for
// a unix domain socket, matching crisp/addr.go's Addr.
func Dial(addr string) (satlab.Incremental, error) {
	network, netAddr := "tcp", addr
	if strings.HasPrefix(addr, "@") {
		network, netAddr = "unix", addr[1:]
	}
	conn, err := net.Dial(network, netAddr)
	if err != nil {
		return nil, err
	}
	s := &Solver{conn: conn, io: newVarintIO(conn)}
	if err := s.hello(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Solver is an engine/satlab.Incremental backend that adds clauses,
// solves, and reads models across a CRISP connection.
type Solver struct {
	conn    net.Conn
	io      *varintIO
	maxVar  z.Var
	model   []bool
	pending []z.Lit
	adding  bool
	timeout time.Duration

	nvars    int
	nclauses int
}

func (s *Solver) hello() error {
	for _, want := range "CRISP" {
		got, err := s.io.readu32()
		if err != nil {
			return err
		}
		if got != uint32(want) {
			return fmt.Errorf("netsolve: bad hello byte %d, want %q", got, want)
		}
	}
	v, err := s.io.readu32()
	if err != nil {
		return err
	}
	if major := v >> 23; major != 1 {
		return fmt.Errorf("netsolve: unsupported server protocol version %d.%d", major, v&0x7fffff)
	}
	return nil
}

// Add appends a literal to the clause under construction, or, when m
// is z.LitNull, ends it — the same Adder contract the wire protocol
// itself uses for a null-terminated clause list.
func (s *Solver) Add(m z.Lit) {
	if !s.adding {
		s.io.writeu32(uint32(opAdd))
		s.adding = true
	}
	if m != z.LitNull {
		if v := m.Var(); v > s.maxVar {
			s.maxVar = v
		}
	} else {
		s.nclauses++
	}
	s.io.writeu32(uint32(m))
}

// AddVariables reserves n additional variables so MaxVar reports them
// even before they appear in a clause. The wire protocol has no
// explicit variable-reservation op (variables are implicit in the
// literals a clause or assumption carries), so this only advances the
// client-side counter; the server itself only learns of a variable
// once it appears in a clause or assumption.
func (s *Solver) AddVariables(n int) {
	s.maxVar += z.Var(n)
	s.nvars += n
}

// MaxVar reports the largest variable Add or AddVariables has seen so
// far.
func (s *Solver) MaxVar() z.Var {
	return s.maxVar
}

// Assume adds unit assumptions effective for the next Solve call, per
// doc.go's "Assuming" section.
func (s *Solver) Assume(lits ...z.Lit) {
	s.pending = append(s.pending, lits...)
}

// Solve closes any open <add> session, sends pending assumptions, and
// runs the documented <solve> (<unknown> <continue>)* (<sat>|<unsat>|<end>)
// loop, honoring SetTimeout by sending <end> once the deadline passes.
func (s *Solver) Solve() int {
	if s.adding {
		s.io.writeu32(uint32(opEnd))
		s.adding = false
	}
	if len(s.pending) > 0 {
		s.io.writeu32(uint32(opAssume))
		for _, m := range s.pending {
			s.io.writeu32(uint32(m))
		}
		s.io.writeu32(uint32(z.LitNull))
		s.pending = s.pending[:0]
	}
	s.io.writeu32(uint32(opSolve))
	if err := s.io.flush(); err != nil {
		return 0
	}

	deadline := time.Time{}
	if s.timeout > 0 {
		deadline = time.Now().Add(s.timeout)
	}
	for {
		u, err := s.io.readu32()
		if err != nil {
			return 0
		}
		switch protoPoint(u) {
		case opSat:
			s.readModel()
			return 1
		case opUnsat:
			return -1
		case opEnd:
			return 0
		case opUnknown:
			if !deadline.IsZero() && time.Now().After(deadline) {
				s.io.writeu32(uint32(opEnd))
				s.io.flush()
				continue
			}
			s.io.writeu32(uint32(opContinue))
			if err := s.io.flush(); err != nil {
				return 0
			}
		default:
			return 0
		}
	}
}

// readModel issues <model> and decodes the bitset response described
// in doc.go's "Models" section: a uint32 word count, then that many
// uint32s, bit j of word i/32 holding the truth value of variable i+1.
func (s *Solver) readModel() {
	s.io.writeu32(uint32(opModel))
	if err := s.io.flush(); err != nil {
		return
	}
	words, err := s.io.readu32()
	if err != nil {
		return
	}
	bits := make([]bool, words*32)
	for i := uint32(0); i < words; i++ {
		u, err := s.io.readu32()
		if err != nil {
			return
		}
		for j := uint32(0); j < 32; j++ {
			bits[i*32+j] = u&(1<<j) != 0
		}
	}
	s.model = bits
}

// Value reports m's truth value in the model read after the last
// satisfiable Solve call.
func (s *Solver) Value(m z.Lit) bool {
	i := int(m.Var()) - 1
	if i < 0 || i >= len(s.model) {
		return false
	}
	v := s.model[i]
	if !m.IsPos() {
		v = !v
	}
	return v
}

// SetTimeout bounds how long a subsequent Solve call polls the server
// before giving up and sending <end>.
func (s *Solver) SetTimeout(d time.Duration) {
	s.timeout = d
}

// NVars reports the variable count reserved via AddVariables plus
// those seen in added clauses.
func (s *Solver) NVars() int {
	if int(s.maxVar) > s.nvars {
		return int(s.maxVar)
	}
	return s.nvars
}

// NClauses reports the number of null-terminated clauses sent so far.
func (s *Solver) NClauses() int {
	return s.nclauses
}

// Free sends <quit> and closes the connection. A freed Solver must not
// be used again.
func (s *Solver) Free() {
	s.io.writeu32(uint32(opQuit))
	s.io.flush()
	s.conn.Close()
}
