// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package netsolve

import "bufio"
import "io"

// varintIO reads and writes the uint32 varuint encoding doc.go
// specifies: 7 low bits per byte, high bit set on every byte but the
// last. Grounded on go-air-gini/crisp/vu32io.go's readu32/writeu32,
// rebuilt on bufio.Reader/Writer instead of vu32io's own hand-rolled
// fill/flush buffer, since bufio already gives the same single-buffer,
// non-concurrent-safe behavior vu32io's comment asks for.
type varintIO struct {
	r *bufio.Reader
	w *bufio.Writer
}

func newVarintIO(rw io.ReadWriter) *varintIO {
	return &varintIO{r: bufio.NewReader(rw), w: bufio.NewWriter(rw)}
}

const varUintMask = uint32((1 << 7) - 1)

func (v *varintIO) readu32() (uint32, error) {
	res := uint32(0)
	shift := uint32(0)
	for i := 0; i < 5; i++ {
		b, err := v.r.ReadByte()
		if err != nil {
			return 0, err
		}
		res |= (uint32(b) & varUintMask) << shift
		if b&(1<<7) == 0 {
			return res, nil
		}
		shift += 7
	}
	return 0, io.ErrNoProgress
}

func (v *varintIO) writeu32(d uint32) {
	for {
		b := byte(d & varUintMask)
		d >>= 7
		if d > 0 {
			v.w.WriteByte(b | (1 << 7))
			continue
		}
		v.w.WriteByte(b)
		return
	}
}

func (v *varintIO) flush() error {
	return v.w.Flush()
}
