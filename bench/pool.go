// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package bench runs the scenario suite used to validate spec.md §8's
// testable properties, concurrently, and reports each scenario's
// Statistics.
//
// Grounded on go-air-gini/ax/ax.go's T interface: Ex/TryEx/Stop keep
// the same request/response exchange shape, adapted from ax's pool of
// incremental-assumption solving units to a fixed pool of goroutines
// each running one independent relfind.Solve call at a time. ax's
// per-unit Hamming-distance scoring and growable pool (its requests
// share one incremental CNF across related assumptions) has no
// counterpart here: every Request in this package is an unrelated
// scenario with its own formula and bounds, so any idle worker is as
// good as any other.
package bench

import "github.com/relfind/relfind"

// Request asks the pool to solve one scenario.
type Request struct {
	Scenario *Scenario
	Opts     *relfind.Options
}

// Response reports the outcome of a Request.
type Response struct {
	Scenario *Scenario
	Solution *relfind.Solution
	Err      error
}

// T is an exchanger of scenario-solving Requests for Responses, in the
// same shape as ax.T.
type T interface {
	// Ex blocks until an exchange occurs: either req is accepted for
	// solving (resp is nil), or a previously accepted Request's
	// Response is returned. As a special case, if req is nil, Ex
	// blocks until a Response is ready without submitting anything.
	Ex(req *Request) (resp *Response)

	// TryEx is Ex without blocking: ok is false if neither a submit
	// nor a receive could complete immediately.
	TryEx(req *Request) (resp *Response, ok bool)

	// Stop shuts the pool down. Workers finish their current request
	// but no further request is accepted.
	Stop()
}

// NewPool starts a fixed-size worker pool of n goroutines.
func NewPool(n int) T {
	if n < 1 {
		panic("bench: cannot pool <= 0 workers")
	}
	p := &pool{
		reqChn:  make(chan *Request),
		respChn: make(chan *Response),
		done:    make(chan struct{}),
	}
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

type pool struct {
	reqChn  chan *Request
	respChn chan *Response
	done    chan struct{}
}

func (p *pool) Ex(req *Request) *Response {
	if req == nil {
		return <-p.respChn
	}
	select {
	case p.reqChn <- req:
		return nil
	case resp := <-p.respChn:
		return resp
	}
}

func (p *pool) TryEx(req *Request) (*Response, bool) {
	if req == nil {
		select {
		case resp := <-p.respChn:
			return resp, true
		default:
			return nil, false
		}
	}
	select {
	case p.reqChn <- req:
		return nil, true
	case resp := <-p.respChn:
		return resp, true
	default:
		return nil, false
	}
}

func (p *pool) Stop() {
	close(p.done)
}

func (p *pool) worker() {
	for {
		select {
		case <-p.done:
			return
		case req := <-p.reqChn:
			formula, bounds := req.Scenario.Build()
			sol, err := relfind.Solve(formula, bounds, req.Opts)
			resp := &Response{Scenario: req.Scenario, Solution: sol, Err: err}
			select {
			case p.respChn <- resp:
			case <-p.done:
				return
			}
		}
	}
}
