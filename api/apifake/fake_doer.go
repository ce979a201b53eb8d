package apifake

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/tipspace/go-auth-client/api"
)

var _ api.Doer = (*FakeDoer)(nil)

// Response scripts a single reply keyed by method+path.
type Response struct {
	Body []byte
	Err  error
}

// FakeDoer is a scripted api.Doer that records every request it receives.
// Responses queue per method+path key and are consumed in order; the last
// scripted response repeats once the queue empties.
type FakeDoer struct {
	responses map[string][]Response
	requests  []api.Request
	lock      sync.Mutex
}

func NewFakeDoer() *FakeDoer {
	return &FakeDoer{
		responses: make(map[string][]Response),
	}
}

// Script queues a response for the given method and path.
func (fd *FakeDoer) Script(method, path string, resp Response) {
	fd.lock.Lock()
	defer fd.lock.Unlock()
	key := method + " " + path
	fd.responses[key] = append(fd.responses[key], resp)
}

func (fd *FakeDoer) Do(_ context.Context, req api.Request) ([]byte, error) {
	fd.lock.Lock()
	defer fd.lock.Unlock()

	fd.requests = append(fd.requests, req)

	key := req.Method + " " + req.Path
	queue, ok := fd.responses[key]
	if !ok || len(queue) == 0 {
		return nil, errors.Errorf("no scripted response for %s", key)
	}

	resp := queue[0]
	if len(queue) > 1 {
		fd.responses[key] = queue[1:]
	}
	return resp.Body, resp.Err
}

// Requests returns a copy of every request received so far.
func (fd *FakeDoer) Requests() []api.Request {
	fd.lock.Lock()
	defer fd.lock.Unlock()
	return append([]api.Request(nil), fd.requests...)
}

// CallCount returns how many requests hit the given method and path.
func (fd *FakeDoer) CallCount(method, path string) int {
	fd.lock.Lock()
	defer fd.lock.Unlock()

	count := 0
	for _, req := range fd.requests {
		if req.Method == method && req.Path == path {
			count++
		}
	}
	return count
}
