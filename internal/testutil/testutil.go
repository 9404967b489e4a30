// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/netweave/netweave/pkg/device"
)

// FakeDriver is a scriptable device.Driver for pipeline and validator
// tests. Every call is recorded in Calls; EditConfig payloads are kept in
// Applied. Replies for get operations are consumed in order, with the last
// reply repeating once the queue runs dry.
type FakeDriver struct {
	mu sync.Mutex

	Calls   []string
	Applied []string
	Closed  int

	// GetConfigReplies and GetReplies are raw XML reply documents.
	GetConfigReplies []string
	GetReplies       []string

	// Errs maps an operation name (e.g. "edit-config", "commit") to the
	// error that operation should return.
	Errs map[string]error
}

// Connector returns a device.ConnectFunc that always hands out this fake,
// so the caller keeps a reference for assertions after the run.
func (f *FakeDriver) Connector() device.ConnectFunc {
	return func(ctx context.Context, params device.ConnParams) (device.Driver, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := f.errFor("connect"); err != nil {
			return nil, err
		}
		return f, nil
	}
}

func (f *FakeDriver) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, op)
}

func (f *FakeDriver) errFor(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Errs[op]
}

func (f *FakeDriver) nextReply(queue *[]string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(*queue) == 0 {
		return "<rpc-reply><data/></rpc-reply>"
	}
	reply := (*queue)[0]
	if len(*queue) > 1 {
		*queue = (*queue)[1:]
	}
	return reply
}

func (f *FakeDriver) EditConfig(target, config string) (*device.Response, error) {
	f.record("edit-config")
	if err := f.errFor("edit-config"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.Applied = append(f.Applied, config)
	f.mu.Unlock()
	return device.ParseResponse("<rpc-reply><ok/></rpc-reply>")
}

func (f *FakeDriver) GetConfig(source, filter string) (*device.Response, error) {
	f.record("get-config")
	if err := f.errFor("get-config"); err != nil {
		return nil, err
	}
	return device.ParseResponse(f.nextReply(&f.GetConfigReplies))
}

func (f *FakeDriver) Get(filter string) (*device.Response, error) {
	f.record("get")
	if err := f.errFor("get"); err != nil {
		return nil, err
	}
	return device.ParseResponse(f.nextReply(&f.GetReplies))
}

func (f *FakeDriver) Lock(target string) error {
	f.record("lock")
	return f.errFor("lock")
}

func (f *FakeDriver) Unlock(target string) error {
	f.record("unlock")
	return f.errFor("unlock")
}

func (f *FakeDriver) Validate(source string) error {
	f.record("validate")
	return f.errFor("validate")
}

func (f *FakeDriver) Commit() error {
	f.record("commit")
	return f.errFor("commit")
}

func (f *FakeDriver) Discard() error {
	f.record("discard")
	return f.errFor("discard")
}

func (f *FakeDriver) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed++
	return nil
}

// CallCount returns how many times op was invoked.
func (f *FakeDriver) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}

// WriteFile writes content to name under dir and fails the test on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
