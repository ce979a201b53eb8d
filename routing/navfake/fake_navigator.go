package navfake

import (
	"sync"

	"github.com/tipspace/go-auth-client/routing"
)

var _ routing.Navigator = (*FakeNavigator)(nil)

// FakeNavigator records every navigation instead of performing one.
type FakeNavigator struct {
	internal []string
	external []string
	lock     sync.Mutex
}

func NewFakeNavigator() *FakeNavigator {
	return &FakeNavigator{}
}

func (fn *FakeNavigator) NavigateTo(path string) {
	fn.lock.Lock()
	defer fn.lock.Unlock()
	fn.internal = append(fn.internal, path)
}

func (fn *FakeNavigator) NavigateExternal(url string) {
	fn.lock.Lock()
	defer fn.lock.Unlock()
	fn.external = append(fn.external, url)
}

// Internal returns the recorded internal navigations.
func (fn *FakeNavigator) Internal() []string {
	fn.lock.Lock()
	defer fn.lock.Unlock()
	return append([]string(nil), fn.internal...)
}

// External returns the recorded external navigations.
func (fn *FakeNavigator) External() []string {
	fn.lock.Lock()
	defer fn.lock.Unlock()
	return append([]string(nil), fn.external...)
}
