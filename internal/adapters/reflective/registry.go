// Package reflective resolves registered types by name and invokes their
// constructors, methods and functions dynamically, memoizing every lookup.
package reflective

import (
	"reflect"
	"sync"
)

// Registry holds the named types, constructors, functions and interfaces
// the Cache can resolve. Go has no class loader, so everything reachable by
// name must be registered up front.
type Registry struct {
	mu         sync.RWMutex
	types      map[string]reflect.Type
	ctors      map[string][]reflect.Value
	statics    map[string]reflect.Value
	interfaces map[string]reflect.Type
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		types:      make(map[string]reflect.Type),
		ctors:      make(map[string][]reflect.Value),
		statics:    make(map[string]reflect.Value),
		interfaces: make(map[string]reflect.Type),
	}
}

// RegisterType makes the dynamic type of sample resolvable under name.
func (r *Registry) RegisterType(name string, sample any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = reflect.TypeOf(sample)
}

// RegisterConstructor adds a constructor function for the type registered under name.
// A type may have several constructors with distinct parameter lists.
func (r *Registry) RegisterConstructor(name string, fn any) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic("reflective: constructor for " + name + " is not a function")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = append(r.ctors[name], v)
}

// RegisterStatic adds a package-level function reachable as typeName.funcName.
func (r *Registry) RegisterStatic(typeName, funcName string, fn any) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic("reflective: static " + typeName + "." + funcName + " is not a function")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.statics[typeName+"."+funcName] = v
}

// RegisterInterface records the interface pointed to by ptr, e.g. (*io.Reader)(nil).
func (r *Registry) RegisterInterface(name string, ptr any) {
	t := reflect.TypeOf(ptr)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Interface {
		panic("reflective: " + name + " is not a pointer to an interface")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.interfaces[name] = t.Elem()
}

func (r *Registry) lookupType(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

func (r *Registry) constructors(name string) []reflect.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]reflect.Value(nil), r.ctors[name]...)
}

func (r *Registry) lookupStatic(key string) (reflect.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.statics[key]
	return v, ok
}

func (r *Registry) interfaceTypes() map[string]reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]reflect.Type, len(r.interfaces))
	for k, v := range r.interfaces {
		out[k] = v
	}
	return out
}
