package reflective

import (
	"reflect"
	"slices"
	"sync"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Method is a resolved method. Path holds the embedded field indices leading from
// the receiver to the value that declares the method; it is empty for methods in
// the receiver's own method set.
type Method struct {
	Owner  reflect.Type
	Path   []int
	Method reflect.Method
}

// Cache memoizes type, constructor, method and field resolution.
// Each table has its own lock, held only around map access; resolution and
// invocation run unlocked, so two racing misses may both resolve the same entry.
// Entries are never invalidated.
type Cache struct {
	registry *Registry

	typesMu sync.Mutex
	types   map[string]reflect.Type

	ctorsMu sync.Mutex
	ctors   map[memberKey]reflect.Value

	methodsMu sync.Mutex
	methods   map[memberKey]Method

	fieldsMu sync.Mutex
	fields   map[memberKey]reflect.StructField
}

// NewCache creates a Cache over registry.
func NewCache(registry *Registry) *Cache {
	return &Cache{
		registry: registry,
		types:    make(map[string]reflect.Type),
		ctors:    make(map[memberKey]reflect.Value),
		methods:  make(map[memberKey]Method),
		fields:   make(map[memberKey]reflect.StructField),
	}
}

// memberKey identifies a lookup. Types are compared by identity, so two types
// that print the same never share an entry. params is a func type over the
// parameter list, or nil when any parameter list is accepted.
type memberKey struct {
	owner  reflect.Type
	name   string
	params reflect.Type
}

// untypedNil stands in for a nil argument in a parameter list.
type untypedNil struct{}

func paramsKey(params []reflect.Type) reflect.Type {
	in := make([]reflect.Type, len(params))
	for i, p := range params {
		if p == nil {
			p = reflect.TypeFor[untypedNil]()
		}
		in[i] = p
	}
	return reflect.FuncOf(in, nil, false)
}

// ResolveType returns the type registered under name.
func (c *Cache) ResolveType(name string) (reflect.Type, error) {
	c.typesMu.Lock()
	t, ok := c.types[name]
	c.typesMu.Unlock()
	if ok {
		return t, nil
	}

	t, ok = c.registry.lookupType(name)
	if !ok {
		return nil, zerr.With(domain.ErrTypeNotFound, "type", name)
	}

	c.typesMu.Lock()
	c.types[name] = t
	c.typesMu.Unlock()
	return t, nil
}

// FindMethod returns the method called name on typ. Without paramTypes the first
// method with that name wins, searching typ's method set and then its embedded
// types depth first. With paramTypes the parameter list must match exactly, which
// also reaches embedded methods shadowed by a same-named method on typ.
func (c *Cache) FindMethod(typ reflect.Type, name string, paramTypes ...reflect.Type) (Method, error) {
	key := memberKey{owner: typ, name: name}
	if paramTypes != nil {
		key.params = paramsKey(paramTypes)
	}

	c.methodsMu.Lock()
	m, ok := c.methods[key]
	c.methodsMu.Unlock()
	if ok {
		return m, nil
	}

	m, ok = findMatchingMethod(typ, nil, name, paramTypes, paramTypes != nil, map[reflect.Type]bool{})
	if !ok {
		return Method{}, zerr.With(zerr.With(domain.ErrMemberNotFound, "type", typ.String()), "method", name)
	}

	c.methodsMu.Lock()
	c.methods[key] = m
	c.methodsMu.Unlock()
	return m, nil
}

func findMatchingMethod(typ reflect.Type, path []int, name string, params []reflect.Type, exact bool, seen map[reflect.Type]bool) (Method, bool) {
	if seen[typ] {
		return Method{}, false
	}
	seen[typ] = true

	if method, ok := typ.MethodByName(name); ok {
		if !exact || signatureMatches(method, typ, params) {
			return Method{Owner: typ, Path: slices.Clone(path), Method: method}, true
		}
	}

	st := typ
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return Method{}, false
	}

	for i := range st.NumField() {
		f := st.Field(i)
		if !f.Anonymous || !f.IsExported() {
			continue
		}
		// Look at both the embedded type and its pointer so pointer-receiver methods are found.
		for _, candidate := range []reflect.Type{f.Type, reflect.PointerTo(f.Type)} {
			if m, ok := findMatchingMethod(candidate, append(path, i), name, params, exact, seen); ok {
				return m, true
			}
		}
	}

	return Method{}, false
}

// signatureMatches compares parameter types, ignoring the receiver of concrete methods.
func signatureMatches(m reflect.Method, owner reflect.Type, params []reflect.Type) bool {
	ft := m.Type
	offset := 1
	if owner.Kind() == reflect.Interface {
		offset = 0
	}
	if ft.NumIn()-offset != len(params) {
		return false
	}
	for i, p := range params {
		if ft.In(i+offset) != p {
			return false
		}
	}
	return true
}

// Construct builds an instance of the type registered under name using the first
// registered constructor whose parameters accept args.
func (c *Cache) Construct(name string, args ...any) (any, error) {
	argTypes := typesOf(args)
	key := memberKey{name: name, params: paramsKey(argTypes)}

	c.ctorsMu.Lock()
	ctor, ok := c.ctors[key]
	c.ctorsMu.Unlock()

	if !ok {
		for _, candidate := range c.registry.constructors(name) {
			if accepts(candidate.Type(), 0, argTypes) {
				ctor, ok = candidate, true
				break
			}
		}
		if !ok {
			return nil, zerr.With(zerr.With(domain.ErrMemberNotFound, "type", name), "constructor", key.params.String())
		}

		c.ctorsMu.Lock()
		c.ctors[key] = ctor
		c.ctorsMu.Unlock()
	}

	out, err := call(ctor, 0, args)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, zerr.With(zerr.With(domain.ErrInvocationFailed, "type", name), "constructor", key.params.String())
	}
	if len(out) > 1 {
		if e, isErr := out[len(out)-1].(error); isErr && e != nil {
			return nil, e
		}
	}
	return out[0], nil
}

// Invoke calls the method called name on receiver with args.
func (c *Cache) Invoke(receiver any, name string, args ...any) ([]any, error) {
	if receiver == nil {
		return nil, zerr.With(domain.ErrInvocationFailed, "method", name)
	}

	rv := reflect.ValueOf(receiver)
	m, err := c.FindMethod(rv.Type(), name, exactTypes(args)...)
	if err != nil {
		// Fall back to a name-only lookup when the dynamic argument types are not exact.
		m, err = c.FindMethod(rv.Type(), name)
		if err != nil {
			return nil, err
		}
	}

	target := rv
	for _, idx := range m.Path {
		if target.Kind() == reflect.Pointer {
			if target.IsNil() {
				return nil, zerr.With(domain.ErrInvocationFailed, "method", name)
			}
			target = target.Elem()
		}
		target = target.Field(idx)
	}
	if m.Owner.Kind() == reflect.Pointer && target.Kind() != reflect.Pointer {
		if !target.CanAddr() {
			return nil, zerr.With(domain.ErrInvocationFailed, "method", name)
		}
		target = target.Addr()
	}

	fn := target.MethodByName(name)
	if !fn.IsValid() {
		return nil, zerr.With(zerr.With(domain.ErrMemberNotFound, "type", rv.Type().String()), "method", name)
	}
	return call(fn, 0, args)
}

// InvokeStatic calls the function registered as typeName.funcName with args.
func (c *Cache) InvokeStatic(typeName, funcName string, args ...any) ([]any, error) {
	fn, ok := c.registry.lookupStatic(typeName + "." + funcName)
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrMemberNotFound, "type", typeName), "function", funcName)
	}
	return call(fn, 0, args)
}

// Field returns the struct field called name on typ.
func (c *Cache) Field(typ reflect.Type, name string) (reflect.StructField, error) {
	key := memberKey{owner: typ, name: name}

	c.fieldsMu.Lock()
	f, ok := c.fields[key]
	c.fieldsMu.Unlock()
	if ok {
		return f, nil
	}

	st := typ
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return reflect.StructField{}, zerr.With(zerr.With(domain.ErrMemberNotFound, "type", typ.String()), "field", name)
	}
	f, ok = st.FieldByName(name)
	if !ok {
		return reflect.StructField{}, zerr.With(zerr.With(domain.ErrMemberNotFound, "type", typ.String()), "field", name)
	}

	c.fieldsMu.Lock()
	c.fields[key] = f
	c.fieldsMu.Unlock()
	return f, nil
}

// Interfaces returns the names of registered interfaces implemented by typ or by
// any type embedded in it, sorted.
func (c *Cache) Interfaces(typ reflect.Type) []string {
	registered := c.registry.interfaceTypes()
	found := map[string]bool{}

	var walk func(t reflect.Type, seen map[reflect.Type]bool)
	walk = func(t reflect.Type, seen map[reflect.Type]bool) {
		if t == nil || seen[t] {
			return
		}
		seen[t] = true

		for name, iface := range registered {
			if t.Implements(iface) {
				found[name] = true
			}
		}

		st := t
		if st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
		if st.Kind() != reflect.Struct {
			return
		}
		for i := range st.NumField() {
			if f := st.Field(i); f.Anonymous {
				walk(f.Type, seen)
				walk(reflect.PointerTo(f.Type), seen)
			}
		}
	}
	walk(typ, map[reflect.Type]bool{})

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func typesOf(args []any) []reflect.Type {
	out := make([]reflect.Type, len(args))
	for i, a := range args {
		out[i] = reflect.TypeOf(a)
	}
	return out
}

// exactTypes returns the argument types, or nil when an argument is untyped nil
// and therefore cannot take part in exact signature matching.
func exactTypes(args []any) []reflect.Type {
	out := make([]reflect.Type, 0, len(args))
	for _, a := range args {
		t := reflect.TypeOf(a)
		if t == nil {
			return nil
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return []reflect.Type{}
	}
	return out
}

// accepts reports whether a function of type ft, skipping offset leading
// parameters, can be called with arguments of the given types.
func accepts(ft reflect.Type, offset int, argTypes []reflect.Type) bool {
	if ft.IsVariadic() || ft.NumIn()-offset != len(argTypes) {
		return false
	}
	for i, at := range argTypes {
		pt := ft.In(i + offset)
		if at == nil {
			switch pt.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
				continue
			default:
				return false
			}
		}
		if !at.AssignableTo(pt) {
			return false
		}
	}
	return true
}

func call(fn reflect.Value, offset int, args []any) ([]any, error) {
	ft := fn.Type()
	if !accepts(ft, offset, typesOf(args)) {
		return nil, zerr.With(domain.ErrInvocationFailed, "signature", ft.String())
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			in[i] = reflect.Zero(ft.In(i + offset))
			continue
		}
		in[i] = reflect.ValueOf(a)
	}

	results := fn.Call(in)
	out := make([]any, len(results))
	for i, r := range results {
		out[i] = r.Interface()
	}
	return out, nil
}
