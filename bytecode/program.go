package bytecode

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Program: the loaded method/class universe
// ---------------------------------------------------------------------------

var (
	// ErrMethodUnresolved is returned when a method lookup names code
	// that was never loaded (typically platform library stubs).
	ErrMethodUnresolved = errors.New("method not present in loaded program")

	// ErrClassUnresolved is returned when a class lookup names a class
	// that was never loaded.
	ErrClassUnresolved = errors.New("class not present in loaded program")
)

// Block is an ordered statement sequence within one method, identified
// by its index in the method's block list.
type Block struct {
	Statements []Statement `cbor:"statements"`
}

// Method is one lifted method body: a descriptor plus its basic blocks.
type Method struct {
	Descriptor MethodDescriptor `cbor:"descriptor"`
	Blocks     []*Block         `cbor:"blocks"`
}

// Class groups the methods declared by one class.
type Class struct {
	Name    string    `cbor:"name"`
	Super   string    `cbor:"super,omitempty"`
	Methods []*Method `cbor:"methods"`
}

// Program is the in-memory universe of loaded classes and methods.
// Lookups are by comparable MethodKey / class name; anything absent
// fails with ErrMethodUnresolved / ErrClassUnresolved.
type Program struct {
	Entry MethodKey

	classes map[string]*Class
	methods map[MethodKey]*Method
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{
		classes: make(map[string]*Class),
		methods: make(map[MethodKey]*Method),
	}
}

// AddClass registers a class and indexes all of its methods.
func (p *Program) AddClass(c *Class) {
	p.classes[c.Name] = c
	for _, m := range c.Methods {
		p.methods[m.Descriptor.Key()] = m
	}
}

// AddMethod registers a single method, creating its class on demand.
func (p *Program) AddMethod(m *Method) {
	c, ok := p.classes[m.Descriptor.Class]
	if !ok {
		c = &Class{Name: m.Descriptor.Class}
		p.classes[c.Name] = c
	}
	c.Methods = append(c.Methods, m)
	p.methods[m.Descriptor.Key()] = m
}

// Method resolves a method key against the loaded program.
func (p *Program) Method(key MethodKey) (*Method, error) {
	m, ok := p.methods[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodUnresolved, key)
	}
	return m, nil
}

// Class resolves a class name against the loaded program.
func (p *Program) Class(name string) (*Class, error) {
	c, ok := p.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassUnresolved, name)
	}
	return c, nil
}

// Classes returns all loaded classes. The returned map is the program's
// own index; callers must not mutate it.
func (p *Program) Classes() map[string]*Class { return p.classes }

// NumMethods returns the number of loaded methods.
func (p *Program) NumMethods() int { return len(p.methods) }
