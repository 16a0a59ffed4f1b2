package processor

import (
	"reflect"
	"sync"
	"unsafe"

	"golang.org/x/sync/singleflight"

	"github.com/hengadev/serialx/internal/config"
	"github.com/hengadev/serialx/internal/value"
)

// Descriptor is the immutable, per-type plan for collecting members: fields
// in declaration order followed by the tagged methods in declaration order.
type Descriptor struct {
	Type    reflect.Type
	Config  config.TypeConfig
	fields  []fieldAccessor
	methods []methodAccessor
}

type fieldAccessor struct {
	name     string
	index    int
	exported bool
}

type methodAccessor struct {
	name       string
	customName string
	index      int
	hasError   bool
}

// FieldNames lists the collected fields in order.
func (d *Descriptor) FieldNames() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.name
	}
	return names
}

// MethodNames lists the tagged methods in order.
func (d *Descriptor) MethodNames() []string {
	names := make([]string, len(d.methods))
	for i, m := range d.methods {
		names[i] = m.name
	}
	return names
}

// BuildDescriptor turns a declaration into a descriptor. Every struct field is
// collected, exported or not, except blank marker fields. Embedded fields are
// one member named after their type; their fields are not promoted.
func BuildDescriptor(decl config.Declaration) (*Descriptor, error) {
	t, err := config.StructType(decl.Type)
	if err != nil {
		return nil, err
	}

	methods, err := validateMethods(t, decl.Methods)
	if err != nil {
		return nil, err
	}

	fields := make([]fieldAccessor, 0, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Name == config.MarkerField {
			continue
		}
		fields = append(fields, fieldAccessor{
			name:     field.Name,
			index:    i,
			exported: field.IsExported(),
		})
	}

	return &Descriptor{
		Type:    t,
		Config:  decl.Config,
		fields:  fields,
		methods: methods,
	}, nil
}

// StructProcessor resolves descriptors through a registry and collects
// members from instances. Descriptors are built once per type.
type StructProcessor struct {
	registry    *config.Registry
	descriptors sync.Map // map[reflect.Type]*Descriptor
	group       singleflight.Group
}

// NewStructProcessor creates a processor reading declarations from registry.
// A nil registry means the process-wide default.
func NewStructProcessor(registry *config.Registry) *StructProcessor {
	if registry == nil {
		registry = config.Default()
	}
	return &StructProcessor{registry: registry}
}

// Descriptor returns the descriptor for t, building it on first use.
func (sp *StructProcessor) Descriptor(t reflect.Type) (*Descriptor, error) {
	t, err := config.StructType(t)
	if err != nil {
		return nil, err
	}
	if d, ok := sp.descriptors.Load(t); ok {
		return d.(*Descriptor), nil
	}

	// concurrent first uses of a type share one build
	d, err, _ := sp.group.Do(t.PkgPath()+"|"+t.String(), func() (any, error) {
		if cached, ok := sp.descriptors.Load(t); ok {
			return cached, nil
		}
		decl, err := sp.registry.Resolve(t)
		if err != nil {
			return nil, err
		}
		built, err := BuildDescriptor(decl)
		if err != nil {
			return nil, err
		}
		sp.descriptors.Store(t, built)
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return d.(*Descriptor), nil
}

// Collect resolves the descriptor of object's type and snapshots its members:
// fields first, then tagged methods. An error returned by a tagged method is
// passed through untouched.
func (sp *StructProcessor) Collect(object any) (*Descriptor, []Member, error) {
	inst, err := validateObjectForProcessing(object)
	if err != nil {
		return nil, nil, err
	}

	d, err := sp.Descriptor(inst.elem.Type())
	if err != nil {
		return nil, nil, err
	}

	members, err := d.collect(inst)
	if err != nil {
		return d, nil, err
	}
	return d, members, nil
}

func (d *Descriptor) collect(inst instance) ([]Member, error) {
	members := make([]Member, 0, len(d.fields)+len(d.methods))

	for _, f := range d.fields {
		members = append(members, Member{
			DeclaredName: f.name,
			Value:        value.Of(readField(inst.elem, f)),
			Source:       SourceField,
		})
	}

	for _, m := range d.methods {
		out := inst.ptr.Method(m.index).Call(nil)
		if m.hasError && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		members = append(members, Member{
			DeclaredName: m.name,
			OverrideName: m.customName,
			Value:        value.Of(out[0]),
			Source:       SourceMethod,
		})
	}

	return members, nil
}

// readField returns the field value, reaching through unexported fields so
// their dynamic values can be inspected. elem must be addressable.
func readField(elem reflect.Value, f fieldAccessor) reflect.Value {
	fv := elem.Field(f.index)
	if f.exported {
		return fv
	}
	return reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
}
