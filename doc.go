// Package serialx turns annotated Go structs into JSON-shaped text.
//
// A type opts in with a serialization configuration: a naming convention for
// the output keys, a prettify flag, and a list of zero-argument methods whose
// results are emitted next to the stored fields ("virtual fields"). The
// configuration is declared either on a blank marker field:
//
//	type Person struct {
//	    _    struct{} `serialx:"naming=camel_case,method=FirName:FirstPersonName"`
//	    ID   int64
//	    Name string
//	    Age  int
//	}
//
//	func (p Person) FirName() string { return strings.Split(p.Name, " ")[0] }
//
// or by registering the type, usually from code produced by serialx-gen:
//
//	serialx.MustRegister[Person](serialx.TypeConfig{Naming: serialx.SnakeCase, Prettify: true},
//	    serialx.Method("FirName", "FirstPersonName"))
//
// Serializing a value:
//
//	out, err := serialx.Serialize(Person{ID: 1, Name: "João da Silva", Age: 26})
//	// {
//	//     "id":1,
//	//     "name":"João da Silva",
//	//     "age":26,
//	//     "firstPersonName":"João"
//	// }
//
// Every field is emitted, exported or not, in declaration order, followed by
// the declared methods in declaration order. Keys are the canonical lowerCamel
// form of the member name transformed into the configured convention. When two
// members produce the same key the later one wins and the key keeps its first
// position.
//
// # Errors
//
// Serialize fails with ErrNullInput for a nil object, ErrConfigurationMissing
// for a type with no configuration, ErrNullValue when a member holds nil, and
// ErrInvalidTag or ErrInvalidMethod for a malformed declaration. An error
// returned by a virtual field method is passed through untouched.
//
// # Code Generation
//
// serialx-gen reads //serialx:type and //serialx:method directives and writes
// a file registering every annotated type:
//
//	//go:generate serialx-gen generate .
//
//	//serialx:type naming=snake_case prettify=false
//	type Order struct { ... }
//
//	//serialx:method OrderTotal
//	func (o Order) Total() float64 { ... }
package serialx
