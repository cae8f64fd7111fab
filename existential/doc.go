// Package existential is the runtime support for wrappers generated by
// existgen.
//
// A wrapper holds a value of any concrete type implementing an interface
// and adds equality, hashing and JSON coding to it. Equality and hashing
// work on the dynamic value. JSON coding needs to record the concrete type
// next to the encoded value; that is delegated to a TypeDecoding or
// TypeEncoding implementation, usually backed by a Registry:
//
//	var drinks = existential.NewRegistry[Drinkable]()
//
//	func init() {
//	    drinks.MustRegister("tea", Tea{})
//	    drinks.MustRegister("coffee", Coffee{})
//	}
//
//	type DrinkableCoding struct{}
//
//	func (DrinkableCoding) DecodeType(data []byte) (reflect.Type, error) {
//	    return drinks.DecodeType(data)
//	}
//
//	func (DrinkableCoding) EncodeType(t reflect.Type, data []byte) ([]byte, error) {
//	    return drinks.EncodeType(t, data)
//	}
package existential
