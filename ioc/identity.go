package ioc

import (
	"fmt"
	"reflect"
)

// ── Identity ──────────────────────────────────────────────────────────────────

// Identity is the key addressing one registration slot: the contract's
// runtime type plus an optional name. Equality is over the pair jointly, so
// two distinct contracts may share a name without colliding.
type Identity struct {
	contract reflect.Type
	name     string
}

// Key returns the unnamed Identity for contract type T.
//
//	ioc.Key[Clock]()          // interface contract
//	ioc.Key[*config.Config]() // concrete contract
func Key[T any]() Identity {
	return Identity{contract: typeOf[T]()}
}

// KeyOf returns the Identity for an already-reified reflect.Type.
// Most callers want Key[T] instead.
func KeyOf(t reflect.Type, name string) Identity {
	return Identity{contract: t, name: name}
}

// Named returns a copy of id carrying the given registration name.
//
//	ioc.Key[Store]().Named("archive")
func (id Identity) Named(name string) Identity {
	id.name = name
	return id
}

// Contract returns the contract's runtime type.
func (id Identity) Contract() reflect.Type { return id.contract }

// Name returns the registration name, or "" for an unnamed identity.
func (id Identity) Name() string { return id.name }

// String renders the identity for diagnostics: "pkg.Type" or "pkg.Type[name]".
func (id Identity) String() string {
	if id.contract == nil {
		return "<zero identity>"
	}
	if id.name == "" {
		return id.contract.String()
	}
	return fmt.Sprintf("%s[%s]", id.contract, id.name)
}

// typeOf reifies T without needing an instance. The pointer round-trip keeps
// interface types intact, which plain reflect.TypeOf would erase.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
