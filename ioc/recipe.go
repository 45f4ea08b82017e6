package ioc

import (
	"fmt"
	"reflect"
)

// ── Recipes ───────────────────────────────────────────────────────────────────

// recipeKind discriminates the closed set of manufacturing strategies.
type recipeKind int

const (
	constructorKind recipeKind = iota
	delegateKind
)

// recipe is the stored manufacturing strategy for one Identity. Exactly one
// variant is populated, per kind. Recipes are immutable after insertion.
type recipe struct {
	kind recipeKind

	// constructor variant: a func whose parameters are resolved from the
	// container in order before the call.
	ctor reflect.Value
	args []Identity

	// delegate variant: manufactures the instance directly.
	factory func() (any, error)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// newConstructorRecipe validates ctor against the contract and derives the
// argument identities when none are given. Accepted signatures are
// func(deps...) T and func(deps...) (T, error) with T assignable to contract.
func newConstructorRecipe(contract reflect.Type, ctor any, args []Identity) (recipe, error) {
	fn := reflect.ValueOf(ctor)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return recipe{}, fmt.Errorf("%w: constructor for %s must be a function, got %T", ErrInvalidRecipe, contract, ctor)
	}

	t := fn.Type()
	if t.IsVariadic() {
		return recipe{}, fmt.Errorf("%w: constructor for %s must not be variadic", ErrInvalidRecipe, contract)
	}

	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return recipe{}, fmt.Errorf("%w: constructor for %s: second result must be error, got %s", ErrInvalidRecipe, contract, t.Out(1))
		}
	default:
		return recipe{}, fmt.Errorf("%w: constructor for %s must return the instance and an optional error", ErrInvalidRecipe, contract)
	}

	if !t.Out(0).AssignableTo(contract) {
		return recipe{}, fmt.Errorf("%w: constructor returns %s, which does not satisfy contract %s", ErrInvalidRecipe, t.Out(0), contract)
	}

	// Default each parameter to the unnamed identity of its own type.
	if len(args) == 0 && t.NumIn() > 0 {
		args = make([]Identity, t.NumIn())
		for i := range args {
			args[i] = Identity{contract: t.In(i)}
		}
	}
	if len(args) != t.NumIn() {
		return recipe{}, fmt.Errorf("%w: constructor for %s takes %d parameters, %d argument identities given", ErrInvalidRecipe, contract, t.NumIn(), len(args))
	}
	for i, arg := range args {
		if arg.contract == nil {
			return recipe{}, fmt.Errorf("%w: constructor for %s: argument %d has a zero identity", ErrInvalidRecipe, contract, i)
		}
		if !arg.contract.AssignableTo(t.In(i)) {
			return recipe{}, fmt.Errorf("%w: constructor for %s: argument %d resolves %s, parameter wants %s", ErrInvalidRecipe, contract, i, arg.contract, t.In(i))
		}
	}

	return recipe{kind: constructorKind, ctor: fn, args: args}, nil
}

// newDelegateRecipe wraps a zero-argument factory.
func newDelegateRecipe(factory func() (any, error)) (recipe, error) {
	if factory == nil {
		return recipe{}, fmt.Errorf("%w: nil delegate factory", ErrInvalidRecipe)
	}
	return recipe{kind: delegateKind, factory: factory}, nil
}
