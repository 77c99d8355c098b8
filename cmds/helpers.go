package cmds

import (
	"fmt"
	"reflect"
)

// Var defines "name V" setting the returned value, and "name." resetting it.
func Var[T any](name string) *T {
	value := new(T)

	Define(name, Func(func(v T) {
		*value = v
	}).Desc(fmt.Sprintf("set %s (%v)", name, reflect.TypeFor[T]())))

	Define(name+".", Func(func() {
		var zero T
		*value = zero
	}).Desc("reset "+name))

	return value
}

// Switch defines "name" turning the returned flag on, and "!name" turning it off.
func Switch(name string) *bool {
	value := new(bool)

	Define(name, Func(func() {
		*value = true
	}).Desc("enable "+name))

	Define("!"+name, Func(func() {
		*value = false
	}).Desc("disable "+name))

	return value
}

// Collect defines "name V" appending to the returned slice. It may repeat.
func Collect[T any](name string) *[]T {
	value := new([]T)
	Define(name, Func(func(v T) {
		*value = append(*value, v)
	}).Desc(fmt.Sprintf("append to %s (%v, repeatable)", name, reflect.TypeFor[T]())))
	return value
}
