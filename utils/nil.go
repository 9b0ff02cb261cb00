package utils

import "reflect"

// IsNil reports whether the value boxed inside the interface is nil.
//
// An interface carries a type and a value, and a plain i == nil check is
// true only when both are nil:
//
//	var p *int
//	var i any = p
//	fmt.Println(i == nil) // false!
//
// reflect.Value.IsNil panics for kinds that cannot be nil, so those
// default to false.
func IsNil(i any) bool {
	if i == nil {
		return true
	}

	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
