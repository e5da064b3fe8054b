package dispatch

import "reflect"

// SlotID is an opaque "callable identity" cookie, a pair of pointer-sized
// values identifying a slot for Connect/Disconnect purposes.
//
// Go method values do not have a stable address across repeated
// evaluations (obj.Method produces a fresh func value every time it is
// taken), so this package cannot recover slot identity purely by reflecting
// on the callable. Callers build a SlotID once (NewSlotID/NewBoundSlotID)
// and reuse the same value for Connect and the matching Disconnect;
// duplicate Connect calls with the same (receiver, SlotID) are a no-op.
type SlotID struct {
	fn  uintptr
	obj uintptr
}

// NewSlotID derives a SlotID from a free function or a closure over no
// receiver identity of its own (e.g. a package-level func or a literal
// closure kept in a variable and reused).
func NewSlotID(fn any) SlotID {
	return SlotID{fn: reflect.ValueOf(fn).Pointer()}
}

// NewBoundSlotID derives a SlotID that additionally incorporates the
// identity of the receiver the callable is bound to, distinguishing the
// same method on two different instances.
func NewBoundSlotID(receiver any, fn any) SlotID {
	id := NewSlotID(fn)
	v := reflect.ValueOf(receiver)
	if v.Kind() == reflect.Ptr {
		id.obj = v.Pointer()
	}
	return id
}

var zeroSlotID SlotID
