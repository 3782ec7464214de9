package util

import "sync/atomic"

// SafeFlag is a boolean safe to use concurrently.
type SafeFlag struct {
	value int32
}

// NewSafeBool creates a new SafeFlag.
func NewSafeBool() *SafeFlag {
	return &SafeFlag{}
}

// NewSafeBoolWithValue creates a new SafeFlag with an initial value.
func NewSafeBoolWithValue(initialValue bool) *SafeFlag {
	var intValue int32
	if initialValue {
		intValue = 1
	}
	return &SafeFlag{value: intValue}
}

// Set sets the value of the flag and returns the new value.
func (sb *SafeFlag) Set(newValue bool) bool {
	var intValue int32
	if newValue {
		intValue = 1
	}
	atomic.StoreInt32(&sb.value, intValue)
	return newValue
}

// Value returns the current value of the flag.
func (sb *SafeFlag) Value() bool {
	return atomic.LoadInt32(&sb.value) != 0
}

// Toggle toggles the value of the flag and returns the new value.
func (sb *SafeFlag) Toggle() bool {
	return sb.Set(!sb.Value())
}

// TestAndSet sets the flag to true and reports whether it was previously
// false, so callers can claim single ownership of a resource.
func (sb *SafeFlag) TestAndSet() bool {
	return atomic.CompareAndSwapInt32(&sb.value, 0, 1)
}
