// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import "fmt"

// Method identifies one way of getting an item into the inventory.
type Method int

const (
	MethodNone Method = iota
	MethodPhoto
	MethodBarcode
	MethodVoice
	MethodQR
	MethodManual
)

var methodNames = map[Method]string{
	MethodNone:    "none",
	MethodPhoto:   "photo",
	MethodBarcode: "barcode",
	MethodVoice:   "voice",
	MethodQR:      "qr",
	MethodManual:  "manual",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod maps a method name back to its [Method] value.
func ParseMethod(name string) (Method, error) {
	for method, methodName := range methodNames {
		if methodName == name {
			return method, nil
		}
	}
	return MethodNone, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}
