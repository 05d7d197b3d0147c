// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import "errors"

var (
	ErrUnknownMethod      = errors.New("unknown capture method")
	ErrAdapterBusy        = errors.New("another capture adapter is already running")
	ErrNoActiveAdapter    = errors.New("no capture adapter is running")
	ErrEmptyTranscript    = errors.New("empty transcript")
	ErrEmptyQRText        = errors.New("empty qr text")
	ErrTranscriberClosed  = errors.New("transcriber closed before final segment")
	ErrCaptureUnsupported = errors.New("capture method not supported by this device")
)
