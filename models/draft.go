// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package models

import "time"

// Draft is an item the user confirmed in the terminal client while the
// server was unreachable. The full item is kept as a JSON payload so the
// draft survives schema-free until it is resubmitted.
type Draft struct {
	ID        int64     `json:"id"`
	Item      Item      `json:"item"`
	CreatedAt time.Time `json:"createdAt"`
}
