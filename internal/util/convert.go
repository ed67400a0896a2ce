// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "strconv"

// IntToString converts an int to string.
func IntToString(i int) string {
	return strconv.Itoa(i)
}

// FloatToString converts a float64 to string with 2 decimal places.
func FloatToString(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// BytesToMB converts a byte count to megabytes with two decimal places,
// the format used when listing uploaded files.
func BytesToMB(n int64) string {
	return FloatToString(float64(n) / (1024 * 1024))
}
