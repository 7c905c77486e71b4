// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 scales x by math.MaxInt16 and truncates toward zero.
// Values outside [-1, 1] are clamped first so they never wrap around.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * math.MaxInt16)
}

// Int16ToFloat32 normalizes v by math.MaxInt16, the inverse of Float32ToInt16.
// math.MinInt16 maps slightly below -1.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / math.MaxInt16
}
