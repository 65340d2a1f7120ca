// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import "strconv"

var sizeUnits = []struct {
	factor float64
	name   string
}{
	{1 << 30, "GB"},
	{1 << 20, "MB"},
	{1 << 10, "kB"},
}

// SizeLabel returns a short label for a message size in bytes, such
// as "512B", "4kB" or "2MB". The scaled value is truncated toward
// zero, so 1536 is "1kB".
func SizeLabel(bytes float64) string {
	for _, u := range sizeUnits {
		if bytes >= u.factor {
			return strconv.FormatInt(int64(bytes/u.factor), 10) + u.name
		}
	}
	return strconv.FormatInt(int64(bytes), 10) + "B"
}

// SizeTicks returns every step'th value of sizes, starting with the
// first, along with its SizeLabel.
func SizeTicks(sizes []float64, step int) (ticks []float64, labels []string) {
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(sizes); i += step {
		ticks = append(ticks, sizes[i])
		labels = append(labels, SizeLabel(sizes[i]))
	}
	return ticks, labels
}
