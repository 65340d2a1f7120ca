// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit formats message sizes and measured values for
// axis ticks, text tables, and reports.
package benchunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Class specifies how the values of a column are labelled.
type Class int

const (
	// Decimal values are printed as plain numbers.
	Decimal Class = iota
	// Binary values are message sizes, labelled by SizeLabel with
	// powers of 1024.
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ClassOf returns the Class of the named table column. Message sizes
// are Binary; timings, bandwidths, and percentages are Decimal.
func ClassOf(column string) Class {
	if column == "bytes" {
		return Binary
	}
	return Decimal
}

// A Scaler formats numbers with a fixed number of digits after the
// decimal point.
type Scaler struct {
	Prec int // Digits after the decimal point
}

// Format formats val. For example, a Scaler with Prec 3 formats
// 0.21 as "0.210".
func (s Scaler) Format(val float64) string {
	return strconv.FormatFloat(val, 'f', s.Prec, 64)
}

// maxPrec bounds the digits printed after the decimal point.
const maxPrec = 10

// prec returns the digits after the decimal point needed to show v
// with four significant digits, or three below 1.
func prec(v float64) int {
	if v >= 99.995 {
		return 1
	}
	if v >= 9.9995 {
		return 2
	}
	n := 3
	for t := 0.099995; v < t && n < maxPrec; t /= 10 {
		n++
	}
	return n
}

// FixedScale returns a Scaler that shows at least three significant
// digits for every value in vals. The precision is chosen by the
// non-zero finite value closest to zero.
func FixedScale(vals []float64) Scaler {
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && !math.IsInf(v, 0) && !math.IsNaN(v) && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3}
	}
	return Scaler{prec(min)}
}
