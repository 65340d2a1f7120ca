// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// fixedTicks is a plot.Ticker that always returns the same ticks.
type fixedTicks []plot.Tick

func (t fixedTicks) Ticks(min, max float64) []plot.Tick {
	return t
}

// decadeTicks is a plot.Ticker for log axes. It labels powers of ten
// and places unlabeled minor ticks between them. Ranges that span
// less than a decade get linear ticks instead.
type decadeTicks struct{}

func (decadeTicks) Ticks(min, max float64) []plot.Tick {
	if !(min > 0) || !(max > min) {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	lo := math.Floor(math.Log10(min))
	hi := math.Ceil(math.Log10(max))
	var ticks []plot.Tick
	majors := 0
	for e := lo; e <= hi; e++ {
		base := math.Pow(10, e)
		for m := 1.0; m < 10; m++ {
			v := m * base
			if v < min || v > max {
				continue
			}
			t := plot.Tick{Value: v}
			if m == 1 {
				t.Label = strconv.FormatFloat(v, 'g', -1, 64)
				majors++
			}
			ticks = append(ticks, t)
		}
	}
	if majors < 2 {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	return ticks
}
