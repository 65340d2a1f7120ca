// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package influx exports benchmark tables to an InfluxDB bucket.
package influx

import (
	"context"
	"math"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/netbench/netbench/benchtab"
)

// DefaultMeasurement is the measurement used when Writer.Measurement
// is empty.
const DefaultMeasurement = "netbench"

// A PointWriter writes points synchronously.
// The client's api.WriteAPIBlocking satisfies it.
type PointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// A Run identifies the benchmark run a table came from. Its fields
// become point tags.
type Run struct {
	Suite     string
	Test      string
	Benchmark string
	Procs     int
	// Time stamps every point of the run.
	Time time.Time
}

// A Writer writes tables as points, one point per table row.
type Writer struct {
	API         PointWriter
	Measurement string
}

// NewWriter returns a Writer for bucket of org on the server at url,
// and a function that releases the client.
func NewWriter(url, token, org, bucket string) (*Writer, func()) {
	client := influxdb2.NewClient(url, token)
	return &Writer{API: client.WriteAPIBlocking(org, bucket)}, client.Close
}

// Points returns the points of t. Independent columns, such as the
// message size, become tags; dependent columns become float fields.
// Values that are not finite are left out, and rows without any
// finite value produce no point.
func (w *Writer) Points(run Run, t *benchtab.Table) []*write.Point {
	meas := w.Measurement
	if meas == "" {
		meas = DefaultMeasurement
	}
	indep, dep := t.Indep(), t.Dep()
	var pts []*write.Point
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		tags := map[string]string{
			"suite":     run.Suite,
			"test":      run.Test,
			"benchmark": run.Benchmark,
			"procs":     strconv.Itoa(run.Procs),
		}
		for j, col := range indep {
			tags[col] = strconv.FormatFloat(row[j], 'f', -1, 64)
		}
		fields := make(map[string]interface{})
		for j, col := range dep {
			v := row[len(indep)+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			fields[col] = v
		}
		if len(fields) == 0 {
			continue
		}
		pts = append(pts, influxdb2.NewPoint(meas, tags, fields, run.Time))
	}
	return pts
}

// Write writes the points of t.
func (w *Writer) Write(ctx context.Context, run Run, t *benchtab.Table) error {
	pts := w.Points(run, t)
	if len(pts) == 0 {
		return nil
	}
	return w.API.WritePoint(ctx, pts...)
}
