// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

// Display labels shared by several families.
const (
	labelMessageSize = "Message Size"
	labelLength      = "Length"
	labelLatency     = "Latency [usec]"
	labelBandwidth   = "Bandwidth [MB/sec]"
)

// A family is a set of benchmarks that share a column layout.
type family struct {
	grammar Grammar
	xLabel  string
	y       []column
	names   []string
}

type column struct {
	name  string
	label string
	field int
}

var families = []family{
	// Point-to-point tools: "size value" rows.
	{
		grammar: Simple,
		xLabel:  labelMessageSize,
		y:       []column{{"latency", labelLatency, 1}},
		names:   []string{"pt2pt_osu_latency"},
	},
	{
		grammar: Simple,
		xLabel:  labelMessageSize,
		y:       []column{{"bandwidth", labelBandwidth, 1}},
		names:   []string{"pt2pt_osu_bw"},
	},
	// #bytes #repetitions t[usec] Mbytes/sec
	{
		grammar: MultiBlock,
		xLabel:  labelMessageSize,
		y: []column{
			{"latency", labelLatency, 2},
			{"bandwidth", labelBandwidth, 3},
		},
		names: []string{
			"PingPong",
			"PingPongSpecificSource",
			"PingPing",
			"PingPingSpecificSource",
		},
	},
	// #bytes #repetitions t_min[usec] t_max[usec] t_avg[usec] Mbytes/sec
	{
		grammar: MultiBlock,
		xLabel:  labelLength,
		y: []column{
			{"latency", labelLatency, 4},
			{"bandwidth", labelBandwidth, 5},
		},
		names: []string{"Sendrecv", "Exchange"},
	},
	// #bytes #repetitions t_min[usec] t_max[usec] t_avg[usec]
	{
		grammar: MultiBlock,
		xLabel:  labelMessageSize,
		y:       []column{{"avgtime", labelLatency, 4}},
		names: []string{
			"Bcast",
			"Alltoall",
			"Alltoallv",
			"Scatter",
			"Scatterv",
			"Gather",
			"Gatherv",
			"Allgather",
			"Allgatherv",
			"Reduce",
			"Allreduce",
			"Reduce_scatter",
		},
	},
	// #bytes #repetitions t_ovrl[usec] t_pure[usec] t_CPU[usec] overlap[%]
	{
		grammar: MultiBlock,
		xLabel:  labelLength,
		y: []column{
			{"overlap", "Overlap [usec]", 2},
			{"cpu", "CPU [usec]", 4},
			{"overlappercent", "Overlap [%]", 5},
		},
		// TODO: Ibarrier rows start with the repetition count and
		// carry no size column; give it a repetitions axis.
		names: []string{
			"Ibarrier",
			"Iallreduce",
			"Ireduce_scatter",
			"Ireduce",
			"Ialltoall",
			"Ialltoallv",
			"Iscatter",
			"Iscatterv",
			"Igather",
			"Igatherv",
			"Iallgather",
			"Iallgatherv",
			"Ibcast",
		},
	},
}

// standardVariants expands families into one Variant per benchmark name.
func standardVariants() []*Variant {
	var vs []*Variant
	for _, f := range families {
		for _, name := range f.names {
			v := &Variant{
				Name:    name,
				Grammar: f.grammar,
				X:       []string{"bytes"},
				Labels:  map[string]string{"bytes": f.xLabel},
				Fields:  map[string]int{"bytes": 0},
			}
			for _, c := range f.y {
				v.Y = append(v.Y, c.name)
				v.Labels[c.name] = c.label
				v.Fields[c.name] = c.field
			}
			vs = append(vs, v)
		}
	}
	return vs
}
