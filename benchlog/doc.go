// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchlog parses the text logs of network microbenchmark
// tools into tables.
//
// Two families of logs are understood. The point-to-point tools print
// a single header line such as
//
//	# OSU MPI Latency Test v5.6
//	# Size          Latency (us)
//	0                       0.05
//	1                       0.06
//
// followed by one block of "size value" rows. The collective suite
// announces each benchmark with a banner and a process count, and may
// repeat a benchmark several times in one log:
//
//	#----------------------------------------------------------------
//	# Benchmarking PingPong
//	# #processes = 2
//	#----------------------------------------------------------------
//	       #bytes #repetitions      t[usec]   Mbytes/sec
//	            0         1000         0.20         0.00
//	            1         1000         0.21         4.76
//
// Every benchmark is described by a Variant, and Variants are looked
// up by name in a Registry. Standard returns a Registry of all known
// variants; build it once and share it between Parsers.
//
// Parsing never fails on malformed data. A row that does not decode
// ends the current block, and a log without a usable header yields an
// Outcome whose Status is Aborted or NoHeader. The only error a
// caller must handle is a request for a benchmark name that is not
// registered.
package benchlog
