// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package bitutil implements the bit counting helpers used to size adder
// workspace registers. An error here silently mis-allocates workspace, so the
// helpers are unit tested against math/bits on a large sample.
package bitutil

import "golang.org/x/exp/constraints"

// OnesCount returns the number of set bits in x (its Hamming weight) using
// the parallel pairwise reduction; the cost is fixed, not proportional to the
// number of set bits.
func OnesCount[T constraints.Unsigned](x T) int {
	v := uint64(x)
	v = (v & 0x5555555555555555) + ((v & 0xAAAAAAAAAAAAAAAA) >> 1)
	v = (v & 0x3333333333333333) + ((v & 0xCCCCCCCCCCCCCCCC) >> 2)
	v = (v & 0x0F0F0F0F0F0F0F0F) + ((v & 0xF0F0F0F0F0F0F0F0) >> 4)
	v *= 0x0101010101010101
	return int(v >> 56)
}

// Log2Floor returns ⌊log2(x)⌋. It returns -1 for x == 0.
func Log2Floor[T constraints.Unsigned](x T) int {
	if x == 0 {
		return -1
	}
	v := uint64(x)
	n := 0
	if v >= 1<<32 {
		v >>= 32
		n += 32
	}
	if v >= 1<<16 {
		v >>= 16
		n += 16
	}
	if v >= 1<<8 {
		v >>= 8
		n += 8
	}
	if v >= 1<<4 {
		v >>= 4
		n += 4
	}
	if v >= 1<<2 {
		v >>= 2
		n += 2
	}
	if v >= 1<<1 {
		n++
	}
	return n
}
