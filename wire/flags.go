/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package wire

// OrderFlags is the unpacked view of the order-flags word carried on order,
// spread-order and trade-confirmation records.
type OrderFlags struct {
	ATO      bool
	Market   bool
	SL       bool
	MIT      bool
	GTC      bool
	IOC      bool
	AON      bool
	Day      bool
	Frozen   bool
	Modified bool
	Traded   bool
}

// Bit layout of the packed flags word (little-endian u16, bit 0 = LSB):
//
//	bit  0 ATO        bit  4 GTC        bit  8 Frozen
//	bit  1 Market     bit  5 IOC        bit  9 Modified
//	bit  2 SL         bit  6 AON        bit 10 Traded
//	bit  3 MIT        bit  7 Day
//
// The table drives both Pack and UnpackOrderFlags so the layout lives in
// exactly one place.
var orderFlagBits = [...]struct {
	mask uint16
	sel  func(*OrderFlags) *bool
}{
	{1 << 0, func(f *OrderFlags) *bool { return &f.ATO }},
	{1 << 1, func(f *OrderFlags) *bool { return &f.Market }},
	{1 << 2, func(f *OrderFlags) *bool { return &f.SL }},
	{1 << 3, func(f *OrderFlags) *bool { return &f.MIT }},
	{1 << 4, func(f *OrderFlags) *bool { return &f.GTC }},
	{1 << 5, func(f *OrderFlags) *bool { return &f.IOC }},
	{1 << 6, func(f *OrderFlags) *bool { return &f.AON }},
	{1 << 7, func(f *OrderFlags) *bool { return &f.Day }},
	{1 << 8, func(f *OrderFlags) *bool { return &f.Frozen }},
	{1 << 9, func(f *OrderFlags) *bool { return &f.Modified }},
	{1 << 10, func(f *OrderFlags) *bool { return &f.Traded }},
}

// Pack encodes the flags into the wire word.
func (f OrderFlags) Pack() uint16 {
	var v uint16
	for _, b := range orderFlagBits {
		if *b.sel(&f) {
			v |= b.mask
		}
	}
	return v
}

// UnpackOrderFlags decodes the wire word into the struct view.
func UnpackOrderFlags(v uint16) OrderFlags {
	var f OrderFlags
	for _, b := range orderFlagBits {
		*b.sel(&f) = v&b.mask != 0
	}
	return f
}

// StockEligibility is the packed eligibility word on the system-information
// record.
//
// Bit layout: bit 0 AON, bit 1 MinimumFill, bit 2 BooksMerged.
type StockEligibility struct {
	AON         bool
	MinimumFill bool
	BooksMerged bool
}

func (e StockEligibility) Pack() uint16 {
	var v uint16
	if e.AON {
		v |= 1 << 0
	}
	if e.MinimumFill {
		v |= 1 << 1
	}
	if e.BooksMerged {
		v |= 1 << 2
	}
	return v
}

func UnpackStockEligibility(v uint16) StockEligibility {
	return StockEligibility{
		AON:         v&(1<<0) != 0,
		MinimumFill: v&(1<<1) != 0,
		BooksMerged: v&(1<<2) != 0,
	}
}
