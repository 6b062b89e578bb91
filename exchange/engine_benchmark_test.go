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

// Benchmarks for the frame-processing hot path.
//
// Run with: go test -bench=. -benchmem

package exchange

import (
	"testing"

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// newBenchEngine returns an engine with a signed-on trader, a discarding
// sink, and an always-reject oracle so the order book stays empty across
// iterations.
func newBenchEngine(b *testing.B, rolls ...int) *Engine {
	e := NewEngine(Config{RegularLot: 1})
	e.SetOracle(&ScriptedOracle{Rolls: rolls})
	e.Market().SetStatus(true, true, true, true)
	e.SetSink(func([]byte) {})

	on := wire.SignOn{
		Header:   wire.MessageHeader{TransactionCode: constants.SignonRequestIn, TraderID: testTrader},
		UserID:   testTrader,
		BrokerID: testBroker,
	}
	if consumed, err := e.Parse(on.Marshal(), testTS); err || consumed == 0 {
		b.Fatal("sign-on failed")
	}
	return e
}

func BenchmarkParse_OrderEntry(b *testing.B) {
	e := newBenchEngine(b, 99)
	order := makeOrder()
	frame := order.Marshal()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Parse(frame, testTS); err {
			b.Fatal("framing error")
		}
	}
}

func BenchmarkParse_OrderEntryConfirmed(b *testing.B) {
	e := newBenchEngine(b, 0)
	order := makeOrder()
	frame := order.Marshal()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Parse(frame, testTS); err {
			b.Fatal("framing error")
		}
	}
}

func BenchmarkParse_SpreadEntry(b *testing.B) {
	e := newBenchEngine(b, 99)
	registerCombo(e)
	spread := makeSpread()
	frame := spread.Marshal()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Parse(frame, testTS); err {
			b.Fatal("framing error")
		}
	}
}

func BenchmarkParse_FrameBatch(b *testing.B) {
	e := newBenchEngine(b, 99)
	order := makeOrder()
	single := order.Marshal()
	var batch []byte
	for i := 0; i < 10; i++ {
		batch = append(batch, single...)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Parse(batch, testTS); err {
			b.Fatal("framing error")
		}
	}
}

func BenchmarkOrderEntry_Marshal(b *testing.B) {
	order := makeOrder()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = order.Marshal()
	}
}

func BenchmarkOrderEntry_Unmarshal(b *testing.B) {
	order := makeOrder()
	frame := order.Marshal()
	var out wire.OrderEntry

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out.Unmarshal(frame)
	}
}
