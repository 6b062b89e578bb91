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

package exchange

import (
	"fmt"
	"testing"

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// seedMarketStats fills the store with n distinct contract rows.
func seedMarketStats(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Stats().SetMarketStats(wire.MktStatsData{
			Contract: wire.ContractDesc{
				InstrumentName: "FUTSTK",
				Symbol:         fmt.Sprintf("SYM%02d", i),
				ExpiryDate:     20260827,
			},
			OpenPrice:           1000 + int32(i),
			ClosingPrice:        1100 + int32(i),
			TotalQuantityTraded: 500,
		})
	}
}

// TestGenerateBhavcopy_Regular verifies the packet sequence with one record
// per data frame and the trailer's packet count.
func TestGenerateBhavcopy_Regular(t *testing.T) {
	e, sink := newTestEngine()
	seedMarketStats(e, 5)

	e.GenerateBhavcopy('N', false, testTS)

	codes := sink.codes()
	want := []int16{
		constants.BcastJrnlVctMsg,
		constants.RprtMarketStatsHdr,
		constants.RprtMarketStatsOutRpt,
		constants.RprtMarketStatsOutRpt,
		constants.RprtMarketStatsOutRpt,
		constants.RprtMarketStatsOutRpt,
		constants.RprtMarketStatsOutRpt,
		constants.RprtMarketStatsTrailer,
		constants.MktIdxRptData,
	}
	if len(codes) != len(want) {
		t.Fatalf("expected %d frames, got %v", len(want), codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("frame %d: expected code %d, got %d", i, want[i], codes[i])
		}
	}

	var hdr wire.BhavcopyHeader
	hdr.Unmarshal(sink.frames[1])
	if hdr.MessageType != 'N' || hdr.ReportDate != epochSeconds(testTS) {
		t.Errorf("header fields mismatch: %+v", hdr)
	}

	var pkt wire.MktStatsReport
	pkt.Unmarshal(sink.frames[2])
	if pkt.NumberOfRecords != 1 || pkt.Stats.Contract.Symbol != "SYM00" {
		t.Errorf("first data packet mismatch: %+v", pkt)
	}

	var trailer wire.BhavcopyTrailer
	trailer.Unmarshal(sink.frames[7])
	if trailer.NumberOfPackets != 5 {
		t.Errorf("expected 5 data packets in trailer, got %d", trailer.NumberOfPackets)
	}
}

// TestGenerateBhavcopy_Enhanced verifies four-record batching: five rows
// produce a full packet and a one-record remainder.
func TestGenerateBhavcopy_Enhanced(t *testing.T) {
	e, sink := newTestEngine()
	seedMarketStats(e, 5)

	e.GenerateBhavcopy('N', true, testTS)

	var packets []wire.EnhancedMktStatsReport
	for _, f := range sink.frames {
		if wire.PeekTransactionCode(f) == constants.EnhncdRprtMarketStatsOutRpt {
			var pkt wire.EnhancedMktStatsReport
			pkt.Unmarshal(f)
			packets = append(packets, pkt)
		}
	}
	if len(packets) != 2 {
		t.Fatalf("expected 2 enhanced packets for 5 rows, got %d", len(packets))
	}
	if packets[0].NumberOfRecords != 4 || packets[1].NumberOfRecords != 1 {
		t.Errorf("expected 4+1 batching, got %d+%d",
			packets[0].NumberOfRecords, packets[1].NumberOfRecords)
	}

	var trailer wire.BhavcopyTrailer
	trailer.Unmarshal(sink.frames[len(sink.frames)-2])
	if trailer.NumberOfPackets != 2 {
		t.Errorf("expected 2 data packets in trailer, got %d", trailer.NumberOfPackets)
	}
}

// TestGenerateSpreadBhavcopy verifies three-record batching and the opening
// and closing journal messages on the spread code.
func TestGenerateSpreadBhavcopy(t *testing.T) {
	e, sink := newTestEngine()
	for i := 0; i < 4; i++ {
		e.Stats().SetSpreadStats(wire.SpdStatsData{
			Token1:              int32(100 + i),
			Token2:              int32(200 + i),
			TotalQuantityTraded: 50,
		})
	}

	e.GenerateSpreadBhavcopy('N', testTS)

	codes := sink.codes()
	want := []int16{
		constants.SpdBcJrnlVctMsg,
		constants.RprtMarketStatsHdr,
		constants.SpdStatsOutRpt,
		constants.SpdStatsOutRpt,
		constants.RprtMarketStatsTrailer,
		constants.SpdBcJrnlVctMsg,
	}
	if len(codes) != len(want) {
		t.Fatalf("expected %d frames, got %v", len(want), codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("frame %d: expected code %d, got %d", i, want[i], codes[i])
		}
	}

	var first wire.SpdStatsReport
	first.Unmarshal(sink.frames[2])
	if first.NumberOfRecords != 3 {
		t.Errorf("expected 3 records in the first packet, got %d", first.NumberOfRecords)
	}
	var second wire.SpdStatsReport
	second.Unmarshal(sink.frames[3])
	if second.NumberOfRecords != 1 {
		t.Errorf("expected 1 record in the second packet, got %d", second.NumberOfRecords)
	}

	var done wire.BcastJournalMessage
	done.Unmarshal(sink.frames[5])
	if done.Message != "Spread bhavcopy broadcast success" {
		t.Errorf("unexpected closing message %q", done.Message)
	}
}

// TestIndexReports verifies the headline index frame and ten-record batching
// for industry and sector rows.
func TestIndexReports(t *testing.T) {
	e, sink := newTestEngine()

	e.Stats().SetMarketIndex(wire.MktIndexReport{
		IndexName:    "NIFTY 50",
		IndexValue:   2250000,
		ClosingIndex: 2248000,
	})
	for i := 0; i < 12; i++ {
		e.Stats().SetIndustryIndex(fmt.Sprintf("IND%02d", i), int32(1000+i))
	}
	e.Stats().SetSectorIndex("BANKING", "PSU", 5000)
	e.Stats().SetSectorIndex("BANKING", "PRIVATE", 6000)

	e.GenerateBhavcopy('N', false, testTS)

	var industryPackets []wire.IndustryIndexReport
	var sectorPackets []wire.SectorIndexReport
	var sawHeadline bool
	for _, f := range sink.frames {
		switch wire.PeekTransactionCode(f) {
		case constants.MktIdxRptData:
			var idx wire.MktIndexReport
			idx.Unmarshal(f)
			if idx.IndexName != "NIFTY 50" || idx.IndexValue != 2250000 {
				t.Errorf("headline index mismatch: %+v", idx)
			}
			sawHeadline = true
		case constants.IndIdxRptDataCode:
			var pkt wire.IndustryIndexReport
			pkt.Unmarshal(f)
			industryPackets = append(industryPackets, pkt)
		case constants.SectIdxRptDataCode:
			var pkt wire.SectorIndexReport
			pkt.Unmarshal(f)
			sectorPackets = append(sectorPackets, pkt)
		}
	}

	if !sawHeadline {
		t.Error("headline index frame missing")
	}
	if len(industryPackets) != 2 || industryPackets[0].NoOfRecords != 10 || industryPackets[1].NoOfRecords != 2 {
		t.Fatalf("expected 10+2 industry batching, got %d packets", len(industryPackets))
	}
	if len(sectorPackets) != 1 || sectorPackets[0].NoOfRecords != 2 || sectorPackets[0].IndustryName != "BANKING" {
		t.Fatalf("expected one BANKING sector packet with 2 rows, got %+v", sectorPackets)
	}
	// Rows are name-sorted for deterministic order.
	if sectorPackets[0].Entries[0].IndustryName != "PRIVATE" {
		t.Errorf("expected sorted sector rows, got %q first", sectorPackets[0].Entries[0].IndustryName)
	}
}
