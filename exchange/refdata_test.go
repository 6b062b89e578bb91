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
	"testing"

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// TestSystemInfo_RequiresSession verifies the request is answered with
// USER_NOT_FOUND before sign-on and with the canned parameters after.
func TestSystemInfo_RequiresSession(t *testing.T) {
	e, sink := newTestEngine()

	req := wire.SystemInfoReq{Header: wire.MessageHeader{TransactionCode: constants.SystemInfoRequest, TraderID: testTrader}}
	mustParse(t, e, req.Marshal())

	var resp wire.SystemInfoData
	resp.Unmarshal(sink.frames[0])
	if resp.Header.ErrorCode != constants.UserNotFound {
		t.Errorf("expected USER_NOT_FOUND, got %d", resp.Header.ErrorCode)
	}

	signOn(t, e, sink)
	mustParse(t, e, req.Marshal())
	resp.Unmarshal(sink.frames[0])

	if resp.Header.TransactionCode != constants.SystemInfoData || resp.Header.ErrorCode != constants.Success {
		t.Fatalf("expected system info data, got code %d error %d",
			resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
	open := wire.MarketStatus{Normal: 1, Oddlot: 1, Spot: 1, Auction: 1}
	if resp.MarketStatus != open || resp.ExMarketStatus != open || resp.PlMarketStatus != open {
		t.Errorf("expected all markets reported open: %+v", resp)
	}
	if resp.UpdatePortfolio != "Y" || resp.BoardLotQuantity != 1 || resp.TickSize != 1 {
		t.Errorf("expected canned trading parameters: %+v", resp)
	}
}

// TestUpdateLocalDatabase_StaleStatus verifies a trader holding an outdated
// market-status copy gets the partial-information short circuit instead of
// the download.
func TestUpdateLocalDatabase_StaleStatus(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)

	// The trader's cached copy is all-closed; the engine opened everything.
	req := wire.UpdateLocalDatabase{
		Header: wire.MessageHeader{TransactionCode: constants.UpdateLocalDatabase, TraderID: testTrader},
	}
	mustParse(t, e, req.Marshal())

	if len(sink.frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(sink.frames))
	}
	var resp wire.SystemInfoData
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.PartialSystemInformation {
		t.Fatalf("expected partial system information, got code %d", resp.Header.TransactionCode)
	}
	open := wire.MarketStatus{Normal: 1, Oddlot: 1, Spot: 1, Auction: 1}
	if resp.MarketStatus != open {
		t.Errorf("partial response must carry the current status, got %+v", resp.MarketStatus)
	}
}

// TestUpdateLocalDatabase_CurrentStatus verifies a matching status copy gets
// the header/data download pair with the inner master-change header.
func TestUpdateLocalDatabase_CurrentStatus(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)

	open := wire.MarketStatus{Normal: 1, Oddlot: 1, Spot: 1, Auction: 1}
	req := wire.UpdateLocalDatabase{
		Header:         wire.MessageHeader{TransactionCode: constants.UpdateLocalDatabase, TraderID: testTrader},
		MarketStatus:   open,
		ExMarketStatus: open,
		PlMarketStatus: open,
	}
	mustParse(t, e, req.Marshal())

	codes := sink.codes()
	if len(codes) != 2 || codes[0] != constants.UpdateLocalDatabaseHdr || codes[1] != constants.UpdateLocalDatabaseData {
		t.Fatalf("expected ldb header then data, got %v", codes)
	}

	var data wire.UpdateLdbData
	data.Unmarshal(sink.frames[1])
	if data.InnerHeader.TransactionCode != constants.BcastPartMstrChg {
		t.Errorf("expected inner master-change header, got code %d", data.InnerHeader.TransactionCode)
	}
	if data.InnerHeader.MessageLength != 0 {
		t.Errorf("inner header length must be zero, got %d", data.InnerHeader.MessageLength)
	}
}

// TestUpdateLocalDatabase_OpeningForcesPartial verifies the sticky opening
// flag short-circuits the download even when the status copy matches.
func TestUpdateLocalDatabase_OpeningForcesPartial(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	e.Market().SetOpening(true)

	open := wire.MarketStatus{Normal: 1, Oddlot: 1, Spot: 1, Auction: 1}
	req := wire.UpdateLocalDatabase{
		Header:         wire.MessageHeader{TransactionCode: constants.UpdateLocalDatabase, TraderID: testTrader},
		MarketStatus:   open,
		ExMarketStatus: open,
		PlMarketStatus: open,
	}
	mustParse(t, e, req.Marshal())

	if got := wire.PeekTransactionCode(sink.frames[0]); got != constants.PartialSystemInformation {
		t.Errorf("expected partial system information while opening, got code %d", got)
	}
}

// TestExchangePortfolio verifies the single-record response shape.
func TestExchangePortfolio(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)

	req := wire.ExchPortfolioReq{Header: wire.MessageHeader{TransactionCode: constants.ExchangePortfolioReq, TraderID: testTrader}}
	mustParse(t, e, req.Marshal())

	var resp wire.ExchPortfolioResp
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.ExchangePortfolioResp {
		t.Fatalf("expected portfolio response, got code %d", resp.Header.TransactionCode)
	}
	if resp.NoOfRecords != 1 || resp.MoreRecords != "N" {
		t.Errorf("expected one final record, got %d records more=%q", resp.NoOfRecords, resp.MoreRecords)
	}
	if resp.Portfolio.Portfolio != "DEMO" || resp.Portfolio.DeleteFlag != "N" {
		t.Errorf("unexpected portfolio row: %+v", resp.Portfolio)
	}
}

// TestMessageDownload_Sequence verifies the header/data/trailer trio and the
// inner replayed message.
func TestMessageDownload_Sequence(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)

	req := wire.MessageDownload{Header: wire.MessageHeader{TransactionCode: constants.MessageDownload, TraderID: testTrader}}
	mustParse(t, e, req.Marshal())

	codes := sink.codes()
	want := []int16{constants.MessageDownloadHeader, constants.MessageDownloadData, constants.MessageDownloadTrailer}
	if len(codes) != len(want) {
		t.Fatalf("expected %d frames, got %v", len(want), codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("frame %d: expected code %d, got %d", i, want[i], codes[i])
		}
	}

	var data wire.MessageDownloadData
	data.Unmarshal(sink.frames[1])
	if data.InnerHeader.TransactionCode != constants.MessageDownloadData {
		t.Errorf("inner header code mismatch: %d", data.InnerHeader.TransactionCode)
	}
	if data.InnerHeader.MessageLength != wire.HeaderSize {
		t.Errorf("inner header length must be %d, got %d", wire.HeaderSize, data.InnerHeader.MessageLength)
	}
	if data.InnerData != downloadSampleMessage {
		t.Errorf("expected canned payload, got %q", data.InnerData)
	}
}
