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

// seedTrade places one fill in the ledger for testTrader.
func seedTrade(e *Engine) wire.TradeInq {
	trade := wire.TradeInq{
		FillNumber:        555,
		TokenNo:           35001,
		FillQuantity:      100,
		FillPrice:         250000,
		MktType:           constants.MktTypeNormal,
		RequestedBy:       constants.RequestedByBuyer,
		BuyOpenClose:      constants.PositionOpen,
		SellOpenClose:     constants.PositionOpen,
		BuyBrokerID:       testBroker,
		SellBrokerID:      "B0002",
		BuyAccountNumber:  "BUYACC",
		SellAccountNumber: "SELLACC",
		TraderID:          testTrader,
		Contract:          wire.ContractDesc{InstrumentName: "FUTSTK", Symbol: "RELIANCE", ExpiryDate: 20260827},
	}
	e.Trades().Put(trade)
	return trade
}

// makeTradeMod returns a modification request changing the buy account.
func makeTradeMod(trade wire.TradeInq) wire.TradeInq {
	req := trade
	req.Header = wire.MessageHeader{TransactionCode: constants.TradeModIn, TraderID: testTrader}
	req.BuyAccountNumber = "NEWACC"
	return req
}

func expectTradeResponse(t *testing.T, sink *frameSink, code, errCode int16) wire.TradeInq {
	t.Helper()
	if len(sink.frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(sink.frames))
	}
	var resp wire.TradeInq
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != code || resp.Header.ErrorCode != errCode {
		t.Fatalf("expected code %d error %d, got code %d error %d",
			code, errCode, resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
	sink.reset()
	return resp
}

// TestTradeModification_ConfirmThenDuplicate verifies the buyer-side account
// change is applied once, and the identical repeat is refused as a duplicate.
func TestTradeModification_ConfirmThenDuplicate(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	trade := seedTrade(e)

	req := makeTradeMod(trade)
	mustParse(t, e, req.Marshal())
	expectTradeResponse(t, sink, constants.TradeModifyConfirm, constants.Success)

	stored, _ := e.Trades().Get(trade.FillNumber)
	if stored.BuyAccountNumber != "NEWACC" {
		t.Errorf("buy account not applied, got %q", stored.BuyAccountNumber)
	}
	if stored.SellAccountNumber != "SELLACC" {
		t.Errorf("buyer-side request must not touch the sell account, got %q", stored.SellAccountNumber)
	}

	mustParse(t, e, req.Marshal())
	expectTradeResponse(t, sink, constants.TradeModifyReject, constants.ErrDupRequest)
}

// TestTradeModification_BothSides verifies RequestedBy both rewrites both
// accounts and open/close markers.
func TestTradeModification_BothSides(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	trade := seedTrade(e)

	req := makeTradeMod(trade)
	req.RequestedBy = constants.RequestedByBoth
	req.SellAccountNumber = "NEWSELL"
	req.BuyOpenClose = constants.PositionClose
	req.SellOpenClose = constants.PositionClose
	mustParse(t, e, req.Marshal())
	expectTradeResponse(t, sink, constants.TradeModifyConfirm, constants.Success)

	stored, _ := e.Trades().Get(trade.FillNumber)
	if stored.BuyAccountNumber != "NEWACC" || stored.SellAccountNumber != "NEWSELL" {
		t.Errorf("both accounts must change: %+v", stored)
	}
	if stored.BuyOpenClose != constants.PositionClose || stored.SellOpenClose != constants.PositionClose {
		t.Errorf("open/close markers must change: %+v", stored)
	}
}

// TestTradeModification_Rejections covers the gate chain.
func TestTradeModification_Rejections(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	trade := seedTrade(e)

	reject := func(req wire.TradeInq, errCode int16) {
		t.Helper()
		sink.reset()
		mustParse(t, e, req.Marshal())
		expectTradeResponse(t, sink, constants.TradeModifyReject, errCode)
	}

	unknown := makeTradeMod(trade)
	unknown.FillNumber = 999
	reject(unknown, constants.ErrInvalidFillNumber)

	badQty := makeTradeMod(trade)
	badQty.FillQuantity = 50
	reject(badQty, constants.OeDiffTrdModVol)

	unchanged := makeTradeMod(trade)
	unchanged.BuyAccountNumber = trade.BuyAccountNumber
	reject(unchanged, constants.ErrDataNotChanged)

	badMkt := makeTradeMod(trade)
	badMkt.MktType = '9'
	reject(badMkt, constants.InvalidOrder)

	badOpenClose := makeTradeMod(trade)
	badOpenClose.BuyOpenClose = 'X'
	reject(badOpenClose, constants.InvalidOrder)

	// A stranger to the fill cannot modify it.
	stranger := wire.SignOn{
		Header:   wire.MessageHeader{TransactionCode: constants.SignonRequestIn, TraderID: 303},
		UserID:   303,
		BrokerID: "B0999",
	}
	mustParse(t, e, stranger.Marshal())
	sink.reset()
	foreign := makeTradeMod(trade)
	foreign.Header.TraderID = 303
	foreign.TraderID = 303
	foreign.BuyBrokerID = "B0999"
	mustParse(t, e, foreign.Marshal())
	expectTradeResponse(t, sink, constants.TradeModifyReject, constants.ErrNotYourFill)

	// Buy-side broker in closeout blocks the change.
	e.Brokers().SetCloseout(testBroker, true)
	reject(makeTradeMod(trade), constants.CloseoutTrdmodReject)
}

// TestTradeCancellation_RecordsOnly verifies cancellation acknowledges the
// request without removing the fill, and a repeat from the same trader is a
// duplicate.
func TestTradeCancellation_RecordsOnly(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	trade := seedTrade(e)

	req := trade
	req.Header = wire.MessageHeader{TransactionCode: constants.TradeCancelIn, TraderID: testTrader}
	mustParse(t, e, req.Marshal())
	expectTradeResponse(t, sink, constants.TradeCancelConfirm, constants.Success)

	if _, ok := e.Trades().Get(trade.FillNumber); !ok {
		t.Fatal("the fill must survive a one-sided cancellation request")
	}

	mustParse(t, e, req.Marshal())
	expectTradeResponse(t, sink, constants.TradeCancelReject, constants.ErrDupTrdCxlRequest)
}

// TestTradeCancellation_IndependentOfModification verifies the modify and
// cancel duplicate sets do not interfere.
func TestTradeCancellation_IndependentOfModification(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	trade := seedTrade(e)

	mod := makeTradeMod(trade)
	mustParse(t, e, mod.Marshal())
	expectTradeResponse(t, sink, constants.TradeModifyConfirm, constants.Success)

	cancel := trade
	cancel.Header = wire.MessageHeader{TransactionCode: constants.TradeCancelIn, TraderID: testTrader}
	mustParse(t, e, cancel.Marshal())
	expectTradeResponse(t, sink, constants.TradeCancelConfirm, constants.Success)
}

// TestSendTradeConfirmation verifies an injected fill lands in the ledger
// and notifies the trader with the traded flag set.
func TestSendTradeConfirmation(t *testing.T) {
	e, sink := newTestEngine()

	trade := wire.TradeInq{
		FillNumber:       777,
		TokenNo:          35001,
		FillQuantity:     50,
		FillPrice:        251000,
		RequestedBy:      constants.RequestedByBuyer,
		BuyOpenClose:     constants.PositionOpen,
		SellOpenClose:    constants.PositionOpen,
		BuyBrokerID:      testBroker,
		BuyAccountNumber: "BUYACC",
		TraderID:         testTrader,
		Contract:         wire.ContractDesc{Symbol: "RELIANCE"},
	}
	e.SendTradeConfirmation(trade, testTS)

	if _, ok := e.Trades().Get(777); !ok {
		t.Fatal("confirmed fill must be recorded in the ledger")
	}

	var msg wire.TradeConfirm
	msg.Unmarshal(sink.frames[0])
	if msg.Header.TransactionCode != constants.TradeConfirmation {
		t.Fatalf("expected trade confirmation, got code %d", msg.Header.TransactionCode)
	}
	if !wire.UnpackOrderFlags(msg.Flags).Traded {
		t.Error("confirmation must carry the traded flag")
	}
	if msg.BuySellIndicator != constants.BuyIndicator || msg.AccountNumber != "BUYACC" {
		t.Errorf("buyer-side fields expected: %+v", msg)
	}
	if msg.FillQuantity != 50 || msg.FillNumber != 777 {
		t.Errorf("fill terms mismatch: %+v", msg)
	}
}
