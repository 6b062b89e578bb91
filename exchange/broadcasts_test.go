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
	"strings"
	"testing"

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// TestSpreadCombinationBroadcasts verifies add, update and periodic
// re-broadcast of combination master records.
func TestSpreadCombinationBroadcasts(t *testing.T) {
	e, sink := newTestEngine()

	info := wire.SpreadUpdateInfo{
		Token1:         spreadToken1,
		Token2:         spreadToken2,
		ReferencePrice: 1000,
		Eligibility:    constants.CombinationEligible,
		DeleteFlag:     "N",
	}
	e.AddSpreadCombination(info, testTS)

	var msg wire.SpreadMasterChange
	msg.Unmarshal(sink.frames[0])
	if msg.Header.TransactionCode != constants.BcastSpdMstrChg {
		t.Fatalf("expected master-change broadcast, got code %d", msg.Header.TransactionCode)
	}
	if msg.Info != info {
		t.Errorf("broadcast must carry the record: %+v", msg.Info)
	}
	if !e.Spreads().ValidCombination(spreadToken1, spreadToken2) {
		t.Error("added combination must be tradeable")
	}
	sink.reset()

	e.BroadcastPeriodicSpreadCombination(spreadToken2, spreadToken1, testTS)
	if got := wire.PeekTransactionCode(sink.frames[0]); got != constants.BcastSpdMstrChgPeriodic {
		t.Errorf("expected periodic code, got %d", got)
	}
	sink.reset()

	// Unknown pairs are skipped silently.
	e.BroadcastPeriodicSpreadCombination(1, 2, testTS)
	if len(sink.frames) != 0 {
		t.Errorf("unknown pair must emit nothing, got %d frames", len(sink.frames))
	}

	// Retiring the combination stops entry.
	info.DeleteFlag = "Y"
	e.UpdateSpreadCombination(info, testTS)
	if e.Spreads().ValidCombination(spreadToken1, spreadToken2) {
		t.Error("retired combination must not be tradeable")
	}
}

// TestTriggerNotifications verifies stop-loss and MIT take-up notifications
// reference the stored order and set the matching flag.
func TestTriggerNotifications(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	confirm := confirmOrder(t, e, sink, makeOrder())
	sink.reset()

	if !e.SendStopLossNotification(confirm.OrderNumber, testTS) {
		t.Fatal("notification for a known order must succeed")
	}
	var msg wire.TradeConfirm
	msg.Unmarshal(sink.frames[0])
	if msg.Header.TransactionCode != constants.OnStopNotification {
		t.Fatalf("expected stop-loss code, got %d", msg.Header.TransactionCode)
	}
	if !wire.UnpackOrderFlags(msg.Flags).SL {
		t.Error("stop-loss notification must set the SL flag")
	}
	if msg.ResponseOrderNumber != confirm.OrderNumber || msg.TokenNo != confirm.TokenNo {
		t.Errorf("notification must reference the order: %+v", msg)
	}
	sink.reset()

	if !e.SendMITNotification(confirm.OrderNumber, testTS) {
		t.Fatal("MIT notification for a known order must succeed")
	}
	msg.Unmarshal(sink.frames[0])
	if msg.Header.TransactionCode != constants.MITNotification || !wire.UnpackOrderFlags(msg.Flags).MIT {
		t.Errorf("expected MIT notification with MIT flag, got code %d flags %04x",
			msg.Header.TransactionCode, msg.Flags)
	}
	sink.reset()

	if e.SendStopLossNotification(42, testTS) {
		t.Error("unknown order must report failure")
	}
	if len(sink.frames) != 0 {
		t.Error("unknown order must emit nothing")
	}
}

// TestFreezeApproval verifies the frozen flag is cleared in the book and the
// owner is sent a confirmation.
func TestFreezeApproval(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	confirm := confirmOrder(t, e, sink, makeOrder())

	frozen, _ := e.Orders().Get(confirm.OrderNumber)
	flags := wire.UnpackOrderFlags(frozen.Flags)
	flags.Frozen = true
	frozen.Flags = flags.Pack()
	e.Orders().Put(frozen)
	sink.reset()

	if !e.SendFreezeApproval(confirm.OrderNumber, testTS) {
		t.Fatal("approval for a known order must succeed")
	}

	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderConfirmationOut {
		t.Fatalf("expected confirmation, got code %d", resp.Header.TransactionCode)
	}
	if wire.UnpackOrderFlags(resp.Flags).Frozen {
		t.Error("approval must clear the frozen flag")
	}
	stored, _ := e.Orders().Get(confirm.OrderNumber)
	if wire.UnpackOrderFlags(stored.Flags).Frozen {
		t.Error("book must be updated")
	}

	if e.SendFreezeApproval(42, testTS) {
		t.Error("unknown order must report failure")
	}
}

// TestBatchCancels verifies batch cancellation tombstones the target and
// emits the batch notification code.
func TestBatchCancels(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	confirm := confirmOrder(t, e, sink, makeOrder())
	registerCombo(e)
	spread := confirmSpread(t, e, sink)
	sink.reset()

	if !e.SendBatchOrderCancel(confirm.OrderNumber, testTS) {
		t.Fatal("batch cancel of a known order must succeed")
	}
	if got := wire.PeekTransactionCode(sink.frames[0]); got != constants.BatchOrderCancel {
		t.Errorf("expected batch order cancel code, got %d", got)
	}
	stored, _ := e.Orders().Get(confirm.OrderNumber)
	if stored.Volume != 0 {
		t.Error("batch-cancelled order must be tombstoned")
	}
	sink.reset()

	if !e.SendBatchSpreadCancel(spread.OrderNumber1, testTS) {
		t.Fatal("batch cancel of a known spread must succeed")
	}
	if got := wire.PeekTransactionCode(sink.frames[0]); got != constants.BatchSpreadCxlOut {
		t.Errorf("expected batch spread cancel code, got %d", got)
	}
	storedSpread, _ := e.Spreads().Get(spread.OrderNumber1)
	if storedSpread.Legs[0].Volume != 0 || storedSpread.Legs[1].Volume != 0 {
		t.Error("batch-cancelled spread must be tombstoned on both legs")
	}
	sink.reset()

	if e.SendBatchOrderCancel(42, testTS) || e.SendBatchSpreadCancel(42, testTS) {
		t.Error("unknown targets must report failure")
	}
}

// TestControlMessage verifies addressing and the width cap on free text.
func TestControlMessage(t *testing.T) {
	e, sink := newTestEngine()

	e.SendControlMessage(testTrader, "SYS", "margin call", testTS)

	var msg wire.CtrlMsgToTrader
	msg.Unmarshal(sink.frames[0])
	if msg.Header.TransactionCode != constants.CtrlMsgToTrader || msg.TraderID != testTrader {
		t.Fatalf("unexpected control message: %+v", msg)
	}
	if msg.Message != "margin call" || msg.BroadcastMessageLength != int16(len("margin call")) {
		t.Errorf("message body mismatch: %+v", msg)
	}
	sink.reset()

	long := strings.Repeat("x", wire.BcastMessageWidth+50)
	e.SendControlMessage(testTrader, "SYS", long, testTS)
	msg.Unmarshal(sink.frames[0])
	if int(msg.BroadcastMessageLength) != wire.BcastMessageWidth || len(msg.Message) != wire.BcastMessageWidth {
		t.Errorf("expected truncation to %d, got %d", wire.BcastMessageWidth, msg.BroadcastMessageLength)
	}
}

// TestJournalBroadcast verifies the all-broker journal message shape.
func TestJournalBroadcast(t *testing.T) {
	e, sink := newTestEngine()

	e.SendBroadcastMessage(7, testBroker, "SYS", "session closing shortly", testTS)

	var msg wire.BcastJournalMessage
	msg.Unmarshal(sink.frames[0])
	if msg.Header.TransactionCode != constants.BcastJrnlVctMsg {
		t.Fatalf("expected journal broadcast, got code %d", msg.Header.TransactionCode)
	}
	if msg.BranchNumber != 7 || msg.BrokerNumber != testBroker || msg.Message != "session closing shortly" {
		t.Errorf("broadcast fields mismatch: %+v", msg)
	}
	if msg.Header.LogTime != epochSeconds(testTS) || msg.Header.Timestamp != int64(testTS) {
		t.Errorf("broadcast header must carry the feed clock: %+v", msg.Header)
	}
}

// TestLimitUpdates verifies the three limit notification codes.
func TestLimitUpdates(t *testing.T) {
	e, sink := newTestEngine()

	e.SendUserOrderLimitUpdate(testTrader, 1e7, 5e7, testTS)
	e.SendDealerLimitUpdate(testTrader, 7, 2e6, testTS)
	e.SendSpreadOrderLimitUpdate(testTrader, 3e6, testTS)

	codes := sink.codes()
	want := []int16{constants.UserOrderLimitUpdateOut, constants.DealerLimitUpdateOut, constants.SpdOrdLimitUpdateOut}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("frame %d: expected code %d, got %d", i, want[i], codes[i])
		}
	}

	var limit wire.OrderLimitUpdate
	limit.Unmarshal(sink.frames[0])
	if limit.TraderID != testTrader || limit.OrderLimit != 1e7 || limit.TradedValueLimit != 5e7 {
		t.Errorf("limit fields mismatch: %+v", limit)
	}
}
