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

// confirmOrder feeds one order through the engine and returns the decoded
// confirmation. The caller's oracle must land the entry on the confirm path.
func confirmOrder(t *testing.T, e *Engine, sink *frameSink, order wire.OrderEntry) wire.OrderEntry {
	t.Helper()
	before := len(sink.frames)
	mustParse(t, e, order.Marshal())

	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[len(sink.frames)-1])
	if resp.Header.TransactionCode != constants.OrderConfirmationOut {
		t.Fatalf("expected confirmation, got code %d error %d",
			resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
	if len(sink.frames) != before+1 {
		t.Fatalf("expected 1 frame for a plain confirm, got %d", len(sink.frames)-before)
	}
	return resp
}

// TestOrderEntry_ConfirmAndCancel walks the basic lifecycle: sign on, enter a
// limit order, cancel it using the confirmed identifiers.
func TestOrderEntry_ConfirmAndCancel(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)

	confirm := confirmOrder(t, e, sink, makeOrder())
	if confirm.OrderNumber == 0 || confirm.LastActivityReference == 0 {
		t.Fatalf("confirmation must assign identifiers: %+v", confirm)
	}
	if confirm.EntryDateTime != epochSeconds(testTS) {
		t.Errorf("expected entry time %d, got %d", epochSeconds(testTS), confirm.EntryDateTime)
	}
	if e.Orders().Len() != 1 {
		t.Fatalf("expected 1 stored order, got %d", e.Orders().Len())
	}
	sink.reset()

	cancel := makeOrder()
	cancel.Header.TransactionCode = constants.OrderCancelIn
	cancel.OrderNumber = confirm.OrderNumber
	cancel.LastActivityReference = confirm.LastActivityReference
	mustParse(t, e, cancel.Marshal())

	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderCancelConfirmOut || resp.Header.ErrorCode != constants.Success {
		t.Fatalf("expected cancel confirmation, got code %d error %d",
			resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
	if resp.Volume != 0 {
		t.Errorf("cancel confirmation must carry zero volume, got %d", resp.Volume)
	}

	stored, ok := e.Orders().Get(confirm.OrderNumber)
	if !ok || stored.Volume != 0 {
		t.Errorf("cancelled order must remain as a zero-volume tombstone: %+v", stored)
	}
}

// TestOrderEntry_MarketOrderPricing verifies market orders while the normal
// market is open draw a price confirmation first, with the synthesized price
// negated for buys and the market flag cleared.
func TestOrderEntry_MarketOrderPricing(t *testing.T) {
	e, sink := newTestEngine(500, 0)
	signOn(t, e, sink)

	order := makeOrder()
	order.Price = 0
	order.Flags = wire.OrderFlags{Market: true}.Pack()
	mustParse(t, e, order.Marshal())

	codes := sink.codes()
	if len(codes) != 2 || codes[0] != constants.PriceConfirmation || codes[1] != constants.OrderConfirmationOut {
		t.Fatalf("expected price confirmation then order confirmation, got %v", codes)
	}

	var price wire.OrderEntry
	price.Unmarshal(sink.frames[0])
	if price.Price != -10500 {
		t.Errorf("expected buy price -10500, got %d", price.Price)
	}
	if wire.UnpackOrderFlags(price.Flags).Market {
		t.Error("price confirmation must clear the market flag")
	}
}

// TestOrderEntry_MarketOrderSellPrice verifies sells keep the positive sign.
func TestOrderEntry_MarketOrderSellPrice(t *testing.T) {
	e, sink := newTestEngine(250, 0)
	signOn(t, e, sink)

	order := makeOrder()
	order.Price = 0
	order.BuySellIndicator = constants.SellIndicator
	order.Flags = wire.OrderFlags{Market: true}.Pack()
	mustParse(t, e, order.Marshal())

	var price wire.OrderEntry
	price.Unmarshal(sink.frames[0])
	if price.Price != 10250 {
		t.Errorf("expected sell price 10250, got %d", price.Price)
	}
}

// TestOrderEntry_FreezeApproved verifies an even freeze outcome reports a
// price freeze and the approval roll confirms the order with the freeze
// reason carried through.
func TestOrderEntry_FreezeApproved(t *testing.T) {
	e, sink := newTestEngine(84, 0)
	signOn(t, e, sink)

	order := makeOrder()
	mustParse(t, e, order.Marshal())

	codes := sink.codes()
	if len(codes) != 2 || codes[0] != constants.FreezeToControl || codes[1] != constants.OrderConfirmationOut {
		t.Fatalf("expected freeze then confirmation, got %v", codes)
	}

	var freeze wire.OrderEntry
	freeze.Unmarshal(sink.frames[0])
	if freeze.ReasonCode != constants.PriceFreeze {
		t.Errorf("even outcome must report a price freeze, got reason %d", freeze.ReasonCode)
	}
	var confirm wire.OrderEntry
	confirm.Unmarshal(sink.frames[1])
	if confirm.ReasonCode != constants.PriceFreeze {
		t.Errorf("confirmation must carry the freeze reason, got %d", confirm.ReasonCode)
	}
}

// TestOrderEntry_FreezeRejected verifies the two freeze-rejection error
// codes: price freezes and quantity freezes cancel differently.
func TestOrderEntry_FreezeRejected(t *testing.T) {
	cases := []struct {
		name    string
		rolls   []int
		reason  int16
		errCode int16
	}{
		{"price freeze", []int{84, 1}, constants.PriceFreeze, constants.OePriceFreezeCan},
		{"quantity freeze", []int{83, 1}, constants.QuantityFreeze, constants.OeQtyFreezeCan},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, sink := newTestEngine(tc.rolls...)
			signOn(t, e, sink)

			order := makeOrder()
			mustParse(t, e, order.Marshal())

			codes := sink.codes()
			if len(codes) != 2 || codes[0] != constants.FreezeToControl || codes[1] != constants.OrderErrorOut {
				t.Fatalf("expected freeze then error, got %v", codes)
			}
			var reject wire.OrderEntry
			reject.Unmarshal(sink.frames[1])
			if reject.Header.ErrorCode != tc.errCode {
				t.Errorf("expected error %d, got %d", tc.errCode, reject.Header.ErrorCode)
			}
			if reject.ReasonCode != tc.reason {
				t.Errorf("expected reason %d, got %d", tc.reason, reject.ReasonCode)
			}
			if e.Orders().Len() != 0 {
				t.Error("rejected order must not be stored")
			}
		})
	}
}

// TestOrderEntry_Rejected verifies the plain rejection path stores nothing.
func TestOrderEntry_Rejected(t *testing.T) {
	e, sink := newTestEngine(99)
	signOn(t, e, sink)

	order := makeOrder()
	mustParse(t, e, order.Marshal())

	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderErrorOut || resp.Header.ErrorCode != constants.InvalidOrder {
		t.Errorf("expected INVALID_ORDER, got code %d error %d",
			resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
	if e.Orders().Len() != 0 {
		t.Error("rejected order must not be stored")
	}
}

// TestOrderEntry_CloseoutDiscipline verifies a closeout broker may only send
// IOC regular-book orders, and every accepted frame is stamped with the
// closeout flag.
func TestOrderEntry_CloseoutDiscipline(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	e.Brokers().SetCloseout(testBroker, true)

	// Special-book order: turned away.
	order := makeOrder()
	order.BookType = constants.BookTypeSpecial
	mustParse(t, e, order.Marshal())

	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.ErrorCode != constants.CloseoutNotAllowed {
		t.Fatalf("expected CLOSEOUT_NOT_ALLOWED, got %d", resp.Header.ErrorCode)
	}
	if resp.CloseoutFlag != constants.CloseoutFlagSet {
		t.Errorf("closeout broker's error frames carry the closeout flag, got %c", resp.CloseoutFlag)
	}
	sink.reset()

	// Participant-entered closeout order: rejected with its own code.
	order = makeOrder()
	order.Flags = wire.OrderFlags{IOC: true}.Pack()
	order.ParticipantType = constants.ParticipantTypeParticipant
	mustParse(t, e, order.Marshal())
	resp.Unmarshal(sink.frames[0])
	if resp.Header.ErrorCode != constants.CloseoutOrderReject {
		t.Fatalf("expected CLOSEOUT_ORDER_REJECT, got %d", resp.Header.ErrorCode)
	}
	sink.reset()

	// IOC regular-book order: allowed and flagged.
	order = makeOrder()
	order.Flags = wire.OrderFlags{IOC: true}.Pack()
	mustParse(t, e, order.Marshal())
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderConfirmationOut {
		t.Fatalf("expected confirmation, got code %d error %d",
			resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
	if resp.CloseoutFlag != constants.CloseoutFlagSet {
		t.Errorf("expected closeout flag on confirmation, got %c", resp.CloseoutFlag)
	}
}

// TestPriceModification_Success verifies price and volume are rewritten in
// the book and the confirmation draws a fresh activity reference.
func TestPriceModification_Success(t *testing.T) {
	e, sink := newTestEngine(0, 50)
	signOn(t, e, sink)
	confirm := confirmOrder(t, e, sink, makeOrder())
	sink.reset()

	mod := wire.PriceMod{
		Header:                wire.MessageHeader{TransactionCode: constants.PriceModificationRequest, TraderID: testTrader},
		OrderNumber:           confirm.OrderNumber,
		TokenNo:               confirm.TokenNo,
		Contract:              confirm.Contract,
		Price:                 260000,
		Volume:                80,
		BuySellIndicator:      confirm.BuySellIndicator,
		BrokerID:              testBroker,
		LastActivityReference: confirm.LastActivityReference,
	}
	mustParse(t, e, mod.Marshal())

	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderModConfirmOut || resp.Header.ErrorCode != constants.Success {
		t.Fatalf("expected modification confirmation, got code %d error %d",
			resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
	if resp.Price != 260000 || resp.Volume != 80 {
		t.Errorf("confirmation must carry the new terms, got price %d volume %d", resp.Price, resp.Volume)
	}
	if resp.LastActivityReference == confirm.LastActivityReference {
		t.Error("modification must advance the activity reference")
	}

	stored, _ := e.Orders().Get(confirm.OrderNumber)
	if stored.Price != 260000 || stored.Volume != 80 {
		t.Errorf("book not updated: price %d volume %d", stored.Price, stored.Volume)
	}
}

// TestPriceModification_Rejections covers the ordered gate chain.
func TestPriceModification_Rejections(t *testing.T) {
	e, sink := newTestEngine(0, 50)
	signOn(t, e, sink)
	confirm := confirmOrder(t, e, sink, makeOrder())

	mod := wire.PriceMod{
		Header:      wire.MessageHeader{TransactionCode: constants.PriceModificationRequest, TraderID: testTrader},
		OrderNumber: confirm.OrderNumber,
		Price:       260000,
		Volume:      80,
		BrokerID:    testBroker,
	}

	expectReject := func(m wire.PriceMod, errCode int16) {
		t.Helper()
		sink.reset()
		mustParse(t, e, m.Marshal())
		var resp wire.OrderEntry
		resp.Unmarshal(sink.frames[0])
		if resp.Header.TransactionCode != constants.OrderModRejOut || resp.Header.ErrorCode != errCode {
			t.Errorf("expected reject %d, got code %d error %d",
				errCode, resp.Header.TransactionCode, resp.Header.ErrorCode)
		}
	}

	unknown := mod
	unknown.OrderNumber = 42
	expectReject(unknown, constants.ErrInvalidOrderNumber)

	zeroVolume := mod
	zeroVolume.Volume = 0
	expectReject(zeroVolume, constants.OeOrdCannotModify)

	zeroPrice := mod
	zeroPrice.Price = 0
	expectReject(zeroPrice, constants.OeOrdCannotModify)

	// Another trader cannot touch the order.
	other := wire.SignOn{
		Header:   wire.MessageHeader{TransactionCode: constants.SignonRequestIn, TraderID: 202},
		UserID:   202,
		BrokerID: "B0002",
	}
	mustParse(t, e, other.Marshal())
	foreign := mod
	foreign.Header.TraderID = 202
	expectReject(foreign, constants.ErrNotYourOrder)

	// Closeout on the owning broker blocks modification.
	e.Brokers().SetCloseout(testBroker, true)
	expectReject(mod, constants.CloseoutTrdmodReject)
}

// TestOrderCancellation_StaleReference verifies the optimistic-concurrency
// gate: a non-zero reference that does not match the live order is refused,
// a zero reference bypasses the check.
func TestOrderCancellation_StaleReference(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	confirm := confirmOrder(t, e, sink, makeOrder())
	sink.reset()

	cancel := makeOrder()
	cancel.Header.TransactionCode = constants.OrderCancelIn
	cancel.OrderNumber = confirm.OrderNumber
	cancel.LastActivityReference = confirm.LastActivityReference + 7
	mustParse(t, e, cancel.Marshal())

	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderCxlRejOut || resp.Header.ErrorCode != constants.OeOrdCannotCancel {
		t.Fatalf("stale reference must be refused, got code %d error %d",
			resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
	sink.reset()

	cancel.LastActivityReference = 0
	mustParse(t, e, cancel.Marshal())
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderCancelConfirmOut {
		t.Errorf("zero reference must bypass the check, got code %d", resp.Header.TransactionCode)
	}
}

// TestOrderCancellation_Tombstone verifies a second cancellation of the same
// order is refused: the tombstone has no volume left.
func TestOrderCancellation_Tombstone(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	confirm := confirmOrder(t, e, sink, makeOrder())
	sink.reset()

	cancel := makeOrder()
	cancel.Header.TransactionCode = constants.OrderCancelIn
	cancel.OrderNumber = confirm.OrderNumber
	mustParse(t, e, cancel.Marshal())
	sink.reset()

	mustParse(t, e, cancel.Marshal())
	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderCxlRejOut || resp.Header.ErrorCode != constants.OeOrdCannotCancel {
		t.Errorf("second cancellation must be refused, got code %d error %d",
			resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
}

// TestOrderCancellation_Hierarchy verifies the CM > BM > DL cancellation
// ladder across brokers.
func TestOrderCancellation_Hierarchy(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)
	confirm := confirmOrder(t, e, sink, makeOrder())
	sink.reset()

	e.Brokers().SetType(testBroker, constants.BranchManager)
	e.Brokers().SetType("DL001", constants.Dealer)
	e.Brokers().SetType("CM001", constants.CorporateManager)

	cancel := makeOrder()
	cancel.Header.TransactionCode = constants.OrderCancelIn
	cancel.OrderNumber = confirm.OrderNumber

	// A dealer cannot cancel a branch manager's order.
	cancel.BrokerID = "DL001"
	mustParse(t, e, cancel.Marshal())
	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.ErrorCode != constants.OeOrdCannotCancel {
		t.Fatalf("dealer must not cancel upward, got error %d", resp.Header.ErrorCode)
	}
	sink.reset()

	// A corporate manager can cancel anyone's.
	cancel.BrokerID = "CM001"
	mustParse(t, e, cancel.Marshal())
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderCancelConfirmOut {
		t.Errorf("corporate manager cancel must succeed, got code %d error %d",
			resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
}

// TestKillSwitch_TokenScoped verifies a kill switch naming one token cancels
// only that token's orders and leaves the rest alive.
func TestKillSwitch_TokenScoped(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)

	var confirms []wire.OrderEntry
	for _, token := range []int32{10, 20, 30} {
		order := makeOrder()
		order.TokenNo = token
		confirms = append(confirms, confirmOrder(t, e, sink, order))
	}
	sink.reset()

	kill := makeOrder()
	kill.Header.TransactionCode = constants.KillSwitchIn
	kill.TokenNo = 20
	mustParse(t, e, kill.Marshal())

	if len(sink.frames) != 1 {
		t.Fatalf("expected exactly one cancellation, got %d frames", len(sink.frames))
	}
	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderCancelConfirmOut || resp.TokenNo != 20 {
		t.Fatalf("expected cancel confirm for token 20, got code %d token %d",
			resp.Header.TransactionCode, resp.TokenNo)
	}

	for _, c := range confirms {
		stored, _ := e.Orders().Get(c.OrderNumber)
		if c.TokenNo == 20 && stored.Volume != 0 {
			t.Errorf("token 20 order should be tombstoned")
		}
		if c.TokenNo != 20 && stored.Volume == 0 {
			t.Errorf("token %d order should survive", c.TokenNo)
		}
	}
}

// TestKillSwitch_AllTokens verifies the sentinel token cancels everything the
// trader owns regardless of contract, and a repeat finds nothing to cancel.
func TestKillSwitch_AllTokens(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)

	for _, token := range []int32{10, 20, 30} {
		order := makeOrder()
		order.TokenNo = token
		confirmOrder(t, e, sink, order)
	}
	sink.reset()

	kill := makeOrder()
	kill.Header.TransactionCode = constants.KillSwitchIn
	kill.TokenNo = constants.KillSwitchAllTokens
	kill.Contract = wire.ContractDesc{}
	mustParse(t, e, kill.Marshal())

	if len(sink.frames) != 3 {
		t.Fatalf("expected 3 cancellations and no summary frame, got %d frames", len(sink.frames))
	}
	for _, code := range sink.codes() {
		if code != constants.OrderCancelConfirmOut {
			t.Fatalf("expected only cancel confirmations, got %v", sink.codes())
		}
	}
	sink.reset()

	mustParse(t, e, kill.Marshal())
	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.TransactionCode != constants.OrderErrorOut || resp.Header.ErrorCode != constants.OeOrdCannotCancel {
		t.Errorf("empty kill switch must error, got code %d error %d",
			resp.Header.TransactionCode, resp.Header.ErrorCode)
	}
}

// TestKillSwitch_RequiresTarget verifies a zero target trader id is refused.
func TestKillSwitch_RequiresTarget(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)

	kill := makeOrder()
	kill.Header.TransactionCode = constants.KillSwitchIn
	kill.TraderID = 0
	mustParse(t, e, kill.Marshal())

	var resp wire.OrderEntry
	resp.Unmarshal(sink.frames[0])
	if resp.Header.ErrorCode != constants.ErrInvalidTraderID {
		t.Errorf("expected ERR_INVALID_TRADER_ID, got %d", resp.Header.ErrorCode)
	}
}

// TestOrderNumbers_Unique verifies every confirmation in a session draws a
// distinct order number and activity reference.
func TestOrderNumbers_Unique(t *testing.T) {
	e, sink := newTestEngine()
	signOn(t, e, sink)

	orderNumbers := make(map[float64]bool)
	activityRefs := make(map[uint64]bool)
	for i := 0; i < 10; i++ {
		confirm := confirmOrder(t, e, sink, makeOrder())
		if orderNumbers[confirm.OrderNumber] {
			t.Fatalf("duplicate order number %.0f", confirm.OrderNumber)
		}
		if activityRefs[confirm.LastActivityReference] {
			t.Fatalf("duplicate activity reference %d", confirm.LastActivityReference)
		}
		orderNumbers[confirm.OrderNumber] = true
		activityRefs[confirm.LastActivityReference] = true
	}
}

// TestSessionEngines_ShareState verifies per-connection engines derived from
// one base engine share the books and the identifier counters.
func TestSessionEngines_ShareState(t *testing.T) {
	base, _ := newTestEngine()

	a := base.NewSessionEngine(1)
	a.SetOracle(&ScriptedOracle{})
	sinkA := &frameSink{}
	a.SetSink(sinkA.collect)

	b := base.NewSessionEngine(2)
	b.SetOracle(&ScriptedOracle{})
	sinkB := &frameSink{}
	b.SetSink(sinkB.collect)

	signOn(t, a, sinkA)
	confirmA := confirmOrder(t, a, sinkA, makeOrder())

	// The second connection sees the first one's session and order.
	if !b.Sessions().LoggedIn(testTrader) {
		t.Error("sessions must be shared across connections")
	}
	confirmB := confirmOrder(t, b, sinkB, makeOrder())

	if confirmA.OrderNumber == confirmB.OrderNumber {
		t.Errorf("order numbers must be unique across connections, both %.0f", confirmA.OrderNumber)
	}
	if base.Orders().Len() != 2 {
		t.Errorf("expected both orders in the shared book, got %d", base.Orders().Len())
	}
}
