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
	"log"

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

func (e *Engine) handleOrderEntry(req *wire.OrderEntry, ts uint64) {
	log.Printf("order entry from trader %d token %d symbol %q buysell %d volume %d price %d",
		req.Header.TraderID, req.TokenNo, req.Contract.Symbol,
		req.BuySellIndicator, req.Volume, req.Price)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		e.sendOrderResponse(req, ts, constants.OrderErrorOut, constants.UserNotFound, constants.NormalConfirmation)
		return
	}

	if e.brokers.InCloseout(req.BrokerID) {
		if !e.validCloseoutOrder(req) {
			e.sendOrderResponse(req, ts, constants.OrderErrorOut, constants.CloseoutNotAllowed, constants.NormalConfirmation)
			return
		}
		if req.ParticipantType == constants.ParticipantTypeParticipant {
			e.sendOrderResponse(req, ts, constants.OrderErrorOut, constants.CloseoutOrderReject, constants.NormalConfirmation)
			return
		}
	}

	// Market orders get priced immediately while the normal market is open.
	flags := wire.UnpackOrderFlags(req.Flags)
	if flags.Market && e.market.NormalOpen() {
		e.sendOrderResponse(req, ts, constants.PriceConfirmation, constants.Success, constants.NormalConfirmation)
	}

	outcome := e.oracle.Roll(100)
	switch {
	case outcome < 70:
		e.sendOrderResponse(req, ts, constants.OrderConfirmationOut, constants.Success, constants.NormalConfirmation)

	case outcome < 85:
		freezeReason := int16(constants.QuantityFreeze)
		if outcome%2 == 0 {
			freezeReason = constants.PriceFreeze
		}
		e.sendOrderResponse(req, ts, constants.FreezeToControl, constants.Success, freezeReason)

		if e.oracle.Roll(2) == 0 {
			e.sendOrderResponse(req, ts, constants.OrderConfirmationOut, constants.Success, freezeReason)
		} else if freezeReason == constants.PriceFreeze {
			e.sendOrderResponse(req, ts, constants.OrderErrorOut, constants.OePriceFreezeCan, freezeReason)
		} else {
			e.sendOrderResponse(req, ts, constants.OrderErrorOut, constants.OeQtyFreezeCan, freezeReason)
		}

	default:
		e.sendOrderResponse(req, ts, constants.OrderErrorOut, constants.InvalidOrder, constants.NormalConfirmation)
	}
}

// validCloseoutOrder enforces the only shape a closeout broker may trade:
// an IOC regular-book order while the normal market is open.
func (e *Engine) validCloseoutOrder(req *wire.OrderEntry) bool {
	flags := wire.UnpackOrderFlags(req.Flags)
	return e.market.NormalOpen() &&
		req.BookType == constants.BookTypeRegular &&
		flags.IOC
}

func (e *Engine) sendOrderResponse(req *wire.OrderEntry, ts uint64, code, errCode, reason int16) {
	resp := *req
	resp.Header = respHeader(req.Header, code, errCode)
	resp.ReasonCode = reason

	if code == constants.OrderConfirmationOut || code == constants.PriceConfirmation {
		resp.EntryDateTime = epochSeconds(ts)
	}

	if code == constants.OrderConfirmationOut {
		resp.OrderNumber = e.ids.NextOrderNumber(ts)
		resp.LastActivityReference = e.ids.NextActivityReference(ts)
		resp.LastModified = epochSeconds(ts)
		e.orders.Put(resp)
		log.Printf("stored order %.0f", resp.OrderNumber)
	}

	flags := wire.UnpackOrderFlags(req.Flags)
	if code == constants.PriceConfirmation && flags.Market {
		marketPrice := int32(10000 + e.oracle.Roll(1000))
		if req.BuySellIndicator == constants.BuyIndicator {
			resp.Price = -marketPrice
		} else {
			resp.Price = marketPrice
		}
		respFlags := wire.UnpackOrderFlags(resp.Flags)
		respFlags.Market = false
		resp.Flags = respFlags.Pack()
	}

	if code == constants.OrderConfirmationOut ||
		code == constants.OrderCancelConfirmOut ||
		code == constants.OrderErrorOut {
		if e.brokers.InCloseout(req.BrokerID) {
			resp.CloseoutFlag = constants.CloseoutFlagSet
		}
	}

	e.send(resp.Marshal())
}

func (e *Engine) handlePriceModification(req *wire.PriceMod, ts uint64) {
	log.Printf("price modification from trader %d order %.0f price %d volume %d",
		req.Header.TraderID, req.OrderNumber, req.Price, req.Volume)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		e.sendModificationResponse(req, ts, constants.OrderModRejOut, constants.UserNotFound)
		return
	}

	order, ok := e.orders.Get(req.OrderNumber)
	if !ok {
		e.sendModificationResponse(req, ts, constants.OrderModRejOut, constants.ErrInvalidOrderNumber)
		return
	}

	if order.Header.TraderID != req.Header.TraderID {
		e.sendModificationResponse(req, ts, constants.OrderModRejOut, constants.ErrNotYourOrder)
		return
	}

	if e.brokers.InCloseout(order.BrokerID) {
		e.sendModificationResponse(req, ts, constants.OrderModRejOut, constants.CloseoutTrdmodReject)
		return
	}

	if !validModification(&order, req) {
		e.sendModificationResponse(req, ts, constants.OrderModRejOut, constants.OeOrdCannotModify)
		return
	}

	if e.oracle.Roll(100) < 20 {
		e.sendModificationResponse(req, ts, constants.FreezeToControl, constants.Success)

		if e.oracle.Roll(2) == 0 {
			e.processSuccessfulModification(order, req, ts)
		} else {
			e.sendModificationResponse(req, ts, constants.OrderModRejOut, constants.OeOrdCannotModify)
		}
		return
	}

	e.processSuccessfulModification(order, req, ts)
}

// validModification requires a positive volume and, for priced orders, a
// positive price.
func validModification(order *wire.OrderEntry, mod *wire.PriceMod) bool {
	if mod.Volume <= 0 {
		return false
	}
	flags := wire.UnpackOrderFlags(order.Flags)
	if mod.Price <= 0 && !flags.Market {
		return false
	}
	return true
}

// timePriorityLost reports whether the modification forfeits queue position:
// any price change, any volume increase, or any volume change at all on ATO
// and market orders.
func timePriorityLost(order *wire.OrderEntry, mod *wire.PriceMod) bool {
	if order.Price != mod.Price {
		return true
	}
	if mod.Volume > order.Volume {
		return true
	}
	flags := wire.UnpackOrderFlags(order.Flags)
	if (flags.ATO || flags.Market) && mod.Volume != order.Volume {
		return true
	}
	return false
}

func (e *Engine) processSuccessfulModification(order wire.OrderEntry, req *wire.PriceMod, ts uint64) {
	if timePriorityLost(&order, req) {
		log.Printf("order %.0f loses time priority on modification", order.OrderNumber)
	}

	order.Price = req.Price
	order.Volume = req.Volume
	order.LastModified = epochSeconds(ts)
	order.LastActivityReference = e.ids.NextActivityReference(ts)
	e.orders.Put(order)

	e.sendModificationResponse(req, ts, constants.OrderModConfirmOut, constants.Success)
}

func (e *Engine) sendModificationResponse(req *wire.PriceMod, ts uint64, code, errCode int16) {
	var resp wire.OrderEntry
	if code == constants.OrderModConfirmOut {
		if order, ok := e.orders.Get(req.OrderNumber); ok {
			resp = order
		}
	}

	resp.Header = respHeader(req.Header, code, errCode)
	resp.OrderNumber = req.OrderNumber

	if code == constants.OrderModConfirmOut && errCode == constants.Success {
		resp.Price = req.Price
		resp.Volume = req.Volume
		resp.LastModified = epochSeconds(ts)
		resp.LastActivityReference = e.ids.NextActivityReference(ts)

		if e.brokers.InCloseout(resp.BrokerID) {
			resp.CloseoutFlag = constants.CloseoutFlagSet
		}
	}

	e.send(resp.Marshal())
}

func (e *Engine) handleOrderCancellation(req *wire.OrderEntry, ts uint64) {
	log.Printf("order cancellation from trader %d order %.0f activity ref %d",
		req.Header.TraderID, req.OrderNumber, req.LastActivityReference)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		e.sendCancellationResponse(req, ts, constants.OrderCxlRejOut, constants.UserNotFound)
		return
	}

	order, ok := e.orders.Get(req.OrderNumber)
	if !ok {
		e.sendCancellationResponse(req, ts, constants.OrderCxlRejOut, constants.ErrInvalidOrderNumber)
		return
	}

	if e.brokers.Deactivated(req.BrokerID) {
		e.sendCancellationResponse(req, ts, constants.OrderCxlRejOut, constants.OeIsNotActive)
		return
	}

	if !e.brokers.CanCancel(req.BrokerID, order.BrokerID) {
		e.sendCancellationResponse(req, ts, constants.OrderCxlRejOut, constants.OeOrdCannotCancel)
		return
	}

	// Optimistic-concurrency check: a non-zero reference in the request must
	// match the live order.
	if req.LastActivityReference != 0 && req.LastActivityReference != order.LastActivityReference {
		e.sendCancellationResponse(req, ts, constants.OrderCxlRejOut, constants.OeOrdCannotCancel)
		return
	}

	if order.Volume == 0 {
		e.sendCancellationResponse(req, ts, constants.OrderCxlRejOut, constants.OeOrdCannotCancel)
		return
	}

	if e.oracle.Roll(100) < 85 {
		e.processSuccessfulCancellation(order, req, ts)
	} else {
		e.sendCancellationResponse(req, ts, constants.OrderCxlRejOut, constants.OeOrdCannotCancel)
	}
}

func (e *Engine) processSuccessfulCancellation(order wire.OrderEntry, req *wire.OrderEntry, ts uint64) {
	cancelled := order.Volume
	order.LastModified = epochSeconds(ts)
	order.LastActivityReference = e.ids.NextActivityReference(ts)
	order.Volume = 0
	e.orders.Put(order)

	log.Printf("cancelled %d shares for order %.0f", cancelled, order.OrderNumber)
	e.sendCancellationResponse(req, ts, constants.OrderCancelConfirmOut, constants.Success)
}

func (e *Engine) sendCancellationResponse(req *wire.OrderEntry, ts uint64, code, errCode int16) {
	var resp wire.OrderEntry
	if code == constants.OrderCancelConfirmOut {
		if order, ok := e.orders.Get(req.OrderNumber); ok {
			resp = order
		}
	} else {
		resp = *req
	}

	resp.Header = respHeader(req.Header, code, errCode)
	resp.OrderNumber = req.OrderNumber

	if code == constants.OrderCancelConfirmOut && errCode == constants.Success {
		resp.LastModified = epochSeconds(ts)
		resp.LastActivityReference = e.ids.NextActivityReference(ts)
		resp.Volume = 0

		if e.brokers.InCloseout(resp.BrokerID) {
			resp.CloseoutFlag = constants.CloseoutFlagSet
		}
	}

	e.send(resp.Marshal())
}

func (e *Engine) handleKillSwitch(req *wire.OrderEntry, ts uint64) {
	log.Printf("kill switch from trader %d targeting user %d token %d",
		req.Header.TraderID, req.TraderID, req.TokenNo)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		e.sendKillSwitchError(req, constants.UserNotFound)
		return
	}

	if req.TraderID == 0 {
		e.sendKillSwitchError(req, constants.ErrInvalidTraderID)
		return
	}

	if e.brokers.Deactivated(req.BrokerID) {
		e.sendKillSwitchError(req, constants.OeIsNotActive)
		return
	}

	cancelled := e.processKillSwitch(req, ts)
	if cancelled == 0 {
		e.sendKillSwitchError(req, constants.OeOrdCannotCancel)
		return
	}
	// Success emits no summary frame, only the per-order confirmations.
	log.Printf("kill switch cancelled %d orders for trader %d", cancelled, req.TraderID)
}

func (e *Engine) processKillSwitch(req *wire.OrderEntry, ts uint64) int32 {
	allTokens := req.TokenNo == constants.KillSwitchAllTokens
	var cancelled int32

	for _, order := range e.orders.SnapshotSorted() {
		if order.Volume == 0 {
			continue
		}
		if order.TraderID != req.TraderID && order.Header.TraderID != req.Header.TraderID {
			continue
		}
		if !e.brokers.CanCancel(req.BrokerID, order.BrokerID) {
			continue
		}
		if !allTokens && order.TokenNo != req.TokenNo {
			continue
		}
		if !allTokens && !contractMatch(&order, &req.Contract) {
			continue
		}

		order.Volume = 0
		order.LastModified = epochSeconds(ts)
		order.LastActivityReference = e.ids.NextActivityReference(ts)
		e.orders.Put(order)
		cancelled++

		log.Printf("kill switch cancelled order %.0f", order.OrderNumber)
		e.sendCancellationResponse(&order, ts, constants.OrderCancelConfirmOut, constants.Success)
	}

	return cancelled
}

func (e *Engine) sendKillSwitchError(req *wire.OrderEntry, errCode int16) {
	resp := *req
	resp.Header = respHeader(req.Header, constants.OrderErrorOut, errCode)
	e.send(resp.Marshal())
}

// contractMatch applies the kill-switch contract filter. Symbol is strict;
// the remaining descriptor fields only constrain when set, acting as
// wildcards otherwise.
func contractMatch(order *wire.OrderEntry, filter *wire.ContractDesc) bool {
	if order.Contract.Symbol != filter.Symbol {
		return false
	}
	if filter.InstrumentName != "" && order.Contract.InstrumentName != filter.InstrumentName {
		return false
	}
	if filter.ExpiryDate != 0 && order.Contract.ExpiryDate != filter.ExpiryDate {
		return false
	}
	if filter.StrikePrice != 0 && order.Contract.StrikePrice != filter.StrikePrice {
		return false
	}
	if filter.OptionType != "" && order.Contract.OptionType != filter.OptionType {
		return false
	}
	return true
}
