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

func (e *Engine) handleSpreadOrderEntry(req *wire.SpreadOrder, ts uint64) {
	log.Printf("spread order entry from trader %d tokens %d/%d price diff %d",
		req.Header.TraderID, req.Legs[0].TokenNo, req.Legs[1].TokenNo, req.PriceDiff)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		e.sendSpreadResponse(req, ts, constants.SpOrderError, constants.UserNotFound, constants.NormalConfirmation)
		return
	}

	if errCode := e.validateSpreadEntry(req); errCode != constants.Success {
		e.sendSpreadResponse(req, ts, constants.SpOrderError, errCode, constants.NormalConfirmation)
		return
	}

	outcome := e.oracle.Roll(100)
	switch {
	case outcome < 70:
		e.sendSpreadResponse(req, ts, constants.SpOrderConfirmation, constants.Success, constants.NormalConfirmation)

	case outcome < 85:
		freezeReason := int16(constants.QuantityFreeze)
		if outcome%2 == 0 {
			freezeReason = constants.PriceFreeze
		}
		e.sendSpreadResponse(req, ts, constants.FreezeToControl, constants.Success, freezeReason)

		if e.oracle.Roll(2) == 0 {
			e.sendSpreadResponse(req, ts, constants.SpOrderConfirmation, constants.Success, freezeReason)
		} else if freezeReason == constants.PriceFreeze {
			e.sendSpreadResponse(req, ts, constants.SpOrderError, constants.OePriceFreezeCan, freezeReason)
		} else {
			e.sendSpreadResponse(req, ts, constants.SpOrderError, constants.OeQtyFreezeCan, freezeReason)
		}

	default:
		e.sendSpreadResponse(req, ts, constants.SpOrderError, constants.InvalidOrder, constants.NormalConfirmation)
	}
}

// validateSpreadEntry runs the entry gates in their documented order and
// returns the first failure.
func (e *Engine) validateSpreadEntry(req *wire.SpreadOrder) int16 {
	flags := wire.UnpackOrderFlags(req.Flags)

	if flags.GTC || req.GoodTillDate != 0 {
		return constants.ErrGtcGtdNotAllowed
	}
	if !e.market.NormalOpen() {
		return constants.InvalidOrder
	}
	if e.brokers.InCloseout(req.BrokerID) {
		return constants.CloseoutNotAllowed
	}
	if e.brokers.Deactivated(req.BrokerID) {
		return constants.OeIsNotActive
	}
	if flags.IOC {
		return constants.InvalidOrder
	}
	if req.Legs[0].DisclosedVolume != 0 || req.Legs[1].DisclosedVolume != 0 {
		return constants.InvalidOrder
	}
	if req.Legs[0].Contract.ExpiryDate == req.Legs[1].Contract.ExpiryDate {
		return constants.InvalidOrder
	}
	if !e.spreads.ValidCombination(req.Legs[0].TokenNo, req.Legs[1].TokenNo) {
		return constants.ErrInvalidContractComb
	}
	if errCode := validateProClient(req.ProClient, req.AccountNumber, req.BrokerID); errCode != constants.Success {
		return errCode
	}
	if req.Legs[0].Volume != req.Legs[1].Volume {
		return constants.ErrQtyShouldBeSame
	}
	if req.Legs[0].Volume%e.regularLot != 0 || req.Legs[1].Volume%e.regularLot != 0 {
		return constants.OeQuantityNotMultRL
	}
	if req.PriceDiff > constants.MaxPriceDiff || req.PriceDiff < -constants.MaxPriceDiff {
		return constants.ErrPriceDiffOutOfRange
	}
	return constants.Success
}

// validateProClient enforces account discipline: PRO orders trade the
// broker's own account, CLI orders must name a distinct client account.
func validateProClient(proClient int16, accountNumber, brokerID string) int16 {
	switch proClient {
	case constants.ProClientPro:
		if accountNumber != "" && accountNumber != brokerID {
			return constants.ErrInvalidProClient
		}
	case constants.ProClientCli:
		if accountNumber == "" || accountNumber == brokerID {
			return constants.ErrInvalidCliAc
		}
	}
	return constants.Success
}

func (e *Engine) sendSpreadResponse(req *wire.SpreadOrder, ts uint64, code, errCode, reason int16) {
	resp := *req
	resp.Header = respHeader(req.Header, code, errCode)
	resp.ReasonCode = reason

	if code == constants.SpOrderConfirmation && errCode == constants.Success {
		resp.OrderNumber1 = e.ids.NextOrderNumber(ts)
		resp.LastActivityReference = e.ids.NextActivityReference(ts)
		e.spreads.Put(resp)
		log.Printf("stored spread order %.0f", resp.OrderNumber1)
	}

	if code == constants.SpOrderConfirmation || code == constants.SpOrderError ||
		code == constants.SpOrderCxlConfirmation {
		if e.brokers.InCloseout(req.BrokerID) {
			resp.CloseoutFlag = constants.CloseoutFlagSet
		}
	}

	e.send(resp.Marshal())
}

func (e *Engine) handleSpreadOrderModification(req *wire.SpreadOrder, ts uint64) {
	log.Printf("spread order modification from trader %d order %.0f",
		req.Header.TraderID, req.OrderNumber1)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		e.sendSpreadResponse(req, ts, constants.SpOrderModRejOut, constants.UserNotFound, constants.NormalConfirmation)
		return
	}

	order, ok := e.spreads.Get(req.OrderNumber1)
	if !ok {
		e.sendSpreadResponse(req, ts, constants.SpOrderModRejOut, constants.ErrInvalidOrderNumber, constants.NormalConfirmation)
		return
	}

	if order.Header.TraderID != req.Header.TraderID {
		e.sendSpreadResponse(req, ts, constants.SpOrderModRejOut, constants.ErrNotYourOrder, constants.NormalConfirmation)
		return
	}

	if e.brokers.InCloseout(order.BrokerID) {
		e.sendSpreadResponse(req, ts, constants.SpOrderModRejOut, constants.CloseoutTrdmodReject, constants.NormalConfirmation)
		return
	}

	if e.brokers.Deactivated(req.BrokerID) {
		e.sendSpreadResponse(req, ts, constants.SpOrderModRejOut, constants.OeIsNotActive, constants.NormalConfirmation)
		return
	}

	if errCode := validateSpreadModification(&order, req); errCode != constants.Success {
		e.sendSpreadResponse(req, ts, constants.SpOrderModRejOut, errCode, constants.NormalConfirmation)
		return
	}

	if req.Legs[0].Volume%e.regularLot != 0 || req.Legs[1].Volume%e.regularLot != 0 {
		e.sendSpreadResponse(req, ts, constants.SpOrderModRejOut, constants.OeQuantityNotMultRL, constants.NormalConfirmation)
		return
	}

	if req.PriceDiff > constants.MaxPriceDiff || req.PriceDiff < -constants.MaxPriceDiff {
		e.sendSpreadResponse(req, ts, constants.SpOrderModRejOut, constants.ErrPriceDiffOutOfRange, constants.NormalConfirmation)
		return
	}

	if e.oracle.Roll(100) < 20 {
		e.sendSpreadResponse(req, ts, constants.FreezeToControl, constants.Success, constants.NormalConfirmation)

		if e.oracle.Roll(2) != 0 {
			e.sendSpreadResponse(req, ts, constants.SpOrderModRejOut, constants.OeOrdCannotModify, constants.NormalConfirmation)
			return
		}
	}

	e.processSuccessfulSpreadModification(order, req, ts)
}

// validateSpreadModification enforces what a modification may not touch:
// direction, contracts, frozen orders, the day/IOC distinction, and the
// optimistic-concurrency reference.
func validateSpreadModification(order *wire.SpreadOrder, mod *wire.SpreadOrder) int16 {
	orderFlags := wire.UnpackOrderFlags(order.Flags)
	modFlags := wire.UnpackOrderFlags(mod.Flags)

	if orderFlags.Frozen {
		return constants.OeOrdCannotModify
	}
	for i := 0; i < 2; i++ {
		if order.Legs[i].BuySellIndicator != mod.Legs[i].BuySellIndicator {
			return constants.OeOrdCannotModify
		}
		if order.Legs[i].Contract != mod.Legs[i].Contract || order.Legs[i].TokenNo != mod.Legs[i].TokenNo {
			return constants.OeOrdCannotModify
		}
	}
	if !orderFlags.IOC && modFlags.IOC {
		return constants.OeOrdCannotModify
	}
	if mod.LastActivityReference == 0 || mod.LastActivityReference != order.LastActivityReference {
		return constants.OeOrdCannotModify
	}
	return constants.Success
}

func (e *Engine) processSuccessfulSpreadModification(order wire.SpreadOrder, req *wire.SpreadOrder, ts uint64) {
	order.PriceDiff = req.PriceDiff
	for i := 0; i < 2; i++ {
		order.Legs[i].Volume = req.Legs[i].Volume
		order.Legs[i].TotalVolumeRemaining = req.Legs[i].TotalVolumeRemaining
		order.Legs[i].Price = req.Legs[i].Price
	}
	order.LastActivityReference = e.ids.NextActivityReference(ts)
	e.spreads.Put(order)

	resp := order
	resp.Header = respHeader(req.Header, constants.SpOrderModConOut, constants.Success)
	e.send(resp.Marshal())
}

func (e *Engine) handleSpreadOrderCancellation(req *wire.SpreadOrder, ts uint64) {
	log.Printf("spread order cancellation from trader %d order %.0f",
		req.Header.TraderID, req.OrderNumber1)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		e.sendSpreadResponse(req, ts, constants.SpOrderCxlRejOut, constants.UserNotFound, constants.NormalConfirmation)
		return
	}

	order, ok := e.spreads.Get(req.OrderNumber1)
	if !ok {
		e.sendSpreadResponse(req, ts, constants.SpOrderCxlRejOut, constants.ErrInvalidOrderNumber, constants.NormalConfirmation)
		return
	}

	if e.brokers.Deactivated(req.BrokerID) {
		e.sendSpreadResponse(req, ts, constants.SpOrderCxlRejOut, constants.OeIsNotActive, constants.NormalConfirmation)
		return
	}

	if !e.brokers.CanCancel(req.BrokerID, order.BrokerID) {
		e.sendSpreadResponse(req, ts, constants.SpOrderCxlRejOut, constants.OeOrdCannotCancel, constants.NormalConfirmation)
		return
	}

	if req.LastActivityReference == 0 || req.LastActivityReference != order.LastActivityReference {
		e.sendSpreadResponse(req, ts, constants.SpOrderCxlRejOut, constants.OeOrdCannotCancel, constants.NormalConfirmation)
		return
	}

	if order.Legs[0].Volume == 0 {
		e.sendSpreadResponse(req, ts, constants.SpOrderCxlRejOut, constants.OeOrdCannotCancel, constants.NormalConfirmation)
		return
	}

	if e.oracle.Roll(100) >= 85 {
		e.sendSpreadResponse(req, ts, constants.SpOrderCxlRejOut, constants.OeOrdCannotCancel, constants.NormalConfirmation)
		return
	}

	for i := range order.Legs {
		order.Legs[i].Volume = 0
		order.Legs[i].TotalVolumeRemaining = 0
	}
	order.LastActivityReference = e.ids.NextActivityReference(ts)
	e.spreads.Put(order)

	resp := order
	resp.Header = respHeader(req.Header, constants.SpOrderCxlConfirmation, constants.Success)
	if e.brokers.InCloseout(req.BrokerID) {
		resp.CloseoutFlag = constants.CloseoutFlagSet
	}
	e.send(resp.Marshal())
	log.Printf("cancelled spread order %.0f", order.OrderNumber1)
}

// handleMultiLegOrderEntry serves the IOC-only 2L and 3L order flows. These
// orders are never stored: they match, partially match, or die on arrival.
func (e *Engine) handleMultiLegOrderEntry(req *wire.SpreadOrder, ts uint64, is3L bool) {
	confirmCode := int16(constants.TwoLOrderConfirmation)
	cancelCode := int16(constants.TwoLOrderCxlConfirm)
	errorCode := int16(constants.TwoLOrderError)
	if is3L {
		confirmCode = constants.ThrLOrderConfirmation
		cancelCode = constants.ThrLOrderCxlConfirm
		errorCode = constants.ThrLOrderError
	}

	legs := 2
	if is3L {
		legs = 3
	}
	log.Printf("%dL order entry from trader %d", legs, req.Header.TraderID)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		e.sendMultiLegResponse(req, ts, errorCode, constants.UserNotFound)
		return
	}

	if errCode := e.validateMultiLegEntry(req, legs); errCode != constants.Success {
		e.sendMultiLegResponse(req, ts, errorCode, errCode)
		return
	}

	outcome := e.oracle.Roll(100)
	switch {
	case outcome < 70:
		// Full match. The fill roll decides full versus half execution.
		resp := e.confirmMultiLeg(req, ts, confirmCode, legs)
		e.send(resp.Marshal())

	case outcome < 90:
		// Partial match: confirmation for the matched half, cancellation for
		// the remainder.
		resp := e.confirmMultiLeg(req, ts, confirmCode, legs)
		e.send(resp.Marshal())

		remainder := *req
		remainder.Header = respHeader(req.Header, cancelCode, constants.Success)
		remainder.OrderNumber1 = resp.OrderNumber1
		for i := 0; i < legs; i++ {
			remainder.Legs[i].Volume = resp.Legs[i].TotalVolumeRemaining
			remainder.Legs[i].TotalVolumeRemaining = 0
		}
		e.send(remainder.Marshal())

	default:
		// Unmatched: the whole order is cancelled back.
		resp := *req
		resp.Header = respHeader(req.Header, cancelCode, constants.Success)
		e.send(resp.Marshal())
	}
}

// sendMultiLegResponse echoes the request back with the given codes. 2L/3L
// rejects never touch the book, so no store or closeout logic applies.
func (e *Engine) sendMultiLegResponse(req *wire.SpreadOrder, ts uint64, code, errCode int16) {
	resp := *req
	resp.Header = respHeader(req.Header, code, errCode)
	e.send(resp.Marshal())
}

func (e *Engine) validateMultiLegEntry(req *wire.SpreadOrder, legs int) int16 {
	flags := wire.UnpackOrderFlags(req.Flags)

	if flags.GTC || req.GoodTillDate != 0 {
		return constants.ErrGtcGtdNotAllowed
	}
	if !flags.IOC {
		return constants.InvalidOrder
	}

	volume := req.Legs[0].Volume
	stream := req.Legs[0].TokenNo / constants.TokenStreamDivisor
	for i := 0; i < legs; i++ {
		leg := &req.Legs[i]
		if leg.DisclosedVolume != 0 {
			return constants.InvalidOrder
		}
		if leg.Volume != volume {
			return constants.ErrQtyShouldBeSame
		}
		if leg.Volume%e.regularLot != 0 {
			return constants.OeQuantityNotMultRL
		}
		if leg.TokenNo/constants.TokenStreamDivisor != stream {
			return constants.InvalidOrder
		}
		for j := 0; j < i; j++ {
			if req.Legs[j].TokenNo == leg.TokenNo {
				return constants.InvalidOrder
			}
		}
	}
	return constants.Success
}

// confirmMultiLeg builds and returns the confirmation. TotalVolumeRemaining
// carries the unexecuted part: zero on a full fill, half the volume
// otherwise.
func (e *Engine) confirmMultiLeg(req *wire.SpreadOrder, ts uint64, confirmCode int16, legs int) wire.SpreadOrder {
	resp := *req
	resp.Header = respHeader(req.Header, confirmCode, constants.Success)
	resp.OrderNumber1 = e.ids.NextOrderNumber(ts)
	resp.LastActivityReference = e.ids.NextActivityReference(ts)

	fullFill := e.oracle.Roll(2) == 0
	for i := 0; i < legs; i++ {
		if fullFill {
			resp.Legs[i].TotalVolumeRemaining = 0
		} else {
			resp.Legs[i].TotalVolumeRemaining = resp.Legs[i].Volume / 2
		}
	}
	return resp
}
