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

const (
	tradeOpModify = "modify"
	tradeOpCancel = "cancel"
)

func (e *Engine) handleTradeModification(req *wire.TradeInq, ts uint64) {
	log.Printf("trade modification from trader %d fill %d", req.Header.TraderID, req.FillNumber)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		e.sendTradeResponse(req, constants.TradeModifyReject, constants.UserNotFound)
		return
	}

	if e.trades.Seen(req.FillNumber, req.Header.TraderID, tradeOpModify) {
		e.sendTradeResponse(req, constants.TradeModifyReject, constants.ErrDupRequest)
		return
	}

	trade, ok := e.trades.Get(req.FillNumber)
	if !ok {
		e.sendTradeResponse(req, constants.TradeModifyReject, constants.ErrInvalidFillNumber)
		return
	}

	if !tradeOwner(&trade, req) {
		e.sendTradeResponse(req, constants.TradeModifyReject, constants.ErrNotYourFill)
		return
	}

	if e.brokers.InCloseout(trade.BuyBrokerID) {
		e.sendTradeResponse(req, constants.TradeModifyReject, constants.CloseoutTrdmodReject)
		return
	}

	if !validTradeFields(req) {
		e.sendTradeResponse(req, constants.TradeModifyReject, constants.InvalidOrder)
		return
	}

	if req.FillQuantity != trade.FillQuantity {
		e.sendTradeResponse(req, constants.TradeModifyReject, constants.OeDiffTrdModVol)
		return
	}

	if req.BuyAccountNumber == trade.BuyAccountNumber && req.SellAccountNumber == trade.SellAccountNumber {
		e.sendTradeResponse(req, constants.TradeModifyReject, constants.ErrDataNotChanged)
		return
	}

	switch req.RequestedBy {
	case constants.RequestedByBuyer:
		trade.BuyAccountNumber = req.BuyAccountNumber
		trade.BuyOpenClose = req.BuyOpenClose
	case constants.RequestedBySeller:
		trade.SellAccountNumber = req.SellAccountNumber
		trade.SellOpenClose = req.SellOpenClose
	case constants.RequestedByBoth:
		trade.BuyAccountNumber = req.BuyAccountNumber
		trade.BuyOpenClose = req.BuyOpenClose
		trade.SellAccountNumber = req.SellAccountNumber
		trade.SellOpenClose = req.SellOpenClose
	}
	e.trades.Put(trade)
	e.trades.Mark(req.FillNumber, req.Header.TraderID, tradeOpModify)

	e.sendTradeResponse(req, constants.TradeModifyConfirm, constants.Success)
	log.Printf("modified trade fill %d per side %c", req.FillNumber, req.RequestedBy)
}

// handleTradeCancellation records the counter-party's cancellation request
// and acknowledges it. The fill itself stays in the ledger: cancellation
// requires both sides, and consensus settlement happens outside this flow.
func (e *Engine) handleTradeCancellation(req *wire.TradeInq, ts uint64) {
	log.Printf("trade cancellation from trader %d fill %d", req.Header.TraderID, req.FillNumber)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		e.sendTradeResponse(req, constants.TradeCancelReject, constants.UserNotFound)
		return
	}

	if e.trades.Seen(req.FillNumber, req.Header.TraderID, tradeOpCancel) {
		e.sendTradeResponse(req, constants.TradeCancelReject, constants.ErrDupTrdCxlRequest)
		return
	}

	trade, ok := e.trades.Get(req.FillNumber)
	if !ok {
		e.sendTradeResponse(req, constants.TradeCancelReject, constants.ErrInvalidFillNumber)
		return
	}

	if !tradeOwner(&trade, req) {
		e.sendTradeResponse(req, constants.TradeCancelReject, constants.ErrNotYourFill)
		return
	}

	if e.brokers.InCloseout(trade.BuyBrokerID) {
		e.sendTradeResponse(req, constants.TradeCancelReject, constants.CloseoutTrdmodReject)
		return
	}

	if !validTradeFields(req) {
		e.sendTradeResponse(req, constants.TradeCancelReject, constants.InvalidOrder)
		return
	}

	e.trades.Mark(req.FillNumber, req.Header.TraderID, tradeOpCancel)
	e.sendTradeResponse(req, constants.TradeCancelConfirm, constants.Success)
	log.Printf("recorded cancellation request for fill %d from trader %d",
		req.FillNumber, req.Header.TraderID)
}

// tradeOwner reports whether the requester is a party to the fill, either by
// trader id or by standing as the buy- or sell-side broker.
func tradeOwner(trade *wire.TradeInq, req *wire.TradeInq) bool {
	if trade.TraderID == req.Header.TraderID || trade.TraderID == req.TraderID {
		return true
	}
	return req.BuyBrokerID != "" && (req.BuyBrokerID == trade.BuyBrokerID || req.BuyBrokerID == trade.SellBrokerID)
}

func validTradeFields(req *wire.TradeInq) bool {
	if req.FillNumber <= 0 || req.FillQuantity <= 0 || req.FillPrice <= 0 || req.TokenNo <= 0 {
		return false
	}
	if req.MktType < constants.MktTypeNormal || req.MktType > constants.MktTypeAuction {
		return false
	}
	if req.RequestedBy < constants.RequestedByBuyer || req.RequestedBy > constants.RequestedByBoth {
		return false
	}
	if req.BuyOpenClose != constants.PositionOpen && req.BuyOpenClose != constants.PositionClose {
		return false
	}
	if req.SellOpenClose != constants.PositionOpen && req.SellOpenClose != constants.PositionClose {
		return false
	}
	return true
}

func (e *Engine) sendTradeResponse(req *wire.TradeInq, code, errCode int16) {
	resp := *req
	resp.Header = respHeader(req.Header, code, errCode)
	e.send(resp.Marshal())
}
