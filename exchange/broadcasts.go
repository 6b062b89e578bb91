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

// bcastHeader builds a fresh header for unsolicited frames. Solicited
// responses echo the request header instead; see respHeader.
func (e *Engine) bcastHeader(code int16, traderID int32, ts uint64) wire.MessageHeader {
	return wire.MessageHeader{
		TransactionCode: code,
		LogTime:         epochSeconds(ts),
		TraderID:        traderID,
		Timestamp:       int64(ts),
	}
}

// AddSpreadCombination registers a tradeable spread combination and
// broadcasts the master change.
func (e *Engine) AddSpreadCombination(info wire.SpreadUpdateInfo, ts uint64) {
	e.spreads.PutCombination(info)
	e.broadcastSpreadMaster(info, constants.BcastSpdMstrChg, ts)
	log.Printf("added spread combination %d/%d", info.Token1, info.Token2)
}

// UpdateSpreadCombination replaces a combination master record and
// broadcasts the change. Setting DeleteFlag to Y retires the combination.
func (e *Engine) UpdateSpreadCombination(info wire.SpreadUpdateInfo, ts uint64) {
	e.spreads.PutCombination(info)
	e.broadcastSpreadMaster(info, constants.BcastSpdMstrChg, ts)
	log.Printf("updated spread combination %d/%d delete flag %q",
		info.Token1, info.Token2, info.DeleteFlag)
}

// BroadcastPeriodicSpreadCombination re-broadcasts a registered combination
// on the periodic code. Unknown pairs are ignored.
func (e *Engine) BroadcastPeriodicSpreadCombination(token1, token2 int32, ts uint64) {
	info, ok := e.spreads.GetCombination(token1, token2)
	if !ok {
		log.Printf("periodic spread broadcast skipped, unknown combination %d/%d", token1, token2)
		return
	}
	e.broadcastSpreadMaster(info, constants.BcastSpdMstrChgPeriodic, ts)
}

func (e *Engine) broadcastSpreadMaster(info wire.SpreadUpdateInfo, code int16, ts uint64) {
	msg := wire.SpreadMasterChange{
		Header: e.bcastHeader(code, 0, ts),
		Info:   info,
	}
	e.send(msg.Marshal())
}

// SendStopLossNotification tells the order's owner that a stop-loss order
// was triggered. The notification reuses the trade-confirm frame with the
// SL flag set.
func (e *Engine) SendStopLossNotification(orderNumber float64, ts uint64) bool {
	return e.sendTriggerNotification(orderNumber, constants.OnStopNotification, ts,
		func(f *wire.OrderFlags) { f.SL = true })
}

// SendMITNotification tells the order's owner that a market-if-touched
// order was taken up.
func (e *Engine) SendMITNotification(orderNumber float64, ts uint64) bool {
	return e.sendTriggerNotification(orderNumber, constants.MITNotification, ts,
		func(f *wire.OrderFlags) { f.MIT = true })
}

func (e *Engine) sendTriggerNotification(orderNumber float64, code int16, ts uint64, mark func(*wire.OrderFlags)) bool {
	order, ok := e.orders.Get(orderNumber)
	if !ok {
		log.Printf("trigger notification skipped, unknown order %.0f", orderNumber)
		return false
	}

	flags := wire.UnpackOrderFlags(order.Flags)
	mark(&flags)

	msg := wire.TradeConfirm{
		Header:              e.bcastHeader(code, order.Header.TraderID, ts),
		ResponseOrderNumber: order.OrderNumber,
		BrokerID:            order.BrokerID,
		TraderID:            order.TraderID,
		AccountNumber:       order.AccountNumber,
		BuySellIndicator:    order.BuySellIndicator,
		OriginalVolume:      order.Volume,
		DisclosedVolume:     order.DisclosedVolume,
		RemainingVolume:     order.TotalVolumeRemaining,
		FillQuantity:        0,
		FillPrice:           order.Price,
		Flags:               flags.Pack(),
		ActivityTime:        epochSeconds(ts),
		TokenNo:             order.TokenNo,
		Contract:            order.Contract,
		OpenClose:           constants.PositionOpen,
	}
	e.send(msg.Marshal())
	return true
}

// SendFreezeApproval releases a frozen order back to the book and confirms
// it to the owner.
func (e *Engine) SendFreezeApproval(orderNumber float64, ts uint64) bool {
	order, ok := e.orders.Get(orderNumber)
	if !ok {
		log.Printf("freeze approval skipped, unknown order %.0f", orderNumber)
		return false
	}

	flags := wire.UnpackOrderFlags(order.Flags)
	flags.Frozen = false
	order.Flags = flags.Pack()
	order.LastModified = epochSeconds(ts)
	e.orders.Put(order)

	resp := order
	resp.Header = e.bcastHeader(constants.OrderConfirmationOut, order.Header.TraderID, ts)
	resp.ReasonCode = constants.NormalConfirmation
	e.send(resp.Marshal())
	log.Printf("freeze approved for order %.0f", orderNumber)
	return true
}

// SendTradeConfirmation records the fill in the ledger and notifies the
// trader with the Traded flag set. The recorded fill is then eligible for
// the trade modification and cancellation flows.
func (e *Engine) SendTradeConfirmation(trade wire.TradeInq, ts uint64) {
	e.trades.Put(trade)

	flags := wire.OrderFlags{Traded: true}
	side := int16(constants.BuyIndicator)
	account := trade.BuyAccountNumber
	broker := trade.BuyBrokerID
	openClose := trade.BuyOpenClose
	if trade.RequestedBy == constants.RequestedBySeller {
		side = constants.SellIndicator
		account = trade.SellAccountNumber
		broker = trade.SellBrokerID
		openClose = trade.SellOpenClose
	}

	msg := wire.TradeConfirm{
		Header:           e.bcastHeader(constants.TradeConfirmation, trade.TraderID, ts),
		BrokerID:         broker,
		TraderID:         trade.TraderID,
		AccountNumber:    account,
		BuySellIndicator: side,
		OriginalVolume:   trade.FillQuantity,
		FillQuantity:     trade.FillQuantity,
		FillPrice:        trade.FillPrice,
		FillNumber:       trade.FillNumber,
		Flags:            flags.Pack(),
		ActivityTime:     epochSeconds(ts),
		TokenNo:          trade.TokenNo,
		Contract:         trade.Contract,
		OpenClose:        openClose,
	}
	e.send(msg.Marshal())
	log.Printf("trade confirmation sent for fill %d", trade.FillNumber)
}

// SendUserOrderLimitUpdate notifies a trader of revised order-value limits.
func (e *Engine) SendUserOrderLimitUpdate(traderID int32, orderLimit, tradedValueLimit float64, ts uint64) {
	msg := wire.OrderLimitUpdate{
		Header:           e.bcastHeader(constants.UserOrderLimitUpdateOut, traderID, ts),
		TraderID:         traderID,
		OrderLimit:       orderLimit,
		TradedValueLimit: tradedValueLimit,
	}
	e.send(msg.Marshal())
}

// SendDealerLimitUpdate notifies of a revised per-dealer limit.
func (e *Engine) SendDealerLimitUpdate(dealerID, branchID int32, limit float64, ts uint64) {
	msg := wire.DealerLimitUpdate{
		Header:      e.bcastHeader(constants.DealerLimitUpdateOut, dealerID, ts),
		DealerID:    dealerID,
		BranchID:    branchID,
		DealerLimit: limit,
	}
	e.send(msg.Marshal())
}

// SendSpreadOrderLimitUpdate notifies a trader of a revised spread order
// limit.
func (e *Engine) SendSpreadOrderLimitUpdate(traderID int32, limit float64, ts uint64) {
	msg := wire.SpreadLimitUpdate{
		Header:           e.bcastHeader(constants.SpdOrdLimitUpdateOut, traderID, ts),
		TraderID:         traderID,
		SpreadOrderLimit: limit,
	}
	e.send(msg.Marshal())
}

// SendControlMessage delivers a free-text exchange control message to one
// trader.
func (e *Engine) SendControlMessage(traderID int32, actionCode, message string, ts uint64) {
	if len(message) > wire.BcastMessageWidth {
		message = message[:wire.BcastMessageWidth]
	}
	msg := wire.CtrlMsgToTrader{
		Header:                 e.bcastHeader(constants.CtrlMsgToTrader, traderID, ts),
		TraderID:               traderID,
		ActionCode:             actionCode,
		BroadcastMessageLength: int16(len(message)),
		Message:                message,
	}
	e.send(msg.Marshal())
}

// SendBroadcastMessage delivers a free-text journal broadcast. An empty
// broker number addresses all brokers.
func (e *Engine) SendBroadcastMessage(branch int16, broker, actionCode, message string, ts uint64) {
	if len(message) > wire.BcastMessageWidth {
		message = message[:wire.BcastMessageWidth]
	}
	msg := wire.BcastJournalMessage{
		Header:                 e.bcastHeader(constants.BcastJrnlVctMsg, 0, ts),
		BranchNumber:           branch,
		BrokerNumber:           broker,
		ActionCode:             actionCode,
		BroadcastMessageLength: int16(len(message)),
		Message:                message,
	}
	e.send(msg.Marshal())
}

// SendBatchOrderCancel emits the batch-cancellation notification for one
// regular order. The order is tombstoned like a normal cancellation.
func (e *Engine) SendBatchOrderCancel(orderNumber float64, ts uint64) bool {
	order, ok := e.orders.Get(orderNumber)
	if !ok {
		log.Printf("batch order cancel skipped, unknown order %.0f", orderNumber)
		return false
	}

	order.Volume = 0
	order.TotalVolumeRemaining = 0
	order.LastModified = epochSeconds(ts)
	order.LastActivityReference = e.ids.NextActivityReference(ts)
	e.orders.Put(order)

	resp := order
	resp.Header = e.bcastHeader(constants.BatchOrderCancel, order.Header.TraderID, ts)
	resp.ReasonCode = constants.NormalConfirmation
	e.send(resp.Marshal())
	log.Printf("batch cancelled order %.0f", orderNumber)
	return true
}

// SendBatchSpreadCancel emits the batch-cancellation notification for one
// spread order.
func (e *Engine) SendBatchSpreadCancel(orderNumber float64, ts uint64) bool {
	order, ok := e.spreads.Get(orderNumber)
	if !ok {
		log.Printf("batch spread cancel skipped, unknown order %.0f", orderNumber)
		return false
	}

	for i := range order.Legs {
		order.Legs[i].Volume = 0
		order.Legs[i].TotalVolumeRemaining = 0
	}
	order.LastActivityReference = e.ids.NextActivityReference(ts)
	e.spreads.Put(order)

	resp := order
	resp.Header = e.bcastHeader(constants.BatchSpreadCxlOut, order.Header.TraderID, ts)
	e.send(resp.Marshal())
	log.Printf("batch cancelled spread order %.0f", orderNumber)
	return true
}
