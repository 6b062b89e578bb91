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

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

func (a *AdminAPI) GetStatus(c *gin.Context) {
	status, _, _ := a.engine.Market().Current()

	resp := gin.H{
		"market": gin.H{
			"normal":  status.Normal,
			"oddlot":  status.Oddlot,
			"spot":    status.Spot,
			"auction": status.Auction,
			"opening": a.engine.Market().Opening(),
		},
		"sessions":     a.engine.Sessions().Active(),
		"orders":       a.engine.Orders().Len(),
		"spreads":      a.engine.Spreads().Len(),
		"trades":       a.engine.Trades().Len(),
		"combinations": len(a.engine.Spreads().Combinations()),
	}
	if a.db != nil {
		if n, err := a.db.FrameCount(); err == nil {
			resp["recordedFrames"] = n
		}
	}
	c.JSON(http.StatusOK, resp)
}

type marketStatusRequest struct {
	Normal  bool `json:"normal"`
	Oddlot  bool `json:"oddlot"`
	Spot    bool `json:"spot"`
	Auction bool `json:"auction"`
	Opening bool `json:"opening"`
}

func (a *AdminAPI) SetMarketStatus(c *gin.Context) {
	var data marketStatusRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	a.engine.Market().SetStatus(data.Normal, data.Oddlot, data.Spot, data.Auction)
	a.engine.Market().SetOpening(data.Opening)

	c.JSON(http.StatusOK, gin.H{"message": "Market status updated"})
}

type brokerPolicyRequest struct {
	BrokerID    string `json:"brokerId" binding:"required"`
	Closeout    *bool  `json:"closeout"`
	Deactivated *bool  `json:"deactivated"`
	Type        string `json:"type"`
}

func (a *AdminAPI) SetBrokerPolicy(c *gin.Context) {
	var data brokerPolicyRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if data.Closeout != nil {
		a.engine.Brokers().SetCloseout(data.BrokerID, *data.Closeout)
	}
	if data.Deactivated != nil {
		a.engine.Brokers().SetDeactivated(data.BrokerID, *data.Deactivated)
	}
	switch data.Type {
	case "":
	case "CM":
		a.engine.Brokers().SetType(data.BrokerID, constants.CorporateManager)
	case "BM":
		a.engine.Brokers().SetType(data.BrokerID, constants.BranchManager)
	case "DL":
		a.engine.Brokers().SetType(data.BrokerID, constants.Dealer)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be CM, BM or DL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Broker policy updated", "brokerId": data.BrokerID})
}

func (a *AdminAPI) GetOrders(c *gin.Context) {
	orders := a.engine.Orders().SnapshotSorted()
	out := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		out = append(out, gin.H{
			"orderNumber":           o.OrderNumber,
			"traderId":              o.TraderID,
			"brokerId":              o.BrokerID,
			"token":                 o.TokenNo,
			"symbol":                o.Contract.Symbol,
			"buySell":               o.BuySellIndicator,
			"volume":                o.Volume,
			"price":                 o.Price,
			"lastActivityReference": o.LastActivityReference,
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (a *AdminAPI) GetSpreadOrders(c *gin.Context) {
	orders := a.engine.Spreads().Snapshot()
	out := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		out = append(out, gin.H{
			"orderNumber":           o.OrderNumber1,
			"traderId":              o.Header.TraderID,
			"brokerId":              o.BrokerID,
			"legs":                  o.NumberOfLegs,
			"priceDiff":             o.PriceDiff,
			"token1":                o.Legs[0].TokenNo,
			"token2":                o.Legs[1].TokenNo,
			"volume":                o.Legs[0].Volume,
			"lastActivityReference": o.LastActivityReference,
		})
	}
	c.JSON(http.StatusOK, gin.H{"spreads": out})
}

func (a *AdminAPI) GetTrades(c *gin.Context) {
	trades := a.engine.Trades().Snapshot()
	out := make([]gin.H, 0, len(trades))
	for _, t := range trades {
		out = append(out, gin.H{
			"fillNumber":   t.FillNumber,
			"token":        t.TokenNo,
			"quantity":     t.FillQuantity,
			"price":        t.FillPrice,
			"traderId":     t.TraderID,
			"buyBrokerId":  t.BuyBrokerID,
			"sellBrokerId": t.SellBrokerID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"trades": out})
}

type injectTradeRequest struct {
	FillNumber        int32  `json:"fillNumber" binding:"required"`
	TokenNo           int32  `json:"token" binding:"required"`
	FillQuantity      int32  `json:"quantity" binding:"required"`
	FillPrice         int32  `json:"price" binding:"required"`
	TraderID          int32  `json:"traderId" binding:"required"`
	BuyBrokerID       string `json:"buyBrokerId"`
	SellBrokerID      string `json:"sellBrokerId"`
	BuyAccountNumber  string `json:"buyAccount"`
	SellAccountNumber string `json:"sellAccount"`
	Symbol            string `json:"symbol"`
}

// InjectTrade seeds a fill into the ledger and sends the trade confirmation,
// making it available to the trade modification and cancellation flows.
func (a *AdminAPI) InjectTrade(c *gin.Context) {
	var data injectTradeRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	trade := wire.TradeInq{
		FillNumber:        data.FillNumber,
		TokenNo:           data.TokenNo,
		FillQuantity:      data.FillQuantity,
		FillPrice:         data.FillPrice,
		MktType:           constants.MktTypeNormal,
		RequestedBy:       constants.RequestedByBuyer,
		BuyOpenClose:      constants.PositionOpen,
		SellOpenClose:     constants.PositionOpen,
		BuyBrokerID:       data.BuyBrokerID,
		SellBrokerID:      data.SellBrokerID,
		BuyAccountNumber:  data.BuyAccountNumber,
		SellAccountNumber: data.SellAccountNumber,
		TraderID:          data.TraderID,
		Contract:          wire.ContractDesc{Symbol: data.Symbol},
	}
	a.engine.SendTradeConfirmation(trade, a.clock())

	c.JSON(http.StatusOK, gin.H{"message": "Trade recorded", "fillNumber": data.FillNumber})
}

func (a *AdminAPI) GetCombinations(c *gin.Context) {
	combos := a.engine.Spreads().Combinations()
	out := make([]gin.H, 0, len(combos))
	for _, combo := range combos {
		out = append(out, gin.H{
			"token1":         combo.Token1,
			"token2":         combo.Token2,
			"referencePrice": combo.ReferencePrice,
			"eligibility":    combo.Eligibility,
			"deleteFlag":     combo.DeleteFlag,
		})
	}
	c.JSON(http.StatusOK, gin.H{"combinations": out})
}

type combinationRequest struct {
	Token1         int32  `json:"token1" binding:"required"`
	Token2         int32  `json:"token2" binding:"required"`
	ReferencePrice int32  `json:"referencePrice"`
	Eligible       *bool  `json:"eligible"`
	DeleteFlag     string `json:"deleteFlag"`
}

func (a *AdminAPI) UpsertCombination(c *gin.Context) {
	var data combinationRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	info := wire.SpreadUpdateInfo{
		Token1:         data.Token1,
		Token2:         data.Token2,
		ReferencePrice: data.ReferencePrice,
		Eligibility:    constants.CombinationEligible,
		DeleteFlag:     "N",
	}
	if data.Eligible != nil && !*data.Eligible {
		info.Eligibility = 0
	}
	if data.DeleteFlag != "" {
		info.DeleteFlag = data.DeleteFlag
	}

	if _, exists := a.engine.Spreads().GetCombination(data.Token1, data.Token2); exists {
		a.engine.UpdateSpreadCombination(info, a.clock())
	} else {
		a.engine.AddSpreadCombination(info, a.clock())
	}

	c.JSON(http.StatusOK, gin.H{"message": "Combination stored and broadcast"})
}

type periodicCombinationRequest struct {
	Token1 int32 `json:"token1" binding:"required"`
	Token2 int32 `json:"token2" binding:"required"`
}

func (a *AdminAPI) PeriodicCombination(c *gin.Context) {
	var data periodicCombinationRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if _, exists := a.engine.Spreads().GetCombination(data.Token1, data.Token2); !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Combination not found"})
		return
	}
	a.engine.BroadcastPeriodicSpreadCombination(data.Token1, data.Token2, a.clock())

	c.JSON(http.StatusOK, gin.H{"message": "Periodic broadcast sent"})
}

type bhavcopyRequest struct {
	Enhanced bool `json:"enhanced"`
	Spread   bool `json:"spread"`
}

func (a *AdminAPI) GenerateBhavcopy(c *gin.Context) {
	var data bhavcopyRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if data.Spread {
		a.engine.GenerateSpreadBhavcopy(constants.MktTypeNormal, a.clock())
	} else {
		a.engine.GenerateBhavcopy(constants.MktTypeNormal, data.Enhanced, a.clock())
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bhavcopy generated"})
}

type marketStatsRequest struct {
	Symbol              string  `json:"symbol" binding:"required"`
	ExpiryDate          int32   `json:"expiryDate"`
	OpenPrice           int32   `json:"open"`
	HighPrice           int32   `json:"high"`
	LowPrice            int32   `json:"low"`
	ClosingPrice        int32   `json:"close"`
	TotalQuantityTraded int32   `json:"quantity"`
	TotalValueTraded    float64 `json:"value"`
	PreviousClosePrice  int32   `json:"previousClose"`
	OpenInterest        int32   `json:"openInterest"`
}

func (a *AdminAPI) SetMarketStats(c *gin.Context) {
	var data marketStatsRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	a.engine.Stats().SetMarketStats(wire.MktStatsData{
		Contract:            wire.ContractDesc{Symbol: data.Symbol, ExpiryDate: data.ExpiryDate},
		OpenPrice:           data.OpenPrice,
		HighPrice:           data.HighPrice,
		LowPrice:            data.LowPrice,
		ClosingPrice:        data.ClosingPrice,
		TotalQuantityTraded: data.TotalQuantityTraded,
		TotalValueTraded:    data.TotalValueTraded,
		PreviousClosePrice:  data.PreviousClosePrice,
		OpenInterest:        data.OpenInterest,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Market stats stored", "symbol": data.Symbol})
}

type spreadStatsRequest struct {
	Token1              int32   `json:"token1" binding:"required"`
	Token2              int32   `json:"token2" binding:"required"`
	OpenPriceDiff       int32   `json:"open"`
	HighPriceDiff       int32   `json:"high"`
	LowPriceDiff        int32   `json:"low"`
	ClosePriceDiff      int32   `json:"close"`
	TotalQuantityTraded int32   `json:"quantity"`
	TotalValueTraded    float64 `json:"value"`
}

func (a *AdminAPI) SetSpreadStats(c *gin.Context) {
	var data spreadStatsRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	a.engine.Stats().SetSpreadStats(wire.SpdStatsData{
		Token1:              data.Token1,
		Token2:              data.Token2,
		OpenPriceDiff:       data.OpenPriceDiff,
		HighPriceDiff:       data.HighPriceDiff,
		LowPriceDiff:        data.LowPriceDiff,
		ClosePriceDiff:      data.ClosePriceDiff,
		TotalQuantityTraded: data.TotalQuantityTraded,
		TotalValueTraded:    data.TotalValueTraded,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Spread stats stored"})
}

type indexRequest struct {
	Name         string `json:"name" binding:"required"`
	Value        int32  `json:"value" binding:"required"`
	OpeningIndex int32  `json:"opening"`
	HighIndex    int32  `json:"high"`
	LowIndex     int32  `json:"low"`
	ClosingIndex int32  `json:"closing"`
	Industry     string `json:"industry"`
	Sector       string `json:"sector"`
}

// SetIndexes records index values: the headline market index when only a
// name is given, an industry row when industry is set, and a sector-grouped
// row when both sector and industry are set.
func (a *AdminAPI) SetIndexes(c *gin.Context) {
	var data indexRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	switch {
	case data.Sector != "" && data.Industry != "":
		a.engine.Stats().SetSectorIndex(data.Sector, data.Industry, data.Value)
	case data.Industry != "":
		a.engine.Stats().SetIndustryIndex(data.Industry, data.Value)
	default:
		a.engine.Stats().SetMarketIndex(wire.MktIndexReport{
			IndexName:      data.Name,
			IndexValue:     data.Value,
			OpeningIndex:   data.OpeningIndex,
			HighIndexValue: data.HighIndex,
			LowIndexValue:  data.LowIndex,
			ClosingIndex:   data.ClosingIndex,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Index stored", "name": data.Name})
}

type notifyRequest struct {
	Kind        string  `json:"kind" binding:"required"`
	OrderNumber float64 `json:"orderNumber" binding:"required"`
}

func (a *AdminAPI) Notify(c *gin.Context) {
	var data notifyRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	var ok bool
	switch data.Kind {
	case "sl":
		ok = a.engine.SendStopLossNotification(data.OrderNumber, a.clock())
	case "mit":
		ok = a.engine.SendMITNotification(data.OrderNumber, a.clock())
	case "freeze-approval":
		ok = a.engine.SendFreezeApproval(data.OrderNumber, a.clock())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be sl, mit or freeze-approval"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification sent"})
}

type limitUpdateRequest struct {
	Kind             string  `json:"kind" binding:"required"`
	TraderID         int32   `json:"traderId"`
	BranchID         int32   `json:"branchId"`
	OrderLimit       float64 `json:"orderLimit"`
	TradedValueLimit float64 `json:"tradedValueLimit"`
}

func (a *AdminAPI) SendLimitUpdate(c *gin.Context) {
	var data limitUpdateRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	switch data.Kind {
	case "user":
		a.engine.SendUserOrderLimitUpdate(data.TraderID, data.OrderLimit, data.TradedValueLimit, a.clock())
	case "dealer":
		a.engine.SendDealerLimitUpdate(data.TraderID, data.BranchID, data.OrderLimit, a.clock())
	case "spread":
		a.engine.SendSpreadOrderLimitUpdate(data.TraderID, data.OrderLimit, a.clock())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be user, dealer or spread"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Limit update sent"})
}

type broadcastRequest struct {
	TraderID int32  `json:"traderId"`
	Message  string `json:"message" binding:"required"`
}

// Broadcast sends a control message when traderId is set, otherwise a
// journal broadcast to all brokers.
func (a *AdminAPI) Broadcast(c *gin.Context) {
	var data broadcastRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if data.TraderID != 0 {
		a.engine.SendControlMessage(data.TraderID, "SYS", data.Message, a.clock())
	} else {
		a.engine.SendBroadcastMessage(0, "", "SYS", data.Message, a.clock())
	}

	c.JSON(http.StatusOK, gin.H{"message": "Broadcast sent"})
}

type batchCancelRequest struct {
	Kind        string  `json:"kind" binding:"required"`
	OrderNumber float64 `json:"orderNumber" binding:"required"`
}

func (a *AdminAPI) BatchCancel(c *gin.Context) {
	var data batchCancelRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	var ok bool
	switch data.Kind {
	case "order":
		ok = a.engine.SendBatchOrderCancel(data.OrderNumber, a.clock())
	case "spread":
		ok = a.engine.SendBatchSpreadCancel(data.OrderNumber, a.clock())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be order or spread"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Batch cancellation sent"})
}
