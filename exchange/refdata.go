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

// downloadSampleMessage is the canned payload carried by message downloads.
const downloadSampleMessage = "Sample trader message data for download"

func (e *Engine) handleSystemInfoRequest(req *wire.SystemInfoReq, ts uint64) {
	log.Printf("system info request from trader %d", req.Header.TraderID)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		resp := wire.SystemInfoData{
			Header: respHeader(req.Header, constants.SystemInfoData, constants.UserNotFound),
		}
		e.send(resp.Marshal())
		return
	}

	// Canned parameters: everything reported as 1 with all markets open and
	// portfolio updates enabled.
	open := wire.MarketStatus{Normal: 1, Oddlot: 1, Spot: 1, Auction: 1}
	resp := wire.SystemInfoData{
		Header:                          respHeader(req.Header, constants.SystemInfoData, constants.Success),
		MarketStatus:                    open,
		ExMarketStatus:                  open,
		PlMarketStatus:                  open,
		UpdatePortfolio:                 "Y",
		MarketIndex:                     1,
		DefaultSettlementPeriodNormal:   1,
		DefaultSettlementPeriodSpot:     1,
		DefaultSettlementPeriodAuction:  1,
		CompetitorPeriod:                1,
		SolicitorPeriod:                 1,
		WarningPercent:                  1,
		VolumeFreezePercent:             1,
		SnapQuoteTime:                   1,
		BoardLotQuantity:                1,
		TickSize:                        1,
		MaximumGtcDays:                  1,
		StockEligibleIndicators:         wire.StockEligibility{AON: true, MinimumFill: true, BooksMerged: true}.Pack(),
		DisclosedQuantityPercentAllowed: 1,
		RiskFreeInterestRate:            1,
	}
	e.send(resp.Marshal())
}

func (e *Engine) handleUpdateLocalDatabase(req *wire.UpdateLocalDatabase, ts uint64) {
	log.Printf("update local database request from trader %d, security time %d",
		req.Header.TraderID, req.LastUpdateSecurityTime)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		hdr := wire.UpdateLdbHeader{
			Header: respHeader(req.Header, constants.UpdateLocalDatabaseHdr, constants.UserNotFound),
		}
		e.send(hdr.Marshal())
		return
	}

	// A stale status copy, or markets in the middle of opening, short-circuits
	// the download: the trader first needs the current market state.
	if e.market.Stale(req.MarketStatus, req.ExMarketStatus, req.PlMarketStatus) || e.market.Opening() {
		status, ex, pl := e.market.Current()
		resp := wire.SystemInfoData{
			Header:         respHeader(req.Header, constants.PartialSystemInformation, constants.Success),
			MarketStatus:   status,
			ExMarketStatus: ex,
			PlMarketStatus: pl,
		}
		e.send(resp.Marshal())
		log.Printf("trader %d has stale market status, sent partial system information",
			req.Header.TraderID)
		return
	}

	hdr := wire.UpdateLdbHeader{
		Header: respHeader(req.Header, constants.UpdateLocalDatabaseHdr, constants.Success),
	}
	e.send(hdr.Marshal())

	inner := req.Header
	inner.TransactionCode = constants.BcastPartMstrChg
	inner.ErrorCode = constants.Success
	inner.MessageLength = 0
	data := wire.UpdateLdbData{
		Header:      respHeader(req.Header, constants.UpdateLocalDatabaseData, constants.Success),
		InnerHeader: inner,
	}
	e.send(data.Marshal())
}

func (e *Engine) handleExchangePortfolioRequest(req *wire.ExchPortfolioReq, ts uint64) {
	log.Printf("portfolio request from trader %d, last update %d",
		req.Header.TraderID, req.LastUpdateDtTime)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		resp := wire.ExchPortfolioResp{
			Header:      respHeader(req.Header, constants.ExchangePortfolioResp, constants.UserNotFound),
			MoreRecords: "N",
		}
		e.send(resp.Marshal())
		return
	}

	resp := wire.ExchPortfolioResp{
		Header:      respHeader(req.Header, constants.ExchangePortfolioResp, constants.Success),
		NoOfRecords: 1,
		MoreRecords: "N",
		Portfolio: wire.PortfolioData{
			Portfolio:        "DEMO",
			Token:            1,
			LastUpdateDtTime: epochSeconds(ts),
			DeleteFlag:       "N",
		},
	}
	e.send(resp.Marshal())
}

func (e *Engine) handleMessageDownload(req *wire.MessageDownload, ts uint64) {
	log.Printf("message download request from trader %d, sequence %.0f",
		req.Header.TraderID, req.SequenceNumber)

	if !e.sessions.LoggedIn(req.Header.TraderID) {
		hdr := wire.MessageDownloadHeader{
			Header: respHeader(req.Header, constants.MessageDownloadHeader, constants.UserNotFound),
		}
		e.send(hdr.Marshal())
		return
	}

	hdr := wire.MessageDownloadHeader{
		Header: respHeader(req.Header, constants.MessageDownloadHeader, constants.Success),
	}
	e.send(hdr.Marshal())

	inner := respHeader(req.Header, constants.MessageDownloadData, constants.Success)
	inner.MessageLength = wire.HeaderSize
	data := wire.MessageDownloadData{
		Header:      respHeader(req.Header, constants.MessageDownloadData, constants.Success),
		InnerHeader: inner,
		InnerData:   downloadSampleMessage,
	}
	e.send(data.Marshal())

	trailer := wire.MessageDownloadTrailer{
		Header: respHeader(req.Header, constants.MessageDownloadTrailer, constants.Success),
	}
	e.send(trailer.Marshal())
	log.Printf("message download sequence completed for trader %d", req.Header.TraderID)
}
