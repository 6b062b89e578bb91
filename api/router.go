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
	"github.com/gin-gonic/gin"

	"github.com/VirTrivedi/NSE-Fake-Exchange/database"
	"github.com/VirTrivedi/NSE-Fake-Exchange/exchange"
)

// AdminAPI is the HTTP admin surface. It drives the broadcast engine, whose
// sink fans out to every connected trader.
type AdminAPI struct {
	engine *exchange.Engine
	db     *database.FrameDb
	clock  func() uint64
}

func NewAdminAPI(engine *exchange.Engine, db *database.FrameDb, clock func() uint64) *AdminAPI {
	return &AdminAPI{engine: engine, db: db, clock: clock}
}

func (a *AdminAPI) SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/exchange/v1/status", a.GetStatus)

	router.POST("/exchange/v1/market", a.SetMarketStatus)

	router.POST("/exchange/v1/brokers", a.SetBrokerPolicy)

	router.GET("/exchange/v1/orders", a.GetOrders)

	router.GET("/exchange/v1/spreads", a.GetSpreadOrders)

	router.GET("/exchange/v1/trades", a.GetTrades)

	router.POST("/exchange/v1/trades", a.InjectTrade)

	router.GET("/exchange/v1/combinations", a.GetCombinations)

	router.POST("/exchange/v1/combinations", a.UpsertCombination)

	router.POST("/exchange/v1/combinations/periodic", a.PeriodicCombination)

	router.POST("/exchange/v1/bhavcopy", a.GenerateBhavcopy)

	router.POST("/exchange/v1/stats/market", a.SetMarketStats)

	router.POST("/exchange/v1/stats/spread", a.SetSpreadStats)

	router.POST("/exchange/v1/stats/index", a.SetIndexes)

	router.POST("/exchange/v1/notify", a.Notify)

	router.POST("/exchange/v1/limits", a.SendLimitUpdate)

	router.POST("/exchange/v1/broadcast", a.Broadcast)

	router.POST("/exchange/v1/batchcancel", a.BatchCancel)

	return router
}
