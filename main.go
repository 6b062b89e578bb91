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

package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/natefinch/lumberjack"

	"github.com/VirTrivedi/NSE-Fake-Exchange/api"
	"github.com/VirTrivedi/NSE-Fake-Exchange/database"
	"github.com/VirTrivedi/NSE-Fake-Exchange/exchange"
)

func main() {
	listenAddr := flag.String("listen", ":9001", "address for trader connections")
	adminAddr := flag.String("admin", ":8080", "address for the HTTP admin API")
	dbPath := flag.String("db", "exchange.db", "SQLite path for wire-traffic recording, empty disables")
	logPath := flag.String("log", "exchange.log", "rotating log file, empty logs to stderr only")
	repl := flag.Bool("repl", true, "run the operator console")
	lot := flag.Int("lot", 1, "regular lot size for spread and multi-leg volume checks")
	seed := flag.Int64("seed", 0, "match oracle seed, 0 uses the clock")
	flag.Parse()

	if *logPath != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   *logPath,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     7, // days
		}))
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var db *database.FrameDb
	if *dbPath != "" {
		var err error
		db, err = database.NewFrameDb(*dbPath)
		if err != nil {
			log.Fatalf("recorder init failed: %v", err)
		}
		defer func() { _ = db.Close() }()
	}

	base := exchange.NewEngine(exchange.Config{
		RegularLot: int32(*lot),
		Seed:       *seed,
	})
	// Markets start open so traders can work immediately; the admin
	// surfaces flip them for session simulations.
	base.Market().SetStatus(true, true, true, true)

	server, err := NewServer(*listenAddr, base, db)
	if err != nil {
		log.Fatalf("server init failed: %v", err)
	}
	defer server.Close()

	go func() {
		admin := api.NewAdminAPI(base, db, feedClock)
		if err := admin.SetupRouter().Run(*adminAddr); err != nil {
			log.Printf("admin API stopped: %v", err)
		}
	}()

	if *repl {
		go server.Start()
		exchange.Repl(base, feedClock)
		return
	}
	server.Start()
}
