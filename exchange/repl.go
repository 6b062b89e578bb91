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
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// Repl runs the exchange operator console. The engine passed here is the
// broadcast engine whose sink fans out to every connected trader; clock
// supplies the feed timestamp for generated frames.
func Repl(e *Engine, clock func() uint64) {
	// Setup readline with command completion
	completer := readline.NewPrefixCompleter(
		// Market control commands
		readline.PcItem("market",
			readline.PcItem("open"),
			readline.PcItem("close"),
			readline.PcItem("opening", readline.PcItem("on"), readline.PcItem("off")),
		),
		readline.PcItem("broker",
			readline.PcItem("closeout"),
			readline.PcItem("deactivate"),
			readline.PcItem("activate"),
			readline.PcItem("type"),
		),

		// Spread combination commands
		readline.PcItem("combo",
			readline.PcItem("add"),
			readline.PcItem("delete"),
			readline.PcItem("periodic"),
			readline.PcItem("list"),
		),

		// Broadcast commands
		readline.PcItem("bhavcopy", readline.PcItem("--enhanced"), readline.PcItem("--spread")),
		readline.PcItem("notify", readline.PcItem("sl"), readline.PcItem("mit")),
		readline.PcItem("approve"),
		readline.PcItem("limit",
			readline.PcItem("user"),
			readline.PcItem("dealer"),
			readline.PcItem("spread"),
		),
		readline.PcItem("msg", readline.PcItem("trader"), readline.PcItem("all")),
		readline.PcItem("batchcancel", readline.PcItem("order"), readline.PcItem("spread")),

		// General commands
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "NNF> ",
		HistoryFile:     "/tmp/nnf_exchange_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Printf("Failed to create readline: %v", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}

		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}

		cmd := strings.ToLower(parts[0])
		switch cmd {
		// Market control commands
		case "market":
			e.handleMarketCommand(parts)
		case "broker":
			e.handleBrokerCommand(parts)

		// Spread combination commands
		case "combo":
			e.handleComboCommand(parts, clock())

		// Broadcast commands
		case "bhavcopy":
			e.handleBhavcopyCommand(parts, clock())
		case "notify":
			e.handleNotifyCommand(parts, clock())
		case "approve":
			e.handleApproveCommand(parts, clock())
		case "limit":
			e.handleLimitCommand(parts, clock())
		case "msg":
			e.handleMsgCommand(parts, clock())
		case "batchcancel":
			e.handleBatchCancelCommand(parts, clock())

		// General commands
		case "status":
			e.handleStatusCommand()
		case "help":
			displayReplHelp()
		case "exit":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for available commands.")
		}
	}
}

func (e *Engine) handleMarketCommand(parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: market <open|close|opening on|opening off>")
		return
	}

	switch strings.ToLower(parts[1]) {
	case "open":
		e.market.SetStatus(true, true, true, true)
		fmt.Println("All markets open")
	case "close":
		e.market.SetStatus(false, false, false, false)
		fmt.Println("All markets closed")
	case "opening":
		if len(parts) < 3 {
			fmt.Println("Usage: market opening <on|off>")
			return
		}
		on := strings.ToLower(parts[2]) == "on"
		e.market.SetOpening(on)
		fmt.Printf("Market opening flag set to %v\n", on)
	default:
		fmt.Println("Usage: market <open|close|opening on|opening off>")
	}
}

func (e *Engine) handleBrokerCommand(parts []string) {
	if len(parts) < 3 {
		fmt.Print(`Usage: broker <closeout|deactivate|activate|type> <brokerId> [arg]

Examples:
  broker closeout B0001 on    - Put broker into closeout
  broker closeout B0001 off   - Lift closeout
  broker deactivate B0001     - Deactivate broker
  broker activate B0001       - Reactivate broker
  broker type B0001 CM        - Set broker type (CM, BM, DL)
`)
		return
	}

	broker := strings.ToUpper(parts[2])
	switch strings.ToLower(parts[1]) {
	case "closeout":
		on := len(parts) < 4 || strings.ToLower(parts[3]) != "off"
		e.brokers.SetCloseout(broker, on)
		fmt.Printf("Broker %s closeout=%v\n", broker, on)
	case "deactivate":
		e.brokers.SetDeactivated(broker, true)
		fmt.Printf("Broker %s deactivated\n", broker)
	case "activate":
		e.brokers.SetDeactivated(broker, false)
		fmt.Printf("Broker %s activated\n", broker)
	case "type":
		if len(parts) < 4 {
			fmt.Println("Usage: broker type <brokerId> <CM|BM|DL>")
			return
		}
		var t byte
		switch strings.ToUpper(parts[3]) {
		case "CM":
			t = constants.CorporateManager
		case "BM":
			t = constants.BranchManager
		case "DL":
			t = constants.Dealer
		default:
			fmt.Println("Error: type must be CM, BM or DL")
			return
		}
		e.brokers.SetType(broker, t)
		fmt.Printf("Broker %s type=%c\n", broker, t)
	default:
		fmt.Println("Unknown broker subcommand")
	}
}

func (e *Engine) handleComboCommand(parts []string, ts uint64) {
	if len(parts) < 2 {
		fmt.Println("Usage: combo <add|delete|periodic|list> [token1 token2]")
		return
	}

	sub := strings.ToLower(parts[1])
	if sub == "list" {
		combos := e.spreads.Combinations()
		if len(combos) == 0 {
			fmt.Println("No spread combinations registered")
			return
		}
		for _, c := range combos {
			fmt.Printf("  %d/%d eligible=%d delete=%q refprice=%d\n",
				c.Token1, c.Token2, c.Eligibility, c.DeleteFlag, c.ReferencePrice)
		}
		return
	}

	if len(parts) < 4 {
		fmt.Println("Usage: combo <add|delete|periodic> <token1> <token2>")
		return
	}
	token1, err1 := strconv.ParseInt(parts[2], 10, 32)
	token2, err2 := strconv.ParseInt(parts[3], 10, 32)
	if err1 != nil || err2 != nil {
		fmt.Println("Error: tokens must be integers")
		return
	}

	switch sub {
	case "add":
		e.AddSpreadCombination(wire.SpreadUpdateInfo{
			Token1:      int32(token1),
			Token2:      int32(token2),
			Eligibility: constants.CombinationEligible,
			DeleteFlag:  "N",
		}, ts)
		fmt.Printf("Combination %d/%d added\n", token1, token2)
	case "delete":
		info, ok := e.spreads.GetCombination(int32(token1), int32(token2))
		if !ok {
			fmt.Println("Combination not found")
			return
		}
		info.DeleteFlag = "Y"
		e.UpdateSpreadCombination(info, ts)
		fmt.Printf("Combination %d/%d deleted\n", token1, token2)
	case "periodic":
		e.BroadcastPeriodicSpreadCombination(int32(token1), int32(token2), ts)
	default:
		fmt.Println("Unknown combo subcommand")
	}
}

func (e *Engine) handleBhavcopyCommand(parts []string, ts uint64) {
	enhanced := false
	spread := false
	for _, p := range parts[1:] {
		switch p {
		case "--enhanced":
			enhanced = true
		case "--spread":
			spread = true
		}
	}
	if spread {
		e.GenerateSpreadBhavcopy(constants.MktTypeNormal, ts)
		return
	}
	e.GenerateBhavcopy(constants.MktTypeNormal, enhanced, ts)
}

func (e *Engine) handleNotifyCommand(parts []string, ts uint64) {
	if len(parts) < 3 {
		fmt.Println("Usage: notify <sl|mit> <orderNumber>")
		return
	}
	orderNumber, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		fmt.Println("Error: order number must be numeric")
		return
	}

	var ok bool
	switch strings.ToLower(parts[1]) {
	case "sl":
		ok = e.SendStopLossNotification(orderNumber, ts)
	case "mit":
		ok = e.SendMITNotification(orderNumber, ts)
	default:
		fmt.Println("Usage: notify <sl|mit> <orderNumber>")
		return
	}
	if !ok {
		fmt.Printf("Order not found: %.0f\n", orderNumber)
	}
}

func (e *Engine) handleApproveCommand(parts []string, ts uint64) {
	if len(parts) < 2 {
		fmt.Println("Usage: approve <orderNumber>")
		return
	}
	orderNumber, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		fmt.Println("Error: order number must be numeric")
		return
	}
	if !e.SendFreezeApproval(orderNumber, ts) {
		fmt.Printf("Order not found: %.0f\n", orderNumber)
	}
}

func (e *Engine) handleLimitCommand(parts []string, ts uint64) {
	if len(parts) < 4 {
		fmt.Print(`Usage: limit <user|dealer|spread> <id> <limit...>

Examples:
  limit user 101 1000000 5000000   - Order and traded-value limits for trader 101
  limit dealer 101 7 250000        - Dealer limit (dealer, branch, limit)
  limit spread 101 100000          - Spread order limit for trader 101
`)
		return
	}

	id, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		fmt.Println("Error: id must be an integer")
		return
	}

	switch strings.ToLower(parts[1]) {
	case "user":
		if len(parts) < 5 {
			fmt.Println("Usage: limit user <traderId> <orderLimit> <tradedValueLimit>")
			return
		}
		orderLimit, _ := strconv.ParseFloat(parts[3], 64)
		tradedLimit, _ := strconv.ParseFloat(parts[4], 64)
		e.SendUserOrderLimitUpdate(int32(id), orderLimit, tradedLimit, ts)
	case "dealer":
		if len(parts) < 5 {
			fmt.Println("Usage: limit dealer <dealerId> <branchId> <limit>")
			return
		}
		branch, _ := strconv.ParseInt(parts[3], 10, 32)
		limit, _ := strconv.ParseFloat(parts[4], 64)
		e.SendDealerLimitUpdate(int32(id), int32(branch), limit, ts)
	case "spread":
		limit, _ := strconv.ParseFloat(parts[3], 64)
		e.SendSpreadOrderLimitUpdate(int32(id), limit, ts)
	default:
		fmt.Println("Unknown limit subcommand")
	}
}

func (e *Engine) handleMsgCommand(parts []string, ts uint64) {
	if len(parts) < 3 {
		fmt.Print(`Usage: msg <trader|all> [traderId] <text...>

Examples:
  msg trader 101 Margin call pending   - Control message to trader 101
  msg all Session extended by 30 min   - Journal broadcast to all brokers
`)
		return
	}

	switch strings.ToLower(parts[1]) {
	case "trader":
		if len(parts) < 4 {
			fmt.Println("Usage: msg trader <traderId> <text...>")
			return
		}
		id, err := strconv.ParseInt(parts[2], 10, 32)
		if err != nil {
			fmt.Println("Error: trader id must be an integer")
			return
		}
		e.SendControlMessage(int32(id), "SYS", strings.Join(parts[3:], " "), ts)
	case "all":
		e.SendBroadcastMessage(0, "", "SYS", strings.Join(parts[2:], " "), ts)
	default:
		fmt.Println("Unknown msg subcommand")
	}
}

func (e *Engine) handleBatchCancelCommand(parts []string, ts uint64) {
	if len(parts) < 3 {
		fmt.Println("Usage: batchcancel <order|spread> <orderNumber>")
		return
	}
	orderNumber, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		fmt.Println("Error: order number must be numeric")
		return
	}

	var ok bool
	switch strings.ToLower(parts[1]) {
	case "order":
		ok = e.SendBatchOrderCancel(orderNumber, ts)
	case "spread":
		ok = e.SendBatchSpreadCancel(orderNumber, ts)
	default:
		fmt.Println("Usage: batchcancel <order|spread> <orderNumber>")
		return
	}
	if !ok {
		fmt.Printf("Order not found: %.0f\n", orderNumber)
	}
}

func (e *Engine) handleStatusCommand() {
	status, _, _ := e.market.Current()
	fmt.Printf("Markets: normal=%d oddlot=%d spot=%d auction=%d opening=%v\n",
		status.Normal, status.Oddlot, status.Spot, status.Auction, e.market.Opening())
	fmt.Printf("Sessions: %d active\n", len(e.sessions.Active()))
	fmt.Printf("Orders: %d regular, %d spread\n", e.orders.Len(), e.spreads.Len())
	fmt.Printf("Trades: %d fills\n", e.trades.Len())
	fmt.Printf("Combinations: %d registered\n", len(e.spreads.Combinations()))

	closeout, deactivated, types := e.brokers.Snapshot()
	if len(closeout)+len(deactivated)+len(types) == 0 {
		fmt.Println("No broker overrides")
		return
	}
	for b := range closeout {
		fmt.Printf("  broker %s: closeout\n", b)
	}
	for b := range deactivated {
		fmt.Printf("  broker %s: deactivated\n", b)
	}
	for b, t := range types {
		fmt.Printf("  broker %s: type %c\n", b, t)
	}
}

func displayReplHelp() {
	fmt.Print(`Available commands:

Market control:
  market open                       - Open all markets
  market close                      - Close all markets
  market opening <on|off>           - Toggle the opening phase flag
  broker closeout <id> [on|off]     - Closeout status
  broker deactivate <id>            - Deactivate a broker
  broker activate <id>              - Reactivate a broker
  broker type <id> <CM|BM|DL>       - Set hierarchy type

Spread combinations:
  combo add <t1> <t2>               - Register a combination (broadcasts)
  combo delete <t1> <t2>            - Retire a combination (broadcasts)
  combo periodic <t1> <t2>          - Periodic master broadcast
  combo list                        - Show registered combinations

Broadcasts:
  bhavcopy [--enhanced] [--spread]  - Generate end-of-session reports
  notify <sl|mit> <orderNo>         - Trigger notification for an order
  approve <orderNo>                 - Approve a frozen order
  limit user <id> <ord> <traded>    - Order-value limit update
  limit dealer <id> <branch> <lim>  - Dealer limit update
  limit spread <id> <lim>           - Spread order limit update
  msg trader <id> <text>            - Control message to one trader
  msg all <text>                    - Journal broadcast to all
  batchcancel <order|spread> <no>   - Batch cancellation

General:
  status                            - Engine state summary
  help                              - This message
  exit                              - Quit
`)
}
