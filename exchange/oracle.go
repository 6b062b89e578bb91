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

import "math/rand"

// MatchOracle decides simulated outcomes: confirmations, freezes, fills,
// cancellation success and synthesized market prices. The engine asks for one
// roll per decision point, so a scripted oracle can steer any handler down a
// chosen path in tests.
type MatchOracle interface {
	// Roll returns a value in [0, n).
	Roll(n int) int
}

type randOracle struct {
	rng *rand.Rand
}

// NewRandOracle returns the production oracle backed by a seeded PRNG.
func NewRandOracle(seed int64) MatchOracle {
	return &randOracle{rng: rand.New(rand.NewSource(seed))}
}

func (o *randOracle) Roll(n int) int {
	return o.rng.Intn(n)
}

// ScriptedOracle replays a fixed sequence of rolls and repeats the last value
// once exhausted. The zero value rolls 0 forever, which drives every handler
// down its first (confirm/accept) branch.
type ScriptedOracle struct {
	Rolls []int
	next  int
}

func (o *ScriptedOracle) Roll(n int) int {
	if len(o.Rolls) == 0 {
		return 0
	}
	v := o.Rolls[o.next]
	if o.next < len(o.Rolls)-1 {
		o.next++
	}
	if v >= n {
		v = n - 1
	}
	return v
}
