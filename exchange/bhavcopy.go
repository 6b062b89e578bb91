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
	"sort"
	"sync"

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// StatsStore accumulates the end-of-session statistics that the bhavcopy
// broadcast reports: per-contract market stats, per-combination spread
// stats, and the index values.
//
// Concurrency Model:
// - Writers: admin API and REPL
// - Reader: the bhavcopy generator
type StatsStore struct {
	mu          sync.RWMutex
	marketStats map[string]wire.MktStatsData
	spreadStats map[string]wire.SpdStatsData
	marketIndex wire.MktIndexReport
	industries  map[string]int32
	sectors     map[string]map[string]int32
}

func NewStatsStore() *StatsStore {
	return &StatsStore{
		marketStats: make(map[string]wire.MktStatsData),
		spreadStats: make(map[string]wire.SpdStatsData),
		industries:  make(map[string]int32),
		sectors:     make(map[string]map[string]int32),
	}
}

func contractKey(c wire.ContractDesc) string {
	return fmt.Sprintf("%s_%d_%d_%s", c.Symbol, c.ExpiryDate, c.StrikePrice, c.OptionType)
}

// SetMarketStats inserts or replaces one contract's statistics row.
func (s *StatsStore) SetMarketStats(stats wire.MktStatsData) {
	s.mu.Lock()
	s.marketStats[contractKey(stats.Contract)] = stats
	s.mu.Unlock()
}

// SetSpreadStats inserts or replaces one spread combination's row.
func (s *StatsStore) SetSpreadStats(stats wire.SpdStatsData) {
	s.mu.Lock()
	s.spreadStats[fmt.Sprintf("%d_%d", stats.Token1, stats.Token2)] = stats
	s.mu.Unlock()
}

// SetMarketIndex records the headline index values.
func (s *StatsStore) SetMarketIndex(idx wire.MktIndexReport) {
	s.mu.Lock()
	s.marketIndex = idx
	s.mu.Unlock()
}

// SetIndustryIndex records one industry's index value.
func (s *StatsStore) SetIndustryIndex(industry string, value int32) {
	s.mu.Lock()
	s.industries[industry] = value
	s.mu.Unlock()
}

// SetSectorIndex records one index value under a sector grouping.
func (s *StatsStore) SetSectorIndex(sector, industry string, value int32) {
	s.mu.Lock()
	if s.sectors[sector] == nil {
		s.sectors[sector] = make(map[string]int32)
	}
	s.sectors[sector][industry] = value
	s.mu.Unlock()
}

// MarketStats returns rows sorted by contract key for deterministic packet
// order.
func (s *StatsStore) MarketStats() []wire.MktStatsData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.marketStats))
	for k := range s.marketStats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]wire.MktStatsData, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.marketStats[k])
	}
	return out
}

// SpreadStats returns rows sorted by token-pair key.
func (s *StatsStore) SpreadStats() []wire.SpdStatsData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.spreadStats))
	for k := range s.spreadStats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]wire.SpdStatsData, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.spreadStats[k])
	}
	return out
}

// MarketIndex returns the headline index record.
func (s *StatsStore) MarketIndex() wire.MktIndexReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.marketIndex
}

// IndustryIndexes returns industry rows sorted by name.
func (s *StatsStore) IndustryIndexes() []wire.IndustryIndexEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIndexEntries(s.industries)
}

// SectorIndexes returns sector names with their rows, sorted by sector.
func (s *StatsStore) SectorIndexes() (sectors []string, entries [][]wire.IndustryIndexEntry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for name := range s.sectors {
		sectors = append(sectors, name)
	}
	sort.Strings(sectors)
	for _, name := range sectors {
		entries = append(entries, sortedIndexEntries(s.sectors[name]))
	}
	return sectors, entries
}

func sortedIndexEntries(m map[string]int32) []wire.IndustryIndexEntry {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]wire.IndustryIndexEntry, 0, len(names))
	for _, n := range names {
		out = append(out, wire.IndustryIndexEntry{IndustryName: n, IndexValue: m[n]})
	}
	return out
}

// GenerateBhavcopy emits the end-of-session market-statistics broadcast:
// a start notification, the report header, the data packets, a trailer
// carrying the packet count, and finally the index reports. The enhanced
// form batches four records per packet instead of one.
func (e *Engine) GenerateBhavcopy(sessionType byte, enhanced bool, ts uint64) {
	stats := e.stats.MarketStats()
	log.Printf("generating bhavcopy, session type %c, %d records, enhanced=%v",
		sessionType, len(stats), enhanced)

	e.SendBroadcastMessage(0, "", "SYS", "Bhavcopy broadcast starting", ts)

	hdr := wire.BhavcopyHeader{
		Header:      e.bcastHeader(constants.RprtMarketStatsHdr, 0, ts),
		MessageType: sessionType,
		ReportDate:  epochSeconds(ts),
	}
	e.send(hdr.Marshal())

	var packets int16
	if enhanced {
		for i := 0; i < len(stats); i += wire.EnhancedMktStatsRecords {
			pkt := wire.EnhancedMktStatsReport{
				Header: e.bcastHeader(constants.EnhncdRprtMarketStatsOutRpt, 0, ts),
			}
			for j := 0; j < wire.EnhancedMktStatsRecords && i+j < len(stats); j++ {
				pkt.Stats[j] = stats[i+j]
				pkt.NumberOfRecords++
			}
			e.send(pkt.Marshal())
			packets++
		}
	} else {
		for _, row := range stats {
			pkt := wire.MktStatsReport{
				Header:          e.bcastHeader(constants.RprtMarketStatsOutRpt, 0, ts),
				MessageType:     sessionType,
				NumberOfRecords: 1,
				Stats:           row,
			}
			e.send(pkt.Marshal())
			packets++
		}
	}

	trailer := wire.BhavcopyTrailer{
		Header:          e.bcastHeader(constants.RprtMarketStatsTrailer, 0, ts),
		MessageType:     sessionType,
		NumberOfPackets: packets,
	}
	e.send(trailer.Marshal())

	e.sendIndexReports(ts)
	log.Printf("bhavcopy complete, %d data packets", packets)
}

func (e *Engine) sendIndexReports(ts uint64) {
	idx := e.stats.MarketIndex()
	idx.Header = e.bcastHeader(constants.MktIdxRptData, 0, ts)
	e.send(idx.Marshal())

	industries := e.stats.IndustryIndexes()
	for i := 0; i < len(industries); i += wire.IndustryIndexRecords {
		pkt := wire.IndustryIndexReport{
			Header: e.bcastHeader(constants.IndIdxRptDataCode, 0, ts),
		}
		for j := 0; j < wire.IndustryIndexRecords && i+j < len(industries); j++ {
			pkt.Entries[j] = industries[i+j]
			pkt.NoOfRecords++
		}
		e.send(pkt.Marshal())
	}

	sectors, entries := e.stats.SectorIndexes()
	for i, sector := range sectors {
		rows := entries[i]
		for off := 0; off < len(rows); off += wire.IndustryIndexRecords {
			pkt := wire.SectorIndexReport{
				Header:       e.bcastHeader(constants.SectIdxRptDataCode, 0, ts),
				IndustryName: sector,
			}
			for j := 0; j < wire.IndustryIndexRecords && off+j < len(rows); j++ {
				pkt.Entries[j] = rows[off+j]
				pkt.NoOfRecords++
			}
			e.send(pkt.Marshal())
		}
	}
}

// GenerateSpreadBhavcopy emits the spread-statistics variant: start
// notification, header, packets of up to three records, trailer, and a
// closing success notification on the spread journal code.
func (e *Engine) GenerateSpreadBhavcopy(sessionType byte, ts uint64) {
	stats := e.stats.SpreadStats()
	log.Printf("generating spread bhavcopy, session type %c, %d records",
		sessionType, len(stats))

	start := wire.BcastJournalMessage{
		Header:                 e.bcastHeader(constants.SpdBcJrnlVctMsg, 0, ts),
		ActionCode:             "SYS",
		BroadcastMessageLength: int16(len("Spread bhavcopy broadcast starting")),
		Message:                "Spread bhavcopy broadcast starting",
	}
	e.send(start.Marshal())

	hdr := wire.BhavcopyHeader{
		Header:      e.bcastHeader(constants.RprtMarketStatsHdr, 0, ts),
		MessageType: sessionType,
		ReportDate:  epochSeconds(ts),
	}
	e.send(hdr.Marshal())

	var packets int16
	for i := 0; i < len(stats); i += wire.SpdStatsRecords {
		pkt := wire.SpdStatsReport{
			Header: e.bcastHeader(constants.SpdStatsOutRpt, 0, ts),
		}
		for j := 0; j < wire.SpdStatsRecords && i+j < len(stats); j++ {
			pkt.Stats[j] = stats[i+j]
			pkt.NumberOfRecords++
		}
		e.send(pkt.Marshal())
		packets++
	}

	trailer := wire.BhavcopyTrailer{
		Header:          e.bcastHeader(constants.RprtMarketStatsTrailer, 0, ts),
		MessageType:     sessionType,
		NumberOfPackets: packets,
	}
	e.send(trailer.Marshal())

	done := wire.BcastJournalMessage{
		Header:                 e.bcastHeader(constants.SpdBcJrnlVctMsg, 0, ts),
		ActionCode:             "SYS",
		BroadcastMessageLength: int16(len("Spread bhavcopy broadcast success")),
		Message:                "Spread bhavcopy broadcast success",
	}
	e.send(done.Marshal())
	log.Printf("spread bhavcopy complete, %d data packets", packets)
}
