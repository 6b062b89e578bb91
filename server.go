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
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/VirTrivedi/NSE-Fake-Exchange/database"
	"github.com/VirTrivedi/NSE-Fake-Exchange/exchange"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

const readChunkSize = 4096

// feedClock returns the microsecond feed timestamp stamped on every frame.
func feedClock() uint64 {
	return uint64(time.Now().UnixMicro())
}

// Server accepts trader connections and runs one engine per connection.
// All engines share the base engine's stores, so the admin surfaces and
// broadcasts see a single exchange.
type Server struct {
	base      *exchange.Engine    // Broadcast engine, sink fans out to all clients
	listener  net.Listener        // TCP listener
	db        *database.FrameDb   // Optional wire-traffic recorder
	clients   map[uint64]net.Conn // Active client connections by ID
	clientsMu sync.RWMutex        // Protects clients map
	nextConn  uint64              // Monotonic client ID generator
}

// NewServer binds the listener and wires the base engine's sink to fan out
// broadcast frames to every connected trader.
func NewServer(addr string, base *exchange.Engine, db *database.FrameDb) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %v", addr, err)
	}
	s := &Server{
		base:     base,
		listener: listener,
		db:       db,
		clients:  make(map[uint64]net.Conn),
	}
	base.SetSink(s.broadcast)
	return s, nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Start accepts connections until the listener closes.
func (s *Server) Start() {
	log.Printf("exchange listening on %s", s.listener.Addr())

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		id := s.addClient(conn)
		go s.handleClient(conn, id)
	}
}

// Close stops accepting and drops all clients.
func (s *Server) Close() {
	_ = s.listener.Close()
	s.clientsMu.Lock()
	for _, c := range s.clients {
		_ = c.Close()
	}
	s.clientsMu.Unlock()
}

func (s *Server) addClient(conn net.Conn) uint64 {
	s.clientsMu.Lock()
	s.nextConn++
	id := s.nextConn
	s.clients[id] = conn
	s.clientsMu.Unlock()
	return id
}

func (s *Server) delClient(conn net.Conn, id uint64) {
	s.clientsMu.Lock()
	delete(s.clients, id)
	s.clientsMu.Unlock()
	_ = conn.Close()
}

// broadcast fans an unsolicited frame out to every connected trader.
func (s *Server) broadcast(frame []byte) {
	s.record("broadcast", "out", frame, feedClock())
	s.clientsMu.RLock()
	for _, c := range s.clients {
		_, _ = c.Write(frame)
	}
	s.clientsMu.RUnlock()
}

// handleClient owns one trader connection: a derived engine, a session-scoped
// sink, and the read loop feeding the framer.
func (s *Server) handleClient(conn net.Conn, id uint64) {
	defer s.delClient(conn, id)

	sessionID := fmt.Sprintf("conn-%d", id)
	log.Printf("session %s connected from %s", sessionID, conn.RemoteAddr())
	if s.db != nil {
		if err := s.db.CreateSession(sessionID, conn.RemoteAddr().String()); err != nil {
			log.Printf("session %s: record create failed: %v", sessionID, err)
		}
		defer func() {
			if err := s.db.EndSession(sessionID); err != nil {
				log.Printf("session %s: record close failed: %v", sessionID, err)
			}
		}()
	}

	engine := s.base.NewSessionEngine(time.Now().UnixNano())
	engine.SetSink(func(frame []byte) {
		s.record(sessionID, "out", frame, feedClock())
		if _, err := conn.Write(frame); err != nil {
			log.Printf("session %s: write failed: %v", sessionID, err)
		}
	})

	buf := make([]byte, 0, 4*readChunkSize)
	chunk := make([]byte, readChunkSize)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			ts := feedClock()
			consumed, ferr := engine.Parse(buf, ts)
			if consumed > 0 {
				s.recordInbound(sessionID, buf[:consumed], ts)
				buf = buf[:copy(buf, buf[consumed:])]
			}
			if ferr {
				log.Printf("session %s: framing error, dropping connection", sessionID)
				return
			}
		}
		if err != nil {
			log.Printf("session %s disconnected", sessionID)
			return
		}
	}
}

// recordInbound splits an accepted byte range back into frames for the
// recorder. The range only ever holds whole frames the framer consumed.
func (s *Server) recordInbound(sessionID string, data []byte, ts uint64) {
	if s.db == nil {
		return
	}
	for len(data) >= wire.HeaderSize {
		msgLen := int(wire.PeekMessageLength(data))
		if msgLen < wire.HeaderSize || msgLen > len(data) {
			return
		}
		s.record(sessionID, "in", data[:msgLen], ts)
		data = data[msgLen:]
	}
}

func (s *Server) record(sessionID, direction string, frame []byte, ts uint64) {
	if s.db == nil || len(frame) < wire.HeaderSize {
		return
	}
	hdr := wire.DecodeHeader(frame)
	if err := s.db.StoreFrame(sessionID, direction, hdr.TransactionCode, hdr.TraderID, hdr.ErrorCode, ts, frame); err != nil {
		log.Printf("frame record failed: %v", err)
	}
}
