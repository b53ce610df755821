package main

import (
	"errors"
	"net"
	"sync"
)

// TCPServer accepts raw socket connections and runs one handler goroutine
// per client over the shared registry.
type TCPServer struct {
	registry *Registry
	tokens   *ReconnectJWT
	listener net.Listener
	conns    map[net.Conn]bool
	lock     sync.Mutex
	wg       sync.WaitGroup
}

func NewTCPServer(registry *Registry, tokens *ReconnectJWT) *TCPServer {
	return &TCPServer{registry: registry, tokens: tokens, conns: make(map[net.Conn]bool)}
}

func (s *TCPServer) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

func (s *TCPServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve blocks until the listener is closed.
func (s *TCPServer) Serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			LogAcceptError(err)
			continue
		}
		s.track(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.release(conn)
			HandleClient(s.registry, NewConnLineReader(conn), NewConnSink(conn), s.tokens, conn.RemoteAddr().String(), "tcp")
		}()
	}
}

func (s *TCPServer) track(conn net.Conn) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.conns[conn] = true
}

func (s *TCPServer) release(conn net.Conn) {
	s.lock.Lock()
	delete(s.conns, conn)
	s.lock.Unlock()
	conn.Close()
}

// Shutdown closes the listener and every active connection; closing a
// connection makes its handler's pending read fail, so the handlers drain
// through their normal cleanup path.
func (s *TCPServer) Shutdown() {
	if s.listener != nil {
		s.listener.Close()
	}
	s.lock.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.lock.Unlock()
	s.wg.Wait()
}
