package main

import (
	"bufio"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gobwas/ws/wsutil"
)

const writeTimeout = 10 * time.Second

// Sink is the write endpoint of one client. Handlers of other clients write
// to it during broadcast, so implementations must be safe for concurrent use.
type Sink interface {
	WriteLine(line string) error
}

// LineReader is the read endpoint of one client. ReadLine returns io.EOF
// when the peer is gone.
type LineReader interface {
	ReadLine() (string, error)
}

type connSink struct {
	conn net.Conn
	lock sync.Mutex
}

func NewConnSink(conn net.Conn) Sink {
	return &connSink{conn: conn}
}

func (s *connSink) WriteLine(line string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err := io.WriteString(s.conn, line+"\n")
	return err
}

type connLineReader struct {
	scanner *bufio.Scanner
}

func NewConnLineReader(conn net.Conn) LineReader {
	return &connLineReader{bufio.NewScanner(conn)}
}

func (r *connLineReader) ReadLine() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

type wsSink struct {
	conn net.Conn
	lock sync.Mutex
}

func NewWSSink(conn net.Conn) Sink {
	return &wsSink{conn: conn}
}

func (s *wsSink) WriteLine(line string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return wsutil.WriteServerText(s.conn, []byte(line))
}

type wsLineReader struct {
	conn net.Conn
}

func NewWSLineReader(conn net.Conn) LineReader {
	return wsLineReader{conn}
}

func (r wsLineReader) ReadLine() (string, error) {
	msg, err := wsutil.ReadClientText(r.conn)
	if err != nil {
		return "", err
	}
	return string(msg), nil
}
