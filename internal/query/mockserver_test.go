package query

import (
	"bufio"
	"bytes"
	"net"
	"strings"
	"sync"
	"testing"
)

// mockServer speaks just enough of the query protocol for tests: it greets
// each connection with a configurable banner line and answers every received
// command through a handler that returns reply lines without terminators.
type mockServer struct {
	t        *testing.T
	listener net.Listener
	banner   string
	handler  func(line string) []string

	mu       sync.Mutex
	received []string
	conns    []net.Conn
	wg       sync.WaitGroup
}

func startMockServer(t *testing.T, banner string, handler func(line string) []string) *mockServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	m := &mockServer{t: t, listener: ln, banner: banner, handler: handler}
	if m.handler == nil {
		m.handler = func(string) []string { return []string{"error id=0 msg=ok"} }
	}

	m.wg.Add(1)
	go m.acceptLoop()

	t.Cleanup(func() {
		_ = ln.Close()
		m.mu.Lock()
		for _, c := range m.conns {
			_ = c.Close()
		}
		m.mu.Unlock()
		m.wg.Wait()
	})
	return m
}

func (m *mockServer) acceptLoop() {
	defer m.wg.Done()
	for {
		conn, err := m.listener.Accept()
		if err != nil {
			return
		}
		m.mu.Lock()
		m.conns = append(m.conns, conn)
		m.mu.Unlock()
		m.wg.Add(1)
		go m.serve(conn)
	}
}

func (m *mockServer) serve(conn net.Conn) {
	defer m.wg.Done()
	defer conn.Close()

	if _, err := conn.Write([]byte(m.banner + Terminator)); err != nil {
		return
	}

	r := bufio.NewReader(conn)
	for {
		line, err := readMockLine(r)
		if err != nil {
			return
		}
		m.mu.Lock()
		m.received = append(m.received, line)
		m.mu.Unlock()

		if line == "quit" {
			return
		}
		for _, reply := range m.handler(line) {
			if _, err := conn.Write([]byte(reply + Terminator)); err != nil {
				return
			}
		}
	}
}

func readMockLine(r *bufio.Reader) (string, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		buf = append(buf, b)
		if bytes.HasSuffix(buf, []byte(Terminator)) {
			return string(buf[:len(buf)-len(Terminator)]), nil
		}
	}
}

func (m *mockServer) host() string {
	return "127.0.0.1"
}

func (m *mockServer) port() int {
	return m.listener.Addr().(*net.TCPAddr).Port
}

// sawCommand reports whether any received line starts with the given command
// name, and returns the first full line that did.
func (m *mockServer) sawCommand(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range m.received {
		if line == name || strings.HasPrefix(line, name+" ") {
			return line, true
		}
	}
	return "", false
}
