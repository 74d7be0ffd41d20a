package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/desertthunder/muse/internal/shared"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "", 0)
	t.Cleanup(func() { store.Close() })

	t.Run("Get Missing", func(t *testing.T) {
		if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Set Stores Prefixed Key With TTL", func(t *testing.T) {
		if err := store.Set(ctx, "abc", []byte(`{"username":"alice"}`), time.Hour); err != nil {
			t.Fatalf("set: %v", err)
		}

		raw, err := mr.Get("muse:session:abc")
		if err != nil {
			t.Fatalf("expected key muse:session:abc, got %v (keys %v)", err, mr.Keys())
		}
		if raw != `{"username":"alice"}` {
			t.Errorf("unexpected stored value %q", raw)
		}
		if ttl := mr.TTL("muse:session:abc"); ttl != time.Hour {
			t.Errorf("expected TTL 1h, got %v", ttl)
		}

		got, err := store.Get(ctx, "abc")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(got) != `{"username":"alice"}` {
			t.Errorf("unexpected payload %s", got)
		}
	})

	t.Run("Expired Key Is Not Found", func(t *testing.T) {
		if err := store.Set(ctx, "short", []byte("x"), time.Minute); err != nil {
			t.Fatalf("set: %v", err)
		}
		mr.FastForward(2 * time.Minute)

		if _, err := store.Get(ctx, "short"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after expiry, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Set(ctx, "gone", []byte("x"), time.Hour); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := store.Delete(ctx, "gone"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if mr.Exists("muse:session:gone") {
			t.Error("expected key to be removed")
		}
		if err := store.Delete(ctx, "gone"); err != nil {
			t.Errorf("expected deleting a missing key to succeed, got %v", err)
		}
	})

	t.Run("Server Error Is Not ErrNotFound", func(t *testing.T) {
		mr.SetError("boom")
		defer mr.SetError("")

		_, err := store.Get(ctx, "abc")
		if err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("expected a server error, got %v", err)
		}
	})

	t.Run("Through NewStore", func(t *testing.T) {
		s, err := NewStore(shared.SessionConfig{Backend: "redis", RedisAddr: mr.Addr()})
		if err != nil {
			t.Fatalf("new store: %v", err)
		}
		defer s.(*RedisStore).Close()

		if err := s.Set(ctx, "via", []byte("y"), time.Hour); err != nil {
			t.Fatalf("set: %v", err)
		}
		if !mr.Exists("muse:session:via") {
			t.Error("expected prefixed key from configured store")
		}
	})
}

// memcachedServer speaks the subset of the memcached text protocol used by the client:
// gets, set and delete.
type memcachedServer struct {
	ln    net.Listener
	mu    sync.Mutex
	items map[string]memcachedItem
}

type memcachedItem struct {
	flags   string
	exptime int64
	value   []byte
}

func newMemcachedServer(t *testing.T) *memcachedServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &memcachedServer{ln: ln, items: map[string]memcachedItem{}}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *memcachedServer) addr() string {
	return s.ln.Addr().String()
}

func (s *memcachedServer) item(key string) (memcachedItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[key]
	return it, ok
}

func (s *memcachedServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *memcachedServer) handle(conn net.Conn) {
	defer conn.Close()
	rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))

	for {
		line, err := rw.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "gets", "get":
			s.mu.Lock()
			for i, key := range fields[1:] {
				if it, ok := s.items[key]; ok {
					fmt.Fprintf(rw, "VALUE %s %s %d %d\r\n", key, it.flags, len(it.value), i+1)
					rw.Write(it.value)
					rw.WriteString("\r\n")
				}
			}
			s.mu.Unlock()
			rw.WriteString("END\r\n")
		case "set":
			if len(fields) < 5 {
				rw.WriteString("ERROR\r\n")
				break
			}
			exptime, _ := strconv.ParseInt(fields[3], 10, 64)
			size, _ := strconv.Atoi(fields[4])
			buf := make([]byte, size+2)
			if _, err := io.ReadFull(rw, buf); err != nil {
				return
			}
			s.mu.Lock()
			s.items[fields[1]] = memcachedItem{flags: fields[2], exptime: exptime, value: buf[:size]}
			s.mu.Unlock()
			rw.WriteString("STORED\r\n")
		case "delete":
			s.mu.Lock()
			_, ok := s.items[fields[1]]
			delete(s.items, fields[1])
			s.mu.Unlock()
			if ok {
				rw.WriteString("DELETED\r\n")
			} else {
				rw.WriteString("NOT_FOUND\r\n")
			}
		default:
			rw.WriteString("ERROR\r\n")
		}

		if err := rw.Flush(); err != nil {
			return
		}
	}
}

func TestMemcachedStore(t *testing.T) {
	ctx := context.Background()
	server := newMemcachedServer(t)
	store := NewMemcachedStore(server.addr())

	t.Run("Get Missing", func(t *testing.T) {
		if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Set Get", func(t *testing.T) {
		if err := store.Set(ctx, "abc", []byte(`{"username":"alice"}`), time.Hour); err != nil {
			t.Fatalf("set: %v", err)
		}

		it, ok := server.item("muse:session:abc")
		if !ok {
			t.Fatal("expected key muse:session:abc on the server")
		}
		if it.exptime != 3600 {
			t.Errorf("expected expiration 3600, got %d", it.exptime)
		}

		got, err := store.Get(ctx, "abc")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(got) != `{"username":"alice"}` {
			t.Errorf("unexpected payload %s", got)
		}
	})

	t.Run("Long TTL Uses Absolute Time", func(t *testing.T) {
		before := time.Now().Add(60 * 24 * time.Hour).Unix()
		if err := store.Set(ctx, "long", []byte("x"), 60*24*time.Hour); err != nil {
			t.Fatalf("set: %v", err)
		}

		it, ok := server.item("muse:session:long")
		if !ok {
			t.Fatal("expected key on the server")
		}
		if it.exptime < before || it.exptime > before+5 {
			t.Errorf("expected absolute expiration near %d, got %d", before, it.exptime)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Set(ctx, "gone", []byte("x"), time.Hour); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := store.Delete(ctx, "gone"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := store.Get(ctx, "gone"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := store.Delete(ctx, "gone"); err != nil {
			t.Errorf("expected deleting a missing key to succeed, got %v", err)
		}
	})

	t.Run("Canceled Context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := store.Get(canceled, "abc"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled from Get, got %v", err)
		}
		if err := store.Set(canceled, "abc", []byte("x"), time.Hour); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled from Set, got %v", err)
		}
		if err := store.Delete(canceled, "abc"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled from Delete, got %v", err)
		}
	})
}

func TestExpiration(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ttl  time.Duration
		want int32
	}{
		{"No Expiry", 0, 0},
		{"Negative", -time.Minute, 0},
		{"Sub Second Rounds Up", 500 * time.Millisecond, 1},
		{"One Hour", time.Hour, 3600},
		{"Thirty Days Stays Relative", maxRelativeExpiration, 2592000},
		{"Past Thirty Days Is Absolute", 31 * 24 * time.Hour, int32(now.Add(31 * 24 * time.Hour).Unix())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expiration(tt.ttl, now); got != tt.want {
				t.Errorf("expiration(%v) = %d, want %d", tt.ttl, got, tt.want)
			}
		})
	}
}
