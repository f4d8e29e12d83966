package feed

import (
	"encoding/json"
	"errors"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/event"
	"github.com/tomz197/asteroid-waves/internal/loop/server"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"msgpack", FormatMsgpack, false},
		{"xml", FormatJSON, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestEncodeCarriesEventFields(t *testing.T) {
	fr := Frame{Tick: 9, Type: event.TypeWeaponUpgraded.String(), Data: event.WeaponUpgraded{Level: 2}}

	mt, b, err := Encode(FormatJSON, fr)
	if err != nil || mt != websocket.TextMessage {
		t.Fatalf("json: type %d err %v", mt, err)
	}
	if got := string(b); got != `{"tick":9,"type":"weapon_upgraded","data":{"level":2}}` {
		t.Errorf("json frame = %s", got)
	}

	mt, b, err = Encode(FormatMsgpack, fr)
	if err != nil || mt != websocket.BinaryMessage {
		t.Fatalf("msgpack: type %d err %v", mt, err)
	}
	var decoded map[string]any
	if err := msgpack.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["type"] != "weapon_upgraded" {
		t.Errorf("msgpack type = %v", decoded["type"])
	}
	data, _ := decoded["data"].(map[string]any)
	if lvl, ok := data["level"].(int8); !ok || lvl != 2 {
		t.Errorf("msgpack data = %#v", decoded["data"])
	}
}

func newFeed(t *testing.T) (*server.Server, *httptest.Server) {
	t.Helper()
	settings := config.DefaultSettings()
	settings.Seed = 5
	srv := server.NewServer(settings, nil)
	ts := httptest.NewServer(NewHandler(srv, nil))
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	return conn
}

type jsonFrame struct {
	Tick uint64          `json:"tick"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readJSON(t *testing.T, conn *websocket.Conn) jsonFrame {
	t.Helper()
	mt, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if mt != websocket.TextMessage {
		t.Fatalf("message type = %d, want text", mt)
	}
	var fr jsonFrame
	if err := json.Unmarshal(b, &fr); err != nil {
		t.Fatal(err)
	}
	return fr
}

func TestFeedStreamsOutcomesAsJSON(t *testing.T) {
	srv, ts := newFeed(t)
	conn := dial(t, ts, "")

	if hello := readJSON(t, conn); hello.Type != TypeHello {
		t.Fatalf("first frame = %q, want hello", hello.Type)
	}

	srv.Step(1.0 / 60)

	for {
		fr := readJSON(t, conn)
		if fr.Type != event.TypeWaveStarted.String() {
			continue
		}
		var ws event.WaveStarted
		if err := json.Unmarshal(fr.Data, &ws); err != nil {
			t.Fatal(err)
		}
		if fr.Tick != 1 || ws.Wave != 1 || ws.Composition.Asteroids != 2 {
			t.Errorf("wave frame = tick %d %+v", fr.Tick, ws)
		}
		return
	}
}

func TestFeedMsgpackAndShutdown(t *testing.T) {
	srv, ts := newFeed(t)
	conn := dial(t, ts, "?format=msgpack")

	mt, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if mt != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", mt)
	}
	var hello map[string]any
	if err := msgpack.Unmarshal(b, &hello); err != nil {
		t.Fatal(err)
	}
	if hello["type"] != TypeHello {
		t.Fatalf("first frame = %v", hello["type"])
	}

	srv.Step(1.0 / 60)
	go srv.Shutdown(2 * time.Second)

	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("connection ended before the shutdown frame: %v", err)
		}
		var fr map[string]any
		if err := msgpack.Unmarshal(b, &fr); err != nil {
			t.Fatal(err)
		}
		if fr["type"] == TypeShutdown {
			break
		}
	}

	// The handler closes the connection after the shutdown frame.
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("after shutdown: err = %v, want normal closure", err)
	}
}

func TestUnknownFormatRejected(t *testing.T) {
	_, ts := newFeed(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/?format=xml"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial succeeded")
	}
	if resp == nil || resp.StatusCode != 400 {
		t.Errorf("response = %v, want 400", resp)
	}
}

func TestWriteFrameOnClosedConn(t *testing.T) {
	_, ts := newFeed(t)
	conn := dial(t, ts, "")
	conn.Close()

	err := NewWriter(conn, FormatJSON, time.Second).WriteFrame(Frame{Tick: 1, Type: event.TypeWeaponUpgraded.String()})
	if !errors.Is(err, net.ErrClosed) {
		t.Errorf("WriteFrame on a closed connection = %v, want net.ErrClosed", err)
	}
}
