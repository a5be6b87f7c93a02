package matrixlink

import (
	"bufio"
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"codeberg.org/miketth/plancktl/pkg/keymap"
	"codeberg.org/miketth/plancktl/pkg/planck"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		want    planck.KeyEvent
		ok      bool
		wantErr bool
	}{
		{"press>>3,4", planck.KeyEvent{Pos: keymap.Position{Row: 3, Col: 4}, Pressed: true}, true, false},
		{"release>>0, 11", planck.KeyEvent{Pos: keymap.Position{Row: 0, Col: 11}}, true, false},
		{"hello>>firmware 0.1", planck.KeyEvent{}, false, false},
		{"press 3,4", planck.KeyEvent{}, false, true},
		{"press>>3", planck.KeyEvent{}, false, true},
		{"press>>x,4", planck.KeyEvent{}, false, true},
		{"press>>3,300", planck.KeyEvent{}, false, true},
	}

	for _, tt := range tests {
		got, ok, err := ParseLine(tt.line)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLine(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			continue
		}
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLine(%q) = %+v, %v, want %+v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClientRoundTrip(t *testing.T) {
	board, host := net.Pipe()
	defer board.Close()

	c := NewClient(host, nil)
	defer c.Close()

	go func() {
		_, _ = io.WriteString(board, "hello>>planck\npress>>1,4\n")
	}()

	ev, err := c.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent: %v", err)
	}
	want := planck.KeyEvent{Pos: keymap.Position{Row: 1, Col: 4}, Pressed: true}
	if ev != want {
		t.Errorf("ReadEvent() = %+v, want %+v", ev, want)
	}

	lines := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(board).ReadString('\n')
		lines <- line
	}()

	if err := c.SendKey(keycode.LeftAlt, true); err != nil {
		t.Fatalf("SendKey: %v", err)
	}
	if got := <-lines; got != "key>>KC_LALT,1\n" {
		t.Errorf("board received %q", got)
	}
}

func TestReadEventSkipsMalformedLines(t *testing.T) {
	board, host := net.Pipe()
	defer board.Close()

	c := NewClient(host, nil)
	defer c.Close()

	go func() {
		_, _ = io.WriteString(board, "press>>3,300\npress 1,1\nrelease>>x,2\npress>>0,1\n")
	}()

	ev, err := c.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent: %v", err)
	}
	want := planck.KeyEvent{Pos: keymap.Position{Row: 0, Col: 1}, Pressed: true}
	if ev != want {
		t.Errorf("ReadEvent() = %+v, want %+v", ev, want)
	}
}

func TestProcessEventsSurvivesMalformedLines(t *testing.T) {
	board, host := net.Pipe()

	c := NewClient(host, nil)
	defer c.Close()

	out := &recordingEmitter{}
	d, err := planck.NewDispatcher(planck.Config{Output: out})
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}

	go func() {
		_, _ = io.WriteString(board, "press>>3,300\npress>>0,1\nrelease>>0,1\n")
		board.Close()
	}()

	err = d.ProcessEvents(context.Background(), c, time.Millisecond)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("ProcessEvents error = %v, want EOF", err)
	}

	want := []string{"KC_Q,1", "KC_Q,0"}
	if !slices.Equal(out.sent, want) {
		t.Errorf("sent = %v, want %v", out.sent, want)
	}
}

type recordingEmitter struct {
	sent []string
}

func (r *recordingEmitter) SendKey(code keycode.Code, pressed bool) error {
	state := 0
	if pressed {
		state = 1
	}
	r.sent = append(r.sent, fmt.Sprintf("%s,%d", code, state))
	return nil
}

func TestReadEventClosed(t *testing.T) {
	board, host := net.Pipe()
	c := NewClient(host, nil)
	board.Close()

	if _, err := c.ReadEvent(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadEvent() error = %v, want EOF", err)
	}
}

func TestSocketPathOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "board.sock")
	t.Setenv("PLANCKTL_SOCKET", want)

	got, err := SocketPath()
	if err != nil || got != want {
		t.Errorf("SocketPath() = %q, %v, want %q", got, err, want)
	}
}

func TestConnectFails(t *testing.T) {
	_, err := Connect(filepath.Join(t.TempDir(), "missing.sock"), nil)
	if !errors.Is(err, ErrNotRunning) {
		t.Errorf("Connect error = %v, want ErrNotRunning", err)
	}
}
