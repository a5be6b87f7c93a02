// Package matrixlink talks to the board glue over a unix socket using a line
// protocol. The board sends switch transitions:
//
//	press>>3,4
//	release>>3,4
//
// and receives key transitions to put into HID reports:
//
//	key>>KC_LALT,1
//	key>>KC_LALT,0
package matrixlink

import (
	"bufio"
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"codeberg.org/miketth/plancktl/pkg/keymap"
	"codeberg.org/miketth/plancktl/pkg/planck"
	"fmt"
	"go.uber.org/zap"
	"net"
	"strconv"
	"strings"
	"sync"
)

type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	lock   sync.Mutex
	log    *zap.SugaredLogger
}

func Connect(socketPath string, log *zap.SugaredLogger) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial: %w, %w", err, ErrNotRunning)
	}

	return NewClient(conn, log), nil
}

func NewClient(conn net.Conn, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{conn: conn, reader: bufio.NewReader(conn), log: log}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ReadLine() (string, error) {
	str, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read from matrix socket: %w", err)
	}
	return strings.TrimSuffix(str, "\n"), nil
}

// ReadEvent returns the next switch transition. Lines of unknown event types
// are skipped and malformed lines are logged and skipped. Only transport
// failures are returned.
func (c *Client) ReadEvent() (planck.KeyEvent, error) {
	for {
		line, err := c.ReadLine()
		if err != nil {
			return planck.KeyEvent{}, err
		}

		ev, ok, err := ParseLine(line)
		if err != nil {
			c.log.Warnw("skipping malformed line", "line", line, "error", err)
			continue
		}
		if ok {
			return ev, nil
		}
	}
}

// SendKey writes a key transition for the HID side.
func (c *Client) SendKey(code keycode.Code, pressed bool) error {
	state := 0
	if pressed {
		state = 1
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if _, err := fmt.Fprintf(c.conn, "key>>%s,%d\n", code, state); err != nil {
		return fmt.Errorf("write to matrix socket: %w", err)
	}
	return nil
}

// ParseLine parses one line of the protocol. ok is false for well-formed
// lines of event types other than press and release.
func ParseLine(line string) (planck.KeyEvent, bool, error) {
	evType, evData, found := strings.Cut(line, ">>")
	if !found {
		return planck.KeyEvent{}, false, fmt.Errorf("invalid line: %q", line)
	}

	var pressed bool
	switch evType {
	case "press":
		pressed = true
	case "release":
	default:
		return planck.KeyEvent{}, false, nil
	}

	pos, err := parsePosition(evData)
	if err != nil {
		return planck.KeyEvent{}, false, err
	}

	return planck.KeyEvent{Pos: pos, Pressed: pressed}, true, nil
}

func parsePosition(data string) (keymap.Position, error) {
	rowStr, colStr, found := strings.Cut(data, ",")
	if !found {
		return keymap.Position{}, fmt.Errorf("invalid position: %q", data)
	}

	row, err := strconv.ParseUint(strings.TrimSpace(rowStr), 10, 8)
	if err != nil {
		return keymap.Position{}, fmt.Errorf("parse row: %w", err)
	}
	col, err := strconv.ParseUint(strings.TrimSpace(colStr), 10, 8)
	if err != nil {
		return keymap.Position{}, fmt.Errorf("parse col: %w", err)
	}

	return keymap.Position{Row: uint8(row), Col: uint8(col)}, nil
}
