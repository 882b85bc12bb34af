package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrCrash - the mouse drove into a wall
	ErrCrash = errors.New("mouse crashed into a wall")
	// ErrUnexpectedReply - the peer answered outside the protocol
	ErrUnexpectedReply = errors.New("unexpected reply")
)

// MMSClient - speaks the mms simulator's line protocol.
//
// Every command is one line; queries and actions wait for a one line reply,
// display commands do not. The same protocol is spoken by the mouse firmware
// over a serial link. Implements algorithms.Robot and algorithms.Display.
type MMSClient struct {
	r  *bufio.Reader
	w  *bufio.Writer
	mu sync.Mutex

	// first write/read failure on a display command; display calls
	// have no error path so it is kept here
	displayErr error
}

// NewMMSClient - client reading replies from r and writing commands to w
func NewMMSClient(r io.Reader, w io.Writer) *MMSClient {
	return &MMSClient{
		r: bufio.NewReader(r),
		w: bufio.NewWriter(w),
	}
}

// send - writes one command line and flushes
func (c *MMSClient) send(cmd string) error {
	if _, err := c.w.WriteString(cmd + "\n"); err != nil {
		return fmt.Errorf("mms %s: %w", cmd, err)
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("mms %s: %w", cmd, err)
	}
	return nil
}

// request - sends cmd and returns the trimmed reply line
func (c *MMSClient) request(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(cmd); err != nil {
		return "", err
	}
	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", fmt.Errorf("mms %s: %w", cmd, io.ErrUnexpectedEOF)
		}
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("mms %s: %w", cmd, err)
		}
	}
	return strings.TrimSpace(line), nil
}

func (c *MMSClient) queryBool(cmd string) (bool, error) {
	reply, err := c.request(cmd)
	if err != nil {
		return false, err
	}
	switch reply {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("mms %s: %q: %w", cmd, reply, ErrUnexpectedReply)
}

func (c *MMSClient) queryInt(cmd string) (int, error) {
	reply, err := c.request(cmd)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(reply)
	if convErr != nil {
		return 0, fmt.Errorf("mms %s: %q: %w", cmd, reply, ErrUnexpectedReply)
	}
	return n, nil
}

func (c *MMSClient) action(cmd string) error {
	reply, err := c.request(cmd)
	if err != nil {
		return err
	}
	switch reply {
	case "ack":
		return nil
	case "crash":
		return fmt.Errorf("mms %s: %w", cmd, ErrCrash)
	}
	return fmt.Errorf("mms %s: %q: %w", cmd, reply, ErrUnexpectedReply)
}

// display - fire and forget command
func (c *MMSClient) display(cmd string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(cmd); err != nil && c.displayErr == nil {
		c.displayErr = err
	}
}

// MazeWidth - maze width reported by the simulator
func (c *MMSClient) MazeWidth() (int, error) { return c.queryInt("mazeWidth") }

// MazeHeight - maze height reported by the simulator
func (c *MMSClient) MazeHeight() (int, error) { return c.queryInt("mazeHeight") }

// WallFront - wall directly ahead
func (c *MMSClient) WallFront() (bool, error) { return c.queryBool("wallFront") }

// WallLeft - wall on the left
func (c *MMSClient) WallLeft() (bool, error) { return c.queryBool("wallLeft") }

// WallRight - wall on the right
func (c *MMSClient) WallRight() (bool, error) { return c.queryBool("wallRight") }

// MoveForward - one cell ahead; ErrCrash if a wall was in the way
func (c *MMSClient) MoveForward() error { return c.action("moveForward") }

// TurnLeft - 90° counter-clockwise in place
func (c *MMSClient) TurnLeft() error { return c.action("turnLeft") }

// TurnRight - 90° clockwise in place
func (c *MMSClient) TurnRight() error { return c.action("turnRight") }

// AckReset - acknowledges goal reached / reset
func (c *MMSClient) AckReset() error { return c.action("ackReset") }

// WasReset - whether the operator pressed reset since the last ack
func (c *MMSClient) WasReset() (bool, error) { return c.queryBool("wasReset") }

// SetWall - marks a wall on side direction (n, e, s, w) of (x, y)
func (c *MMSClient) SetWall(x, y int, direction byte) {
	c.display(fmt.Sprintf("setWall %d %d %c", x, y, direction))
}

// SetText - overlay text on a cell
func (c *MMSClient) SetText(x, y int, text string) {
	c.display(fmt.Sprintf("setText %d %d %s", x, y, text))
}

// SetColor - colors a cell; color is one of the simulator's color letters
func (c *MMSClient) SetColor(x, y int, color byte) {
	c.display(fmt.Sprintf("setColor %d %d %c", x, y, color))
}

// ClearAllWalls - removes every wall marker
func (c *MMSClient) ClearAllWalls() { c.display("clearAllWalls") }

// ClearAllText - removes every overlay
func (c *MMSClient) ClearAllText() { c.display("clearAllText") }

// ClearAllColor - removes every cell color
func (c *MMSClient) ClearAllColor() { c.display("clearAllColor") }

// DisplayErr - first failure of a display command, if any
func (c *MMSClient) DisplayErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayErr
}
