package services

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"go.bug.st/serial"
)

// PortOptions - UART settings for a physical mouse
type PortOptions struct {
	BaudRate int    `json:"baud_rate"`
	DataBits int    `json:"data_bits"`
	StopBits int    `json:"stop_bits"`
	Parity   string `json:"parity"`
}

// Normalize - validates the options and fills in 115200 8N1 defaults
func (o PortOptions) Normalize() (PortOptions, error) {
	opts := o

	if opts.BaudRate <= 0 {
		opts.BaudRate = 115200
	}

	if opts.DataBits == 0 {
		opts.DataBits = 8
	}
	if opts.DataBits < 5 || opts.DataBits > 8 {
		return opts, fmt.Errorf("invalid data bits %d: must be between 5 and 8", opts.DataBits)
	}

	if opts.StopBits == 0 {
		opts.StopBits = 1
	}
	if opts.StopBits != 1 && opts.StopBits != 2 {
		return opts, fmt.Errorf("invalid stop bits %d: supported values are 1 or 2", opts.StopBits)
	}

	parity := strings.TrimSpace(strings.ToUpper(opts.Parity))
	switch parity {
	case "", "N", "NONE":
		parity = "N"
	case "E", "EVEN":
		parity = "E"
	case "O", "ODD":
		parity = "O"
	default:
		return opts, fmt.Errorf("unsupported parity %q: expected N, E, or O", opts.Parity)
	}

	opts.Parity = parity
	return opts, nil
}

// SerialMode - options as a go.bug.st/serial mode
func (o PortOptions) SerialMode() (*serial.Mode, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}

	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: opts.DataBits,
	}

	switch opts.StopBits {
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		mode.StopBits = serial.OneStopBit
	}

	switch opts.Parity {
	case "E":
		mode.Parity = serial.EvenParity
	case "O":
		mode.Parity = serial.OddParity
	default:
		mode.Parity = serial.NoParity
	}

	return mode, nil
}

// SerialPorter - the part of a serial port the mouse link needs
type SerialPorter interface {
	io.ReadWriter
	io.Closer
}

// SerialOpener - opens a port; swapped out in tests
type SerialOpener func(path string, mode *serial.Mode) (SerialPorter, error)

// OpenSerialPort - SerialOpener backed by real hardware
func OpenSerialPort(path string, mode *serial.Mode) (SerialPorter, error) {
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}
	// replies to moves can take a while on real hardware
	if err := port.SetReadTimeout(5 * time.Second); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}

// OpenSerialMouse - MMS client talking to a mouse on a serial port.
// The returned closer releases the port.
func OpenSerialMouse(path string, opts PortOptions, open SerialOpener) (*MMSClient, io.Closer, error) {
	if open == nil {
		open = OpenSerialPort
	}

	mode, err := opts.SerialMode()
	if err != nil {
		return nil, nil, err
	}

	port, err := open(path, mode)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	log.Printf("🔌 serial mouse on %s (%d baud)", path, mode.BaudRate)
	return NewMMSClient(port, port), port, nil
}

// ListSerialPorts - port names present on this machine
func ListSerialPorts() ([]string, error) {
	return serial.GetPortsList()
}
