// Command mms drives the flood-fill solver under the mms micromouse
// simulator (commands on stdout, replies on stdin), or against a physical
// mouse on a serial port speaking the same protocol.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"mouse-backend/algorithms"
	"mouse-backend/config"
	"mouse-backend/models"
	"mouse-backend/services"
)

func main() {
	// stdout is the protocol channel
	log.SetOutput(os.Stderr)
	algorithms.SetLogger(log.Printf)

	cfg := config.Load()

	serialPath := flag.String("serial", cfg.SerialPort, "serial device of a physical mouse (default: mms on stdin/stdout)")
	baud := flag.Int("baud", cfg.SerialBaud, "serial baud rate")
	listPorts := flag.Bool("list-ports", false, "print the serial ports on this machine and exit")
	flag.Parse()

	if *listPorts {
		ports, err := services.ListSerialPorts()
		if err != nil {
			log.Fatalf("❌ list serial ports: %v", err)
		}
		for _, p := range ports {
			fmt.Fprintln(os.Stderr, p)
		}
		return
	}

	client := services.NewMMSClient(os.Stdin, os.Stdout)
	if *serialPath != "" {
		serialClient, closer, err := services.OpenSerialMouse(*serialPath, services.PortOptions{BaudRate: *baud}, nil)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer closer.Close()
		client = serialClient
	}

	if err := run(client); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// run - cycles the solver until the peer goes away or a cycle fails
func run(client *services.MMSClient) error {
	width, err := client.MazeWidth()
	if err != nil {
		return err
	}
	height, err := client.MazeHeight()
	if err != nil {
		return err
	}
	if width != models.MazeSize || height != models.MazeSize {
		return fmt.Errorf("maze is %dx%d, solver needs %dx%d", width, height, models.MazeSize, models.MazeSize)
	}

	client.ClearAllWalls()
	client.ClearAllText()

	solver := algorithms.NewSolver(client, client)
	painted := solver.Mode()
	markGoals(client, painted)
	log.Printf("🐭 solver started")

	for {
		reset, err := client.WasReset()
		if err != nil {
			return peerGone(err)
		}
		if reset {
			log.Printf("🔄 reset requested at %s", solver.Pose())
			solver.Reset()
			if err := client.AckReset(); err != nil {
				return peerGone(err)
			}
		}

		if _, err := solver.Step(); err != nil {
			return peerGone(err)
		}
		if mode := solver.Mode(); mode != painted {
			markGoals(client, mode)
			painted = mode
		}
		if err := client.DisplayErr(); err != nil {
			return peerGone(err)
		}
	}
}

// markGoals - colors the cells the solver is heading for
func markGoals(client *services.MMSClient, mode models.GoalMode) {
	client.ClearAllColor()
	for _, c := range mode.Goals() {
		client.SetColor(c.X, c.Y, 'G')
	}
}

// peerGone - a closed input stream is a normal shutdown
func peerGone(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		log.Printf("👋 simulator closed the connection")
		return nil
	}
	return err
}
