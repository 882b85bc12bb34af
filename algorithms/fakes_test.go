package algorithms

import (
	"fmt"

	"mouse-backend/models"
)

// fakeRobot - scripted sensors, counted actuator calls
type fakeRobot struct {
	front, left, right bool

	sensorErr error
	moveErr   error

	moves, lefts, rights, acks int
	calls                      []string // actuator calls in order
}

func (r *fakeRobot) WallFront() (bool, error) { return r.front, r.sensorErr }
func (r *fakeRobot) WallLeft() (bool, error)  { return r.left, r.sensorErr }
func (r *fakeRobot) WallRight() (bool, error) { return r.right, r.sensorErr }

func (r *fakeRobot) MoveForward() error {
	if r.moveErr != nil {
		return r.moveErr
	}
	r.moves++
	r.calls = append(r.calls, "forward")
	return nil
}

func (r *fakeRobot) TurnLeft() error {
	r.lefts++
	r.calls = append(r.calls, "left")
	return nil
}

func (r *fakeRobot) TurnRight() error {
	r.rights++
	r.calls = append(r.calls, "right")
	return nil
}

func (r *fakeRobot) AckReset() error {
	r.acks++
	r.calls = append(r.calls, "ack")
	return nil
}

// recordingDisplay - remembers every side channel call
type recordingDisplay struct {
	walls []string
	texts map[models.Cell]string
	sets  int
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{texts: make(map[models.Cell]string)}
}

func (d *recordingDisplay) SetWall(x, y int, direction byte) {
	d.walls = append(d.walls, fmt.Sprintf("%d %d %c", x, y, direction))
}

func (d *recordingDisplay) SetText(x, y int, text string) {
	d.texts[models.Cell{X: x, Y: y}] = text
	d.sets++
}

func init() {
	SetLogger(nil)
}
