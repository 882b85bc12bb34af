package algorithms

// Sensors - wall readings relative to the mouse's current heading
type Sensors interface {
	WallFront() (bool, error)
	WallLeft() (bool, error)
	WallRight() (bool, error)
}

// Actuators - physical motion primitives
type Actuators interface {
	// MoveForward advances exactly one cell in the current heading.
	MoveForward() error
	TurnLeft() error
	TurnRight() error
	// AckReset tells the hardware the goal was reached and the mouse is
	// logically back at the start.
	AckReset() error
}

// Robot - the sensor/actuator collaborator driven by the Solver
type Robot interface {
	Sensors
	Actuators
}

// Display - visualization side channel. Nothing it receives is
// authoritative, so it has no error path.
type Display interface {
	SetWall(x, y int, direction byte)
	SetText(x, y int, text string)
}

type noopDisplay struct{}

func (noopDisplay) SetWall(int, int, byte)   {}
func (noopDisplay) SetText(int, int, string) {}
