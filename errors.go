package physics2d

import (
	"errors"

	"github.com/gekko3d/physics2d/geom"
)

var (
	ErrCapacityExceeded = errors.New("physics2d: capacity exceeded")
	ErrInvalidHandle    = errors.New("physics2d: invalid handle")
	ErrInvalidConfig    = errors.New("physics2d: invalid config")
	ErrInvalidTimeStep  = errors.New("physics2d: invalid time step")
	ErrDegenerateShape  = geom.ErrDegenerateShape
)
