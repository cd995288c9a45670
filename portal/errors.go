package portal

import "errors"

var (
	ErrIDNotRecognised    = errors.New("id not recognised")
	ErrNameNotRecognised  = errors.New("name not recognised")
	ErrIllegalName        = errors.New("name already in use")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidLength      = errors.New("invalid length")
	ErrInvalidLocation    = errors.New("invalid segment location")
	ErrInvalidStageState  = errors.New("invalid stage state")
	ErrInvalidStageType   = errors.New("invalid stage type")
	ErrDuplicatedResult   = errors.New("rider already has results in stage")
	ErrInvalidCheckpoints = errors.New("invalid number of checkpoints")
	ErrInvalidArgument    = errors.New("invalid argument")
)
