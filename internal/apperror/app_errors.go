package apperror

import "errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidMove  = errors.New("invalid move index")
)
