package tableview

import "errors"

var (
	ErrNilController = errors.New("tableview: nil controller")
	ErrInvalidParam  = errors.New("tableview: invalid path parameter")
	ErrReadSignals   = errors.New("tableview: failed to read signals")
)
