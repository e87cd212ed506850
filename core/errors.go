package core

import "errors"

var (
	ErrNoFilePath      = errors.New("buffer has no file path")
	ErrInvalidEncoding = errors.New("file is not valid utf-8")
	ErrBufferNotOpen   = errors.New("buffer not open")
)
