package service

import "github.com/cockroachdb/errors"

var ErrAlreadyPopulated = errors.New("order book has already been populated")
