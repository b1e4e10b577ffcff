package valuation

import "errors"

var (
	// ErrDivisionByZero is returned when forward EPS evaluates to zero
	ErrDivisionByZero = errors.New("forward EPS is zero")
	// ErrEmptyPeerSet is returned when a median is requested over no peers
	ErrEmptyPeerSet = errors.New("peer set is empty")
	// ErrDuplicatePeer is returned when two peers share an identifier
	ErrDuplicatePeer = errors.New("duplicate peer identifier")
	// ErrUnknownFormula is returned for an unsupported formula mode
	ErrUnknownFormula = errors.New("unknown formula")
)
