package mpo

import "errors"

// ErrQueueEmpty is returned by Queue.Next when the queue holds no
// pending entries. Draining through Network.ProcessNext never hits it;
// seeing this error means a driver bypassed the documented guard.
var ErrQueueEmpty = errors.New("mpo: next called on empty message queue")
