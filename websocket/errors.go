package websocket

import "errors"

// ErrBufferFull is returned when the broadcast buffer is full and the
// message was dropped.
var ErrBufferFull = errors.New("websocket: send buffer is full")
