// Package ctlsock is a Go library that can be used to query the
// xattrctl control socket interface. This interface can be
// activated by running `xattrctl serve --ctlsock /tmp/my.sock DIR`.
// See the "query" command of xattrctl for a usage example.
package ctlsock

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

func (r *ResponseStruct) Error() string {
	if r.ErrKind != "" {
		return fmt.Sprintf("errno %d (%s): %s", r.ErrNo, r.ErrKind, r.ErrText)
	}
	return fmt.Sprintf("errno %d: %s", r.ErrNo, r.ErrText)
}

// CtlSock encapsulates a control socket
type CtlSock struct {
	Conn net.Conn
	dec  *json.Decoder
}

// New opens the socket at `socketPath` and stores it in a `CtlSock` object.
func New(socketPath string) (*CtlSock, error) {
	conn, err := net.DialTimeout("unix", socketPath, 1*time.Second)
	if err != nil {
		return nil, err
	}
	return &CtlSock{Conn: conn, dec: json.NewDecoder(conn)}, nil
}

// Query sends a request to the control socket returns the response.
// If the server reports an error, the response is returned as the error.
func (c *CtlSock) Query(req *RequestStruct) (*ResponseStruct, error) {
	c.Conn.SetDeadline(time.Now().Add(time.Second))
	msg, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	_, err = c.Conn.Write(msg)
	if err != nil {
		return nil, err
	}
	var resp ResponseStruct
	err = c.dec.Decode(&resp)
	if err != nil {
		return nil, err
	}
	if resp.ErrNo != 0 {
		return nil, &resp
	}
	return &resp, nil
}

// Close closes the socket
func (c *CtlSock) Close() {
	c.Conn.Close()
}
