//go:build linux || darwin

// Package ctlsocksrv implements the control socket interface that can be
// activated with "xattrctl serve".
package ctlsocksrv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"path/filepath"

	"github.com/xattrctl/xattrctl/ctlsock"
	"github.com/xattrctl/xattrctl/internal/tlog"
	"github.com/xattrctl/xattrctl/xattr"
)

var errEscapesRoot = errors.New("path points above the root directory")

type ctlSockHandler struct {
	// root is the directory all request paths are relative to.
	root   string
	socket net.Listener
}

// Serve serves incoming connections on "sock", executing xattr operations on
// paths below "root". This call blocks so you probably want to run it in a
// new goroutine.
func Serve(sock net.Listener, root string) {
	handler := ctlSockHandler{
		root:   root,
		socket: sock,
	}
	handler.acceptLoop()
}

func (ch *ctlSockHandler) acceptLoop() {
	for {
		conn, err := ch.socket.Accept()
		if err != nil {
			// This can trigger on program exit with "use of closed network connection".
			// Special-casing this is hard due to https://github.com/golang/go/issues/4373
			// so just don't use tlog.Warn to not cause panics in the tests.
			tlog.Info.Printf("ctlsock: Accept error: %v", err)
			break
		}
		go ch.handleConnection(conn)
	}
}

// handleConnection reads and parses JSON requests from "conn"
func (ch *ctlSockHandler) handleConnection(conn net.Conn) {
	defer conn.Close()
	dec := json.NewDecoder(conn)
	for {
		var in ctlsock.RequestStruct
		err := dec.Decode(&in)
		if err == io.EOF {
			return
		} else if err != nil {
			// The stream is out of sync after a syntax error, so we have to
			// drop the connection.
			tlog.Warn.Printf("ctlsock: JSON Unmarshal error: %#v", err)
			err = errors.New("JSON Unmarshal error: " + err.Error())
			sendResponse(conn, &ctlsock.ResponseStruct{}, err)
			return
		}
		tlog.Debug.Printf("ctlsock: request %s", tlog.JSONDump(in))
		resp, err := ch.handleRequest(&in)
		sendResponse(conn, resp, err)
	}
}

// resolve maps the request path to a path below ch.root.
func (ch *ctlSockHandler) resolve(inPath string) (path string, warnText string, err error) {
	clean, ok := cleanRequestPath(inPath)
	if !ok {
		return "", "", errEscapesRoot
	}
	if clean == "." {
		return ch.root, "", nil
	}
	// Warn if a non-canonical path was passed
	if inPath != clean {
		warnText = fmt.Sprintf("Non-canonical input path '%s' has been interpreted as '%s'.", inPath, clean)
	}
	return filepath.Join(ch.root, clean), warnText, nil
}

// handleRequest handles an already-unmarshaled JSON request
func (ch *ctlSockHandler) handleRequest(in *ctlsock.RequestStruct) (*ctlsock.ResponseStruct, error) {
	resp := &ctlsock.ResponseStruct{}
	path, warnText, err := ch.resolve(in.Path)
	resp.WarnText = warnText
	if err != nil {
		return resp, err
	}
	if in.Name == "" && in.Op != ctlsock.OpList && in.Op != ctlsock.OpLList {
		return resp, errors.New("Empty attribute name")
	}
	var names xattr.Names
	switch in.Op {
	case ctlsock.OpGet:
		resp.Value, err = xattr.Get(path, in.Name)
	case ctlsock.OpLGet:
		resp.Value, err = xattr.LGet(path, in.Name)
	case ctlsock.OpSet:
		err = xattr.Set(path, in.Name, in.Value)
	case ctlsock.OpLSet:
		err = xattr.LSet(path, in.Name, in.Value)
	case ctlsock.OpRemove:
		err = xattr.Remove(path, in.Name)
	case ctlsock.OpLRemove:
		err = xattr.LRemove(path, in.Name)
	case ctlsock.OpList:
		names, err = xattr.List(path)
		resp.Names = names.Strings()
	case ctlsock.OpLList:
		names, err = xattr.LList(path)
		resp.Names = names.Strings()
	default:
		err = fmt.Errorf("Unknown operation %q", in.Op)
	}
	return resp, err
}

// sendResponse fills in the error fields of "msg" and sends it as JSON
func sendResponse(conn net.Conn, msg *ctlsock.ResponseStruct, err error) {
	if err != nil {
		msg.Value = nil
		msg.Names = nil
		msg.ErrText = err.Error()
		msg.ErrNo = -1
		// Try to extract the actual error number
		var xerr *xattr.Error
		if errors.As(err, &xerr) {
			msg.ErrKind = xerr.Kind.String()
			if errno := xerr.Errno(); errno != 0 {
				msg.ErrNo = int32(errno)
			}
		}
	}
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		tlog.Warn.Printf("ctlsock: Marshal failed: %v", err)
		return
	}
	// For convenience for the user, add a newline at the end.
	jsonMsg = append(jsonMsg, '\n')
	_, err = conn.Write(jsonMsg)
	if err != nil {
		tlog.Warn.Printf("ctlsock: Write failed: %v", err)
	}
}
