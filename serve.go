package main

import (
	"errors"
	"fmt"
	"log/syslog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/xattrctl/xattrctl/ctlsock"
	"github.com/xattrctl/xattrctl/internal/ctlsocksrv"
	"github.com/xattrctl/xattrctl/internal/dump"
	"github.com/xattrctl/xattrctl/internal/exitcodes"
	"github.com/xattrctl/xattrctl/internal/tlog"
	"github.com/xattrctl/xattrctl/xattr"
)

// serveCmd implements "xattrctl serve --ctlsock SOCKET ROOT". It blocks
// until SIGINT or SIGTERM.
func serveCmd(args *argContainer) error {
	root, err := filepath.Abs(args.rest[0])
	if err != nil {
		return exitcodes.WrapErr(err, exitcodes.Usage)
	}
	fi, err := os.Stat(root)
	if err != nil {
		return withExitCode(err)
	}
	if !fi.IsDir() {
		return exitcodes.NewErr(fmt.Sprintf("%q is not a directory", root), exitcodes.Usage)
	}
	sockPath, err := filepath.Abs(args.ctlsock)
	if err != nil {
		return exitcodes.WrapErr(err, exitcodes.CtlSock)
	}
	sock, err := ctlsocksrv.Listen(sockPath)
	if err != nil {
		return exitcodes.WrapErr(fmt.Errorf("ctlsock: %w", err), exitcodes.CtlSock)
	}
	if !xattr.Supported(root) {
		tlog.Info.Printf(tlog.ColorYellow+"%q does not support extended attributes"+tlog.ColorReset, root)
	}
	// "--syslog"
	if args.syslog {
		tlog.Info.SwitchToSyslog(syslog.LOG_USER | syslog.LOG_INFO)
		tlog.Debug.SwitchToSyslog(syslog.LOG_USER | syslog.LOG_DEBUG)
		tlog.Warn.SwitchToSyslog(syslog.LOG_USER | syslog.LOG_WARNING)
		tlog.Fatal.SwitchToSyslog(syslog.LOG_USER | syslog.LOG_CRIT)
	}
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go ctlsocksrv.Serve(sock, root)
	tlog.Info.Printf(tlog.ColorGreen+"Serving %q on %q"+tlog.ColorReset, root, sockPath)
	sig := <-sigs
	tlog.Info.Printf("Received %s, shutting down", sig)
	// Closing the listener also removes the socket file
	return sock.Close()
}

// queryCmd implements "xattrctl query --ctlsock SOCKET OP PATH [NAME [VALUE]]".
func queryCmd(args *argContainer) error {
	enc, err := outputEncoding(args)
	if err != nil {
		return err
	}
	req := ctlsock.RequestStruct{
		Op:   strings.ToLower(args.rest[0]),
		Path: args.rest[1],
	}
	if len(args.rest) > 2 {
		req.Name = args.rest[2]
	}
	if len(args.rest) > 3 {
		req.Value, err = dump.DecodeValue(args.rest[3])
		if err != nil {
			return exitcodes.WrapErr(err, exitcodes.Encoding)
		}
	}
	c, err := ctlsock.New(args.ctlsock)
	if err != nil {
		return exitcodes.WrapErr(fmt.Errorf("ctlsock: %w", err), exitcodes.CtlSock)
	}
	defer c.Close()
	resp, err := c.Query(&req)
	if err != nil {
		var r *ctlsock.ResponseStruct
		if errors.As(err, &r) {
			if k, ok := xattr.ParseKind(r.ErrKind); ok {
				return exitcodes.WrapErr(err, kindExitCodes[k])
			}
		}
		return exitcodes.WrapErr(err, exitcodes.CtlSock)
	}
	if resp.WarnText != "" {
		tlog.Info.Printf("ctlsock: %s", resp.WarnText)
	}
	switch req.Op {
	case ctlsock.OpGet, ctlsock.OpLGet:
		fmt.Println(dump.EncodeValue(resp.Value, enc))
	case ctlsock.OpList, ctlsock.OpLList:
		for _, name := range resp.Names {
			fmt.Println(name)
		}
	}
	return nil
}
