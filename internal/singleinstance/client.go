package singleinstance

import (
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
)

const dialTimeout = 2 * time.Second

// SendActivate dials the existing instance's wake endpoint and sends the
// "activate" command, per spec.md §4.9: "connect to the existing instance's
// local endpoint and send an activate message".
func SendActivate() error {
	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort("127.0.0.1", strconv.Itoa(wakePort())),
		Path:   "/activate",
	}

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return apperr.Wrap(apperr.IpcSendFailed, "dial wake endpoint", err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(dialTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, []byte(activateCommand+"\n")); err != nil {
		return apperr.Wrap(apperr.IpcSendFailed, "send activate command", err)
	}
	return nil
}
