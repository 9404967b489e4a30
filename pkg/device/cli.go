package device

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/netweave/netweave/pkg/util"
)

const (
	cliDialTimeout = 15 * time.Second
	cliPushTimeout = 60 * time.Second
)

// cliErrorRe matches IOS error responses, e.g. "% Invalid input detected".
var cliErrorRe = regexp.MustCompile(`(?m)^%\s?\S.*$`)

// cliSession is a Driver over an SSH shell, for devices managed through
// the classic CLI instead of NETCONF. The datastore model collapses:
//
//	EditConfig  -> configure terminal + payload lines + end
//	GetConfig   -> show running-config (or the filter as a show command)
//	Get         -> the filter as a show command
//	Commit      -> write memory
//	Lock/Unlock/Validate/Discard -> no-ops (the CLI has no candidate store)
type cliSession struct {
	params ConnParams
	client *ssh.Client
}

func dialCLI(params ConnParams) (*cliSession, error) {
	config := &ssh.ClientConfig{
		User: params.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(params.Password),
		},
		// Lab/test environment — production would verify host keys.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         cliDialTimeout,
	}

	addr := fmt.Sprintf("%s:%d", params.Host, params.Port)
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, util.NewConnectionError(params.Host, "SSH dial", err)
	}

	return &cliSession{params: params, client: client}, nil
}

func (s *cliSession) EditConfig(target, config string) (*Response, error) {
	lines := []string{"terminal length 0", "configure terminal"}
	for _, l := range strings.Split(config, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	lines = append(lines, "end")

	output, err := s.shell(lines)
	if err != nil {
		return nil, err
	}
	if cliErrorRe.MatchString(output) {
		// the device refused part of the payload; keep its output verbatim
		return nil, util.NewRejectionError(s.params.Host, output)
	}
	return &Response{Raw: output}, nil
}

func (s *cliSession) GetConfig(source, filter string) (*Response, error) {
	cmd := filter
	if cmd == "" {
		cmd = "show running-config"
	}
	return s.exec(cmd)
}

func (s *cliSession) Get(filter string) (*Response, error) {
	if filter == "" {
		return nil, fmt.Errorf("cli transport requires a show command as filter")
	}
	return s.exec(filter)
}

func (s *cliSession) Lock(target string) error     { return nil }
func (s *cliSession) Unlock(target string) error   { return nil }
func (s *cliSession) Validate(source string) error { return nil }
func (s *cliSession) Discard() error               { return nil }

func (s *cliSession) Commit() error {
	_, err := s.exec("write memory")
	return err
}

func (s *cliSession) Close() error {
	return s.client.Close()
}

// exec runs a single command in a fresh SSH session (stateless per call).
func (s *cliSession) exec(cmd string) (*Response, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return nil, util.NewConnectionError(s.params.Host, "SSH session to", err)
	}
	defer session.Close()

	output, err := session.CombinedOutput(cmd)
	if err != nil {
		return nil, util.NewConnectionError(s.params.Host, fmt.Sprintf("exec '%s' on", cmd), err)
	}
	return &Response{Raw: string(output)}, nil
}

// shell drives an interactive shell, writing lines and collecting output
// until the remote side closes or the push timeout expires. Configuration
// mode is only reachable interactively on IOS, hence the pty.
func (s *cliSession) shell(lines []string) (string, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return "", util.NewConnectionError(s.params.Host, "SSH session to", err)
	}
	defer session.Close()

	if err := session.RequestPty("vt100", 80, 200, ssh.TerminalModes{ssh.ECHO: 0}); err != nil {
		return "", util.NewConnectionError(s.params.Host, "request pty on", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		return "", util.NewConnectionError(s.params.Host, "stdin pipe to", err)
	}

	var out bytes.Buffer
	session.Stdout = &out
	session.Stderr = &out

	if err := session.Shell(); err != nil {
		return "", util.NewConnectionError(s.params.Host, "start shell on", err)
	}

	for _, line := range lines {
		fmt.Fprintf(stdin, "%s\n", line)
	}
	fmt.Fprintln(stdin, "exit")
	stdin.Close()

	done := make(chan error, 1)
	go func() { done <- session.Wait() }()

	select {
	case <-time.After(cliPushTimeout):
		return out.String(), util.NewConnectionError(s.params.Host, "config push timed out on", fmt.Errorf("after %s", cliPushTimeout))
	case <-done:
		// a non-zero exit after "exit" is normal on network gear
	}

	return out.String(), nil
}
