package device

import (
	"fmt"

	scraplinetconf "github.com/scrapli/scrapligo/driver/netconf"
	"github.com/scrapli/scrapligo/driver/options"
	scrapliutil "github.com/scrapli/scrapligo/util"

	"github.com/netweave/netweave/pkg/util"
)

// netconfSession is a Driver over a scrapligo NETCONF connection.
//
// Transport and auth failures surface as ConnectionError; rpc-error replies
// surface as RejectionError with the device diagnostic preserved verbatim.
type netconfSession struct {
	host   string
	driver *scraplinetconf.Driver
}

func dialNetconf(params ConnParams) (*netconfSession, error) {
	opts := []scrapliutil.Option{
		options.WithAuthUsername(params.Username),
		options.WithAuthPassword(params.Password),
		options.WithTransportType("standard"),
		options.WithPort(params.Port),
		options.WithAuthNoStrictKey(),
		options.WithNetconfForceSelfClosingTags(),
	}

	d, err := scraplinetconf.NewDriver(params.Host, opts...)
	if err != nil {
		return nil, util.NewConnectionError(params.Host, "init netconf driver for", err)
	}
	if err := d.Open(); err != nil {
		return nil, util.NewConnectionError(params.Host, "open netconf session to", err)
	}

	return &netconfSession{host: params.Host, driver: d}, nil
}

func (s *netconfSession) EditConfig(target, config string) (*Response, error) {
	// the device expects the payload wrapped in a <config/> element
	xdoc := fmt.Sprintf("<config>%s</config>", config)

	resp, err := s.driver.EditConfig(target, xdoc)
	if err != nil {
		return nil, util.NewConnectionError(s.host, "edit-config on", err)
	}
	if resp.Failed != nil {
		return nil, util.NewRejectionError(s.host, resp.Failed.Error())
	}
	return ParseResponse(resp.Result)
}

func (s *netconfSession) GetConfig(source, filter string) (*Response, error) {
	getOpts := []scrapliutil.Option{options.WithNetconfForceSelfClosingTags()}
	if filter != "" {
		getOpts = append(getOpts, filterOption(filter))
	}

	resp, err := s.driver.GetConfig(source, getOpts...)
	if err != nil {
		return nil, util.NewConnectionError(s.host, "get-config on", err)
	}
	if resp.Failed != nil {
		return nil, util.NewRejectionError(s.host, resp.Failed.Error())
	}

	return dataResponse(resp.Result)
}

func (s *netconfSession) Get(filter string) (*Response, error) {
	// get takes the subtree filter positionally, unlike get-config
	resp, err := s.driver.Get(filter, options.WithNetconfForceSelfClosingTags())
	if err != nil {
		return nil, util.NewConnectionError(s.host, "get on", err)
	}
	if resp.Failed != nil {
		return nil, util.NewRejectionError(s.host, resp.Failed.Error())
	}

	return dataResponse(resp.Result)
}

func (s *netconfSession) Lock(target string) error {
	resp, err := s.driver.Lock(target)
	if err != nil {
		return util.NewConnectionError(s.host, "lock on", err)
	}
	if resp.Failed != nil {
		return util.NewRejectionError(s.host, resp.Failed.Error())
	}
	return nil
}

func (s *netconfSession) Unlock(target string) error {
	resp, err := s.driver.Unlock(target)
	if err != nil {
		return util.NewConnectionError(s.host, "unlock on", err)
	}
	if resp.Failed != nil {
		return util.NewRejectionError(s.host, resp.Failed.Error())
	}
	return nil
}

func (s *netconfSession) Validate(source string) error {
	resp, err := s.driver.Validate(source)
	if err != nil {
		return util.NewConnectionError(s.host, "validate on", err)
	}
	if resp.Failed != nil {
		return util.NewRejectionError(s.host, resp.Failed.Error())
	}
	return nil
}

func (s *netconfSession) Commit() error {
	resp, err := s.driver.Commit()
	if err != nil {
		return util.NewConnectionError(s.host, "commit on", err)
	}
	if resp.Failed != nil {
		return util.NewRejectionError(s.host, resp.Failed.Error())
	}
	return nil
}

func (s *netconfSession) Discard() error {
	resp, err := s.driver.Discard()
	if err != nil {
		return util.NewConnectionError(s.host, "discard on", err)
	}
	if resp.Failed != nil {
		return util.NewRejectionError(s.host, resp.Failed.Error())
	}
	return nil
}

func (s *netconfSession) Close() error {
	return s.driver.Close()
}

// dataResponse re-roots a get/get-config reply at the content below
// /rpc-reply/data so callers address elements without reply boilerplate.
func dataResponse(raw string) (*Response, error) {
	resp, err := ParseResponse(raw)
	if err != nil {
		return nil, err
	}
	if r := resp.doc.FindElement("/rpc-reply/data/*"); r != nil {
		resp.doc.SetRoot(r)
	}
	return resp, nil
}

// filterOption populates the subtree filter for a scrapligo RPC.
func filterOption(filter string) scrapliutil.Option {
	return func(x interface{}) error {
		oo, ok := x.(*scraplinetconf.OperationOptions)
		if !ok {
			return scrapliutil.ErrIgnoredOption
		}
		oo.Filter = filter
		return nil
	}
}
