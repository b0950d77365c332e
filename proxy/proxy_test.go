package proxy

import (
	"testing"

	zmq "github.com/pebbe/zmq4"
	"github.com/uofuseismo/umps/message"
	gc "gopkg.in/check.v1"
)

func Test(t *testing.T) { gc.TestingT(t) }

type ProxySuite struct{}

var _ = gc.Suite(&ProxySuite{})

type fakeSocket struct {
	details message.SocketDetails
}

func (f fakeSocket) Raw() *zmq.Socket                     { return nil }
func (f fakeSocket) SocketDetails() message.SocketDetails { return f.details }
func (f fakeSocket) Disconnect() error                    { return nil }

func (s *ProxySuite) TestInitializeRejectsIncompatiblePair(c *gc.C) {
	p := New()
	frontend := fakeSocket{details: message.SocketDetails{Address: "tcp://*:6000", SocketType: message.SocketPublisher}}
	backend := fakeSocket{details: message.SocketDetails{Address: "tcp://*:6001", SocketType: message.SocketSubscriber}}
	c.Check(p.Initialize(frontend, backend), gc.Equals, ErrIncompatiblePair)
}

func (s *ProxySuite) TestInitializeRejectsSameAddress(c *gc.C) {
	p := New()
	frontend := fakeSocket{details: message.SocketDetails{Address: "tcp://*:6000", SocketType: message.SocketXSubscriber}}
	backend := fakeSocket{details: message.SocketDetails{Address: "tcp://*:6000", SocketType: message.SocketXPublisher}}
	c.Check(p.Initialize(frontend, backend), gc.NotNil)
}

func (s *ProxySuite) TestInitializeAcceptsCompatiblePairs(c *gc.C) {
	p := New()
	frontend := fakeSocket{details: message.SocketDetails{Address: "tcp://*:6000", SocketType: message.SocketXSubscriber}}
	backend := fakeSocket{details: message.SocketDetails{Address: "tcp://*:6001", SocketType: message.SocketXPublisher}}
	c.Assert(p.Initialize(frontend, backend), gc.IsNil)
	c.Check(p.IsInitialized(), gc.Equals, true)
	c.Check(p.IsRunning(), gc.Equals, false)

	details, err := p.SocketDetails()
	c.Assert(err, gc.IsNil)
	c.Check(details.Frontend.Address, gc.Equals, "tcp://*:6000")
	c.Check(details.Backend.Address, gc.Equals, "tcp://*:6001")
}
