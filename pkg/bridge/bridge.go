// Package bridge exposes a CMPP slave over MQTT.
//
// The bridge publishes StatusEvent on <id>/status, serves Request
// received on <id>/cmd and publishes Reply on <id>/reply. Messages are
// protobuf encoded.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
	"github.com/robotalks/cmpp.go/pkg/store"
)

// Topic suffixes.
const (
	TopicStatus = "status"
	TopicCmd    = "cmd"
	TopicReply  = "reply"
)

// DefaultOperationTimeout bounds reference and stop requests.
const DefaultOperationTimeout = 30 * time.Second

// Bridge serves one slave over a Messenger.
type Bridge struct {
	ID        string
	Channel   datalink.Channel
	Transport *transport.TransportLayer
	Store     *store.Store
	Messenger Messenger
	Interval  time.Duration

	// the link carries one transaction at a time
	lock sync.Mutex
}

// Topic builds the topic of this bridge.
func (b *Bridge) Topic(suffix string) string {
	return b.ID + "/" + suffix
}

// Name implements framework.Named.
func (b *Bridge) Name() string {
	return "bridge"
}

// Run polls the status and serves requests until ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	reqCh := make(chan *Request, 16)
	sub, err := b.Messenger.Subscribe(b.Topic(TopicCmd), func(topic string, payload []byte) {
		req := &Request{}
		if err := proto.Unmarshal(payload, req); err != nil {
			glog.Warningf("invalid request on %s: %v", topic, err)
			return
		}
		select {
		case reqCh <- req:
		default:
			glog.Warningf("request %s dropped: too many pending", req.ID)
		}
	})
	if err != nil {
		return err
	}
	defer sub.Close()

	interval := b.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	b.PublishStatus()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			b.PublishStatus()
		case req := <-reqCh:
			b.publish(TopicReply, b.Handle(ctx, req))
		}
	}
}

func (b *Bridge) publish(suffix string, msg proto.Message) {
	payload, err := proto.Marshal(msg)
	if err == nil {
		err = b.Messenger.Publish(b.Topic(suffix), payload)
	}
	if err != nil {
		glog.Errorf("publish %s error: %v", suffix, err)
	}
}

// PollStatus reads the status and position.
func (b *Bridge) PollStatus() *StatusEvent {
	b.lock.Lock()
	defer b.lock.Unlock()
	event := &StatusEvent{Channel: uint32(b.Channel), Timestamp: time.Now().UnixNano()}
	st, err := b.Transport.GetStatus()
	if err == nil {
		event.PosicaoAtual, err = b.Transport.PosicaoAtual().Get()
	}
	if err != nil {
		event.Error = err.Error()
		return event
	}
	event.Status = uint32(st)
	event.Flags = statusFlags(st)
	return event
}

// PublishStatus polls and publishes the status.
func (b *Bridge) PublishStatus() {
	b.publish(TopicStatus, b.PollStatus())
}

var flagNames = []struct {
	st   datalink.Status
	name string
}{
	{datalink.StatusReferenced, "referenced"},
	{datalink.StatusLastPositionReached, "position_reached"},
	{datalink.StatusReferencing, "referencing"},
	{datalink.StatusPositiveDirection, "positive"},
	{datalink.StatusAccelerating, "accelerating"},
	{datalink.StatusDecelerating, "decelerating"},
	{datalink.StatusErrorEvent, "error_event"},
}

func statusFlags(st datalink.Status) []string {
	var flags []string
	for _, f := range flagNames {
		if st&f.st != 0 {
			flags = append(flags, f.name)
		}
	}
	if st.IsStopped() {
		flags = append(flags, "stopped")
	}
	return flags
}

// Handle performs a request.
func (b *Bridge) Handle(ctx context.Context, req *Request) *Reply {
	b.lock.Lock()
	defer b.lock.Unlock()
	reply := &Reply{ID: req.ID}
	value, st, err := b.perform(ctx, req)
	reply.Value, reply.Status = value, uint32(st)
	if err != nil {
		reply.Error = err.Error()
		var slaveErr *datalink.SlaveError
		if errors.As(err, &slaveErr) {
			reply.SlaveError = uint32(slaveErr.Code)
			reply.Status = uint32(slaveErr.Status)
		}
		glog.Warningf("request %s %s failed: %v", req.ID, req.Op, err)
	}
	return reply
}

func (b *Bridge) perform(ctx context.Context, req *Request) (value int64, st datalink.Status, err error) {
	timeout := DefaultOperationTimeout
	if req.TimeoutMs > 0 {
		timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}
	switch req.Op {
	case OpGet, OpSet:
		id, ok := transport.Lookup(req.Param)
		if !ok {
			return 0, 0, fmt.Errorf("unknown parameter %q", req.Param)
		}
		if req.Op == OpGet {
			value, err = b.Transport.Get(id)
			return
		}
		st, err = b.Transport.Set(id, req.Value)
		return req.Value, st, err
	case OpStatus:
		st, err = b.Transport.GetStatus()
	case OpLoose:
		st, err = b.Transport.ForceLooseReference()
	case OpStart:
		st, err = b.Transport.Start()
	case OpPrint:
		st, err = b.Transport.PrintGo()
	case OpReference:
		opCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		opts := transport.ReferenceOptions{}
		if b.Store != nil {
			opts.Velocity = b.Store.Eixo.VelocidadeDeReferencia
			opts.Acceleration = b.Store.Eixo.AceleracaoDeReferencia
		}
		if err = b.Transport.ForceReference(opCtx, opts); err == nil {
			st, err = b.Transport.GetStatus()
		}
	case OpStop:
		opCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err = b.Transport.Stop(opCtx); err == nil {
			st, err = b.Transport.GetStatus()
		}
	case OpSend:
		if b.Store == nil {
			return 0, 0, errors.New("no parameter store")
		}
		if _, err = store.ProgramBase(int(req.Program)); err != nil {
			return
		}
		var statuses []datalink.Status
		statuses, err = store.SendAll(b.Transport, &b.Store.Programs[req.Program])
		if err == nil {
			statuses2, err2 := store.SendAll(b.Transport, &b.Store.Eixo)
			statuses, err = append(statuses, statuses2...), err2
		}
		value = int64(len(statuses))
		if len(statuses) > 0 {
			st = statuses[len(statuses)-1]
		}
	default:
		err = fmt.Errorf("unsupported operation %q", req.Op)
	}
	return
}
