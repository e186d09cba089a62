package bridge

import (
	"github.com/golang/protobuf/proto"
)

// StatusEvent is published when the slave status is polled.
type StatusEvent struct {
	Channel      uint32   `protobuf:"varint,1,opt,name=channel,proto3" json:"channel,omitempty"`
	Status       uint32   `protobuf:"varint,2,opt,name=status,proto3" json:"status,omitempty"`
	Flags        []string `protobuf:"bytes,3,rep,name=flags,proto3" json:"flags,omitempty"`
	PosicaoAtual int64    `protobuf:"varint,4,opt,name=posicao_atual,proto3" json:"posicao_atual,omitempty"`
	Error        string   `protobuf:"bytes,5,opt,name=error,proto3" json:"error,omitempty"`
	Timestamp    int64    `protobuf:"varint,6,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *StatusEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *StatusEvent) Reset() { *m = StatusEvent{} }

// String implements proto.Message.
func (m *StatusEvent) String() string { return proto.CompactTextString(m) }

// Request operations.
const (
	OpGet       = "get"
	OpSet       = "set"
	OpStatus    = "status"
	OpReference = "reference"
	OpLoose     = "loose"
	OpStart     = "start"
	OpStop      = "stop"
	OpPrint     = "print"
	OpSend      = "send"
)

// Request asks the bridge to perform an operation on the slave.
type Request struct {
	ID      string `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Op      string `protobuf:"bytes,2,opt,name=op,proto3" json:"op,omitempty"`
	Param   string `protobuf:"bytes,3,opt,name=param,proto3" json:"param,omitempty"`
	Value   int64  `protobuf:"varint,4,opt,name=value,proto3" json:"value,omitempty"`
	Program int32  `protobuf:"varint,5,opt,name=program,proto3" json:"program,omitempty"`
	// TimeoutMs bounds reference and stop, 0 uses the bridge default.
	TimeoutMs uint32 `protobuf:"varint,6,opt,name=timeout_ms,proto3" json:"timeout_ms,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Request) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Request) Reset() { *m = Request{} }

// String implements proto.Message.
func (m *Request) String() string { return proto.CompactTextString(m) }

// Reply is the result of a Request.
type Reply struct {
	ID     string `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Value  int64  `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
	Status uint32 `protobuf:"varint,3,opt,name=status,proto3" json:"status,omitempty"`
	Error  string `protobuf:"bytes,4,opt,name=error,proto3" json:"error,omitempty"`
	// SlaveError is the code of a NACK reply, 0 otherwise.
	SlaveError uint32 `protobuf:"varint,5,opt,name=slave_error,proto3" json:"slave_error,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Reply) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Reply) Reset() { *m = Reply{} }

// String implements proto.Message.
func (m *Reply) String() string { return proto.CompactTextString(m) }
