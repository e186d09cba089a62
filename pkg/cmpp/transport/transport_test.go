package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/frame"
	"github.com/robotalks/cmpp.go/pkg/cmpp/slave"
)

func newTestTransport(s *slave.Slave) (*TransportLayer, *slave.Device) {
	dev := slave.NewDevice(s)
	dl := datalink.NewOver(s.Channel, 20*time.Millisecond, dev)
	return New(dl, DefaultMechanicalProperties), dev
}

func TestParamTable(t *testing.T) {
	names := make(map[string]bool)
	for n := range Params {
		p := &Params[n]
		require.Equal(t, ParamID(n), p.ID)
		require.False(t, names[p.Name], p.Name)
		names[p.Name] = true
		require.True(t, int(p.Addr) <= datalink.MaxWordAddress)
		if p.Location == LocationBit {
			require.True(t, p.Bit < 16)
			require.Equal(t, Binary, p.Dimension)
		}
		id, ok := Lookup(p.Name)
		require.True(t, ok)
		require.Equal(t, p.ID, id)
	}
	require.Equal(t, datalink.WordAddress(0x50), PosicaoInicial.Param().Addr)
	require.Equal(t, uint16(1<<15), ModoPassoAPasso.Param().Mask())
	require.Equal(t, KindAxisMode, ModoPassoAPasso.Param().Kind)
	require.Equal(t, uint16(0xff00), NumeroDeMensagemNoRetorno.Param().Mask())
	_, ok := Lookup("unknown")
	require.False(t, ok)
	require.Equal(t, "posicao_final", PosicaoFinal.String())
}

func TestWordManipulator(t *testing.T) {
	s := slave.New(1)
	tl, dev := newTestTransport(s)

	_, err := tl.PosicaoInicial().Set(100)
	require.NoError(t, err)
	require.Equal(t, uint16(5433), s.Register(0x50))
	reqs := dev.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, frame.Payload{0xc1, 0x50, 0x39, 0x15}, reqs[0].Payload)

	v, err := tl.PosicaoInicial().Get()
	require.NoError(t, err)
	require.Equal(t, int64(100), v)

	_, err = tl.PosicaoFinal().Set(5000)
	var rangeErr *OutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	require.Len(t, dev.Requests(), 2)

	_, err = tl.PosicaoAtual().Set(1)
	require.Equal(t, ErrReadOnly, err)

	s.SetRegister(PosicaoAtualAddress, 5433)
	v, err = tl.Get(PosicaoAtual)
	require.NoError(t, err)
	require.Equal(t, int64(100), v)
}

func TestByteManipulatorPreservesOtherByte(t *testing.T) {
	s := slave.New(0)
	s.SetRegister(0x56, 0x1234)
	tl, _ := newTestTransport(s)

	_, err := tl.NumeroDeMensagemNoAvanco().Set(0xab)
	require.NoError(t, err)
	require.Equal(t, uint16(0x12ab), s.Register(0x56))

	_, err = tl.NumeroDeMensagemNoRetorno().Set(0x07)
	require.NoError(t, err)
	require.Equal(t, uint16(0x07ab), s.Register(0x56))

	lo, err := tl.NumeroDeMensagemNoAvanco().Get()
	require.NoError(t, err)
	require.Equal(t, uint8(0xab), lo)
	hi, err := tl.Get(NumeroDeMensagemNoRetorno)
	require.NoError(t, err)
	require.Equal(t, int64(7), hi)

	_, err = tl.Set(NumeroDeMensagemNoRetorno, 256)
	require.Error(t, err)
}

func TestBinaryManipulatorPreservesOtherBits(t *testing.T) {
	for p := uint(0); p < 16; p++ {
		s := slave.New(0)
		const before = 0xa5a5
		s.SetRegister(FlagsAddress, before)
		tl, dev := newTestTransport(s)
		id := StartAutoAvanco + ParamID(p)
		require.Equal(t, p, id.Param().Bit)

		_, err := tl.Binary(id).Set(true)
		require.NoError(t, err)
		require.Equal(t, uint16(before|1<<p), s.Register(FlagsAddress))
		bit, err := tl.Binary(id).Get()
		require.NoError(t, err)
		require.True(t, bit)

		_, err = tl.Set(id, 0)
		require.NoError(t, err)
		require.Equal(t, uint16(before&^(1<<p)), s.Register(FlagsAddress))

		reqs := dev.Requests()
		require.Equal(t, datalink.DirectionSetBitmask, datalink.DirectionOf(reqs[0].Payload[0]))
		require.Equal(t, datalink.DirectionResetBitmask, datalink.DirectionOf(reqs[2].Payload[0]))
	}
}

func TestEnumManipulators(t *testing.T) {
	s := slave.New(0)
	tl, _ := newTestTransport(s)

	_, err := tl.ModoPassoAPasso().SetAxisMode(AxisStepByStep)
	require.NoError(t, err)
	mode, err := tl.ModoPassoAPasso().AxisMode()
	require.NoError(t, err)
	require.Equal(t, AxisStepByStep, mode)

	_, err = tl.LogicaSinalImpressao().SetSignalLogic(SignalClosed)
	require.NoError(t, err)
	logic, err := tl.LogicaSinalImpressao().SignalLogic()
	require.NoError(t, err)
	require.Equal(t, SignalClosed, logic)

	_, err = tl.GiroFuncaoProtecao().SetActivation(Activated)
	require.NoError(t, err)
	require.Equal(t, uint16(1<<15|1<<12|1<<8), s.Register(FlagsAddress))
}

type flakyLink struct {
	failures int
	calls    int
	err      error
}

func (l *flakyLink) do() error {
	l.calls++
	if l.calls <= l.failures {
		return l.err
	}
	return nil
}

func (l *flakyLink) GetWord16(datalink.WordAddress) (uint16, error) {
	return 0x200, l.do()
}

func (l *flakyLink) SetWord16(datalink.WordAddress, uint16) (datalink.Status, error) {
	return datalink.StatusReferenced, l.do()
}

func (l *flakyLink) SetBitmask(datalink.WordAddress, uint16) (datalink.Status, error) {
	return 0, l.do()
}

func (l *flakyLink) ResetBitmask(datalink.WordAddress, uint16) (datalink.Status, error) {
	return 0, l.do()
}

func TestRetries(t *testing.T) {
	link := &flakyLink{failures: 2, err: &datalink.TimeoutError{Elapsed: time.Second}}
	tl := New(link, DefaultMechanicalProperties)
	tl.Retries = 2
	v, err := tl.PosicaoInicial().Get()
	require.NoError(t, err)
	require.Equal(t, int64(0), v)
	require.Equal(t, 3, link.calls)

	link = &flakyLink{failures: 2, err: &datalink.TimeoutError{}}
	tl = New(link, DefaultMechanicalProperties)
	tl.Retries = 1
	_, err = tl.PosicaoInicial().Get()
	require.Error(t, err)
	require.Equal(t, 2, link.calls)

	link = &flakyLink{failures: 1, err: &datalink.SlaveError{Code: datalink.ErrorCodeInvalidWordAddress}}
	tl = New(link, DefaultMechanicalProperties)
	tl.Retries = 3
	_, err = tl.PrintGo()
	require.Error(t, err)
	require.Equal(t, 1, link.calls)
}

func TestCompoundOperations(t *testing.T) {
	s := NewSimulatedSlave(0)
	tl, _ := newTestTransport(s)

	referenced, err := tl.IsReferenced()
	require.NoError(t, err)
	require.False(t, referenced)
	stopped, err := tl.IsStopped()
	require.NoError(t, err)
	require.True(t, stopped)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, tl.ForceReference(ctx, ReferenceOptions{PollInterval: time.Millisecond}))
	require.Equal(t, uint16(DefaultReferenceVelocity), s.Register(VelocidadeDeReferencia.Param().Addr))
	require.Equal(t, uint16(DefaultReferenceAcceleration), s.Register(AceleracaoDeReferencia.Param().Addr))
	referenced, err = tl.IsReferenced()
	require.NoError(t, err)
	require.True(t, referenced)

	_, err = tl.PosicaoFinal().Set(200)
	require.NoError(t, err)
	_, err = tl.Start()
	require.NoError(t, err)
	require.NoError(t, tl.Stop(ctx))
	pos, err := tl.PosicaoAtual().Get()
	require.NoError(t, err)
	require.Equal(t, int64(200), pos)

	_, err = tl.PrintGo()
	require.NoError(t, err)
	require.Equal(t, uint16(0), s.Register(SerialControlAddress)&SerialTesteDeImpressao.Param().Mask())

	st, err := tl.ForceLooseReference()
	require.NoError(t, err)
	require.False(t, st.IsReferenced())
}

func TestGetStatusRewritesPosicaoInicial(t *testing.T) {
	s := slave.New(0)
	s.SetRegister(0x50, 0x1b1b)
	s.SetStatus(datalink.StatusReferenced | datalink.StatusAccelerating)
	tl, dev := newTestTransport(s)
	st, err := tl.GetStatus()
	require.NoError(t, err)
	require.Equal(t, datalink.StatusReferenced|datalink.StatusAccelerating, st)
	require.Equal(t, uint16(0x1b1b), s.Register(0x50))
	require.Len(t, dev.Requests(), 2)

	changing, err := tl.IsChangingVelocity()
	require.NoError(t, err)
	require.True(t, changing)
	constant, err := tl.IsInConstantVelocity()
	require.NoError(t, err)
	require.False(t, constant)
	referencing, err := tl.IsReferencing()
	require.NoError(t, err)
	require.False(t, referencing)
}

func TestForceReferenceTimeout(t *testing.T) {
	tl, _ := newTestTransport(slave.New(0))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := tl.ForceReference(ctx, ReferenceOptions{PollInterval: time.Millisecond})
	require.Equal(t, context.DeadlineExceeded, err)
}

func TestLinkErrorStopsCompound(t *testing.T) {
	s := NewSimulatedSlave(0)
	tl, dev := newTestTransport(s)
	dev.FailTxFrom(2, nil)
	err := tl.ForceReference(context.Background(), ReferenceOptions{})
	var txErr *datalink.SerialTransmissionError
	require.True(t, errors.As(err, &txErr))
	require.Len(t, dev.Requests(), 1)
}
