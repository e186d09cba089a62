package transport

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
)

// Reference defaults in device units.
const (
	DefaultReferenceVelocity     = 600
	DefaultReferenceAcceleration = 5000
)

// DefaultPollInterval is the pause between status polls.
const DefaultPollInterval = 50 * time.Millisecond

// GetStatus obtains the slave status. The device has no status address,
// so posicao_inicial is rewritten with its current value to elicit a
// status-bearing reply.
func (t *TransportLayer) GetStatus() (datalink.Status, error) {
	addr := PosicaoInicial.Param().Addr
	w, err := t.getWord(addr)
	if err != nil {
		return 0, err
	}
	return t.setWord(addr, w)
}

// IsStopped indicates the axis has reached its position.
func (t *TransportLayer) IsStopped() (bool, error) {
	st, err := t.GetStatus()
	return st.IsStopped(), err
}

// IsChangingVelocity indicates the axis is accelerating or decelerating.
func (t *TransportLayer) IsChangingVelocity() (bool, error) {
	st, err := t.GetStatus()
	return st.IsChangingVelocity(), err
}

// IsInConstantVelocity indicates the axis moves at constant velocity.
func (t *TransportLayer) IsInConstantVelocity() (bool, error) {
	st, err := t.GetStatus()
	return st.IsInConstantVelocity(), err
}

// IsReferenced indicates the axis has a reference.
func (t *TransportLayer) IsReferenced() (bool, error) {
	st, err := t.GetStatus()
	return st.IsReferenced(), err
}

// IsReferencing indicates the axis is looking for its reference.
func (t *TransportLayer) IsReferencing() (bool, error) {
	st, err := t.GetStatus()
	return st.IsReferencing(), err
}

func (t *TransportLayer) setSerial(ids ...ParamID) (st datalink.Status, err error) {
	for _, id := range ids {
		if st, err = t.Binary(id).SetActivation(Activated); err != nil {
			return
		}
	}
	return
}

func (t *TransportLayer) resetSerial(ids ...ParamID) (st datalink.Status, err error) {
	for _, id := range ids {
		if st, err = t.Binary(id).SetActivation(Deactivated); err != nil {
			return
		}
	}
	return
}

// ForceLooseReference drops the reference by asserting manual mode,
// stop and pause.
func (t *TransportLayer) ForceLooseReference() (datalink.Status, error) {
	return t.setSerial(SerialModoManual, SerialStop, SerialPausa)
}

// ReferenceOptions customizes ForceReference. Zero values use defaults.
type ReferenceOptions struct {
	Velocity     uint16
	Acceleration uint16
	PollInterval time.Duration
}

// ForceReference loosens the reference, loads the reference velocity and
// acceleration, starts the axis and polls until it is referenced.
// The wait is bounded by ctx only.
func (t *TransportLayer) ForceReference(ctx context.Context, opts ReferenceOptions) error {
	if opts.Velocity == 0 {
		opts.Velocity = DefaultReferenceVelocity
	}
	if opts.Acceleration == 0 {
		opts.Acceleration = DefaultReferenceAcceleration
	}
	if _, err := t.ForceLooseReference(); err != nil {
		return err
	}
	if _, err := t.VelocidadeDeReferencia().Set(int64(opts.Velocity)); err != nil {
		return err
	}
	if _, err := t.AceleracaoDeReferencia().Set(int64(opts.Acceleration)); err != nil {
		return err
	}
	if _, err := t.resetSerial(SerialPausa); err != nil {
		return err
	}
	if _, err := t.setSerial(SerialStart); err != nil {
		return err
	}
	glog.V(2).Infof("reference: velocity %d acceleration %d", opts.Velocity, opts.Acceleration)
	return t.poll(ctx, opts.PollInterval, datalink.Status.IsReferenced)
}

// Start releases pause and stop and starts the axis.
func (t *TransportLayer) Start() (datalink.Status, error) {
	if _, err := t.resetSerial(SerialPausa, SerialStop); err != nil {
		return 0, err
	}
	return t.setSerial(SerialStart)
}

// Stop requests the axis to stop and polls until it is stopped.
func (t *TransportLayer) Stop(ctx context.Context) error {
	if _, err := t.resetSerial(SerialStart); err != nil {
		return err
	}
	if _, err := t.setSerial(SerialStop); err != nil {
		return err
	}
	return t.poll(ctx, DefaultPollInterval, datalink.Status.IsStopped)
}

// PrintGo triggers a print test.
func (t *TransportLayer) PrintGo() (datalink.Status, error) {
	return t.setSerial(SerialTesteDeImpressao)
}

func (t *TransportLayer) poll(ctx context.Context, interval time.Duration, done func(datalink.Status) bool) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		st, err := t.GetStatus()
		if err != nil {
			return err
		}
		if done(st) {
			return nil
		}
		glog.V(3).Infof("poll: status %v", st)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
