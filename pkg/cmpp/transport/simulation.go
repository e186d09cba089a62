package transport

import (
	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/slave"
)

// NewSimulatedSlave creates an emulated slave loaded with factory words
// which reacts to the serial control bits like an idealized axis: moves
// and referencing complete instantly.
func NewSimulatedSlave(ch datalink.Channel) *slave.Slave {
	s := slave.New(ch)
	for n := range Params {
		p := &Params[n]
		if p.Location == LocationWord && p.Dimension == Displacement {
			s.SetRegister(p.Addr, DisplacementOffset)
		}
	}
	s.SetRegister(NumeroDePulsosPorVolta.Param().Addr, DefaultMechanicalProperties.PulsesPerRevolution)
	s.SetStatus(datalink.StatusLastPositionReached)
	return s.OnWrite(simulateAxis)
}

func simulateAxis(r *slave.Regs, addr datalink.WordAddress, old, value uint16) {
	if addr != SerialControlAddress {
		return
	}
	isSet := func(id ParamID) bool {
		return value&id.Param().Mask() != 0
	}
	rose := func(id ParamID) bool {
		return isSet(id) && old&id.Param().Mask() == 0
	}
	consume := func(id ParamID) {
		r.Words[addr] &^= id.Param().Mask()
	}
	moving := datalink.StatusAccelerating | datalink.StatusDecelerating | datalink.StatusReferencing

	if rose(SerialModoManual) {
		r.Status &^= datalink.StatusReferenced
	}
	if rose(SerialStop) {
		r.Status = r.Status&^moving | datalink.StatusLastPositionReached
	}
	if rose(SerialStart) && !isSet(SerialPausa) {
		switch {
		case isSet(SerialModoManual):
			r.Words[PosicaoAtualAddress] = DisplacementOffset
			r.Status |= datalink.StatusReferenced | datalink.StatusLastPositionReached
			consume(SerialModoManual)
			consume(SerialStart)
		case !isSet(SerialStop) && r.Status.IsReferenced():
			target := r.Words[PosicaoFinal.Param().Addr]
			if target >= r.Words[PosicaoAtualAddress] {
				r.Status |= datalink.StatusPositiveDirection
			} else {
				r.Status &^= datalink.StatusPositiveDirection
			}
			r.Words[PosicaoAtualAddress] = target
			r.Status |= datalink.StatusLastPositionReached
			consume(SerialStart)
		}
	}
	if rose(SerialTesteDeImpressao) {
		consume(SerialTesteDeImpressao)
	}
	if rose(SerialReinicioDeErro) {
		r.Status &^= datalink.StatusErrorEvent
		consume(SerialReinicioDeErro)
	}
}
