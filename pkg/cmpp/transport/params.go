package transport

import (
	"fmt"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
)

// Word addresses of the special parameter words.
const (
	FlagsAddress         datalink.WordAddress = 0x60
	SerialControlAddress datalink.WordAddress = 0x69
	PosicaoAtualAddress  datalink.WordAddress = 0x30
)

// Location is the part of a word holding a parameter.
type Location int

// Locations.
const (
	LocationWord Location = iota
	LocationByteLow
	LocationByteHigh
	LocationBit
)

var locationNames = []string{"word", "low", "high", "bit"}

// String implements fmt.Stringer.
func (l Location) String() string {
	if l >= 0 && int(l) < len(locationNames) {
		return locationNames[l]
	}
	return fmt.Sprintf("location(%d)", int(l))
}

// Param describes how a device parameter is addressed and converted.
type Param struct {
	ID        ParamID
	Name      string
	Addr      datalink.WordAddress
	Location  Location
	Bit       uint
	Dimension Dimension
	Kind      BitKind
	ReadOnly  bool
}

// Mask is the bits of the word occupied by the parameter.
func (p *Param) Mask() uint16 {
	switch p.Location {
	case LocationByteLow:
		return 0x00ff
	case LocationByteHigh:
		return 0xff00
	case LocationBit:
		return 1 << p.Bit
	}
	return 0xffff
}

// String implements fmt.Stringer.
func (p *Param) String() string {
	if p.Location == LocationBit {
		return fmt.Sprintf("%s@%v.D%d", p.Name, p.Addr, p.Bit)
	}
	return fmt.Sprintf("%s@%v.%v", p.Name, p.Addr, p.Location)
}

// ParamID identifies a parameter in Params.
type ParamID int

// Parameters.
const (
	PosicaoInicial ParamID = iota
	PosicaoFinal
	AceleracaoDeAvanco
	AceleracaoDeRetorno
	VelocidadeDeAvanco
	VelocidadeDeRetorno
	NumeroDeMensagemNoAvanco
	NumeroDeMensagemNoRetorno
	PrimeiraMensagemNoAvanco
	UltimaMensagemNoAvanco
	PrimeiraMensagemNoRetorno
	UltimaMensagemNoRetorno
	LarguraDoSinalDeImpressao
	RetardoNoStartAutomatico
	RetardoNoStartExterno
	AntecipacaoDaSaidaDeStart
	RetardoDoStartEntreEixos
	StartAutoAvanco
	StartAutoRetorno
	SaidaStartAvanco
	SaidaStartRetorno
	TecladoEExterno
	LogicaStartExterno
	EntradaStartEntreEixos
	ReferenciaPeloStartExterno
	LogicaSinalImpressao
	LogicaSinalReversao
	SelecaoMensagemSerial
	ReversaoMensagemSerial
	GiroFuncaoProtecao
	GiroFuncaoCorrecao
	ReducaoCorrenteRepouso
	ModoPassoAPasso
	RetardoNoSinalDeImpressao
	NumeroDePulsosPorVolta
	JanelaDeProtecaoDoGiro
	DeslocamentoGiroDoMotor
	ValorDeReferencia
	VelocidadeDeReferencia
	AceleracaoDeReferencia
	SerialStart
	SerialPausa
	SerialModoManual
	SerialStop
	SerialTesteDeImpressao
	SerialReinicioDeErro
	SerialSalvaNaEeprom
	PosicaoAtual

	NumParams
)

// Params is the parameter map of the device, indexed by ParamID.
var Params = [NumParams]Param{
	{ID: PosicaoInicial, Name: "posicao_inicial", Addr: 0x50, Dimension: Displacement},
	{ID: PosicaoFinal, Name: "posicao_final", Addr: 0x51, Dimension: Displacement},
	{ID: AceleracaoDeAvanco, Name: "aceleracao_de_avanco", Addr: 0x52, Dimension: Acceleration},
	{ID: AceleracaoDeRetorno, Name: "aceleracao_de_retorno", Addr: 0x53, Dimension: Acceleration},
	{ID: VelocidadeDeAvanco, Name: "velocidade_de_avanco", Addr: 0x54, Dimension: Velocity},
	{ID: VelocidadeDeRetorno, Name: "velocidade_de_retorno", Addr: 0x55, Dimension: Velocity},
	{ID: NumeroDeMensagemNoAvanco, Name: "numero_de_mensagem_no_avanco", Addr: 0x56, Location: LocationByteLow},
	{ID: NumeroDeMensagemNoRetorno, Name: "numero_de_mensagem_no_retorno", Addr: 0x56, Location: LocationByteHigh},
	{ID: PrimeiraMensagemNoAvanco, Name: "primeira_mensagem_no_avanco", Addr: 0x57, Dimension: Displacement},
	{ID: UltimaMensagemNoAvanco, Name: "ultima_mensagem_no_avanco", Addr: 0x58, Dimension: Displacement},
	{ID: PrimeiraMensagemNoRetorno, Name: "primeira_mensagem_no_retorno", Addr: 0x59, Dimension: Displacement},
	{ID: UltimaMensagemNoRetorno, Name: "ultima_mensagem_no_retorno", Addr: 0x5a, Dimension: Displacement},
	{ID: LarguraDoSinalDeImpressao, Name: "largura_do_sinal_de_impressao", Addr: 0x5b, Dimension: Time},
	{ID: RetardoNoStartAutomatico, Name: "retardo_no_start_automatico", Addr: 0x5c, Dimension: Time},
	{ID: RetardoNoStartExterno, Name: "retardo_no_start_externo", Addr: 0x5d, Dimension: Time},
	{ID: AntecipacaoDaSaidaDeStart, Name: "antecipacao_da_saida_de_start", Addr: 0x5e, Dimension: Displacement},
	{ID: RetardoDoStartEntreEixos, Name: "retardo_do_start_entre_eixos", Addr: 0x5f, Dimension: Time},
	{ID: StartAutoAvanco, Name: "start_auto_avanco", Addr: FlagsAddress, Location: LocationBit, Bit: 0, Dimension: Binary},
	{ID: StartAutoRetorno, Name: "start_auto_retorno", Addr: FlagsAddress, Location: LocationBit, Bit: 1, Dimension: Binary},
	{ID: SaidaStartAvanco, Name: "saida_start_avanco", Addr: FlagsAddress, Location: LocationBit, Bit: 2, Dimension: Binary},
	{ID: SaidaStartRetorno, Name: "saida_start_retorno", Addr: FlagsAddress, Location: LocationBit, Bit: 3, Dimension: Binary},
	{ID: TecladoEExterno, Name: "teclado_e_externo", Addr: FlagsAddress, Location: LocationBit, Bit: 4, Dimension: Binary},
	{ID: LogicaStartExterno, Name: "logica_start_externo", Addr: FlagsAddress, Location: LocationBit, Bit: 5, Dimension: Binary, Kind: KindSignalLogic},
	{ID: EntradaStartEntreEixos, Name: "entrada_start_entre_eixos", Addr: FlagsAddress, Location: LocationBit, Bit: 6, Dimension: Binary},
	{ID: ReferenciaPeloStartExterno, Name: "referencia_pelo_start_externo", Addr: FlagsAddress, Location: LocationBit, Bit: 7, Dimension: Binary},
	{ID: LogicaSinalImpressao, Name: "logica_sinal_impressao", Addr: FlagsAddress, Location: LocationBit, Bit: 8, Dimension: Binary, Kind: KindSignalLogic},
	{ID: LogicaSinalReversao, Name: "logica_sinal_reversao", Addr: FlagsAddress, Location: LocationBit, Bit: 9, Dimension: Binary, Kind: KindSignalLogic},
	{ID: SelecaoMensagemSerial, Name: "selecao_mensagem_serial", Addr: FlagsAddress, Location: LocationBit, Bit: 10, Dimension: Binary},
	{ID: ReversaoMensagemSerial, Name: "reversao_mensagem_serial", Addr: FlagsAddress, Location: LocationBit, Bit: 11, Dimension: Binary},
	{ID: GiroFuncaoProtecao, Name: "giro_funcao_protecao", Addr: FlagsAddress, Location: LocationBit, Bit: 12, Dimension: Binary},
	{ID: GiroFuncaoCorrecao, Name: "giro_funcao_correcao", Addr: FlagsAddress, Location: LocationBit, Bit: 13, Dimension: Binary},
	{ID: ReducaoCorrenteRepouso, Name: "reducao_corrente_repouso", Addr: FlagsAddress, Location: LocationBit, Bit: 14, Dimension: Binary},
	{ID: ModoPassoAPasso, Name: "modo_passo_a_passo", Addr: FlagsAddress, Location: LocationBit, Bit: 15, Dimension: Binary, Kind: KindAxisMode},
	{ID: RetardoNoSinalDeImpressao, Name: "retardo_no_sinal_de_impressao", Addr: 0x61, Dimension: Time},
	{ID: NumeroDePulsosPorVolta, Name: "numero_de_pulsos_por_volta", Addr: 0x62},
	{ID: JanelaDeProtecaoDoGiro, Name: "janela_de_protecao_do_giro", Addr: 0x63},
	{ID: DeslocamentoGiroDoMotor, Name: "deslocamento_giro_do_motor", Addr: 0x64},
	{ID: ValorDeReferencia, Name: "valor_de_referencia", Addr: 0x65},
	{ID: VelocidadeDeReferencia, Name: "velocidade_de_referencia", Addr: 0x66},
	{ID: AceleracaoDeReferencia, Name: "aceleracao_de_referencia", Addr: 0x67},
	{ID: SerialStart, Name: "start", Addr: SerialControlAddress, Location: LocationBit, Bit: 0, Dimension: Binary},
	{ID: SerialPausa, Name: "pausa", Addr: SerialControlAddress, Location: LocationBit, Bit: 1, Dimension: Binary},
	{ID: SerialModoManual, Name: "modo_manual", Addr: SerialControlAddress, Location: LocationBit, Bit: 2, Dimension: Binary},
	{ID: SerialStop, Name: "stop", Addr: SerialControlAddress, Location: LocationBit, Bit: 3, Dimension: Binary},
	{ID: SerialTesteDeImpressao, Name: "teste_de_impressao", Addr: SerialControlAddress, Location: LocationBit, Bit: 4, Dimension: Binary},
	{ID: SerialReinicioDeErro, Name: "reinicio_de_erro", Addr: SerialControlAddress, Location: LocationBit, Bit: 5, Dimension: Binary},
	{ID: SerialSalvaNaEeprom, Name: "salva_na_eeprom", Addr: SerialControlAddress, Location: LocationBit, Bit: 6, Dimension: Binary},
	{ID: PosicaoAtual, Name: "posicao_atual", Addr: PosicaoAtualAddress, Dimension: Displacement, ReadOnly: true},
}

var paramsByName = func() map[string]ParamID {
	m := make(map[string]ParamID, len(Params))
	for n := range Params {
		m[Params[n].Name] = ParamID(n)
	}
	return m
}()

// Lookup finds a parameter by name.
func Lookup(name string) (ParamID, bool) {
	id, ok := paramsByName[name]
	return id, ok
}

// Param returns the table entry.
func (id ParamID) Param() *Param {
	return &Params[id]
}

// Valid indicates id is in the table.
func (id ParamID) Valid() bool {
	return id >= 0 && id < NumParams
}

// String implements fmt.Stringer.
func (id ParamID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("param(%d)", int(id))
	}
	return Params[id].Name
}
