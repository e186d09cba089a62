package store

import (
	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
)

// Record signatures.
const (
	ArquivoDeEixoSignature             uint16 = 0xa000
	ConfiguracaoDoEixoSignature        uint16 = 0xb000
	ConfiguracaoDoEquipamentoSignature uint16 = 0x0c00
)

// ArquivoDeEixo is an axis program: motion, print, cycle and inter-axis
// parameters in user units.
type ArquivoDeEixo struct {
	PosicaoInicial            uint16
	PosicaoFinal              uint16
	AceleracaoDeAvanco        uint16
	AceleracaoDeRetorno       uint16
	VelocidadeDeAvanco        uint16
	VelocidadeDeRetorno       uint16
	NumeroDeMensagemNoAvanco  uint16
	NumeroDeMensagemNoRetorno uint16
	PrimeiraMensagemNoAvanco  uint16
	UltimaMensagemNoAvanco    uint16
	PrimeiraMensagemNoRetorno uint16
	UltimaMensagemNoRetorno   uint16
	LarguraDoSinalDeImpressao uint16
	RetardoNoStartAutomatico  uint16
	RetardoNoStartExterno     uint16
	AntecipacaoDaSaidaDeStart uint16
	RetardoDoStartEntreEixos  uint16
	RetardoNoSinalDeImpressao uint16
	StartAutoAvanco           Cursor
	StartAutoRetorno          Cursor
	SaidaStartAvanco          Cursor
	SaidaStartRetorno         Cursor
	TecladoEExterno           Cursor
	LogicaStartExterno        Cursor
	EntradaStartEntreEixos    Cursor
	LogicaSinalImpressao      Cursor
	LogicaSinalReversao       Cursor
	SelecaoMensagemSerial     Cursor
	ReversaoMensagemSerial    Cursor
}

// DefaultArquivoDeEixo returns the factory program.
func DefaultArquivoDeEixo() ArquivoDeEixo {
	return ArquivoDeEixo{
		PosicaoInicial:            50,
		PosicaoFinal:              500,
		AceleracaoDeAvanco:        1000,
		AceleracaoDeRetorno:       1000,
		VelocidadeDeAvanco:        600,
		VelocidadeDeRetorno:       600,
		NumeroDeMensagemNoAvanco:  1,
		NumeroDeMensagemNoRetorno: 1,
		PrimeiraMensagemNoAvanco:  100,
		UltimaMensagemNoAvanco:    400,
		PrimeiraMensagemNoRetorno: 400,
		UltimaMensagemNoRetorno:   100,
		LarguraDoSinalDeImpressao: 50,
		RetardoNoStartAutomatico:  500,
		RetardoNoStartExterno:     0,
		AntecipacaoDaSaidaDeStart: 0,
		RetardoDoStartEntreEixos:  0,
		RetardoNoSinalDeImpressao: 0,
		StartAutoAvanco:           Binary(false),
		StartAutoRetorno:          Binary(false),
		SaidaStartAvanco:          Binary(false),
		SaidaStartRetorno:         Binary(false),
		TecladoEExterno:           Binary(true),
		LogicaStartExterno:        Binary(false),
		EntradaStartEntreEixos:    Binary(false),
		LogicaSinalImpressao:      Binary(false),
		LogicaSinalReversao:       Binary(false),
		SelecaoMensagemSerial:     Binary(false),
		ReversaoMensagemSerial:    Binary(false),
	}
}

// Signature implements Record.
func (a *ArquivoDeEixo) Signature() uint16 { return ArquivoDeEixoSignature }

// Reset implements Record.
func (a *ArquivoDeEixo) Reset() { *a = DefaultArquivoDeEixo() }

// Visit implements Record.
func (a *ArquivoDeEixo) Visit(v Visitor) {
	v.Word("posicao_inicial", &a.PosicaoInicial)
	v.Word("posicao_final", &a.PosicaoFinal)
	v.Word("aceleracao_de_avanco", &a.AceleracaoDeAvanco)
	v.Word("aceleracao_de_retorno", &a.AceleracaoDeRetorno)
	v.Word("velocidade_de_avanco", &a.VelocidadeDeAvanco)
	v.Word("velocidade_de_retorno", &a.VelocidadeDeRetorno)
	v.Word("numero_de_mensagem_no_avanco", &a.NumeroDeMensagemNoAvanco)
	v.Word("numero_de_mensagem_no_retorno", &a.NumeroDeMensagemNoRetorno)
	v.Word("primeira_mensagem_no_avanco", &a.PrimeiraMensagemNoAvanco)
	v.Word("ultima_mensagem_no_avanco", &a.UltimaMensagemNoAvanco)
	v.Word("primeira_mensagem_no_retorno", &a.PrimeiraMensagemNoRetorno)
	v.Word("ultima_mensagem_no_retorno", &a.UltimaMensagemNoRetorno)
	v.Word("largura_do_sinal_de_impressao", &a.LarguraDoSinalDeImpressao)
	v.Word("retardo_no_start_automatico", &a.RetardoNoStartAutomatico)
	v.Word("retardo_no_start_externo", &a.RetardoNoStartExterno)
	v.Word("antecipacao_da_saida_de_start", &a.AntecipacaoDaSaidaDeStart)
	v.Word("retardo_do_start_entre_eixos", &a.RetardoDoStartEntreEixos)
	v.Word("retardo_no_sinal_de_impressao", &a.RetardoNoSinalDeImpressao)
	v.Cursor("start_auto_avanco", &a.StartAutoAvanco)
	v.Cursor("start_auto_retorno", &a.StartAutoRetorno)
	v.Cursor("saida_start_avanco", &a.SaidaStartAvanco)
	v.Cursor("saida_start_retorno", &a.SaidaStartRetorno)
	v.Cursor("teclado_e_externo", &a.TecladoEExterno)
	v.Cursor("logica_start_externo", &a.LogicaStartExterno)
	v.Cursor("entrada_start_entre_eixos", &a.EntradaStartEntreEixos)
	v.Cursor("logica_sinal_impressao", &a.LogicaSinalImpressao)
	v.Cursor("logica_sinal_reversao", &a.LogicaSinalReversao)
	v.Cursor("selecao_mensagem_serial", &a.SelecaoMensagemSerial)
	v.Cursor("reversao_mensagem_serial", &a.ReversaoMensagemSerial)
}

// ConfiguracaoDoEixo is the axis configuration shared by all programs.
type ConfiguracaoDoEixo struct {
	NumeroDePulsosPorVolta     uint16
	DeslocamentoPorDenteX100   uint16
	NumeroDeDentesDaPolia      uint16
	JanelaDeProtecaoDoGiro     uint16
	DeslocamentoGiroDoMotor    uint16
	ValorDeReferencia          uint16
	VelocidadeDeReferencia     uint16
	AceleracaoDeReferencia     uint16
	ReferenciaPeloStartExterno Cursor
	GiroFuncaoProtecao         Cursor
	GiroFuncaoCorrecao         Cursor
	ReducaoCorrenteRepouso     Cursor
	ModoPassoAPasso            Cursor
}

// DefaultConfiguracaoDoEixo returns the factory axis configuration.
func DefaultConfiguracaoDoEixo() ConfiguracaoDoEixo {
	mp := transport.DefaultMechanicalProperties
	return ConfiguracaoDoEixo{
		NumeroDePulsosPorVolta:     mp.PulsesPerRevolution,
		DeslocamentoPorDenteX100:   mp.DisplacementPerToothX100,
		NumeroDeDentesDaPolia:      mp.Teeth,
		JanelaDeProtecaoDoGiro:     200,
		DeslocamentoGiroDoMotor:    0,
		ValorDeReferencia:          0,
		VelocidadeDeReferencia:     transport.DefaultReferenceVelocity,
		AceleracaoDeReferencia:     transport.DefaultReferenceAcceleration,
		ReferenciaPeloStartExterno: Binary(false),
		GiroFuncaoProtecao:         Binary(false),
		GiroFuncaoCorrecao:         Binary(false),
		ReducaoCorrenteRepouso:     Binary(true),
		ModoPassoAPasso:            Binary(false),
	}
}

// Signature implements Record.
func (c *ConfiguracaoDoEixo) Signature() uint16 { return ConfiguracaoDoEixoSignature }

// Reset implements Record.
func (c *ConfiguracaoDoEixo) Reset() { *c = DefaultConfiguracaoDoEixo() }

// Visit implements Record.
func (c *ConfiguracaoDoEixo) Visit(v Visitor) {
	v.Word("numero_de_pulsos_por_volta", &c.NumeroDePulsosPorVolta)
	v.Word("deslocamento_por_dente_x100", &c.DeslocamentoPorDenteX100)
	v.Word("numero_de_dentes_da_polia", &c.NumeroDeDentesDaPolia)
	v.Word("janela_de_protecao_do_giro", &c.JanelaDeProtecaoDoGiro)
	v.Word("deslocamento_giro_do_motor", &c.DeslocamentoGiroDoMotor)
	v.Word("valor_de_referencia", &c.ValorDeReferencia)
	v.Word("velocidade_de_referencia", &c.VelocidadeDeReferencia)
	v.Word("aceleracao_de_referencia", &c.AceleracaoDeReferencia)
	v.Cursor("referencia_pelo_start_externo", &c.ReferenciaPeloStartExterno)
	v.Cursor("giro_funcao_protecao", &c.GiroFuncaoProtecao)
	v.Cursor("giro_funcao_correcao", &c.GiroFuncaoCorrecao)
	v.Cursor("reducao_corrente_repouso", &c.ReducaoCorrenteRepouso)
	v.Cursor("modo_passo_a_passo", &c.ModoPassoAPasso)
}

// MechanicalProperties derives the drive of the axis.
func (c *ConfiguracaoDoEixo) MechanicalProperties() transport.MechanicalProperties {
	return transport.MechanicalProperties{
		PulsesPerRevolution:      c.NumeroDePulsosPorVolta,
		DisplacementPerToothX100: c.DeslocamentoPorDenteX100,
		Teeth:                    c.NumeroDeDentesDaPolia,
	}
}

// BaudRates are the selectable serial speeds.
var BaudRates = []int{2400, 9600}

// ConfiguracaoDoEquipamento is the panel configuration.
type ConfiguracaoDoEquipamento struct {
	VelocidadeDeComunicacao Cursor
}

// DefaultConfiguracaoDoEquipamento returns the factory configuration.
func DefaultConfiguracaoDoEquipamento() ConfiguracaoDoEquipamento {
	return ConfiguracaoDoEquipamento{
		VelocidadeDeComunicacao: Cursor{Current: 1, End: uint8(len(BaudRates))},
	}
}

// Signature implements Record.
func (e *ConfiguracaoDoEquipamento) Signature() uint16 { return ConfiguracaoDoEquipamentoSignature }

// Reset implements Record.
func (e *ConfiguracaoDoEquipamento) Reset() { *e = DefaultConfiguracaoDoEquipamento() }

// Visit implements Record.
func (e *ConfiguracaoDoEquipamento) Visit(v Visitor) {
	v.Cursor("velocidade_de_comunicacao", &e.VelocidadeDeComunicacao)
}

// BaudRate is the selected serial speed.
func (e *ConfiguracaoDoEquipamento) BaudRate() int {
	if n := int(e.VelocidadeDeComunicacao.Current); n < len(BaudRates) {
		return BaudRates[n]
	}
	return BaudRates[len(BaudRates)-1]
}
