package transport

// Named accessors of every parameter.

// PosicaoInicial accesses posicao_inicial.
func (t *TransportLayer) PosicaoInicial() WordManipulator { return t.Word(PosicaoInicial) }

// PosicaoFinal accesses posicao_final.
func (t *TransportLayer) PosicaoFinal() WordManipulator { return t.Word(PosicaoFinal) }

// AceleracaoDeAvanco accesses aceleracao_de_avanco.
func (t *TransportLayer) AceleracaoDeAvanco() WordManipulator { return t.Word(AceleracaoDeAvanco) }

// AceleracaoDeRetorno accesses aceleracao_de_retorno.
func (t *TransportLayer) AceleracaoDeRetorno() WordManipulator { return t.Word(AceleracaoDeRetorno) }

// VelocidadeDeAvanco accesses velocidade_de_avanco.
func (t *TransportLayer) VelocidadeDeAvanco() WordManipulator { return t.Word(VelocidadeDeAvanco) }

// VelocidadeDeRetorno accesses velocidade_de_retorno.
func (t *TransportLayer) VelocidadeDeRetorno() WordManipulator { return t.Word(VelocidadeDeRetorno) }

// NumeroDeMensagemNoAvanco accesses numero_de_mensagem_no_avanco.
func (t *TransportLayer) NumeroDeMensagemNoAvanco() ByteManipulator {
	return t.Byte(NumeroDeMensagemNoAvanco)
}

// NumeroDeMensagemNoRetorno accesses numero_de_mensagem_no_retorno.
func (t *TransportLayer) NumeroDeMensagemNoRetorno() ByteManipulator {
	return t.Byte(NumeroDeMensagemNoRetorno)
}

// PrimeiraMensagemNoAvanco accesses primeira_mensagem_no_avanco.
func (t *TransportLayer) PrimeiraMensagemNoAvanco() WordManipulator {
	return t.Word(PrimeiraMensagemNoAvanco)
}

// UltimaMensagemNoAvanco accesses ultima_mensagem_no_avanco.
func (t *TransportLayer) UltimaMensagemNoAvanco() WordManipulator {
	return t.Word(UltimaMensagemNoAvanco)
}

// PrimeiraMensagemNoRetorno accesses primeira_mensagem_no_retorno.
func (t *TransportLayer) PrimeiraMensagemNoRetorno() WordManipulator {
	return t.Word(PrimeiraMensagemNoRetorno)
}

// UltimaMensagemNoRetorno accesses ultima_mensagem_no_retorno.
func (t *TransportLayer) UltimaMensagemNoRetorno() WordManipulator {
	return t.Word(UltimaMensagemNoRetorno)
}

// LarguraDoSinalDeImpressao accesses largura_do_sinal_de_impressao.
func (t *TransportLayer) LarguraDoSinalDeImpressao() WordManipulator {
	return t.Word(LarguraDoSinalDeImpressao)
}

// RetardoNoStartAutomatico accesses retardo_no_start_automatico.
func (t *TransportLayer) RetardoNoStartAutomatico() WordManipulator {
	return t.Word(RetardoNoStartAutomatico)
}

// RetardoNoStartExterno accesses retardo_no_start_externo.
func (t *TransportLayer) RetardoNoStartExterno() WordManipulator {
	return t.Word(RetardoNoStartExterno)
}

// AntecipacaoDaSaidaDeStart accesses antecipacao_da_saida_de_start.
func (t *TransportLayer) AntecipacaoDaSaidaDeStart() WordManipulator {
	return t.Word(AntecipacaoDaSaidaDeStart)
}

// RetardoDoStartEntreEixos accesses retardo_do_start_entre_eixos.
func (t *TransportLayer) RetardoDoStartEntreEixos() WordManipulator {
	return t.Word(RetardoDoStartEntreEixos)
}

// StartAutoAvanco accesses start_auto_avanco.
func (t *TransportLayer) StartAutoAvanco() BinaryManipulator { return t.Binary(StartAutoAvanco) }

// StartAutoRetorno accesses start_auto_retorno.
func (t *TransportLayer) StartAutoRetorno() BinaryManipulator { return t.Binary(StartAutoRetorno) }

// SaidaStartAvanco accesses saida_start_avanco.
func (t *TransportLayer) SaidaStartAvanco() BinaryManipulator { return t.Binary(SaidaStartAvanco) }

// SaidaStartRetorno accesses saida_start_retorno.
func (t *TransportLayer) SaidaStartRetorno() BinaryManipulator { return t.Binary(SaidaStartRetorno) }

// TecladoEExterno accesses teclado_e_externo.
func (t *TransportLayer) TecladoEExterno() BinaryManipulator { return t.Binary(TecladoEExterno) }

// LogicaStartExterno accesses logica_start_externo.
func (t *TransportLayer) LogicaStartExterno() BinaryManipulator { return t.Binary(LogicaStartExterno) }

// EntradaStartEntreEixos accesses entrada_start_entre_eixos.
func (t *TransportLayer) EntradaStartEntreEixos() BinaryManipulator {
	return t.Binary(EntradaStartEntreEixos)
}

// ReferenciaPeloStartExterno accesses referencia_pelo_start_externo.
func (t *TransportLayer) ReferenciaPeloStartExterno() BinaryManipulator {
	return t.Binary(ReferenciaPeloStartExterno)
}

// LogicaSinalImpressao accesses logica_sinal_impressao.
func (t *TransportLayer) LogicaSinalImpressao() BinaryManipulator {
	return t.Binary(LogicaSinalImpressao)
}

// LogicaSinalReversao accesses logica_sinal_reversao.
func (t *TransportLayer) LogicaSinalReversao() BinaryManipulator {
	return t.Binary(LogicaSinalReversao)
}

// SelecaoMensagemSerial accesses selecao_mensagem_serial.
func (t *TransportLayer) SelecaoMensagemSerial() BinaryManipulator {
	return t.Binary(SelecaoMensagemSerial)
}

// ReversaoMensagemSerial accesses reversao_mensagem_serial.
func (t *TransportLayer) ReversaoMensagemSerial() BinaryManipulator {
	return t.Binary(ReversaoMensagemSerial)
}

// GiroFuncaoProtecao accesses giro_funcao_protecao.
func (t *TransportLayer) GiroFuncaoProtecao() BinaryManipulator { return t.Binary(GiroFuncaoProtecao) }

// GiroFuncaoCorrecao accesses giro_funcao_correcao.
func (t *TransportLayer) GiroFuncaoCorrecao() BinaryManipulator { return t.Binary(GiroFuncaoCorrecao) }

// ReducaoCorrenteRepouso accesses reducao_corrente_repouso.
func (t *TransportLayer) ReducaoCorrenteRepouso() BinaryManipulator {
	return t.Binary(ReducaoCorrenteRepouso)
}

// ModoPassoAPasso accesses modo_passo_a_passo.
func (t *TransportLayer) ModoPassoAPasso() BinaryManipulator { return t.Binary(ModoPassoAPasso) }

// RetardoNoSinalDeImpressao accesses retardo_no_sinal_de_impressao.
func (t *TransportLayer) RetardoNoSinalDeImpressao() WordManipulator {
	return t.Word(RetardoNoSinalDeImpressao)
}

// NumeroDePulsosPorVolta accesses numero_de_pulsos_por_volta.
func (t *TransportLayer) NumeroDePulsosPorVolta() WordManipulator {
	return t.Word(NumeroDePulsosPorVolta)
}

// JanelaDeProtecaoDoGiro accesses janela_de_protecao_do_giro.
func (t *TransportLayer) JanelaDeProtecaoDoGiro() WordManipulator {
	return t.Word(JanelaDeProtecaoDoGiro)
}

// DeslocamentoGiroDoMotor accesses deslocamento_giro_do_motor.
func (t *TransportLayer) DeslocamentoGiroDoMotor() WordManipulator {
	return t.Word(DeslocamentoGiroDoMotor)
}

// ValorDeReferencia accesses valor_de_referencia.
func (t *TransportLayer) ValorDeReferencia() WordManipulator { return t.Word(ValorDeReferencia) }

// VelocidadeDeReferencia accesses velocidade_de_referencia.
func (t *TransportLayer) VelocidadeDeReferencia() WordManipulator {
	return t.Word(VelocidadeDeReferencia)
}

// AceleracaoDeReferencia accesses aceleracao_de_referencia.
func (t *TransportLayer) AceleracaoDeReferencia() WordManipulator {
	return t.Word(AceleracaoDeReferencia)
}

// SerialStart accesses start.
func (t *TransportLayer) SerialStart() BinaryManipulator { return t.Binary(SerialStart) }

// SerialPausa accesses pausa.
func (t *TransportLayer) SerialPausa() BinaryManipulator { return t.Binary(SerialPausa) }

// SerialModoManual accesses modo_manual.
func (t *TransportLayer) SerialModoManual() BinaryManipulator { return t.Binary(SerialModoManual) }

// SerialStop accesses stop.
func (t *TransportLayer) SerialStop() BinaryManipulator { return t.Binary(SerialStop) }

// SerialTesteDeImpressao accesses teste_de_impressao.
func (t *TransportLayer) SerialTesteDeImpressao() BinaryManipulator {
	return t.Binary(SerialTesteDeImpressao)
}

// SerialReinicioDeErro accesses reinicio_de_erro.
func (t *TransportLayer) SerialReinicioDeErro() BinaryManipulator {
	return t.Binary(SerialReinicioDeErro)
}

// SerialSalvaNaEeprom accesses salva_na_eeprom.
func (t *TransportLayer) SerialSalvaNaEeprom() BinaryManipulator {
	return t.Binary(SerialSalvaNaEeprom)
}

// PosicaoAtual accesses posicao_atual.
func (t *TransportLayer) PosicaoAtual() WordManipulator { return t.Word(PosicaoAtual) }
