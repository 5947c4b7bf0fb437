package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds surfaced to handlers. Match with errors.Is; the message of the
// wrapping error is what the client sees.
var (
	ErrNaoEncontrado     = errors.New("registro não encontrado")
	ErrValidacao         = errors.New("dados inválidos")
	ErrTransicaoInvalida = errors.New("transição de status inválida")
	ErrConflito          = errors.New("registro duplicado")
	ErrNaoAutorizado     = errors.New("não autorizado")
)

type erroNegocio struct {
	kind error
	msg  string
}

func (e *erroNegocio) Error() string { return e.msg }
func (e *erroNegocio) Unwrap() error { return e.kind }

func naoEncontrado(msg string) error { return &erroNegocio{kind: ErrNaoEncontrado, msg: msg} }

func validacao(format string, args ...interface{}) error {
	return &erroNegocio{kind: ErrValidacao, msg: fmt.Sprintf(format, args...)}
}

func transicaoInvalida(format string, args ...interface{}) error {
	return &erroNegocio{kind: ErrTransicaoInvalida, msg: fmt.Sprintf(format, args...)}
}

func conflito(msg string) error { return &erroNegocio{kind: ErrConflito, msg: msg} }

func naoAutorizado(msg string) error { return &erroNegocio{kind: ErrNaoAutorizado, msg: msg} }

// EstoqueInsuficienteError reports an exit larger than the available stock.
// Nothing has been mutated when it is returned.
type EstoqueInsuficienteError struct {
	Produto    string
	Disponivel int
	Solicitado int
}

func (e *EstoqueInsuficienteError) Error() string {
	if e.Produto != "" {
		return fmt.Sprintf("Estoque insuficiente para o produto %s. Disponível: %d, Solicitado: %d",
			e.Produto, e.Disponivel, e.Solicitado)
	}
	return fmt.Sprintf("Estoque insuficiente. Disponível: %d, Solicitado: %d", e.Disponivel, e.Solicitado)
}

// notFoundOr maps gorm.ErrRecordNotFound to a not-found error with msg and
// passes anything else through.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return naoEncontrado(msg)
	}
	return err
}

// conflitoOr maps a unique-index violation to a conflict error with msg.
// Requires gorm's TranslateError.
func conflitoOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflito(msg)
	}
	return err
}
