package apperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifie une erreur applicative pour la couche HTTP
type Kind int

const (
	// KindValidation entrée malformée ou incomplète, jamais réessayée
	KindValidation Kind = iota
	// KindNotFound la ressource n'existe pas ou est désactivée
	KindNotFound
	// KindConflict violation d'unicité (email, vente déjà enregistrée)
	KindConflict
	// KindInternal erreur inattendue, détail loggé côté serveur uniquement
	KindInternal
)

// Error erreur applicative typée avec cause optionnelle
type Error struct {
	kind Kind
	msg  string
	err  error
}

// Error implémente l'interface error
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap expose la cause pour errors.Is/As
func (e *Error) Unwrap() error {
	return e.err
}

// Kind retourne la catégorie de l'erreur
func (e *Error) Kind() Kind {
	return e.kind
}

// Message retourne le message destiné au client (sans détail interne)
func (e *Error) Message() string {
	return e.msg
}

// Validation construit une erreur de validation
func Validation(format string, args ...interface{}) *Error {
	return &Error{kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound construit une erreur "ressource introuvable"
func NotFound(format string, args ...interface{}) *Error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// Conflict construit une erreur de conflit d'unicité
func Conflict(format string, args ...interface{}) *Error {
	return &Error{kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

// Internal enveloppe une erreur technique avec un message générique
func Internal(err error, msg string) *Error {
	return &Error{kind: KindInternal, msg: msg, err: errors.WithStack(err)}
}

// KindOf retourne la catégorie d'une erreur quelconque.
// Les erreurs non typées sont traitées comme internes.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return KindInternal
}

// IsValidation teste si l'erreur est une erreur de validation
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound teste si l'erreur est une erreur "introuvable"
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict teste si l'erreur est un conflit
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
