// Package errnorm turns raw transport and server error text into short
// user-facing messages.
package errnorm

import (
	"strings"
	"unicode/utf8"
)

// User-facing messages.
const (
	MsgBadCredentials   = "Email ou mot de passe incorrect"
	MsgEmailTaken       = "Cet email est déjà utilisé"
	MsgRegistered       = "Compte créé avec succès !"
	MsgUserExists       = "Cet utilisateur existe déjà"
	MsgRetryConnection  = "Erreur de connexion, veuillez réessayer"
	MsgUnreachable      = "Impossible de se connecter au serveur"
	MsgNetwork          = "Erreur de réseau, vérifiez votre connexion"
	MsgTimeout          = "Délai de connexion dépassé, veuillez réessayer"
	MsgServer           = "Erreur du serveur, veuillez réessayer plus tard"
	MsgMissingFields    = "Veuillez saisir votre identifiant et votre mot de passe"
	MsgInvalidData      = "Données invalides, veuillez vérifier vos informations"
	MsgForbidden        = "Accès non autorisé"
	MsgNotFound         = "Service non trouvé"
	MsgNoRole           = "Aucun rôle n'est associé à ce compte"
	MsgSignedOut        = "Session expirée, veuillez vous reconnecter"
	MsgGenericRetry     = "Une erreur est survenue, veuillez réessayer"
	MsgGeneric          = "Une erreur est survenue"
	maxPassthroughRunes = 100
)

type mapping struct {
	substr  string
	message string
}

// knownMessages is scanned in order; the first contained substring wins.
// Constraint and statement fragments precede the generic duplicate-key entry
// so a refresh-token collision reads as a transient connection problem.
var knownMessages = []mapping{
	{"Invalid username or password", MsgBadCredentials},
	{"Username or email already exists", MsgEmailTaken},
	{"User registered successfully!", MsgRegistered},
	{"Bad credentials", MsgBadCredentials},
	{"refresh_tokens_user_id_key", MsgRetryConnection},
	{"could not execute statement", MsgRetryConnection},
	{"duplicate key value violates unique constraint", MsgUserExists},
	{"Failed to fetch", MsgUnreachable},
	{"Network Error", MsgNetwork},
	{"Request timeout", MsgTimeout},
	{"Internal Server Error", MsgServer},
	{"identifier and password are required", MsgMissingFields},
	{"invalid registration request", MsgInvalidData},
	{"account has no role", MsgNoRole},
	{"No refresh token available", MsgSignedOut},
	{"not authenticated", MsgSignedOut},
}

var statusMessages = []mapping{
	{"HTTP 400", MsgInvalidData},
	{"HTTP 401", MsgBadCredentials},
	{"HTTP 403", MsgForbidden},
	{"HTTP 404", MsgNotFound},
	{"HTTP 500", MsgServer},
}

// Normalize maps a raw error message to the text shown to the user.
func Normalize(raw string) string {
	msg := stripTechnical(raw)

	for _, m := range knownMessages {
		if strings.Contains(msg, m.substr) {
			return m.message
		}
	}
	for _, m := range statusMessages {
		if strings.Contains(msg, m.substr) {
			return m.message
		}
	}

	switch {
	case utf8.RuneCountInString(msg) > maxPassthroughRunes:
		return MsgGenericRetry
	case msg == "":
		return MsgGeneric
	default:
		return msg
	}
}

// NormalizeError is Normalize over err.Error(); nil yields the generic message.
func NormalizeError(err error) string {
	if err == nil {
		return MsgGeneric
	}
	return Normalize(err.Error())
}

// stripTechnical truncates the message at diagnostic blocks, embedded SQL
// and constraint names.
func stripTechnical(msg string) string {
	if start := strings.Index(msg, "[ERROR:"); start >= 0 {
		if strings.Contains(msg[start:], "]") {
			msg = strings.TrimSpace(msg[:start])
		}
	}
	for _, marker := range []string{"SQL [", "constraint ["} {
		if i := strings.Index(msg, marker); i >= 0 {
			msg = strings.TrimSpace(msg[:i])
		}
	}
	return msg
}
