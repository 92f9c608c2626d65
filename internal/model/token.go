package model

// TokenManager issues and validates bearer tokens. Tokens are stateless:
// the subject is the username and validity is signature plus expiry.
type TokenManager interface {
	Generate(username string) (string, error)
	Parse(token string) (username string, err error)
}
