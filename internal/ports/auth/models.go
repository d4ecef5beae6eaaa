package auth

import "strings"

// Principal identifica a quien llama. Es comparable y sirve como key de mapas,
// así los chequeos de rol no dependen de comparar texto serializado.
type Principal string

// Anonymous es el principal de quien no se autenticó.
const Anonymous Principal = "2vxsx-fae"

// ParsePrincipal normaliza el texto recibido; vacío => Anonymous.
func ParsePrincipal(s string) Principal {
	s = strings.TrimSpace(s)
	if s == "" {
		return Anonymous
	}
	return Principal(s)
}

func (p Principal) IsAnonymous() bool {
	return p == "" || p == Anonymous
}

func (p Principal) String() string {
	if p == "" {
		return string(Anonymous)
	}
	return string(p)
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}

// Principal devuelve la identidad asociada a los claims.
func (c Claims) Principal() Principal {
	return ParsePrincipal(c.UserID)
}
