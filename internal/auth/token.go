// internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims do token de acesso do painel.
type Claims struct {
	UsuarioID uint `json:"usuarioId"`
	jwt.RegisteredClaims
}

// Tempo de vida do token de acesso.
const AccessTTL = 8 * time.Hour

var segredo []byte

// DefinirSegredo instala a chave HMAC usada para assinar e validar
// tokens. Deve ser chamado uma única vez na subida do processo.
func DefinirSegredo(valor string) {
	segredo = []byte(valor)
}

// GerarToken emite um JWT HS256 para o usuário autenticado.
func GerarToken(usuarioID uint) (string, error) {
	if len(segredo) == 0 {
		return "", errors.New("segredo JWT não configurado")
	}

	now := time.Now()
	claims := &Claims{
		UsuarioID: usuarioID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(usuarioID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(segredo)
}

// ValidarToken valida assinatura e expiração e devolve as claims.
func ValidarToken(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if len(segredo) == 0 {
			return nil, errors.New("segredo JWT não configurado")
		}
		return segredo, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token inválido")
	}

	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return nil, errors.New("token expirado")
	}
	return c, nil
}
