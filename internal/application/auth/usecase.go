// Package auth autentica al operador del mostrador contra las credenciales
// configuradas y emite el JWT que protege las mutaciones del catálogo.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ferreteria/inventario-api/internal/application/dto"
	"github.com/ferreteria/inventario-api/internal/domain"
	"github.com/ferreteria/inventario-api/pkg/jwt"
)

// Config credenciales del operador y parámetros de emisión del token.
type Config struct {
	Username     string
	PasswordHash string // bcrypt
	JWTSecret    string
	Issuer       string
	ExpMinutes   int
}

// UseCase caso de uso de login. No hay registro de usuarios: las credenciales
// viven en configuración, como el esquema de usuarios en memoria del sistema
// original.
type UseCase struct {
	cfg Config
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(cfg Config) *UseCase {
	return &UseCase{cfg: cfg}
}

// Login verifica usuario y contraseña (bcrypt) y devuelve el token. Un usuario
// desconocido y una contraseña incorrecta responden igual: ErrUnauthorized.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username != uc.cfg.Username {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, in.Username, "operador", uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.cfg.ExpMinutes * 60}, nil
}
