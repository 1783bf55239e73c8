package auth

import (
	"errors"
	"time"

	"github.com/edmback/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenNotValidYet = errors.New("token not valid yet")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenInvalid     = errors.New("token is invalid")
)

// Claims JWT声明
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTManager JWT管理器
type JWTManager struct {
	secret   []byte
	issuer   string
	expireIn time.Duration
}

// NewJWTManager 创建JWT管理器
func NewJWTManager(cfg *config.JWTConfig) *JWTManager {
	return &JWTManager{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		expireIn: time.Duration(cfg.Expire) * time.Second,
	}
}

// GenerateToken 生成Token
func (m *JWTManager) GenerateToken(username string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expireIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// tokenErrors jwt 校验失败原因到本包错误的映射，按顺序匹配，未命中的一律视为无效
var tokenErrors = []struct {
	cause error
	err   error
}{
	{jwt.ErrTokenExpired, ErrTokenExpired},
	{jwt.ErrTokenNotValidYet, ErrTokenNotValidYet},
	{jwt.ErrTokenMalformed, ErrTokenMalformed},
}

func (m *JWTManager) key(*jwt.Token) (interface{}, error) {
	return m.secret, nil
}

// ParseToken 解析Token
// 只接受 HS256 签名、本服务签发且带有用户名的令牌
func (m *JWTManager) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, m.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		for _, te := range tokenErrors {
			if errors.Is(err, te.cause) {
				return nil, te.err
			}
		}
		return nil, ErrTokenInvalid
	}
	if claims.Username == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
