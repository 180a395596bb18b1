package echoapi

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/operator"
)

const (
	claimsContextKey   = "operatorToken"
	contextOperatorKey = "operator"
)

// newJWTConfig is the JWT auth middleware config for admin endpoints.
func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    claimsContextKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Email        string `json:"email,omitempty"`
	IsAdmin      bool   `json:"is_admin,omitempty"`
}

func GetOperatorClaims(conf *core.Config, op operator.Operator, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   op.ID,
			Audience:  "Admin Dashboard",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Email:        op.Email,
		IsAdmin:      true,
	}
}

func authenticate(ctx echo.Context, conf *core.Config, email, pwd string, svc *operator.Service) (*Claims, error) {
	op, err := svc.GetByEmail(ctx.Request().Context(), email)
	if err != nil {
		if errors.Cause(err) == operator.ErrNotFound {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "finding operator by email")
	}
	if err = op.CheckPassword(pwd); err != nil {
		return nil, errAuthenticationFailed
	}
	if !op.IsActive {
		return nil, errAccountDeactivated
	}
	op, err = svc.SetLastLogin(ctx.Request().Context(), op)
	if err != nil {
		return nil, errors.Wrap(err, "setting lastLogin")
	}
	return GetOperatorClaims(conf, op), nil
}

// GenerateToken generates a signed JWT token string representing the operator Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(claimsContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextOperator(ctx echo.Context, svc *operator.Service, clms ...Claims) (operator.Operator, error) {
	if op, ok := ctx.Get(contextOperatorKey).(operator.Operator); ok {
		return op, nil
	}

	var claims Claims
	var err error
	if len(clms) > 0 {
		claims = clms[0]
	} else {
		claims, err = getContextClaims(ctx)
		if err != nil {
			return operator.Operator{}, errors.Wrap(err, "getting context claims")
		}
	}

	op, err := svc.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return operator.Operator{}, errors.Wrap(err, "finding operator by ID")
	}
	ctx.Set(contextOperatorKey, op)
	return op, nil
}

func refreshToken(ctx echo.Context, conf *core.Config, svc *operator.Service) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	op, err := getContextOperator(ctx, svc, claims)
	if err != nil {
		return "", errors.Wrap(err, "getting context operator")
	}

	// check if operator is still active
	if !op.IsActive {
		return "", errAccountDeactivated
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	newClaims := GetOperatorClaims(conf, op, claims.OrigIssuedAt)
	token, err := GenerateToken(conf, newClaims)
	return token, errors.Wrap(err, "generating token")
}
