package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/swinglens/swinglens-api/internal/domain"
	"github.com/swinglens/swinglens-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type CoachLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Service interface {
	// SendPlayerOTP issues a one-time code for the phone number and hands it
	// to the SMS provider. Delivery is best-effort; only a credential-store
	// failure fails the call.
	SendPlayerOTP(ctx context.Context, phone string) error
	// VerifyPlayerOTP consumes the code, auto-provisions the player on first
	// login, and returns a signed token plus the player record.
	VerifyPlayerOTP(ctx context.Context, phone, code string) (string, *domain.Player, error)
	// CoachLogin authenticates a coach by email and password.
	CoachLogin(ctx context.Context, email, password string) (string, *domain.Coach, error)
}

type otpStore interface {
	Set(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	GetDel(ctx context.Context, phone string) (string, error)
}

type playerStore interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Player, error)
	Create(ctx context.Context, p *domain.Player) error
}

type coachStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Coach, error)
}

type tokenSigner interface {
	Sign(subject, role string) (string, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	otpStore   otpStore
	playerRepo playerStore
	coachRepo  coachStore
	tokens     tokenSigner
	sms        smsSender
	codeGen    otp.Generator
	otpTTL     time.Duration
}

type ServiceDeps struct {
	OTPStore   otpStore
	PlayerRepo playerStore
	CoachRepo  coachStore
	Tokens     tokenSigner
	SMSSender  smsSender // nil disables delivery (local dev without SNS)
	CodeGen    otp.Generator
	OTPTTL     time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		otpStore:   deps.OTPStore,
		playerRepo: deps.PlayerRepo,
		coachRepo:  deps.CoachRepo,
		tokens:     deps.Tokens,
		sms:        deps.SMSSender,
		codeGen:    deps.CodeGen,
		otpTTL:     deps.OTPTTL,
	}
}

func (s *service) SendPlayerOTP(ctx context.Context, phone string) error {
	code, err := s.codeGen.Generate()
	if err != nil {
		return err
	}
	// Overwrites any prior code for this phone and resets the TTL.
	if err := s.otpStore.Set(ctx, phone, code, s.otpTTL); err != nil {
		return domain.Storage("credential store unavailable")
	}
	if s.sms != nil {
		if err := s.sms.SendSMS(ctx, phone, "Your SwingLens login code is "+code); err != nil {
			slog.Warn("otp sms delivery failed", "phone", phone, "err", err)
		}
	}
	return nil
}

func (s *service) VerifyPlayerOTP(ctx context.Context, phone, code string) (string, *domain.Player, error) {
	stored, err := s.otpStore.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.Unauthorized("OTP expired or not requested")
		}
		return "", nil, domain.Storage("credential store unavailable")
	}
	// A mismatch does not consume the code; it stays valid until its TTL.
	if stored != code {
		return "", nil, domain.Unauthorized("Invalid OTP")
	}

	// GETDEL is the serialization point: of two concurrent verifies with the
	// correct code, only one observes it here. The loser reports the code as
	// expired, same as a replay after consumption.
	consumed, err := s.otpStore.GetDel(ctx, phone)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.Storage("credential store unavailable")
	}
	if err != nil || consumed != code {
		return "", nil, domain.Unauthorized("OTP expired or not requested")
	}

	player, err := s.playerRepo.GetByPhone(ctx, phone)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		player = &domain.Player{Name: "", Phone: phone}
		if err := s.playerRepo.Create(ctx, player); err != nil {
			return "", nil, domain.Storage("database unavailable")
		}
	case err != nil:
		return "", nil, domain.Storage("database unavailable")
	}

	token, err := s.tokens.Sign(player.ID, domain.RolePlayer)
	if err != nil {
		return "", nil, err
	}
	return token, player, nil
}

func (s *service) CoachLogin(ctx context.Context, email, password string) (string, *domain.Coach, error) {
	coach, err := s.coachRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.NotFound("Coach not found")
		}
		return "", nil, domain.Storage("database unavailable")
	}
	if bcrypt.CompareHashAndPassword([]byte(coach.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.Unauthorized("Invalid password")
	}

	token, err := s.tokens.Sign(coach.ID, domain.RoleCoach)
	if err != nil {
		return "", nil, err
	}
	return token, coach, nil
}
