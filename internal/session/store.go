package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/pkg/clock"
)

// Store хранилище bearer-токена одного типа принципала (клиент или администратор).
// Экземпляры для разных принципалов независимы и используют разные ключи.
//
// Отсутствие записи означает, что вход не выполнен. Наличие записи не гарантирует
// валидность: локально проверяется только срок действия из payload токена.
type Store struct {
	key     string
	storage Storage
	clock   clock.Clock
	log     Logger
	parser  *jwt.Parser
}

// New создает Store для ключа хранилища
func New(key string, storage Storage, clk clock.Clock, log Logger) *Store {
	return &Store{
		key:     key,
		storage: storage,
		clock:   clk,
		log:     log,
		parser:  jwt.NewParser(),
	}
}

// NewClient Store для токена клиента
func NewClient(storage Storage, clk clock.Clock, log Logger) *Store {
	return New(domain.ClientTokenKey, storage, clk, log)
}

// NewAdmin Store для токена администратора
func NewAdmin(storage Storage, clk clock.Clock, log Logger) *Store {
	return New(domain.AdminTokenKey, storage, clk, log)
}

// Key возвращает ключ хранилища
func (s *Store) Key() string {
	return s.key
}

// Store сохраняет токен, заменяя предыдущий
func (s *Store) Store(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.storage.Set(ctx, s.key, token); err != nil {
		return fmt.Errorf("%w: store %s: %v", ErrStorage, s.key, err)
	}
	s.log.Info("Store: token saved key=%s", s.key)
	return nil
}

// Retrieve возвращает сохранённый токен. ok=false, если токена нет.
func (s *Store) Retrieve(ctx context.Context) (string, bool, error) {
	token, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return "", false, fmt.Errorf("%w: retrieve %s: %v", ErrStorage, s.key, err)
	}
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Remove удаляет токен. Повторный вызов ничего не меняет.
func (s *Store) Remove(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("%w: remove %s: %v", ErrStorage, s.key, err)
	}
	s.log.Info("Remove: token removed key=%s", s.key)
	return nil
}

// IsLoggedIn проверяет, что токен есть и его exp позже текущего времени.
// Токен, который не удалось декодировать, удаляется из хранилища.
// Токен без exp считается недействительным, но не удаляется.
func (s *Store) IsLoggedIn(ctx context.Context) bool {
	token, ok, err := s.Retrieve(ctx)
	if err != nil {
		s.log.Error("IsLoggedIn: %v", err)
		return false
	}
	if !ok {
		return false
	}

	claims, err := s.decode(token)
	if err != nil {
		s.log.Warn("IsLoggedIn: invalid token format key=%s: %v", s.key, err)
		if err := s.Remove(ctx); err != nil {
			s.log.Error("IsLoggedIn: failed to remove invalid token: %v", err)
		}
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Time.After(s.clock.Now())
}

// SubjectName возвращает sub из payload токена.
// При ошибке декодирования токен не удаляется.
func (s *Store) SubjectName(ctx context.Context) (string, bool) {
	token, ok, err := s.Retrieve(ctx)
	if err != nil {
		s.log.Error("SubjectName: %v", err)
		return "", false
	}
	if !ok {
		return "", false
	}

	claims, err := s.decode(token)
	if err != nil {
		s.log.Warn("SubjectName: failed to decode token key=%s: %v", s.key, err)
		return "", false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

// decode разбирает только payload (второй сегмент) без проверки подписи и заголовка:
// подпись проверяет только бэкенд
func (s *Store) decode(token string) (jwt.MapClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %d segment(s)", ErrMalformedToken, len(parts))
	}

	payload, err := s.parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}
	return claims, nil
}
