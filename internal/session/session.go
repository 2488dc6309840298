// Package session запоминает покупателя на одном устройстве.
// Это кэш идентичности, а не граница безопасности: телефон не подтверждается.
package session

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
)

const StorageKey = "pinkcart_user"

type Storage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

type userModel struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Store struct {
	mu      sync.Mutex
	storage Storage
	logger  logger.Logger
}

func New(storage Storage, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}

	return &Store{storage: storage, logger: log}
}

// SignIn запоминает покупателя. Пустое имя заменяется на "User".
func (s *Store) SignIn(phone, name string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := domain.User{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
	}
	if user.Name == "" {
		user.Name = domain.DefaultUserName
	}

	data, err := json.Marshal(userModel{Name: user.Name, Phone: user.Phone})
	if err != nil {
		return domain.User{}, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.storage.Set(StorageKey, data); err != nil {
		return domain.User{}, e.Wrap(whereami.WhereAmI(), err)
	}

	return user, nil
}

// Current возвращает запомненного покупателя. Повреждённая запись равносильна выходу.
func (s *Store) Current() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.storage.Get(StorageKey)
	if err != nil {
		s.logger.Warnf("session read failed: %v", err)
		return domain.User{}, false
	}
	if !ok {
		return domain.User{}, false
	}

	var m userModel
	if err := json.Unmarshal(data, &m); err != nil {
		s.logger.Warnf("stored user is malformed, treating as signed out: %v", err)
		return domain.User{}, false
	}

	return domain.User{Name: m.Name, Phone: m.Phone}, true
}

func (s *Store) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(StorageKey); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
