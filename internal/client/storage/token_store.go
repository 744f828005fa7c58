// Package storage persiste el bearer token del cliente bajo una clave
// fija, sobreviviendo reinicios (análogo al localStorage del navegador).
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// tokenKey es la clave fija bajo la que se guarda el token.
const tokenKey = "auth_token"

type TokenStore interface {
	// Token devuelve el token guardado, si existe.
	Token() (string, bool)
	Save(token string) error
	Clear() error
}

// FileTokenStore guarda el token en un archivo JSON. Cada lectura va
// al archivo, de modo que un borrado externo se detecta.
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) read() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]string{}
	}
	return values
}

func (s *FileTokenStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.read()[tokenKey]
	return token, ok && token != ""
}

func (s *FileTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.read()
	values[tokenKey] = token
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	values := s.read()
	delete(values, tokenKey)
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// MemTokenStore es la variante en memoria para pruebas.
type MemTokenStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

func NewMemTokenStore() *MemTokenStore {
	return &MemTokenStore{}
}

func (s *MemTokenStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set && s.token != ""
}

func (s *MemTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

func (s *MemTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}
