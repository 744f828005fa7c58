// Package auth implementa el view-model de autenticación: adquiere el
// token al arranque, lo persiste y vigila periódicamente que siga en
// el almacenamiento durable.
package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"catalogo-productos/internal/client/api"
	"catalogo-productos/internal/client/state"
	"catalogo-productos/internal/client/storage"
)

type Status int

const (
	StatusUninitialized Status = iota
	StatusInitializing
	StatusUnauthenticated
	StatusAuthenticating
	StatusAuthenticated
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusInitializing:
		return "initializing"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State es el snapshot del estado de autenticación.
type State struct {
	Status        Status
	Token         string
	Error         string
	IsInitialized bool
}

func (s State) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

func (s State) IsLoading() bool {
	return s.Status == StatusInitializing || s.Status == StatusAuthenticating
}

type ViewModel struct {
	api    *api.Client
	tokens storage.TokenStore
	store  *state.Store[State]

	// issuing impide emisiones concurrentes: una sola en vuelo.
	issuing atomic.Bool

	watchMu   sync.Mutex
	watchStop chan struct{}
}

func NewViewModel(client *api.Client, tokens storage.TokenStore) *ViewModel {
	return &ViewModel{
		api:    client,
		tokens: tokens,
		store:  state.NewStore(State{Status: StatusUninitialized}),
	}
}

func (vm *ViewModel) State() State {
	return vm.store.Snapshot()
}

func (vm *ViewModel) Subscribe(fn func(State)) (unsubscribe func()) {
	return vm.store.Subscribe(fn)
}

// Initialize corre una sola vez al arranque: si hay token persistido
// queda autenticado de inmediato (sin validarlo contra el servidor);
// si no, pasa a no autenticado e inicia la emisión.
func (vm *ViewModel) Initialize(ctx context.Context) error {
	snap := vm.store.Snapshot()
	if snap.IsInitialized {
		return nil
	}

	vm.store.Update(func(s State) State {
		s.Status = StatusInitializing
		return s
	})

	if token, ok := vm.tokens.Token(); ok {
		vm.store.Update(func(s State) State {
			s.Status = StatusAuthenticated
			s.Token = token
			s.Error = ""
			s.IsInitialized = true
			return s
		})
		return nil
	}

	vm.store.Update(func(s State) State {
		s.Status = StatusUnauthenticated
		s.IsInitialized = true
		return s
	})
	return vm.Authenticate(ctx)
}

// Authenticate emite un token para la identidad fija. Si ya hay una
// emisión en vuelo, no inicia otra.
func (vm *ViewModel) Authenticate(ctx context.Context) error {
	if !vm.issuing.CompareAndSwap(false, true) {
		return nil
	}
	defer vm.issuing.Store(false)

	vm.store.Update(func(s State) State {
		s.Status = StatusAuthenticating
		s.Error = ""
		return s
	})

	token, err := vm.api.IssueToken(ctx)
	if err != nil {
		_ = vm.tokens.Clear()
		vm.store.Update(func(s State) State {
			s.Status = StatusFailed
			s.Token = ""
			s.Error = err.Error()
			return s
		})
		return err
	}

	if err := vm.tokens.Save(token.AccessToken); err != nil {
		vm.store.Update(func(s State) State {
			s.Status = StatusFailed
			s.Token = ""
			s.Error = err.Error()
			return s
		})
		return err
	}

	vm.store.Update(func(s State) State {
		s.Status = StatusAuthenticated
		s.Token = token.AccessToken
		s.Error = ""
		return s
	})
	return nil
}

// Logout limpia el token durable y vuelve a no autenticado, sin
// llamada al servidor.
func (vm *ViewModel) Logout() {
	_ = vm.tokens.Clear()
	vm.store.Update(func(s State) State {
		s.Status = StatusUnauthenticated
		s.Token = ""
		s.Error = ""
		return s
	})
}

// StartWatch vigila cada interval que el token durable siga presente
// mientras el estado sea autenticado; si fue borrado externamente,
// hace logout local. Llamadas repetidas reinician la vigilancia.
func (vm *ViewModel) StartWatch(interval time.Duration) {
	vm.watchMu.Lock()
	defer vm.watchMu.Unlock()

	if vm.watchStop != nil {
		close(vm.watchStop)
	}
	stop := make(chan struct{})
	vm.watchStop = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !vm.store.Snapshot().IsAuthenticated() {
					continue
				}
				if _, ok := vm.tokens.Token(); !ok {
					vm.Logout()
				}
			}
		}
	}()
}

// StopWatch detiene la vigilancia periódica.
func (vm *ViewModel) StopWatch() {
	vm.watchMu.Lock()
	defer vm.watchMu.Unlock()
	if vm.watchStop != nil {
		close(vm.watchStop)
		vm.watchStop = nil
	}
}
