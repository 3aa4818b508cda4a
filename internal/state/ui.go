package state

import "time"

// ToastKind вид уведомления
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast транзиентное уведомление; нулевое значение — «ничего не показано»
type Toast struct {
	Message string
	Kind    ToastKind
}

const toastDelay = 3 * time.Second

// ShowToast показывает уведомление и планирует его скрытие через 3 секунды.
// Отложенное скрытие предыдущего уведомления отменяется: номер поколения
// страхует от таймера, успевшего сработать до остановки, так что чужой
// таймер никогда не скрывает более новое уведомление.
func (s *Store) ShowToast(message string, kind ToastKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toast = Toast{Message: message, Kind: kind}
	s.toastGen++
	gen := s.toastGen
	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
	s.toastTimer = time.AfterFunc(toastDelay, func() { s.expireToast(gen) })
}

// HideToast немедленно скрывает уведомление
func (s *Store) HideToast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toast = Toast{}
	s.toastGen++
	if s.toastTimer != nil {
		s.toastTimer.Stop()
		s.toastTimer = nil
	}
}

// expireToast скрывает уведомление только своего поколения
func (s *Store) expireToast(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.toastGen {
		return
	}
	s.toast = Toast{}
	s.toastTimer = nil
}

// CurrentToast снимок уведомления для отрисовки
func (s *Store) CurrentToast() Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toast
}
