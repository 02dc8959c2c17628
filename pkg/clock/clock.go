package clock

import "time"

// Clock абстракция над временем, чтобы debounce и проверку срока токена
// можно было детерминированно тестировать.
type Clock interface {
	// Now возвращает текущее время
	Now() time.Time

	// AfterFunc вызывает f через d. Возвращает Timer для отмены вызова.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer запланированный вызов
type Timer struct {
	stopFunc func() bool
}

// Stop отменяет вызов. Возвращает false, если вызов уже произошёл или был отменён
func (t *Timer) Stop() bool {
	if t == nil || t.stopFunc == nil {
		return false
	}
	return t.stopFunc()
}

// Real возвращает Clock на основе пакета time
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stopFunc: timer.Stop}
}
