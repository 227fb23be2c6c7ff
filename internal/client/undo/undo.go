// Package undo откладывает выполнение разрушительной операции на окно
// отмены. Пока окно открыто, операцию можно отменить без побочных
// эффектов; по истечении окна фиксация выполняется ровно один раз.
package undo

import (
	"errors"
	"sync"
	"time"
)

// Kind — вид отложенной мутации. Для каждого вида допускается не более
// одной незавершённой операции.
type Kind string

const (
	KindDelete Kind = "delete"
	KindUpdate Kind = "update"
)

// ErrPending возвращается, когда операция того же вида уже ожидает фиксации.
var ErrPending = errors.New("operation of this kind is already pending")

// DefaultWindow — окно отмены по умолчанию.
const DefaultWindow = 5 * time.Second

const tickInterval = 100 * time.Millisecond

// CommitFunc выполняет отложенную мутацию.
type CommitFunc func() error

// pending — одна незавершённая операция.
type pending struct {
	timer  *time.Timer
	ticker *time.Ticker
	done   chan struct{}
}

// Coordinator управляет отложенными мутациями.
type Coordinator struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[Kind]*pending

	// onTick получает оставшееся время окна, только для отображения.
	onTick func(kind Kind, remaining time.Duration)
	// onError получает ошибку неудачной фиксации.
	onError func(kind Kind, err error)
}

// Option настраивает координатор.
type Option func(*Coordinator)

// WithWindow задаёт длительность окна отмены.
func WithWindow(window time.Duration) Option {
	return func(c *Coordinator) { c.window = window }
}

// WithTick задаёт обработчик обратного отсчёта.
func WithTick(fn func(kind Kind, remaining time.Duration)) Option {
	return func(c *Coordinator) { c.onTick = fn }
}

// WithErrorHandler задаёт обработчик ошибок фиксации.
func WithErrorHandler(fn func(kind Kind, err error)) Option {
	return func(c *Coordinator) { c.onError = fn }
}

// New создаёт координатор с окном отмены по умолчанию.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		window:  DefaultWindow,
		pending: make(map[Kind]*pending),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Confirm ставит мутацию на отложенную фиксацию. Если операция того же
// вида уже ожидает, возвращается ErrPending и новая не ставится.
func (c *Coordinator) Confirm(kind Kind, commit CommitFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.pending[kind]; exists {
		return ErrPending
	}

	p := &pending{done: make(chan struct{})}
	deadline := time.Now().Add(c.window)

	p.timer = time.AfterFunc(c.window, func() {
		if !c.take(kind, p) {
			return
		}
		if err := commit(); err != nil && c.onError != nil {
			c.onError(kind, err)
		}
	})

	if c.onTick != nil {
		p.ticker = time.NewTicker(tickInterval)
		go func() {
			for {
				select {
				case <-p.done:
					return
				case <-p.ticker.C:
					remaining := time.Until(deadline)
					if remaining < 0 {
						remaining = 0
					}
					c.onTick(kind, remaining)
				}
			}
		}()
	}

	c.pending[kind] = p
	return nil
}

// Undo отменяет ожидающую мутацию. Повторный вызов и вызов без
// ожидающей операции безопасны.
func (c *Coordinator) Undo(kind Kind) {
	c.mu.Lock()
	p, exists := c.pending[kind]
	if exists {
		delete(c.pending, kind)
	}
	c.mu.Unlock()

	if !exists {
		return
	}
	p.timer.Stop()
	p.stop()
}

// Pending сообщает, ожидает ли фиксации операция данного вида.
func (c *Coordinator) Pending(kind Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.pending[kind]
	return exists
}

// take извлекает операцию, если она всё ещё числится ожидающей.
// Возвращает false, если операция была отменена до срабатывания таймера.
func (c *Coordinator) take(kind Kind, p *pending) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, exists := c.pending[kind]
	if !exists || current != p {
		return false
	}
	delete(c.pending, kind)
	p.stop()
	return true
}

func (p *pending) stop() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
	close(p.done)
}
