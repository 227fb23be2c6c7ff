// Package hold реализует жест удержания для подтверждения: пока кнопка
// удерживается, прогресс растёт от 0 до 100 процентов, при отпускании
// плавно стекает обратно. Достижение 100 процентов вызывает обработчик
// ровно один раз и блокирует жест до явного сброса.
package hold

import (
	"sync"
	"time"
)

// DefaultDuration — время удержания до срабатывания по умолчанию.
const DefaultDuration = 2 * time.Second

const (
	fillInterval  = 100 * time.Millisecond
	drainInterval = 50 * time.Millisecond
	drainStep     = 2.0
)

// Gadget отслеживает прогресс жеста удержания.
type Gadget struct {
	mu       sync.Mutex
	duration time.Duration
	progress float64
	holding  bool
	fired    bool

	ticker *time.Ticker
	done   chan struct{}

	onComplete func()
	onProgress func(progress float64)
}

// Option настраивает жест.
type Option func(*Gadget)

// WithDuration задаёт время удержания до срабатывания.
func WithDuration(duration time.Duration) Option {
	return func(g *Gadget) { g.duration = duration }
}

// WithProgress задаёт обработчик изменения прогресса.
func WithProgress(fn func(progress float64)) Option {
	return func(g *Gadget) { g.onProgress = fn }
}

// New создаёт жест с обработчиком срабатывания.
func New(onComplete func(), opts ...Option) *Gadget {
	g := &Gadget{
		duration:   DefaultDuration,
		onComplete: onComplete,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start начинает заполнение. Повторный вызов при активном удержании и
// вызов после срабатывания игнорируются.
func (g *Gadget) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.holding || g.fired {
		return
	}
	g.holding = true
	g.stopLoop()

	step := 100 * float64(fillInterval) / float64(g.duration)
	g.startLoop(fillInterval, func() bool {
		g.progress += step
		if g.progress >= 100 {
			g.progress = 100
			if !g.fired {
				g.fired = true
				g.notifyProgress()
				if g.onComplete != nil {
					go g.onComplete()
				}
			}
			return false
		}
		g.notifyProgress()
		return true
	})
}

// End отпускает удержание: прогресс стекает к нулю, если жест ещё не
// сработал.
func (g *Gadget) End() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.holding {
		return
	}
	g.holding = false
	g.stopLoop()

	if g.fired {
		return
	}

	g.startLoop(drainInterval, func() bool {
		g.progress -= drainStep
		if g.progress <= 0 {
			g.progress = 0
			g.notifyProgress()
			return false
		}
		g.notifyProgress()
		return true
	})
}

// Progress возвращает текущий прогресс в процентах.
func (g *Gadget) Progress() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.progress
}

// Fired сообщает, сработал ли жест.
func (g *Gadget) Fired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fired
}

// Reset возвращает жест в исходное состояние и снимает блокировку
// после срабатывания.
func (g *Gadget) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLoop()
	g.holding = false
	g.fired = false
	g.progress = 0
	g.notifyProgress()
}

// startLoop запускает периодический шаг; step возвращает false, когда
// цикл должен остановиться. Вызывается под мьютексом.
func (g *Gadget) startLoop(interval time.Duration, step func() bool) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	g.ticker = ticker
	g.done = done

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				g.mu.Lock()
				if g.done != done {
					g.mu.Unlock()
					return
				}
				if !step() {
					g.stopLoop()
					g.mu.Unlock()
					return
				}
				g.mu.Unlock()
			}
		}
	}()
}

// stopLoop останавливает текущий цикл. Вызывается под мьютексом.
func (g *Gadget) stopLoop() {
	if g.ticker != nil {
		g.ticker.Stop()
		g.ticker = nil
	}
	if g.done != nil {
		close(g.done)
		g.done = nil
	}
}

// notifyProgress вызывается под мьютексом.
func (g *Gadget) notifyProgress() {
	if g.onProgress != nil {
		progress := g.progress
		go g.onProgress(progress)
	}
}
