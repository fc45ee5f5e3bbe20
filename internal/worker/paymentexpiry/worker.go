package paymentexpiry

import (
	"context"
	"time"
)

const defaultInterval = time.Hour

// Expirer отменяет бронирования с истекшим сроком оплаты
type Expirer interface {
	ExpireUnpaid(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры воркера
type Config struct {
	Interval time.Duration
	// RunOnStart запускает первый проход сразу, не дожидаясь тика
	RunOnStart bool
}

// Worker периодически отменяет подтвержденные, но неоплаченные бронирования
type Worker struct {
	expirer    Expirer
	logger     Logger
	interval   time.Duration
	runOnStart bool
}

// NewWorker создает воркер; нулевой интервал заменяется на час
func NewWorker(expirer Expirer, logger Logger, cfg Config) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	return &Worker{
		expirer:    expirer,
		logger:     logger,
		interval:   cfg.Interval,
		runOnStart: cfg.RunOnStart,
	}
}

// Run блокируется до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("PaymentExpiry: started, interval=%s", w.interval)

	if w.runOnStart {
		w.sweep(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("PaymentExpiry: stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	if _, err := w.expirer.ExpireUnpaid(ctx); err != nil {
		w.logger.Error("PaymentExpiry: sweep failed: %v", err)
	}
}
