package webhooks

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Worker es el loop de fondo que despacha entregas pendientes a cadencia fija.
// Un solo worker lógico: nunca corre concurrente consigo mismo, así que el
// throughput queda acotado por batchLimit/interval.
type Worker struct {
	dispatcher *Dispatcher
	interval   time.Duration
	batchLimit int
	log        zerolog.Logger
	done       chan struct{}
	stopped    chan struct{}
}

// NewWorker construye el worker. El dispatcher llega ya atado a los
// repositorios sobre el pool: cada consulta toma una conexión fresca, que es
// el alcance de persistencia por iteración.
func NewWorker(dispatcher *Dispatcher, interval time.Duration, batchLimit int, log zerolog.Logger) *Worker {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if batchLimit <= 0 {
		batchLimit = 20
	}
	return &Worker{
		dispatcher: dispatcher,
		interval:   interval,
		batchLimit: batchLimit,
		log:        log.With().Str("component", "webhook_worker").Logger(),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Start lanza el loop en su propia goroutine. Cada despertar procesa un lote
// y vuelve a dormir; el loop termina con Stop o al cancelar ctx.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop detiene el loop y espera a que la iteración en curso termine.
func (w *Worker) Stop() {
	close(w.done)
	<-w.stopped
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.stopped)

	w.log.Info().Dur("interval", w.interval).Int("batch_limit", w.batchLimit).Msg("worker de webhooks iniciado")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("worker de webhooks detenido por contexto")
			return
		case <-w.done:
			w.log.Info().Msg("worker de webhooks detenido")
			return
		case <-ticker.C:
			if err := w.dispatcher.DeliverPending(ctx, w.batchLimit); err != nil {
				w.log.Error().Err(err).Msg("iteración de entrega fallida")
			}
		}
	}
}
