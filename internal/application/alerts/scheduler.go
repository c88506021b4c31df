package alerts

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nexwms/warehouse-api/internal/domain/repository"
	"github.com/nexwms/warehouse-api/pkg/logger"
)

// Scheduler corre el escaneo de stock bajo con una expresión cron estándar
// (5 campos). El escaneo es read-only: lista los niveles bajo umbral y los
// delega al notificador.
type Scheduler struct {
	cron      *cron.Cron
	stockRepo repository.StockLevelRepository
	notifier  Notifier
	spec      string
	log       *logger.Logger
}

// NewScheduler construye el planificador. spec es la expresión cron, por
// ejemplo "0 7 * * *" para un escaneo diario a las 07:00.
func NewScheduler(spec string, stockRepo repository.StockLevelRepository, notifier Notifier, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		stockRepo: stockRepo,
		notifier:  notifier,
		spec:      spec,
		log:       log,
	}
}

// Start programa el escaneo y arranca el cron.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.scan); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("cron", s.spec).Msg("escaneo de stock bajo programado")
	return nil
}

// Stop detiene el cron y espera a que termine el escaneo en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	levels, err := s.stockRepo.ListLowStock(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("escaneo de stock bajo falló")
		return
	}
	if len(levels) == 0 {
		s.log.Debug().Msg("escaneo de stock bajo: sin alertas")
		return
	}

	if err := s.notifier.NotifyLowStock(ctx, levels); err != nil {
		s.log.Error().Err(err).Int("alertas", len(levels)).Msg("notificación de stock bajo falló")
		return
	}
	s.log.Info().Int("alertas", len(levels)).Msg("alertas de stock bajo notificadas")
}
