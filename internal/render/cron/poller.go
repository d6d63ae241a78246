package cronjob

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reconciler is the piece of the render service the poller drives.
type Reconciler interface {
	Reconcile(ctx context.Context)
}

// Poller periodically reconciles in-flight renders whose engine callback
// was lost. Polling is the only fallback synchronization with the engine.
type Poller struct {
	renders Reconciler
	log     *logrus.Logger
	spec    string
	cron    *cron.Cron
}

func NewPoller(renders Reconciler, log *logrus.Logger, spec string) *Poller {
	return &Poller{renders: renders, log: log, spec: spec}
}

// Start schedules the reconciliation sweep.
func (p *Poller) Start() error {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(p.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		p.renders.Reconcile(ctx)
	})
	if err != nil {
		return err
	}

	p.cron = c
	c.Start()
	p.log.WithField("spec", p.spec).Info("render reconciliation poller started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (p *Poller) Stop() {
	if p.cron != nil {
		<-p.cron.Stop().Done()
	}
}
