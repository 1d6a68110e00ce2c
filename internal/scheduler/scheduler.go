// Package scheduler periodically refreshes the market summary for every
// supported market.
package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"dealscope/server/config"
	"dealscope/server/internal/market"
)

// Scheduler runs a market refresh at startup and then on a fixed interval.
type Scheduler struct {
	market   *market.Service
	logger   *logrus.Logger
	interval time.Duration
	markets  []config.Market
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential job execution
}

func NewScheduler(mk *market.Service, logger *logrus.Logger, refreshMinutes int, markets []config.Market) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}
	if refreshMinutes <= 0 {
		refreshMinutes = 60
	}

	return &Scheduler{
		market:   mk,
		logger:   logger,
		interval: time.Duration(refreshMinutes) * time.Minute,
		markets:  markets,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduled tasks.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	go func() {
		s.jobMutex.Lock()
		defer s.jobMutex.Unlock()
		s.logger.Info("Running startup market refresh")
		s.refreshMarkets()
		s.logger.Info("Startup market refresh completed")
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.jobMutex.Lock()
			s.logger.Info("Starting scheduled market refresh")
			s.refreshMarkets()
			s.logger.Info("Completed scheduled market refresh")
			s.jobMutex.Unlock()
		}
	}
}

// refreshMarkets refreshes every supported market sequentially.
func (s *Scheduler) refreshMarkets() {
	for _, m := range s.markets {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		data := s.market.Refresh(ctx, m.City, m.State)
		cancel()

		s.logger.WithFields(logrus.Fields{
			"city":          m.City,
			"state":         m.State,
			"average_price": data.AveragePrice,
		}).Info("Market refresh completed")
	}
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
