package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/weatherpocket/weatherpocket/internal/favorites"
	"github.com/weatherpocket/weatherpocket/internal/weather"
)

// Scheduler periodically refreshes cached weather snapshots for every
// bookmarked location, so favorite cards render from warm data.
type Scheduler struct {
	scheduler *gocron.Scheduler
	weather   *weather.Service
	favorites *favorites.Store
	interval  time.Duration
}

// New creates a new Scheduler.
func New(favs *favorites.Store, svc *weather.Service, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		weather:   svc,
		favorites: favs,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler. The favorites list is re-read on every run, so newly added
// bookmarks are picked up without a restart.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		favs := s.favorites.List()
		if len(favs) == 0 {
			return
		}

		log.Printf("scheduler: refreshing %d favorite locations", len(favs))

		var wg sync.WaitGroup
		for _, fav := range favs {
			fav := fav
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if _, err := s.weather.Refresh(ctx, fav.Lat, fav.Lon); err != nil {
					log.Printf("scheduler: refresh failed for %s: %v", fav.ID, err)
				}
			}()
		}
		wg.Wait()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
