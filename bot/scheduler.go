package bot

import (
	"context"
	"log"
	"sync"
	"time"

	"aoe4bot/tasks"
)

// Scheduler drives the background jobs. Each job runs on its own
// ticker in its own goroutine so a slow news fetch can never starve
// the 30-second game poll.
type Scheduler struct {
	bot  *Bot
	done chan struct{}
	wg   sync.WaitGroup
}

func NewScheduler(b *Bot) *Scheduler {
	return &Scheduler{
		bot:  b,
		done: b.done,
	}
}

// Start launches all recurring jobs plus the one-shot startup checks.
func (s *Scheduler) Start() {
	cfg := s.bot.GetConfig()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		tasks.StartupNewsCheck(context.Background(), s.bot.Deps())
		tasks.RunLeaderboardUpdate(context.Background(), s.bot.Deps())
	}()

	s.every(cfg.NewsCheckInterval, "news check", func(ctx context.Context) {
		tasks.RunNewsCheck(ctx, s.bot.Deps())
	})
	s.every(cfg.LeaderboardInterval, "leaderboard update", func(ctx context.Context) {
		tasks.RunLeaderboardUpdate(ctx, s.bot.Deps())
	})
	s.every(cfg.ActiveGamesInterval, "active games update", func(ctx context.Context) {
		tasks.RunActiveGamesUpdate(ctx, s.bot.Deps())
	})
	s.every(cfg.NewsCleanupInterval, "news cleanup", func(ctx context.Context) {
		tasks.RunNewsCleanup(ctx, s.bot.Deps())
	})
}

func (s *Scheduler) every(interval time.Duration, name string, job func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runJob(name, job)
			case <-s.done:
				return
			}
		}
	}()
}

func (s *Scheduler) runJob(name string, job func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in %s: %v", name, r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	job(ctx)
}

// Stop waits for in-flight jobs. The bot's done channel is already
// closed by Close.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	s.wg.Wait()
	log.Println("Scheduler stopped.")
}
