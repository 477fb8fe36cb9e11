package bot

import (
	"log"
	"sync/atomic"
	"time"

	"aoe4bot/aoe4"
	"aoe4bot/model"
	"aoe4bot/news"
	"aoe4bot/tasks"
	"aoe4bot/utils"
	"aoe4bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	Session            *discordgo.Session
	Store              *database.Store
	Client             *aoe4.Client
	Fetcher            *news.Fetcher
	Reconciler         *news.Reconciler
	RegisteredCommands []*discordgo.ApplicationCommand
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	StartedAt          time.Time

	config    atomic.Value // *model.Config
	scheduler *Scheduler
	done      chan struct{}
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

// Deps bundles the bot's dependencies for the background jobs.
func (b *Bot) Deps() tasks.Deps {
	return tasks.Deps{
		Session:    b.Session,
		Store:      b.Store,
		Client:     b.Client,
		Fetcher:    b.Fetcher,
		Reconciler: b.Reconciler,
		Config:     b.GetConfig(),
	}
}

func New(cfg *model.Config, store *database.Store) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildMembers

	client := aoe4.NewClient(cfg.APIBaseURL, utils.GlobalHTTPClient)
	fetcher := news.NewFetcher(utils.GlobalHTTPClient, cfg.PatchNotesURL, cfg.AnnouncementNewsURL)
	poster := news.NewChannelPoster(dg, cfg.PatchNotesChannelID, cfg.IconURL)

	b := &Bot{
		Session:         dg,
		Store:           store,
		Client:          client,
		Fetcher:         fetcher,
		Reconciler:      news.NewReconciler(store, poster),
		CommandHandlers: make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)),
		StartedAt:       time.Now(),
		done:            make(chan struct{}),
	}
	b.config.Store(cfg)
	return b, nil
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	close(b.done)
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	b.Session.Close()
	b.Store.Close()
}
