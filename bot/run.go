package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"aoe4bot/commands"
)

func (b *Bot) Run() {
	err := b.Session.Open()
	if err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	cfg := b.GetConfig()
	cmds := commands.GenerateCommands()
	log.Printf("Registering %d commands for guild %s...", len(cmds), cfg.GuildID)
	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, cfg.GuildID, cmds)
	if err != nil {
		log.Fatalf("cannot register commands for guild '%s': %v", cfg.GuildID, err)
	}
	b.RegisteredCommands = registered

	b.scheduler = NewScheduler(b)
	b.scheduler.Start()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
