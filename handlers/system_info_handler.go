package handlers

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"aoe4bot/bot"
	"aoe4bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HandleBotStatus reports process and host health.
func HandleBotStatus(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring botstatus response: %v", err)
		return
	}

	go func() {
		cpuCount, _ := cpu.Counts(true)
		cpuPercent, _ := cpu.Percent(0, false)
		vm, _ := mem.VirtualMemory()
		hostInfo, _ := host.Info()

		cpuUsage := 0.0
		if len(cpuPercent) > 0 {
			cpuUsage = cpuPercent[0]
		}

		cfg := b.GetConfig()
		var dbSize int64
		if info, err := os.Stat(cfg.DatabasePath); err == nil {
			dbSize = info.Size() / 1024
		}

		accountCount := 0
		if accounts, err := b.Store.ListAccounts(); err == nil {
			accountCount = len(accounts)
		}

		uptime := time.Since(b.StartedAt).Round(time.Second)

		embed := &discordgo.MessageEmbed{
			Title: "🤖 Bot Status",
			Color: 0x5865F2,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "💻 OS", Value: fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion), Inline: true},
				{Name: "🐹 Go Version", Value: runtime.Version(), Inline: true},
				{Name: "⏳ Uptime", Value: uptime.String(), Inline: true},
				{Name: "🔼 CPU Count", Value: fmt.Sprintf("%d", cpuCount), Inline: true},
				{Name: "🔥 CPU Usage", Value: fmt.Sprintf("%.1f%%", cpuUsage), Inline: true},
				{Name: "🧠 Memory", Value: fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024), Inline: true},
				{Name: "🗃️ Database Size", Value: fmt.Sprintf("%d KB", dbSize), Inline: true},
				{Name: "👥 Registered Accounts", Value: fmt.Sprintf("%d", accountCount), Inline: true},
				{Name: "⏱️ Gateway Latency", Value: s.HeartbeatLatency().String(), Inline: true},
				{Name: "🚀 Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("System monitor • %s", time.Now().Format("15:04")),
			},
		}

		utils.SendFollowUpEmbeds(s, i.Interaction, []*discordgo.MessageEmbed{embed})
	}()
}
